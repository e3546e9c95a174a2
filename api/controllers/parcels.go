package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/api/responses"
	"github.com/sadmanhossain/urbanland-backend/api/validators"
	"github.com/sadmanhossain/urbanland-backend/internal/ownership"
	"github.com/sadmanhossain/urbanland-backend/internal/parcels"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

func parseQueryDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a decimal").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

func parseQueryFloat(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

func parseQueryDate(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a YYYY-MM-DD date").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

func parcelListFilter(r *http.Request) (parcels.ListFilter, error) {
	filter := parcels.ListFilter{
		Search:    strings.TrimSpace(r.URL.Query().Get("search")),
		OwnerName: strings.TrimSpace(r.URL.Query().Get("owner_name")),
		Ordering:  strings.TrimSpace(r.URL.Query().Get("ordering")),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status := enums.ParcelStatus(raw)
		if !status.IsValid() {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("land_use_zone")); raw != "" {
		zone := enums.LandUseZone(raw)
		if !zone.IsValid() {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid land_use_zone filter")
		}
		filter.LandUseZone = &zone
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("development_status")); raw != "" {
		status := enums.DevelopmentStatus(raw)
		if !status.IsValid() {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid development_status filter")
		}
		filter.DevelopmentStatus = &status
	}

	isActive, err := validators.ParseQueryBool(r, "is_active")
	if err != nil {
		return filter, err
	}
	filter.IsActive = isActive

	if filter.RegistrationDateGTE, err = parseQueryDate(r, "registration_date_after"); err != nil {
		return filter, err
	}
	if filter.RegistrationDateLTE, err = parseQueryDate(r, "registration_date_before"); err != nil {
		return filter, err
	}
	if filter.MarketValueGTE, err = parseQueryDecimal(r, "market_value_min"); err != nil {
		return filter, err
	}
	if filter.MarketValueLTE, err = parseQueryDecimal(r, "market_value_max"); err != nil {
		return filter, err
	}
	if filter.AreaGTE, err = parseQueryFloat(r, "area_min"); err != nil {
		return filter, err
	}
	if filter.AreaLTE, err = parseQueryFloat(r, "area_max"); err != nil {
		return filter, err
	}

	ownerID, err := validators.ParseQueryUUID(r, "owner_id")
	if err != nil {
		return filter, err
	}
	if ownerID != uuid.Nil {
		filter.OwnerID = &ownerID
	}
	return filter, nil
}

// ParcelsList returns parcels matching the query filters.
func ParcelsList(svc parcels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := parcelListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.List(r.Context(), actor, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// ParcelsGet returns a single parcel.
func ParcelsGet(svc parcels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		parcel, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, parcel)
	}
}

// ParcelsOwners returns the parcel's current owners with their stakes.
func ParcelsOwners(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owners, err := svc.CurrentOwners(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, owners)
	}
}

type parcelCreateRequest struct {
	CadastralNumber    string                   `json:"cadastral_number" validate:"required"`
	Location           string                   `json:"location" validate:"required"`
	Area               float64                  `json:"area" validate:"required,gt=0"`
	LandUseType        string                   `json:"land_use_type" validate:"required"`
	Status             *enums.ParcelStatus      `json:"status,omitempty"`
	BoundaryNorth      *string                  `json:"boundary_north,omitempty"`
	BoundaryEast       *string                  `json:"boundary_east,omitempty"`
	BoundaryWest       *string                  `json:"boundary_west,omitempty"`
	BoundarySouth      *string                  `json:"boundary_south,omitempty"`
	SurveyNumber       *string                  `json:"survey_number,omitempty"`
	BlockNumber        *string                  `json:"block_number,omitempty"`
	SectorNumber       *string                  `json:"sector_number,omitempty"`
	MouzaName          *string                  `json:"mouza_name,omitempty"`
	LandUseZone        *enums.LandUseZone       `json:"land_use_zone,omitempty"`
	RegistrationDate   *time.Time               `json:"registration_date,omitempty"`
	RegistrationNumber *string                  `json:"registration_number,omitempty"`
	TitleDeedNumber    *string                  `json:"title_deed_number,omitempty"`
	CurrentMarketValue *decimal.Decimal         `json:"current_market_value,omitempty"`
	AnnualTaxValue     *decimal.Decimal         `json:"annual_tax_value,omitempty"`
	DevelopmentStatus  *enums.DevelopmentStatus `json:"development_status,omitempty"`
	HasStructures      bool                     `json:"has_structures"`
}

func (req parcelCreateRequest) toInput() parcels.CreateParcelInput {
	input := parcels.CreateParcelInput{
		CadastralNumber:    req.CadastralNumber,
		Location:           req.Location,
		Area:               req.Area,
		LandUseType:        req.LandUseType,
		BoundaryNorth:      req.BoundaryNorth,
		BoundaryEast:       req.BoundaryEast,
		BoundaryWest:       req.BoundaryWest,
		BoundarySouth:      req.BoundarySouth,
		SurveyNumber:       req.SurveyNumber,
		BlockNumber:        req.BlockNumber,
		SectorNumber:       req.SectorNumber,
		MouzaName:          req.MouzaName,
		LandUseZone:        req.LandUseZone,
		RegistrationDate:   req.RegistrationDate,
		RegistrationNumber: req.RegistrationNumber,
		TitleDeedNumber:    req.TitleDeedNumber,
		CurrentMarketValue: req.CurrentMarketValue,
		AnnualTaxValue:     req.AnnualTaxValue,
		HasStructures:      req.HasStructures,
	}
	if req.Status != nil {
		input.Status = *req.Status
	}
	if req.DevelopmentStatus != nil {
		input.DevelopmentStatus = *req.DevelopmentStatus
	}
	return input
}

// ParcelsCreate registers a new land parcel.
func ParcelsCreate(svc parcels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload parcelCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		parcel, err := svc.Create(r.Context(), actor, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, parcel)
	}
}

type parcelUpdateRequest struct {
	Location           *string                  `json:"location,omitempty"`
	Area               *float64                 `json:"area,omitempty"`
	LandUseType        *string                  `json:"land_use_type,omitempty"`
	Status             *enums.ParcelStatus      `json:"status,omitempty"`
	BoundaryNorth      *string                  `json:"boundary_north,omitempty"`
	BoundaryEast       *string                  `json:"boundary_east,omitempty"`
	BoundaryWest       *string                  `json:"boundary_west,omitempty"`
	BoundarySouth      *string                  `json:"boundary_south,omitempty"`
	SurveyNumber       *string                  `json:"survey_number,omitempty"`
	BlockNumber        *string                  `json:"block_number,omitempty"`
	SectorNumber       *string                  `json:"sector_number,omitempty"`
	MouzaName          *string                  `json:"mouza_name,omitempty"`
	LandUseZone        *enums.LandUseZone       `json:"land_use_zone,omitempty"`
	RegistrationDate   *time.Time               `json:"registration_date,omitempty"`
	RegistrationNumber *string                  `json:"registration_number,omitempty"`
	TitleDeedNumber    *string                  `json:"title_deed_number,omitempty"`
	CurrentMarketValue *decimal.Decimal         `json:"current_market_value,omitempty"`
	AnnualTaxValue     *decimal.Decimal         `json:"annual_tax_value,omitempty"`
	DevelopmentStatus  *enums.DevelopmentStatus `json:"development_status,omitempty"`
	HasStructures      *bool                    `json:"has_structures,omitempty"`
	IsActive           *bool                    `json:"is_active,omitempty"`
}

// ParcelsUpdate adjusts a parcel's mutable fields.
func ParcelsUpdate(svc parcels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload parcelUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		parcel, err := svc.Update(r.Context(), actor, id, parcels.UpdateParcelInput{
			Location:           payload.Location,
			Area:               payload.Area,
			LandUseType:        payload.LandUseType,
			Status:             payload.Status,
			BoundaryNorth:      payload.BoundaryNorth,
			BoundaryEast:       payload.BoundaryEast,
			BoundaryWest:       payload.BoundaryWest,
			BoundarySouth:      payload.BoundarySouth,
			SurveyNumber:       payload.SurveyNumber,
			BlockNumber:        payload.BlockNumber,
			SectorNumber:       payload.SectorNumber,
			MouzaName:          payload.MouzaName,
			LandUseZone:        payload.LandUseZone,
			RegistrationDate:   payload.RegistrationDate,
			RegistrationNumber: payload.RegistrationNumber,
			TitleDeedNumber:    payload.TitleDeedNumber,
			CurrentMarketValue: payload.CurrentMarketValue,
			AnnualTaxValue:     payload.AnnualTaxValue,
			DevelopmentStatus:  payload.DevelopmentStatus,
			HasStructures:      payload.HasStructures,
			IsActive:           payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, parcel)
	}
}

// ParcelsDelete removes a parcel.
func ParcelsDelete(svc parcels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ParcelsStats returns registry-wide parcel aggregates.
func ParcelsStats(svc parcels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// ParcelsMine returns the parcels currently owned by the caller.
func ParcelsMine(svc parcels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.MyParcels(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}
