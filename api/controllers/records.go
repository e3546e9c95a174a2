package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/api/responses"
	"github.com/sadmanhossain/urbanland-backend/api/validators"
	"github.com/sadmanhossain/urbanland-backend/internal/ownership"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

func recordListFilter(r *http.Request) (ownership.ListFilter, error) {
	filter := ownership.ListFilter{}

	parcelID, err := validators.ParseQueryUUID(r, "parcel_id")
	if err != nil {
		return filter, err
	}
	if parcelID != uuid.Nil {
		filter.ParcelID = &parcelID
	}

	ownerID, err := validators.ParseQueryUUID(r, "owner_id")
	if err != nil {
		return filter, err
	}
	if ownerID != uuid.Nil {
		filter.OwnerID = &ownerID
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("verification_status")); raw != "" {
		status := enums.VerificationStatus(raw)
		if !status.IsValid() {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid verification_status filter")
		}
		filter.VerificationStatus = &status
	}

	current, err := validators.ParseQueryBool(r, "current_only")
	if err != nil {
		return filter, err
	}
	if current != nil {
		filter.CurrentOnly = *current
	}
	return filter, nil
}

// RecordsList returns ownership records; owners only see their own.
func RecordsList(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := recordListFilter(r)
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

// RecordsGet returns a single ownership record.
func RecordsGet(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
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

		record, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

type recordCreateRequest struct {
	ParcelID            uuid.UUID             `json:"parcel_id" validate:"required"`
	OwnerID             uuid.UUID             `json:"owner_id" validate:"required"`
	OwnershipType       *enums.OwnershipType  `json:"ownership_type,omitempty"`
	OwnershipPercentage decimal.Decimal       `json:"ownership_percentage" validate:"required"`
	AcquisitionType     enums.AcquisitionType `json:"acquisition_type" validate:"required"`
	AcquisitionDate     time.Time             `json:"acquisition_date" validate:"required"`
	AcquisitionValue    *decimal.Decimal      `json:"acquisition_value,omitempty"`
	DeedNumber          *string               `json:"deed_number,omitempty"`
	DeedDate            *time.Time            `json:"deed_date,omitempty"`
	RegistrationOffice  *string               `json:"registration_office,omitempty"`
	RegistrationNumber  *string               `json:"registration_number,omitempty"`
	RegistrationDate    *time.Time            `json:"registration_date,omitempty"`
	StartDate           *time.Time            `json:"start_date,omitempty"`
	EndDate             *time.Time            `json:"end_date,omitempty"`
	LeaseAmount         *decimal.Decimal      `json:"lease_amount,omitempty"`
	MortgageAmount      *decimal.Decimal      `json:"mortgage_amount,omitempty"`
	MortgageeName       *string               `json:"mortgagee_name,omitempty"`
	HistoryNotes        *string               `json:"history_notes,omitempty"`
}

func (req recordCreateRequest) toInput() ownership.CreateRecordInput {
	input := ownership.CreateRecordInput{
		ParcelID:            req.ParcelID,
		OwnerID:             req.OwnerID,
		OwnershipPercentage: req.OwnershipPercentage,
		AcquisitionType:     req.AcquisitionType,
		AcquisitionDate:     req.AcquisitionDate,
		AcquisitionValue:    req.AcquisitionValue,
		DeedNumber:          req.DeedNumber,
		DeedDate:            req.DeedDate,
		RegistrationOffice:  req.RegistrationOffice,
		RegistrationNumber:  req.RegistrationNumber,
		RegistrationDate:    req.RegistrationDate,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		LeaseAmount:         req.LeaseAmount,
		MortgageAmount:      req.MortgageAmount,
		MortgageeName:       req.MortgageeName,
		HistoryNotes:        req.HistoryNotes,
	}
	if req.OwnershipType != nil {
		input.OwnershipType = *req.OwnershipType
	}
	return input
}

// RecordsCreate registers a new ownership record.
func RecordsCreate(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recordCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), actor, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

type recordUpdateRequest struct {
	OwnershipType      *enums.OwnershipType `json:"ownership_type,omitempty"`
	AcquisitionValue   *decimal.Decimal     `json:"acquisition_value,omitempty"`
	DeedNumber         *string              `json:"deed_number,omitempty"`
	DeedDate           *time.Time           `json:"deed_date,omitempty"`
	RegistrationOffice *string              `json:"registration_office,omitempty"`
	RegistrationNumber *string              `json:"registration_number,omitempty"`
	RegistrationDate   *time.Time           `json:"registration_date,omitempty"`
	StartDate          *time.Time           `json:"start_date,omitempty"`
	EndDate            *time.Time           `json:"end_date,omitempty"`
	LeaseAmount        *decimal.Decimal     `json:"lease_amount,omitempty"`
	MortgageAmount     *decimal.Decimal     `json:"mortgage_amount,omitempty"`
	MortgageeName      *string              `json:"mortgagee_name,omitempty"`
	HistoryNotes       *string              `json:"history_notes,omitempty"`
}

// RecordsUpdate adjusts a record's legal metadata.
func RecordsUpdate(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload recordUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), actor, id, ownership.UpdateRecordInput{
			OwnershipType:      payload.OwnershipType,
			AcquisitionValue:   payload.AcquisitionValue,
			DeedNumber:         payload.DeedNumber,
			DeedDate:           payload.DeedDate,
			RegistrationOffice: payload.RegistrationOffice,
			RegistrationNumber: payload.RegistrationNumber,
			RegistrationDate:   payload.RegistrationDate,
			StartDate:          payload.StartDate,
			EndDate:            payload.EndDate,
			LeaseAmount:        payload.LeaseAmount,
			MortgageAmount:     payload.MortgageAmount,
			MortgageeName:      payload.MortgageeName,
			HistoryNotes:       payload.HistoryNotes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// RecordsDelete removes an ownership record.
func RecordsDelete(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
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

type recordTransferRequest struct {
	NewOwnerID       uuid.UUID              `json:"new_owner_id" validate:"required"`
	TransferType     enums.TransferType     `json:"transfer_type" validate:"required"`
	TransferDate     *time.Time             `json:"transfer_date,omitempty"`
	Percentage       *decimal.Decimal       `json:"percentage,omitempty"`
	AcquisitionType  *enums.AcquisitionType `json:"acquisition_type,omitempty"`
	AcquisitionValue *decimal.Decimal       `json:"acquisition_value,omitempty"`
	DeedNumber       *string                `json:"deed_number,omitempty"`
	HistoryNotes     *string                `json:"history_notes,omitempty"`
}

// RecordsTransfer closes the current record and opens one for the new owner.
func RecordsTransfer(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload recordTransferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ownership.TransferInput{
			NewOwnerID:       payload.NewOwnerID,
			TransferType:     payload.TransferType,
			Percentage:       payload.Percentage,
			AcquisitionType:  payload.AcquisitionType,
			AcquisitionValue: payload.AcquisitionValue,
			DeedNumber:       payload.DeedNumber,
			HistoryNotes:     payload.HistoryNotes,
		}
		if payload.TransferDate != nil {
			input.TransferDate = *payload.TransferDate
		}

		record, err := svc.Transfer(r.Context(), actor, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

type recordVerifyRequest struct {
	Status enums.VerificationStatus `json:"status" validate:"required"`
	Notes  *string                  `json:"notes,omitempty"`
}

// RecordsSetVerification moves a record through the verification workflow.
func RecordsSetVerification(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload recordVerifyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.SetVerificationStatus(r.Context(), actor, id, payload.Status, payload.Notes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// RecordsCurrentOwners lists the current owners of a parcel.
func RecordsCurrentOwners(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parcelID, err := validators.RequireQueryUUID(r, "parcel_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owners, err := svc.CurrentOwners(r.Context(), parcelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, owners)
	}
}

// RecordsPrimaryOwner returns the parcel's largest current stakeholder, or
// null when the parcel has no current owner.
func RecordsPrimaryOwner(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parcelID, err := validators.RequireQueryUUID(r, "parcel_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owner, err := svc.PrimaryOwner(r.Context(), parcelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, owner)
	}
}

// RecordsOwnerHistory returns the full record history for one owner.
func RecordsOwnerHistory(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ownerID, err := validators.RequireQueryUUID(r, "owner_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.HistoryByOwner(r.Context(), actor, ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}

// RecordsParcelHistory returns the full record history for one parcel.
func RecordsParcelHistory(svc ownership.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		parcelID, err := validators.RequireQueryUUID(r, "parcel_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.HistoryByParcel(r.Context(), actor, parcelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}
