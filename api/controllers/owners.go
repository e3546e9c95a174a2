package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/api/responses"
	"github.com/sadmanhossain/urbanland-backend/api/validators"
	"github.com/sadmanhossain/urbanland-backend/internal/owners"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/logger"
)

// OwnersList returns owner profiles; owners only ever see their own.
func OwnersList(svc owners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := owners.ListFilter{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.OwnerStatus(raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filter.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("owner_type")); raw != "" {
			ownerType := enums.OwnerType(raw)
			if !ownerType.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid owner_type filter"))
				return
			}
			filter.OwnerType = &ownerType
		}

		listed, err := svc.List(r.Context(), actor, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// OwnersGet returns a single owner profile.
func OwnersGet(svc owners.Service, logg *logger.Logger) http.HandlerFunc {
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

		owner, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, owner)
	}
}

// OwnersMe returns the caller's own profile with owned lands embedded.
func OwnersMe(svc owners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owner, err := svc.Me(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, owner)
	}
}

// OwnersSearch finds a profile by the exact account username.
func OwnersSearch(svc owners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		matches, err := svc.SearchByUsername(r.Context(), actor, r.URL.Query().Get("username"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, matches)
	}
}

type ownerCreateRequest struct {
	UserID           uuid.UUID        `json:"user_id" validate:"required"`
	NationalID       string           `json:"national_id" validate:"required"`
	FirstName        string           `json:"first_name" validate:"required"`
	MiddleName       *string          `json:"middle_name,omitempty"`
	LastName         string           `json:"last_name" validate:"required"`
	DateOfBirth      *time.Time       `json:"date_of_birth,omitempty"`
	Gender           *enums.Gender    `json:"gender,omitempty"`
	ProfilePicture   *string          `json:"profile_picture,omitempty"`
	IDCardFront      *string          `json:"id_card_front,omitempty"`
	IDCardBack       *string          `json:"id_card_back,omitempty"`
	Signature        *string          `json:"signature,omitempty"`
	ContactPhone     *string          `json:"contact_phone,omitempty"`
	ContactEmail     *string          `json:"contact_email,omitempty" validate:"omitempty,email"`
	PermanentAddress *string          `json:"permanent_address,omitempty"`
	CurrentAddress   *string          `json:"current_address,omitempty"`
	OwnerType        *enums.OwnerType `json:"owner_type,omitempty"`
	RegistrationNo   *string          `json:"registration_no,omitempty"`
	TaxID            *string          `json:"tax_id,omitempty"`
	ContactPerson    *string          `json:"contact_person,omitempty"`
	Notes            *string          `json:"notes,omitempty"`
}

func (req ownerCreateRequest) toInput() owners.CreateOwnerInput {
	input := owners.CreateOwnerInput{
		UserID:           req.UserID,
		NationalID:       req.NationalID,
		FirstName:        req.FirstName,
		MiddleName:       req.MiddleName,
		LastName:         req.LastName,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		ProfilePicture:   req.ProfilePicture,
		IDCardFront:      req.IDCardFront,
		IDCardBack:       req.IDCardBack,
		Signature:        req.Signature,
		ContactPhone:     req.ContactPhone,
		ContactEmail:     req.ContactEmail,
		PermanentAddress: req.PermanentAddress,
		CurrentAddress:   req.CurrentAddress,
		RegistrationNo:   req.RegistrationNo,
		TaxID:            req.TaxID,
		ContactPerson:    req.ContactPerson,
		Notes:            req.Notes,
	}
	if req.OwnerType != nil {
		input.OwnerType = *req.OwnerType
	}
	return input
}

// OwnersCreate registers a profile for an existing owner account.
func OwnersCreate(svc owners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ownerCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owner, err := svc.Create(r.Context(), actor, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, owner)
	}
}

type ownerUpdateRequest struct {
	FirstName        *string            `json:"first_name,omitempty"`
	MiddleName       *string            `json:"middle_name,omitempty"`
	LastName         *string            `json:"last_name,omitempty"`
	DateOfBirth      *time.Time         `json:"date_of_birth,omitempty"`
	Gender           *enums.Gender      `json:"gender,omitempty"`
	ProfilePicture   *string            `json:"profile_picture,omitempty"`
	IDCardFront      *string            `json:"id_card_front,omitempty"`
	IDCardBack       *string            `json:"id_card_back,omitempty"`
	Signature        *string            `json:"signature,omitempty"`
	ContactPhone     *string            `json:"contact_phone,omitempty"`
	ContactEmail     *string            `json:"contact_email,omitempty" validate:"omitempty,email"`
	PermanentAddress *string            `json:"permanent_address,omitempty"`
	CurrentAddress   *string            `json:"current_address,omitempty"`
	OwnerType        *enums.OwnerType   `json:"owner_type,omitempty"`
	RegistrationNo   *string            `json:"registration_no,omitempty"`
	TaxID            *string            `json:"tax_id,omitempty"`
	ContactPerson    *string            `json:"contact_person,omitempty"`
	Notes            *string            `json:"notes,omitempty"`
	Status           *enums.OwnerStatus `json:"status,omitempty"`
}

// OwnersUpdate adjusts an owner profile.
func OwnersUpdate(svc owners.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload ownerUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owner, err := svc.Update(r.Context(), actor, id, owners.UpdateOwnerInput{
			FirstName:        payload.FirstName,
			MiddleName:       payload.MiddleName,
			LastName:         payload.LastName,
			DateOfBirth:      payload.DateOfBirth,
			Gender:           payload.Gender,
			ProfilePicture:   payload.ProfilePicture,
			IDCardFront:      payload.IDCardFront,
			IDCardBack:       payload.IDCardBack,
			Signature:        payload.Signature,
			ContactPhone:     payload.ContactPhone,
			ContactEmail:     payload.ContactEmail,
			PermanentAddress: payload.PermanentAddress,
			CurrentAddress:   payload.CurrentAddress,
			OwnerType:        payload.OwnerType,
			RegistrationNo:   payload.RegistrationNo,
			TaxID:            payload.TaxID,
			ContactPerson:    payload.ContactPerson,
			Notes:            payload.Notes,
			Status:           payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, owner)
	}
}

// OwnersDelete removes an owner profile.
func OwnersDelete(svc owners.Service, logg *logger.Logger) http.HandlerFunc {
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
