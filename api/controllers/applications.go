package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/api/responses"
	"github.com/sadmanhossain/urbanland-backend/api/validators"
	"github.com/sadmanhossain/urbanland-backend/internal/applications"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/logger"
)

func applicationListFilter(r *http.Request) (applications.ListFilter, error) {
	filter := applications.ListFilter{}

	applicantID, err := validators.ParseQueryUUID(r, "applicant_id")
	if err != nil {
		return filter, err
	}
	if applicantID != uuid.Nil {
		filter.ApplicantID = &applicantID
	}

	parcelID, err := validators.ParseQueryUUID(r, "parcel_id")
	if err != nil {
		return filter, err
	}
	if parcelID != uuid.Nil {
		filter.ParcelID = &parcelID
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("application_type")); raw != "" {
		applicationType := enums.ApplicationType(raw)
		if !applicationType.IsValid() {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid application_type filter")
		}
		filter.ApplicationType = &applicationType
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		filter.Status = &raw
	}
	return filter, nil
}

// ApplicationsList returns land-use applications.
func ApplicationsList(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := applicationListFilter(r)
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

// ApplicationsGet returns a single application.
func ApplicationsGet(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
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

		application, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, application)
	}
}

type applicationCreateRequest struct {
	ApplicantID     *uuid.UUID            `json:"applicant_id,omitempty"`
	ParcelID        uuid.UUID             `json:"parcel_id" validate:"required"`
	ApplicationType enums.ApplicationType `json:"application_type" validate:"required"`
	Status          *string               `json:"status,omitempty"`
}

// ApplicationsCreate files a new application.
func ApplicationsCreate(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload applicationCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		application, err := svc.Create(r.Context(), actor, applications.CreateApplicationInput{
			ApplicantID:     payload.ApplicantID,
			ParcelID:        payload.ParcelID,
			ApplicationType: payload.ApplicationType,
			Status:          payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, application)
	}
}

type applicationUpdateRequest struct {
	ApplicationType *enums.ApplicationType `json:"application_type,omitempty"`
	Status          *string                `json:"status,omitempty"`
}

// ApplicationsUpdate adjusts an application's type or status.
func ApplicationsUpdate(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload applicationUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		application, err := svc.Update(r.Context(), actor, id, applications.UpdateApplicationInput{
			ApplicationType: payload.ApplicationType,
			Status:          payload.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, application)
	}
}

// ApplicationsDelete removes an application.
func ApplicationsDelete(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
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

type approvalCreateRequest struct {
	Status   string  `json:"status" validate:"required"`
	Comments *string `json:"comments,omitempty"`
}

// ApplicationsApprove records a reviewer decision on an application.
func ApplicationsApprove(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload approvalCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		approval, err := svc.Approve(r.Context(), actor, id, applications.CreateApprovalInput{
			Status:   payload.Status,
			Comments: payload.Comments,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, approval)
	}
}

// ApplicationsApprovals lists the decisions recorded for an application.
func ApplicationsApprovals(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
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

		approvals, err := svc.Approvals(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, approvals)
	}
}
