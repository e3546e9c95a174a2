package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/api/responses"
	"github.com/sadmanhossain/urbanland-backend/api/validators"
	"github.com/sadmanhossain/urbanland-backend/internal/documents"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/logger"
	"github.com/sadmanhossain/urbanland-backend/pkg/pagination"
)

func documentListFilter(r *http.Request) (documents.ListFilter, error) {
	filter := documents.ListFilter{}

	recordID, err := validators.ParseQueryUUID(r, "ownership_record_id")
	if err != nil {
		return filter, err
	}
	if recordID != uuid.Nil {
		filter.OwnershipRecordID = &recordID
	}

	parcelID, err := validators.ParseQueryUUID(r, "parcel_id")
	if err != nil {
		return filter, err
	}
	if parcelID != uuid.Nil {
		filter.ParcelID = &parcelID
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("doc_type")); raw != "" {
		docType := enums.DocumentType(raw)
		if !docType.IsValid() {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid doc_type filter")
		}
		filter.DocType = &docType
	}

	verified, err := validators.ParseQueryBool(r, "is_verified")
	if err != nil {
		return filter, err
	}
	filter.IsVerified = verified
	return filter, nil
}

// DocumentsList returns registry documents matching the query filters.
func DocumentsList(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := documentListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.List(r.Context(), actor, documents.ListParams{
			ListFilter: filter,
			Params: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// DocumentsGet returns a single document with a fresh signed file link.
func DocumentsGet(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
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

		document, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, document)
	}
}

type documentCreateRequest struct {
	OwnershipRecordID *uuid.UUID         `json:"ownership_record_id,omitempty"`
	ParcelID          *uuid.UUID         `json:"parcel_id,omitempty"`
	DocType           enums.DocumentType `json:"doc_type" validate:"required"`
	DocumentNumber    *string            `json:"document_number,omitempty"`
	DocumentDate      *time.Time         `json:"document_date,omitempty"`
	IssuingAuthority  *string            `json:"issuing_authority,omitempty"`
	StorageKey        string             `json:"storage_key" validate:"required"`
	FileSize          *int64             `json:"file_size,omitempty"`
	FileType          *string            `json:"file_type,omitempty"`
	Description       *string            `json:"description,omitempty"`
}

// DocumentsCreate attaches an uploaded file to a record or parcel.
func DocumentsCreate(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload documentCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		document, err := svc.Create(r.Context(), actor, documents.CreateDocumentInput{
			OwnershipRecordID: payload.OwnershipRecordID,
			ParcelID:          payload.ParcelID,
			DocType:           payload.DocType,
			DocumentNumber:    payload.DocumentNumber,
			DocumentDate:      payload.DocumentDate,
			IssuingAuthority:  payload.IssuingAuthority,
			StorageKey:        payload.StorageKey,
			FileSize:          payload.FileSize,
			FileType:          payload.FileType,
			Description:       payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, document)
	}
}

type documentUpdateRequest struct {
	DocType          *enums.DocumentType `json:"doc_type,omitempty"`
	DocumentNumber   *string             `json:"document_number,omitempty"`
	DocumentDate     *time.Time          `json:"document_date,omitempty"`
	IssuingAuthority *string             `json:"issuing_authority,omitempty"`
	Description      *string             `json:"description,omitempty"`
}

// DocumentsUpdate adjusts a document's metadata.
func DocumentsUpdate(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload documentUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		document, err := svc.Update(r.Context(), actor, id, documents.UpdateDocumentInput{
			DocType:          payload.DocType,
			DocumentNumber:   payload.DocumentNumber,
			DocumentDate:     payload.DocumentDate,
			IssuingAuthority: payload.IssuingAuthority,
			Description:      payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, document)
	}
}

// DocumentsVerify stamps the document as reviewed.
func DocumentsVerify(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
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

		document, err := svc.Verify(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, document)
	}
}

// DocumentsDelete removes a document.
func DocumentsDelete(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
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
