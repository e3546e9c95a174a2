package controllers

import (
	"net/http"

	"github.com/sadmanhossain/urbanland-backend/api/responses"
	"github.com/sadmanhossain/urbanland-backend/api/validators"
	"github.com/sadmanhossain/urbanland-backend/internal/uploads"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/sadmanhossain/urbanland-backend/pkg/logger"
)

type presignRequest struct {
	Kind      enums.UploadKind `json:"kind" validate:"required"`
	MimeType  string           `json:"mime_type" validate:"required"`
	FileName  string           `json:"file_name" validate:"required"`
	SizeBytes int64            `json:"size_bytes" validate:"required,gt=0"`
}

// UploadsPresign hands out a signed PUT URL for a direct-to-bucket upload.
func UploadsPresign(svc uploads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload presignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.PresignUpload(r.Context(), actor, uploads.PresignInput{
			Kind:      payload.Kind,
			MimeType:  payload.MimeType,
			FileName:  payload.FileName,
			SizeBytes: payload.SizeBytes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}
