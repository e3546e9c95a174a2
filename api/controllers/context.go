package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/api/middleware"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/types"
)

// actorFromRequest rebuilds the service-level actor from the claims the auth
// middleware stored on the context.
func actorFromRequest(r *http.Request) (types.Actor, error) {
	rawID := middleware.UserIDFromContext(r.Context())
	if rawID == "" {
		return types.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return types.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}

	actor := types.Actor{
		UserID: userID,
		Role:   enums.Role(middleware.RoleFromContext(r.Context())),
	}
	if raw := middleware.OwnerProfileIDFromContext(r.Context()); raw != "" {
		profileID, err := uuid.Parse(raw)
		if err != nil {
			return types.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid owner profile id")
		}
		actor.OwnerProfileID = &profileID
	}
	return actor, nil
}

// pathUUID parses a chi URL parameter as a uuid.
func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a uuid").WithDetails(map[string]any{"field": key})
	}
	return id, nil
}
