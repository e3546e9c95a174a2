package controllers

import (
	"net/http"

	"github.com/sadmanhossain/urbanland-backend/api/responses"
	"github.com/sadmanhossain/urbanland-backend/internal/dashboard"
	"github.com/sadmanhossain/urbanland-backend/pkg/logger"
)

// DashboardStats returns registry-wide aggregates for the admin dashboard.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
