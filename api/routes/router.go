package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sadmanhossain/urbanland-backend/api/controllers"
	"github.com/sadmanhossain/urbanland-backend/api/middleware"
	"github.com/sadmanhossain/urbanland-backend/internal/applications"
	"github.com/sadmanhossain/urbanland-backend/internal/auth"
	"github.com/sadmanhossain/urbanland-backend/internal/dashboard"
	"github.com/sadmanhossain/urbanland-backend/internal/documents"
	"github.com/sadmanhossain/urbanland-backend/internal/owners"
	"github.com/sadmanhossain/urbanland-backend/internal/ownership"
	"github.com/sadmanhossain/urbanland-backend/internal/parcels"
	"github.com/sadmanhossain/urbanland-backend/internal/transactions"
	"github.com/sadmanhossain/urbanland-backend/internal/uploads"
	"github.com/sadmanhossain/urbanland-backend/internal/users"
	"github.com/sadmanhossain/urbanland-backend/pkg/auth/session"
	"github.com/sadmanhossain/urbanland-backend/pkg/config"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	"github.com/sadmanhossain/urbanland-backend/pkg/logger"
	"github.com/sadmanhossain/urbanland-backend/pkg/metrics"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth         auth.Service
	Users        users.Service
	Owners       owners.Service
	Parcels      parcels.Service
	Records      ownership.Service
	Documents    documents.Service
	Uploads      uploads.Service
	Applications applications.Service
	Transactions transactions.Service
	Dashboard    dashboard.Service
}

// NewRouter wires the registry API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	sessions session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		staffOnly := middleware.RequireAnyRole(logg, enums.RoleOfficer, enums.RoleAdmin)
		adminOnly := middleware.RequireRole(enums.RoleAdmin, logg)

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/dashboard-stats", controllers.DashboardStats(svcs.Dashboard, logg))

			r.Route("/users", func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", controllers.UsersList(svcs.Users, logg))
				r.Get("/{id}", controllers.UsersGet(svcs.Users, logg))
				r.Patch("/{id}", controllers.UsersUpdate(svcs.Users, logg))
				r.Delete("/{id}", controllers.UsersDelete(svcs.Users, logg))
			})
		})

		r.Route("/owners", func(r chi.Router) {
			r.Get("/", controllers.OwnersList(svcs.Owners, logg))
			r.Get("/me", controllers.OwnersMe(svcs.Owners, logg))
			r.With(staffOnly).Get("/search", controllers.OwnersSearch(svcs.Owners, logg))
			r.With(adminOnly).Post("/", controllers.OwnersCreate(svcs.Owners, logg))
			r.Get("/{id}", controllers.OwnersGet(svcs.Owners, logg))
			r.With(adminOnly).Patch("/{id}", controllers.OwnersUpdate(svcs.Owners, logg))
			r.With(adminOnly).Delete("/{id}", controllers.OwnersDelete(svcs.Owners, logg))
		})

		r.Route("/land-parcels", func(r chi.Router) {
			r.Get("/", controllers.ParcelsList(svcs.Parcels, logg))
			r.Get("/my-parcels", controllers.ParcelsMine(svcs.Parcels, logg))
			r.With(staffOnly).Get("/stats", controllers.ParcelsStats(svcs.Parcels, logg))
			r.With(staffOnly).Post("/", controllers.ParcelsCreate(svcs.Parcels, logg))
			r.Get("/{id}", controllers.ParcelsGet(svcs.Parcels, logg))
			r.Get("/{id}/owners", controllers.ParcelsOwners(svcs.Records, logg))
			r.With(staffOnly).Patch("/{id}", controllers.ParcelsUpdate(svcs.Parcels, logg))
			r.With(staffOnly).Delete("/{id}", controllers.ParcelsDelete(svcs.Parcels, logg))
		})

		r.Route("/ownership-records", func(r chi.Router) {
			r.Get("/", controllers.RecordsList(svcs.Records, logg))
			r.Get("/current_owners", controllers.RecordsCurrentOwners(svcs.Records, logg))
			r.Get("/primary_owner", controllers.RecordsPrimaryOwner(svcs.Records, logg))
			r.Get("/owner_history", controllers.RecordsOwnerHistory(svcs.Records, logg))
			r.Get("/parcel_history", controllers.RecordsParcelHistory(svcs.Records, logg))
			r.With(staffOnly).Post("/", controllers.RecordsCreate(svcs.Records, logg))
			r.Get("/{id}", controllers.RecordsGet(svcs.Records, logg))
			r.With(staffOnly).Patch("/{id}", controllers.RecordsUpdate(svcs.Records, logg))
			r.With(staffOnly).Delete("/{id}", controllers.RecordsDelete(svcs.Records, logg))
			r.With(staffOnly).Post("/{id}/transfer", controllers.RecordsTransfer(svcs.Records, logg))
			r.With(staffOnly).Post("/{id}/verify", controllers.RecordsSetVerification(svcs.Records, logg))
		})

		r.Route("/documents", func(r chi.Router) {
			r.Use(staffOnly)
			r.Get("/", controllers.DocumentsList(svcs.Documents, logg))
			r.Post("/", controllers.DocumentsCreate(svcs.Documents, logg))
			r.Post("/presign", controllers.UploadsPresign(svcs.Uploads, logg))
			r.Get("/{id}", controllers.DocumentsGet(svcs.Documents, logg))
			r.Patch("/{id}", controllers.DocumentsUpdate(svcs.Documents, logg))
			r.Delete("/{id}", controllers.DocumentsDelete(svcs.Documents, logg))
			r.Post("/{id}/verify", controllers.DocumentsVerify(svcs.Documents, logg))
		})

		r.Route("/uploads", func(r chi.Router) {
			r.Post("/presign", controllers.UploadsPresign(svcs.Uploads, logg))
		})

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", controllers.ApplicationsList(svcs.Applications, logg))
			r.With(staffOnly).Post("/", controllers.ApplicationsCreate(svcs.Applications, logg))
			r.Get("/{id}", controllers.ApplicationsGet(svcs.Applications, logg))
			r.With(staffOnly).Patch("/{id}", controllers.ApplicationsUpdate(svcs.Applications, logg))
			r.With(staffOnly).Delete("/{id}", controllers.ApplicationsDelete(svcs.Applications, logg))
			r.Get("/{id}/approvals", controllers.ApplicationsApprovals(svcs.Applications, logg))
			r.With(staffOnly).Post("/{id}/approvals", controllers.ApplicationsApprove(svcs.Applications, logg))
		})

		r.Route("/land-transactions", func(r chi.Router) {
			r.Use(staffOnly)
			r.Get("/", controllers.TransactionsList(svcs.Transactions, logg))
			r.Post("/", controllers.TransactionsCreate(svcs.Transactions, logg))
			r.Get("/{id}", controllers.TransactionsGet(svcs.Transactions, logg))
			r.Patch("/{id}", controllers.TransactionsUpdate(svcs.Transactions, logg))
			r.Delete("/{id}", controllers.TransactionsDelete(svcs.Transactions, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.PaymentsList(svcs.Transactions, logg))
			r.With(staffOnly).Post("/", controllers.PaymentsCreate(svcs.Transactions, logg))
			r.Get("/{id}", controllers.PaymentsGet(svcs.Transactions, logg))
			r.With(staffOnly).Patch("/{id}", controllers.PaymentsUpdate(svcs.Transactions, logg))
			r.With(staffOnly).Delete("/{id}", controllers.PaymentsDelete(svcs.Transactions, logg))
		})
	})

	return r
}
