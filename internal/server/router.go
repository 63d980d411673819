package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"salonpos-backend/internal/config"
	"salonpos-backend/internal/domain"
	"salonpos-backend/internal/handler"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health        handler.HealthHandler
	Auth          handler.AuthHandler
	Users         handler.UserHandler
	Appointments  handler.AppointmentHandler
	Clients       handler.ClientHandler
	Professionals handler.ProfessionalHandler
	Treatments    handler.TreatmentHandler
	Products      handler.ProductHandler
	Payments      handler.PaymentMethodHandler
	Sales         handler.SaleHandler
	Expenses      handler.ExpenseHandler
	Reports       handler.ReportHandler
	Dashboard     handler.DashboardHandler
	Settings      handler.SettingsHandler
}

// NewRouter wires HTTP routes and middleware. Every protected group is gated
// by a single capability.
func NewRouter(cfg config.Config, logger *slog.Logger, metrics *Metrics, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger, metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))

	h.Health.RegisterRoutes(r)
	h.Auth.RegisterRoutes(r)
	h.Settings.RegisterPublicRoutes(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret, cfg.CookieName))
		h.Auth.RegisterProtectedRoutes(pr)

		gate := func(c domain.Capability, register func(chi.Router)) {
			pr.Group(func(g chi.Router) {
				g.Use(RequireCapability(c))
				register(g)
			})
		}
		gate(domain.CapViewSchedule, h.Appointments.RegisterViewRoutes)
		gate(domain.CapManageAppointments, h.Appointments.RegisterManageRoutes)
		gate(domain.CapManageClients, h.Clients.RegisterRoutes)
		gate(domain.CapViewCatalog, func(g chi.Router) {
			h.Treatments.RegisterViewRoutes(g)
			h.Products.RegisterViewRoutes(g)
			h.Payments.RegisterViewRoutes(g)
			h.Professionals.RegisterViewRoutes(g)
		})
		gate(domain.CapManageCatalog, func(g chi.Router) {
			h.Treatments.RegisterManageRoutes(g)
			h.Products.RegisterManageRoutes(g)
			h.Payments.RegisterManageRoutes(g)
		})
		gate(domain.CapManageStaff, h.Professionals.RegisterManageRoutes)
		gate(domain.CapRecordSales, h.Sales.RegisterRoutes)
		gate(domain.CapManageExpenses, h.Expenses.RegisterRoutes)
		gate(domain.CapViewReports, func(g chi.Router) {
			h.Reports.RegisterRoutes(g)
			h.Dashboard.RegisterRoutes(g)
		})
		gate(domain.CapManageSettings, h.Settings.RegisterRoutes)
		gate(domain.CapManageUsers, h.Users.RegisterRoutes)
	})

	return r
}
