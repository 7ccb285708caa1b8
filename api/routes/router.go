package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sanarehealth/medledger-backend/api/controllers"
	"github.com/sanarehealth/medledger-backend/api/middleware"
	"github.com/sanarehealth/medledger-backend/internal/alerts"
	"github.com/sanarehealth/medledger-backend/internal/authn"
	"github.com/sanarehealth/medledger-backend/internal/broadcast"
	"github.com/sanarehealth/medledger-backend/internal/chatbot"
	"github.com/sanarehealth/medledger-backend/internal/hospitals"
	"github.com/sanarehealth/medledger-backend/internal/inventory"
	"github.com/sanarehealth/medledger-backend/internal/patients"
	"github.com/sanarehealth/medledger-backend/internal/visits"
	"github.com/sanarehealth/medledger-backend/pkg/config"
	"github.com/sanarehealth/medledger-backend/pkg/logger"
	"github.com/sanarehealth/medledger-backend/pkg/metrics"
	"github.com/sanarehealth/medledger-backend/pkg/redis"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      controllers.Pinger
	Redis   *redis.Client
	Metrics *metrics.HTTPMetrics

	Patients  patients.Service
	Hospitals hospitals.Service
	Authn     authn.Service
	Visits    visits.Service
	Inventory inventory.Service
	Alerts    alerts.Service
	Chatbot   chatbot.Service
	Broadcast *broadcast.Handler
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Broadcast != nil {
		r.Get("/ws", deps.Broadcast.Connect)
	}

	r.Route("/api/register", func(r chi.Router) {
		r.Use(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg))
		r.Post("/patient", controllers.RegisterPatient(deps.Patients, logg))
		r.Post("/hospital", controllers.RegisterHospital(deps.Hospitals, logg))
	})

	r.Route("/api/login", func(r chi.Router) {
		r.Use(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg))
		r.Post("/patient", controllers.LoginPatient(deps.Authn, logg))
		r.Post("/hospital", controllers.LoginHospital(deps.Authn, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/user/{id}", controllers.PatientProfile(deps.Patients, logg))
		r.Get("/visits/{patientId}", controllers.PatientVisits(deps.Visits, logg))
		r.Post("/addVisit", controllers.AddVisit(deps.Visits, logg))
		r.Get("/patient/search/{patientId}", controllers.PatientSearch(deps.Visits, logg))

		r.Route("/blood", func(r chi.Router) {
			r.Get("/{hospitalId}", controllers.BloodList(deps.Inventory, logg))
			r.Post("/add", controllers.BloodAdd(deps.Inventory, logg))
			r.Post("/remove", controllers.BloodRemove(deps.Inventory, logg))
			r.Post("/update", controllers.BloodUpdate(deps.Inventory, logg))
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/critical", controllers.CriticalAlerts(deps.Alerts, logg))
			r.Post("/critical/acknowledge", controllers.AcknowledgeCritical(deps.Alerts, logg))
			r.Get("/emergency", controllers.EmergencyAlerts(deps.Alerts, logg))
			r.Post("/emergency", controllers.RaiseEmergency(deps.Alerts, logg))
			r.Post("/emergency/acknowledge", controllers.AcknowledgeEmergency(deps.Alerts, logg))
		})

		r.Post("/chatbot", controllers.Chatbot(deps.Chatbot, logg))
	})

	return r
}
