package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, hc *HealthChecker, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	// Health checks
	r.Get("/health", hc.HandleHealth)
	r.Get("/health/live", hc.HandleLiveness)
	r.Get("/health/ready", hc.HandleReadiness)

	r.Route("/api", func(r chi.Router) {
		r.Route("/volunteers", func(r chi.Router) {
			r.Post("/upload", h.UploadVolunteers)
			r.Get("/", h.ListVolunteers)
			r.Get("/organization/{org}", h.VolunteersByOrganization)
			r.Get("/{id}", h.GetVolunteer)
			r.Get("/{id}/shifts", h.VolunteerShifts)
		})

		r.Route("/members", func(r chi.Router) {
			r.Post("/upload", h.UploadMembers)
			r.Get("/", h.ListMembers)
			r.Get("/organization/{org}", h.MembersByOrganization)
			r.Get("/contributions/with", h.MembersWithContributions)
			r.Get("/{id}", h.GetMember)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Post("/upload", h.UploadShifts)
			r.Get("/", h.ListShifts)
			r.Get("/organization/{org}", h.ShiftsByOrganization)
			r.Get("/volunteer/{volunteerId}", h.ShiftsForVolunteer)
			r.Get("/{id}", h.GetShift)
		})

		r.Route("/donations", func(r chi.Router) {
			r.Post("/upload", h.UploadDonations)
			r.Get("/", h.ListDonations)
			r.Get("/organization/{org}", h.DonationsByOrganization)
			r.Get("/{id}", h.GetDonation)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Post("/upload", h.UploadActivities)
			r.Get("/", h.ListActivities)
			r.Get("/upcoming", h.UpcomingActivities)
			r.Get("/organization/{org}", h.ActivitiesByOrganization)
			r.Get("/{id}", h.GetActivity)
		})

		r.Route("/metrics", func(r chi.Router) {
			r.Get("/", h.GetBasicMetrics)
			r.Get("/engagement", h.GetEngagement)
			r.Get("/impact", h.GetImpact)
			r.Get("/health", h.GetHealthMetrics)
			r.Get("/dashboard", h.GetDashboard)
			r.Get("/stats", h.GetStats)
			r.Get("/daily-activity", h.GetDailyActivity)
			r.Get("/organization/{org}", h.GetOrganizationMetrics)
		})
	})

	return r
}
