package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examsaathi/examsaathi-web/api/controllers"
	"github.com/examsaathi/examsaathi-web/api/middleware"
	"github.com/examsaathi/examsaathi-web/internal/booking"
	"github.com/examsaathi/examsaathi-web/internal/guard"
	"github.com/examsaathi/examsaathi-web/internal/profile"
	"github.com/examsaathi/examsaathi-web/internal/session"
	"github.com/examsaathi/examsaathi-web/internal/signup"
	"github.com/examsaathi/examsaathi-web/pkg/config"
	"github.com/examsaathi/examsaathi-web/pkg/keyvalue"
	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	state keyvalue.Store,
	sessionStore *session.Store,
	routeGuard *guard.Guard,
	signupService signup.Service,
	profileService profile.Service,
	bookings *booking.Manager,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Site.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, state))
	})

	r.Route("/api/session", func(r chi.Router) {
		r.Get("/", controllers.SessionState(sessionStore, logg))
		r.Post("/password", controllers.SignInPassword(sessionStore, logg))
		r.Post("/google", controllers.SignInGoogle(sessionStore, logg))
		r.Post("/magic-link", controllers.MagicLinkSend(sessionStore, logg))
		r.Post("/magic-link/complete", controllers.MagicLinkComplete(sessionStore, logg))
		r.Post("/verification", controllers.VerificationSend(sessionStore, logg))
		r.Post("/password-reset", controllers.PasswordReset(sessionStore, logg))
		r.Post("/password-link", controllers.PasswordLink(sessionStore, logg))
		r.Put("/password", controllers.PasswordSet(sessionStore, logg))
		r.Post("/sign-out", controllers.SignOut(sessionStore, logg))
	})

	r.Route("/api/signup", func(r chi.Router) {
		r.Get("/catalogs", controllers.SignupCatalogs(signupService, logg))
		r.Post("/", controllers.SignupSubmit(signupService, logg, cfg.Signup))
	})

	r.Route("/api/mentors", func(r chi.Router) {
		r.Get("/", controllers.MentorList(logg))
		r.Get("/{id}", controllers.MentorByID(logg))
		r.Route("/{id}/book", func(r chi.Router) {
			r.Get("/", controllers.BookingState(bookings, logg))
			r.Post("/details", controllers.BookingDetails(bookings, logg))
			r.Post("/back", controllers.BookingBack(bookings, logg))
			r.Post("/payment", controllers.BookingPayment(bookings, logg))
			r.Get("/confirmation", controllers.BookingConfirmation(bookings, logg))
			r.Post("/restart", controllers.BookingRestart(bookings, logg))
		})
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Use(middleware.Guard(routeGuard, logg))
		r.Get("/", controllers.ProfileView(profileService, logg))
		r.Put("/", controllers.ProfileSave(profileService, logg))
	})

	// Routed page view models for the client shell.
	r.Get("/", controllers.HomePage(logg))
	r.Get("/student-signup", controllers.SignupCatalogs(signupService, logg))
	r.Get("/signin", controllers.SignInPage(logg))
	r.Get("/find-mentor", controllers.MentorList(logg))
	r.Get("/become-mentor", controllers.BecomeMentorPage(logg))
	r.Get("/journey-together", controllers.JourneyTogetherPage(logg))
	r.Get("/journey-tracker", controllers.JourneyTrackerPage(logg))
	r.Get("/mentor/{id}/book", controllers.BookingState(bookings, logg))
	r.With(middleware.Guard(routeGuard, logg)).Get("/profile", controllers.ProfileView(profileService, logg))

	r.NotFound(controllers.NotFoundPage(logg))

	return r
}
