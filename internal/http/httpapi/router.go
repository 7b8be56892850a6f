package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"tipjar/internal/http/handlers"
	"tipjar/internal/middleware"
)

// Options carries the transport settings the router needs.
type Options struct {
	JWTSecret       string
	JWTIssuer       string
	AllowedOrigins  []string
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
	Logger          zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
		middleware.Logger(opts.Logger),
	)

	r.Get("/metrics", app.MetricsHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)
		r.Get("/payment-methods", app.PaymentMethods)
		r.Get("/creators/{username}", app.CreatorProfile)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
			r.Post("/donations", app.DonationsCreate)
			r.Post("/accounts", app.AccountsRegister)
		})

		r.Post("/payments/{method}/callback", app.PaymentCallback)

		r.Route("/me", func(r chi.Router) {
			r.Use(middleware.AuthJWT(opts.JWTSecret, opts.JWTIssuer))
			r.Get("/", app.Me)
			r.Get("/donations", app.DonationsList)
			r.Get("/stats", app.StatsSummary)
			r.Patch("/goal", app.MeGoalUpdate)
		})
	})

	return r
}
