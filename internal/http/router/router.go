// Package router arma el chi.Router de la API con su pipeline de middlewares.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/dropDatabas3/cordely/internal/http/errors"

	"github.com/dropDatabas3/cordely/internal/http/controllers"
	"github.com/dropDatabas3/cordely/internal/http/middlewares"
)

// Deps agrupa los controllers y la configuración del pipeline.
type Deps struct {
	Credentials *controllers.CredentialsController
	Billing     *controllers.BillingController
	Sites       *controllers.SitesController
	Health      *controllers.HealthController

	CORSAllowedOrigins []string
	// ConsoleJWTSecret vacío deshabilita el auth (dev).
	ConsoleJWTSecret string
}

// New construye el router. El pipeline externo (request-id → logging → recover
// → CORS) envuelve el mux completo vía Chain; el auth de consola aplica sólo
// al subárbol /api.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", d.Health.Health)

	r.Route("/api", func(api chi.Router) {
		api.Use(middlewares.RequireConsoleAuth(d.ConsoleJWTSecret))

		api.Post("/send-credentials", d.Credentials.Send)
		api.Post("/register", d.Sites.Register)
		api.Post("/create-user", d.Sites.CreateUser)
		api.Get("/sites/by-owner", d.Sites.ByOwner)

		api.Route("/stripe", func(st chi.Router) {
			st.Post("/resume-subscription", d.Billing.Resume)
			st.Post("/create-customer", d.Billing.CreateCustomer)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		apperrors.WriteError(w, apperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		apperrors.WriteError(w, apperrors.ErrMethodNotAllowed)
	})

	return middlewares.Chain(r,
		middlewares.WithRequestID(),
		middlewares.WithLogging(),
		middlewares.WithRecover(),
		middlewares.WithCORS(d.CORSAllowedOrigins),
	)
}
