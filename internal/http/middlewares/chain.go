package middlewares

import "net/http"

// Middleware es un decorador de http.Handler
type Middleware func(http.Handler) http.Handler

// Chain arma el pipeline de la consola alrededor de un handler.
// Chain(h, A, B, C) ejecuta A -> B -> C -> h: el primero de la lista es el más
// externo (intercepta el request primero y ve la respuesta último). El router
// lo usa para envolver el mux completo con request-id/logging/recover/CORS.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
