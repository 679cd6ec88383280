package middlewares

import (
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/cordely/internal/http/errors"
)

// =================================================================================
// CONSOLE AUTH
// =================================================================================

// RequireConsoleAuth valida un Bearer JWT HS256 emitido para los operadores de la
// consola. El diseño de identidad de los tenants vive en el proveedor externo; esto
// solo protege la superficie administrativa.
//
// Si secret está vacío, el middleware es un passthrough (modo desarrollo).
func RequireConsoleAuth(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		if strings.TrimSpace(secret) == "" {
			return next
		}
		key := []byte(secret)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" || !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="cordely-console"`)
				errors.WriteError(w, errors.ErrUnauthorized)
				return
			}
			tokenStr := strings.TrimSpace(raw[len("bearer "):])

			tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !tok.Valid {
				errors.WriteError(w, errors.ErrTokenInvalid)
				return
			}

			sub := ""
			if claims, ok := tok.Claims.(jwt.MapClaims); ok {
				if s, err := claims.GetSubject(); err == nil {
					sub = s
				}
			}

			next.ServeHTTP(w, r.WithContext(setOperator(r.Context(), sub)))
		})
	}
}
