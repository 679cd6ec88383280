// Package controllers traduce HTTP a llamadas de servicio.
// Los endpoints públicos de la consola devuelven los mismos bodies que los
// portales esperan hoy ({"error": "..."}); no cambiar el shape.
package controllers

import (
	"errors"
	"net/http"

	apperrors "github.com/dropDatabas3/cordely/internal/http/errors"

	"github.com/dropDatabas3/cordely/internal/audit"
	"github.com/dropDatabas3/cordely/internal/http/dto"
	"github.com/dropDatabas3/cordely/internal/http/helpers"
	"github.com/dropDatabas3/cordely/internal/http/services"
)

// CredentialsController maneja POST /api/send-credentials.
type CredentialsController struct {
	svc *services.CredentialsService
}

func NewCredentialsController(svc *services.CredentialsService) *CredentialsController {
	return &CredentialsController{svc: svc}
}

// Send maneja el request de envío de credenciales.
func (c *CredentialsController) Send(w http.ResponseWriter, r *http.Request) {
	var req dto.SendCredentialsRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	if err := c.svc.Send(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingFields):
			helpers.WriteErrorJSON(w, http.StatusBadRequest, "Missing fields")
		default:
			// encode/compose/dispatch: mismo body para no filtrar detalle interno
			helpers.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to send")
		}
		return
	}

	audit.Log(r.Context(), "credentials.sent", map[string]any{
		"recipient": req.Email,
		"siteKey":   req.SiteKey,
	})
	helpers.WriteJSON(w, http.StatusOK, dto.SendCredentialsResponse{OK: true})
}
