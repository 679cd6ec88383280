package controllers

import (
	"net/http"

	"github.com/dropDatabas3/cordely/internal/http/helpers"
)

// HealthController expone el health check del servicio.
type HealthController struct {
	version string
}

func NewHealthController(version string) *HealthController {
	return &HealthController{version: version}
}

func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": c.version,
	})
}
