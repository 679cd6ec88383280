package controllers

import (
	"net/http"

	apperrors "github.com/dropDatabas3/cordely/internal/http/errors"

	"github.com/dropDatabas3/cordely/internal/audit"
	"github.com/dropDatabas3/cordely/internal/http/dto"
	"github.com/dropDatabas3/cordely/internal/http/helpers"
	"github.com/dropDatabas3/cordely/internal/http/services"
)

// SitesController maneja el alta y consulta de tenants.
type SitesController struct {
	svc *services.SitesService
}

func NewSitesController(svc *services.SitesService) *SitesController {
	return &SitesController{svc: svc}
}

// Register maneja POST /api/register.
func (c *SitesController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterSiteRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	resp, err := c.svc.Register(r.Context(), req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	audit.Log(r.Context(), "site.registered", map[string]any{
		"siteKey": resp.SiteKey,
		"ownerId": resp.OwnerID,
	})
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// CreateUser maneja POST /api/create-user.
func (c *SitesController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	uid, err := c.svc.CreateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.CreateUserResponse{UID: uid})
}

// ByOwner maneja GET /api/sites/by-owner?email=.
func (c *SitesController) ByOwner(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	site, err := c.svc.ByOwnerEmail(r.Context(), email)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.SiteResponse{
		SiteKey:     site.SiteKey,
		SiteName:    site.SiteName,
		OwnerEmail:  site.OwnerEmail,
		CustomerURL: site.CustomerURL,
		IsFreePlan:  site.IsFreePlan,
	})
}
