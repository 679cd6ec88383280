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

// BillingController maneja los endpoints de Stripe.
type BillingController struct {
	svc *services.BillingService
}

func NewBillingController(svc *services.BillingService) *BillingController {
	return &BillingController{svc: svc}
}

// Resume maneja POST /api/stripe/resume-subscription.
func (c *BillingController) Resume(w http.ResponseWriter, r *http.Request) {
	var req dto.ResumeSubscriptionRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	if err := c.svc.Resume(r.Context(), req.SiteKey); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingFields):
			helpers.WriteErrorJSON(w, http.StatusBadRequest, "siteKey required")
		case errors.Is(err, apperrors.ErrSiteNotFound):
			helpers.WriteErrorJSON(w, http.StatusNotFound, "site not found")
		case errors.Is(err, apperrors.ErrCustomerNotFound):
			helpers.WriteErrorJSON(w, http.StatusNotFound, "customer not found")
		case errors.Is(err, apperrors.ErrNoPendingCancel):
			helpers.WriteErrorJSON(w, http.StatusNotFound, "no pending-cancel subscription")
		default:
			helpers.WriteErrorJSON(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	audit.Log(r.Context(), "subscription.resumed", map[string]any{"siteKey": req.SiteKey})
	helpers.WriteJSON(w, http.StatusOK, dto.ResumeSubscriptionResponse{Success: true})
}

// CreateCustomer maneja POST /api/stripe/create-customer.
func (c *BillingController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	cust, err := c.svc.CreateCustomer(r.Context(), req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.CreateCustomerResponse{
		CustomerID:     cust.CustomerID,
		SubscriptionID: cust.SubscriptionID,
	})
}
