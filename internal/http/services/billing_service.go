package services

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/dropDatabas3/cordely/internal/http/errors"

	"github.com/dropDatabas3/cordely/internal/billing"
	"github.com/dropDatabas3/cordely/internal/http/dto"
	"github.com/dropDatabas3/cordely/internal/metrics"
	"github.com/dropDatabas3/cordely/internal/observability/logger"
	"github.com/dropDatabas3/cordely/internal/store"
)

// BillingService maneja el flujo de suscripciones de los sites.
type BillingService struct {
	sites   store.SiteRepository
	billing billing.Billing
}

func NewBillingService(sites store.SiteRepository, b billing.Billing) *BillingService {
	return &BillingService{sites: sites, billing: b}
}

// Resume reanuda la suscripción con cancelación pendiente del site.
// Errores: ErrMissingFields (siteKey vacío), ErrSiteNotFound, ErrCustomerNotFound,
// ErrNoPendingCancel.
func (s *BillingService) Resume(ctx context.Context, siteKey string) error {
	siteKey = strings.TrimSpace(siteKey)
	if siteKey == "" {
		return apperrors.ErrMissingFields.WithDetail("siteKey")
	}

	log := logger.From(ctx).With(logger.Component("billing"), logger.SiteKey(siteKey))

	site, err := s.sites.Get(ctx, siteKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.ErrSiteNotFound
		}
		return apperrors.ErrInternalServerError.WithCause(err)
	}
	if site.StripeCustomerID == "" {
		return apperrors.ErrCustomerNotFound
	}

	sub, err := s.billing.FindPendingCancellation(ctx, site.StripeCustomerID)
	if err != nil {
		if errors.Is(err, billing.ErrNoPendingCancel) {
			return apperrors.ErrNoPendingCancel
		}
		log.Error("fallo listando suscripciones", logger.Err(err))
		return apperrors.ErrInternalServerError.WithCause(err)
	}

	if err := s.billing.ResumeSubscription(ctx, sub.ID); err != nil {
		log.Error("fallo reanudando suscripción", logger.Err(err), logger.SubscriptionID(sub.ID))
		return apperrors.ErrInternalServerError.WithCause(err)
	}

	// Reflejar el nuevo estado en el documento; Stripe ya es la fuente de verdad.
	merge := map[string]any{
		"cancelPending":      false,
		"subscriptionStatus": "active",
		"updatedAt":          time.Now(),
	}
	if err := s.sites.Merge(ctx, siteKey, merge); err != nil {
		log.Error("fallo actualizando site tras resume", logger.Err(err))
		return apperrors.ErrInternalServerError.WithCause(err)
	}

	metrics.SubscriptionsResumed.Inc()
	log.Info("suscripción reanudada", logger.SubscriptionID(sub.ID))
	return nil
}

// CreateCustomer da de alta customer + suscripción en el proveedor de billing.
func (s *BillingService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*billing.Customer, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.SiteKey) == "" {
		return nil, apperrors.ErrMissingFields
	}
	cust, err := s.billing.CreateCustomerWithSubscription(ctx, billing.NewCustomerParams{
		Email:      req.Email,
		Name:       req.Name,
		SiteKey:    req.SiteKey,
		SiteName:   req.SiteName,
		OwnerPhone: req.OwnerPhone,
	})
	if err != nil {
		return nil, apperrors.ErrInternalServerError.WithCause(err)
	}
	return cust, nil
}
