package services

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/dropDatabas3/cordely/internal/http/errors"

	"github.com/dropDatabas3/cordely/internal/billing"
	"github.com/dropDatabas3/cordely/internal/http/dto"
	"github.com/dropDatabas3/cordely/internal/identity"
	"github.com/dropDatabas3/cordely/internal/metrics"
	"github.com/dropDatabas3/cordely/internal/observability/logger"
	"github.com/dropDatabas3/cordely/internal/store"
	"github.com/dropDatabas3/cordely/internal/util/jpform"
	"github.com/dropDatabas3/cordely/internal/validation"
)

// SitesService maneja el alta y consulta de tenants.
type SitesService struct {
	sites    store.SiteRepository
	identity identity.Provider
	billing  billing.Billing
	lookup   jpform.AddressLookup // opcional; nil deshabilita el lookup

	customersBaseURL string
}

func NewSitesService(sites store.SiteRepository, idp identity.Provider, b billing.Billing, lookup jpform.AddressLookup, customersBaseURL string) *SitesService {
	return &SitesService{
		sites:            sites,
		identity:         idp,
		billing:          b,
		lookup:           lookup,
		customersBaseURL: customersBaseURL,
	}
}

// Register ejecuta el alta completa: cuenta → billing (salvo plan gratuito) →
// documento siteSettings → customerUrl.
func (s *SitesService) Register(ctx context.Context, req dto.RegisterSiteRequest) (*dto.RegisterSiteResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" ||
		strings.TrimSpace(req.SiteKey) == "" || strings.TrimSpace(req.SiteName) == "" {
		return nil, apperrors.ErrMissingFields
	}
	if !validation.ValidSiteKey(req.SiteKey) {
		return nil, apperrors.ErrInvalidFormat.WithDetail("siteKey debe ser alfanumérico")
	}
	if !validation.ValidEmail(req.Email) {
		return nil, apperrors.ErrInvalidFormat.WithDetail("email inválido")
	}
	if !validation.ValidPassword(req.Password) {
		return nil, apperrors.ErrPasswordTooWeak
	}

	log := logger.From(ctx).With(logger.Component("sites"), logger.SiteKey(req.SiteKey))

	taken, err := s.sites.Exists(ctx, req.SiteKey)
	if err != nil {
		return nil, apperrors.ErrInternalServerError.WithCause(err)
	}
	if taken && !req.Overwrite {
		return nil, apperrors.ErrAlreadyExists.WithDetail("siteKey en uso")
	}

	uid, err := s.identity.CreateUser(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailInUse):
			return nil, apperrors.ErrEmailAlreadyInUse
		case errors.Is(err, identity.ErrWeakPassword):
			return nil, apperrors.ErrPasswordTooWeak
		default:
			log.Error("fallo creando usuario", logger.Err(err))
			return nil, apperrors.ErrInternalServerError.WithCause(err)
		}
	}

	// Normalización de datos del formulario (JP).
	phone := jpform.FormatPhone(req.OwnerPhone)
	postal := jpform.FormatPostalCode(req.PostalCode)
	address := strings.TrimSpace(req.OwnerAddress)
	if address == "" && postal != "" && s.lookup != nil {
		if a, err := s.lookup.Lookup(ctx, postal); err == nil {
			address = a.String()
		} else {
			log.Warn("lookup de dirección falló", logger.Err(err))
		}
	}

	site := &store.SiteSettings{
		SiteKey:      req.SiteKey,
		SiteName:     req.SiteName,
		OwnerID:      uid,
		OwnerName:    req.OwnerName,
		OwnerAddress: address,
		OwnerEmail:   req.Email,
		OwnerPhone:   phone,
		PostalCode:   postal,
		IsFreePlan:   req.IsFreePlan,
		SetupMode:    false,
	}

	if !req.IsFreePlan {
		cust, err := s.billing.CreateCustomerWithSubscription(ctx, billing.NewCustomerParams{
			Email:      req.Email,
			Name:       req.OwnerName,
			SiteKey:    req.SiteKey,
			SiteName:   req.SiteName,
			OwnerPhone: phone,
		})
		if err != nil {
			log.Error("fallo creando customer de billing", logger.Err(err))
			return nil, apperrors.ErrInternalServerError.WithCause(err)
		}
		site.StripeCustomerID = cust.CustomerID
		site.StripeSubscriptionID = cust.SubscriptionID
		site.SubscriptionStatus = "active"
	}

	if err := s.sites.Put(ctx, site); err != nil {
		log.Error("fallo escribiendo siteSettings", logger.Err(err))
		return nil, apperrors.ErrInternalServerError.WithCause(err)
	}

	// El portal de clientes arma el QR con este URL; mismo formato que el original.
	customerURL := s.customersBaseURL + "/?siteKey=" + escapeQueryComponent(req.SiteKey)
	if err := s.sites.Merge(ctx, req.SiteKey, map[string]any{"customerUrl": customerURL}); err != nil {
		log.Error("fallo guardando customerUrl", logger.Err(err))
		return nil, apperrors.ErrInternalServerError.WithCause(err)
	}

	metrics.SitesRegistered.Inc()
	log.Info("site registrado", logger.Email(req.Email))

	return &dto.RegisterSiteResponse{
		OK:          true,
		SiteKey:     req.SiteKey,
		OwnerID:     uid,
		CustomerURL: customerURL,
	}, nil
}

// CreateUser expone el alta de cuenta suelta (endpoint componible).
func (s *SitesService) CreateUser(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", apperrors.ErrMissingFields
	}
	uid, err := s.identity.CreateUser(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailInUse):
			return "", apperrors.ErrEmailAlreadyInUse
		case errors.Is(err, identity.ErrWeakPassword):
			return "", apperrors.ErrPasswordTooWeak
		default:
			return "", apperrors.ErrInternalServerError.WithCause(err)
		}
	}
	return uid, nil
}

// ByOwnerEmail busca el site del dueño (usado por la página de envío de
// credenciales para precargar el customerUrl).
func (s *SitesService) ByOwnerEmail(ctx context.Context, email string) (*store.SiteSettings, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.ErrMissingFields.WithDetail("email")
	}
	site, err := s.sites.GetByOwnerEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrSiteNotFound
		}
		return nil, apperrors.ErrInternalServerError.WithCause(err)
	}
	return site, nil
}
