// Package app arma el grafo de dependencias a partir de la configuración:
// store → cache → mailer → billing → identity → services → controllers → router.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/cordely/internal/billing"
	"github.com/dropDatabas3/cordely/internal/cache"
	cachememory "github.com/dropDatabas3/cordely/internal/cache/memory"
	cacheredis "github.com/dropDatabas3/cordely/internal/cache/redis"
	"github.com/dropDatabas3/cordely/internal/config"
	"github.com/dropDatabas3/cordely/internal/http/controllers"
	"github.com/dropDatabas3/cordely/internal/http/router"
	"github.com/dropDatabas3/cordely/internal/http/services"
	"github.com/dropDatabas3/cordely/internal/identity"
	"github.com/dropDatabas3/cordely/internal/mail"
	"github.com/dropDatabas3/cordely/internal/qr"
	"github.com/dropDatabas3/cordely/internal/store"
	storefirestore "github.com/dropDatabas3/cordely/internal/store/adapters/firestore"
	storememory "github.com/dropDatabas3/cordely/internal/store/adapters/memory"
	storepg "github.com/dropDatabas3/cordely/internal/store/adapters/pg"
	"github.com/dropDatabas3/cordely/internal/util/jpform"
)

// App contiene el servicio armado y listo para servir.
type App struct {
	Handler http.Handler
	Sites   store.SiteRepository
}

// New construye la aplicación completa desde la config.
func New(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	sites, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if c := buildCache(cfg); c != nil {
		sites = store.NewCached(sites, c, cfg.CacheTTL())
	}

	sender, err := buildSender(cfg)
	if err != nil {
		sites.Close()
		return nil, err
	}

	bill := billing.NewStripe(billing.StripeConfig{
		APIKey:  cfg.Billing.StripeSecretKey,
		PriceID: cfg.Billing.PriceID,
	})

	idp, err := buildIdentity(ctx, cfg)
	if err != nil {
		sites.Close()
		return nil, err
	}

	encoder := qr.New(cfg.QR.Width)
	composer := mail.NewComposer(cfg.Mailer.Gmail.SenderName, cfg.Mailer.Gmail.SenderEmail)

	credsSvc := services.NewCredentialsService(encoder, composer, sender,
		cfg.Portals.CustomersBaseURL, cfg.Portals.OwnersBaseURL)
	billingSvc := services.NewBillingService(sites, bill)
	sitesSvc := services.NewSitesService(sites, idp, bill,
		jpform.NewZipcloudLookup(), cfg.Portals.CustomersBaseURL)

	handler := router.New(router.Deps{
		Credentials:        controllers.NewCredentialsController(credsSvc),
		Billing:            controllers.NewBillingController(billingSvc),
		Sites:              controllers.NewSitesController(sitesSvc),
		Health:             controllers.NewHealthController(version),
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		ConsoleJWTSecret:   cfg.Console.JWTSecret,
	})

	return &App{Handler: handler, Sites: sites}, nil
}

// Close libera los recursos de backend.
func (a *App) Close() error {
	return a.Sites.Close()
}

func buildStore(ctx context.Context, cfg *config.Config) (store.SiteRepository, error) {
	switch cfg.Storage.Driver {
	case "firestore":
		return storefirestore.New(ctx, storefirestore.Config{
			ProjectID:       cfg.Storage.Firestore.ProjectID,
			CredentialsFile: cfg.Storage.Firestore.CredentialsFile,
			Collection:      cfg.Storage.Firestore.Collection,
		})
	case "postgres":
		return storepg.New(ctx, cfg.Storage.Postgres.DSN)
	case "memory":
		return storememory.New(), nil
	default:
		return nil, fmt.Errorf("storage.driver desconocido: %q", cfg.Storage.Driver)
	}
}

func buildCache(cfg *config.Config) cache.Cache {
	switch cfg.Cache.Kind {
	case "redis":
		return cacheredis.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
	case "memory":
		return cachememory.New(cfg.CacheTTL())
	default: // "off"
		return nil
	}
}

func buildSender(cfg *config.Config) (mail.Sender, error) {
	switch cfg.Mailer.Kind {
	case "smtp":
		s := mail.NewSMTPSender(
			cfg.Mailer.SMTP.Host,
			cfg.Mailer.SMTP.Port,
			cfg.Mailer.SMTP.From,
			cfg.Mailer.SMTP.Username,
			cfg.Mailer.SMTP.Password,
		)
		s.TLSMode = cfg.Mailer.SMTP.TLS
		s.InsecureSkipVerify = cfg.Mailer.SMTP.InsecureSkipVerify
		return s, nil
	default: // "gmail"
		return mail.NewGmailSender(mail.GmailConfig{
			ClientID:     cfg.Mailer.Gmail.ClientID,
			ClientSecret: cfg.Mailer.Gmail.ClientSecret,
			RedirectURI:  cfg.Mailer.Gmail.RedirectURI,
			RefreshToken: cfg.Mailer.Gmail.RefreshToken,
		})
	}
}

func buildIdentity(ctx context.Context, cfg *config.Config) (identity.Provider, error) {
	switch cfg.Identity.Driver {
	case "local":
		return identity.NewLocal(), nil
	default: // "firebase"
		return identity.NewFirebase(ctx, identity.FirebaseConfig{
			ProjectID:       cfg.Storage.Firestore.ProjectID,
			CredentialsFile: cfg.Identity.CredentialsFile,
		})
	}
}
