// Package store define el repositorio de documentos siteSettings.
//
// El documento es el mismo que consume el portal de clientes: un site por
// tenant, keyed por siteKey. Adapters: firestore (producción), pg (jsonb) y
// memory (dev/tests).
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indica que el site no existe.
var ErrNotFound = errors.New("store: site not found")

// SiteSettings es el documento de configuración de un site (tenant).
type SiteSettings struct {
	SiteKey      string `firestore:"siteKey" json:"siteKey"`
	SiteName     string `firestore:"siteName" json:"siteName"`
	OwnerID      string `firestore:"ownerId" json:"ownerId"`
	OwnerName    string `firestore:"ownerName" json:"ownerName"`
	OwnerAddress string `firestore:"ownerAddress" json:"ownerAddress"`
	OwnerEmail   string `firestore:"ownerEmail" json:"ownerEmail"`
	OwnerPhone   string `firestore:"ownerPhone" json:"ownerPhone"`
	PostalCode   string `firestore:"postalCode,omitempty" json:"postalCode,omitempty"`

	IsFreePlan bool   `firestore:"isFreePlan" json:"isFreePlan"`
	SetupMode  bool   `firestore:"setupMode" json:"setupMode"`
	CustomerURL string `firestore:"customerUrl" json:"customerUrl"`

	// Billing (vacíos en plan gratuito)
	StripeCustomerID     string `firestore:"stripeCustomerId,omitempty" json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID string `firestore:"stripeSubscriptionId,omitempty" json:"stripeSubscriptionId,omitempty"`
	CancelPending        bool   `firestore:"cancelPending" json:"cancelPending"`
	SubscriptionStatus   string `firestore:"subscriptionStatus,omitempty" json:"subscriptionStatus,omitempty"`

	CreatedAt time.Time `firestore:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// SiteRepository es el acceso al documento siteSettings.
// Todas las escrituras son merge-writes: campos no incluidos se preservan.
type SiteRepository interface {
	// Get retorna el site por su clave. ErrNotFound si no existe.
	Get(ctx context.Context, siteKey string) (*SiteSettings, error)

	// GetByOwnerEmail retorna el primer site cuyo ownerEmail coincide.
	// ErrNotFound si no hay ninguno.
	GetByOwnerEmail(ctx context.Context, email string) (*SiteSettings, error)

	// Put escribe el documento completo (merge: preserva campos ya presentes
	// que el struct no setea como zero-value relevante).
	Put(ctx context.Context, s *SiteSettings) error

	// Merge aplica una escritura parcial de campos sueltos.
	Merge(ctx context.Context, siteKey string, fields map[string]any) error

	// Exists reporta si el siteKey ya está tomado.
	Exists(ctx context.Context, siteKey string) (bool, error)

	// Delete borra el documento. ErrNotFound si no existe.
	Delete(ctx context.Context, siteKey string) error

	// List retorna todos los sites, ordenados por siteKey.
	List(ctx context.Context) ([]*SiteSettings, error)

	// Close libera recursos del backend.
	Close() error
}
