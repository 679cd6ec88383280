// Package firestore implementa store.SiteRepository sobre Cloud Firestore.
// Es el backend de producción: la colección siteSettings es la misma que leen
// los portales de clientes y dueños.
package firestore

import (
	"context"
	"fmt"

	cfirestore "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dropDatabas3/cordely/internal/store"
)

// Config del adapter.
type Config struct {
	ProjectID       string
	CredentialsFile string // vacío => Application Default Credentials
	Collection      string // default "siteSettings"
}

type Repository struct {
	client     *cfirestore.Client
	collection string
}

// New crea el cliente Firestore.
func New(ctx context.Context, cfg Config) (*Repository, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore: project_id requerido")
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "siteSettings"
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := cfirestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Repository{client: client, collection: collection}, nil
}

func (r *Repository) doc(siteKey string) *cfirestore.DocumentRef {
	return r.client.Collection(r.collection).Doc(siteKey)
}

func (r *Repository) Get(ctx context.Context, siteKey string) (*store.SiteSettings, error) {
	snap, err := r.doc(siteKey).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	var s store.SiteSettings
	if err := snap.DataTo(&s); err != nil {
		return nil, err
	}
	if s.SiteKey == "" {
		s.SiteKey = siteKey
	}
	return &s, nil
}

func (r *Repository) GetByOwnerEmail(ctx context.Context, email string) (*store.SiteSettings, error) {
	it := r.client.Collection(r.collection).
		Where("ownerEmail", "==", email).
		Limit(1).
		Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if err == iterator.Done {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s store.SiteSettings
	if err := snap.DataTo(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Put(ctx context.Context, s *store.SiteSettings) error {
	// MergeAll exige un map (no struct): armamos el documento a mano para
	// preservar tipos nativos (timestamps) y omitir los campos de billing vacíos.
	fields := map[string]any{
		"siteKey":      s.SiteKey,
		"siteName":     s.SiteName,
		"ownerId":      s.OwnerID,
		"ownerName":    s.OwnerName,
		"ownerAddress": s.OwnerAddress,
		"ownerEmail":   s.OwnerEmail,
		"ownerPhone":   s.OwnerPhone,
		"isFreePlan":   s.IsFreePlan,
		"setupMode":    s.SetupMode,
		"updatedAt":    cfirestore.ServerTimestamp,
	}
	if s.PostalCode != "" {
		fields["postalCode"] = s.PostalCode
	}
	if s.CustomerURL != "" {
		fields["customerUrl"] = s.CustomerURL
	}
	if s.StripeCustomerID != "" {
		fields["stripeCustomerId"] = s.StripeCustomerID
	}
	if s.StripeSubscriptionID != "" {
		fields["stripeSubscriptionId"] = s.StripeSubscriptionID
	}
	if s.SubscriptionStatus != "" {
		fields["subscriptionStatus"] = s.SubscriptionStatus
	}
	if s.CreatedAt.IsZero() {
		fields["createdAt"] = cfirestore.ServerTimestamp
	}
	_, err := r.doc(s.SiteKey).Set(ctx, fields, cfirestore.MergeAll)
	return err
}

func (r *Repository) Merge(ctx context.Context, siteKey string, fields map[string]any) error {
	_, err := r.doc(siteKey).Set(ctx, fields, cfirestore.MergeAll)
	return err
}

func (r *Repository) Delete(ctx context.Context, siteKey string) error {
	// Precondición de existencia: Delete en Firestore es idempotente y no
	// distingue documento ausente, el repositorio sí.
	if _, err := r.doc(siteKey).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return store.ErrNotFound
		}
		return err
	}
	_, err := r.doc(siteKey).Delete(ctx)
	return err
}

func (r *Repository) List(ctx context.Context) ([]*store.SiteSettings, error) {
	it := r.client.Collection(r.collection).OrderBy("siteKey", cfirestore.Asc).Documents(ctx)
	defer it.Stop()

	var out []*store.SiteSettings
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var s store.SiteSettings
		if err := snap.DataTo(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, nil
}

func (r *Repository) Exists(ctx context.Context, siteKey string) (bool, error) {
	_, err := r.doc(siteKey).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *Repository) Close() error { return r.client.Close() }
