package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/dropDatabas3/cordely/internal/http/errors"

	"github.com/dropDatabas3/cordely/internal/billing"
	"github.com/dropDatabas3/cordely/internal/store"
	storememory "github.com/dropDatabas3/cordely/internal/store/adapters/memory"
)

// fakeBilling simula el proveedor de suscripciones.
type fakeBilling struct {
	pending *billing.Subscription // nil => sin cancelación pendiente
	resumed []string
	created []billing.NewCustomerParams
}

func (f *fakeBilling) CreateCustomerWithSubscription(_ context.Context, p billing.NewCustomerParams) (*billing.Customer, error) {
	f.created = append(f.created, p)
	return &billing.Customer{CustomerID: "cus_test", SubscriptionID: "sub_test"}, nil
}

func (f *fakeBilling) FindPendingCancellation(_ context.Context, customerID string) (*billing.Subscription, error) {
	if f.pending == nil {
		return nil, billing.ErrNoPendingCancel
	}
	return f.pending, nil
}

func (f *fakeBilling) ResumeSubscription(_ context.Context, subscriptionID string) error {
	f.resumed = append(f.resumed, subscriptionID)
	return nil
}

func seedSite(t *testing.T, repo store.SiteRepository, s *store.SiteSettings) {
	t.Helper()
	require.NoError(t, repo.Put(context.Background(), s))
}

func TestResume_MissingSiteKey(t *testing.T) {
	svc := NewBillingService(storememory.New(), &fakeBilling{})
	err := svc.Resume(context.Background(), "  ")
	require.ErrorIs(t, err, apperrors.ErrMissingFields)
}

func TestResume_SiteNotFound(t *testing.T) {
	svc := NewBillingService(storememory.New(), &fakeBilling{})
	err := svc.Resume(context.Background(), "nope")
	require.ErrorIs(t, err, apperrors.ErrSiteNotFound)
}

func TestResume_CustomerNotFound(t *testing.T) {
	repo := storememory.New()
	seedSite(t, repo, &store.SiteSettings{SiteKey: "free1", IsFreePlan: true})

	svc := NewBillingService(repo, &fakeBilling{})
	err := svc.Resume(context.Background(), "free1")
	require.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
}

func TestResume_NoPendingCancel(t *testing.T) {
	repo := storememory.New()
	seedSite(t, repo, &store.SiteSettings{SiteKey: "s1", StripeCustomerID: "cus_1"})

	svc := NewBillingService(repo, &fakeBilling{pending: nil})
	err := svc.Resume(context.Background(), "s1")
	require.ErrorIs(t, err, apperrors.ErrNoPendingCancel)
}

func TestResume_Success(t *testing.T) {
	repo := storememory.New()
	seedSite(t, repo, &store.SiteSettings{
		SiteKey:            "s1",
		StripeCustomerID:   "cus_1",
		CancelPending:      true,
		SubscriptionStatus: "active",
	})

	fb := &fakeBilling{pending: &billing.Subscription{
		ID: "sub_9", Status: "active", CancelAtPeriodEnd: true,
	}}
	svc := NewBillingService(repo, fb)

	require.NoError(t, svc.Resume(context.Background(), "s1"))
	require.Equal(t, []string{"sub_9"}, fb.resumed)

	// el documento refleja el nuevo estado
	site, err := repo.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.False(t, site.CancelPending)
	require.Equal(t, "active", site.SubscriptionStatus)
}
