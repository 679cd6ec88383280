package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/dropDatabas3/cordely/internal/http/errors"

	"github.com/dropDatabas3/cordely/internal/http/dto"
	"github.com/dropDatabas3/cordely/internal/identity"
	storememory "github.com/dropDatabas3/cordely/internal/store/adapters/memory"
	"github.com/dropDatabas3/cordely/internal/util/jpform"
)

func validRegisterReq() dto.RegisterSiteRequest {
	return dto.RegisterSiteRequest{
		Email:        "owner@example.com",
		Password:     "secret123",
		SiteKey:      "tienda01",
		SiteName:     "Tienda Uno",
		OwnerName:    "Yamada Taro",
		OwnerAddress: "東京都千代田区1-1",
		OwnerPhone:   "09012345678",
		IsFreePlan:   false,
	}
}

func newTestSitesService(repo *storememory.Repository, fb *fakeBilling) *SitesService {
	return NewSitesService(repo, identity.NewLocal(), fb, nil, "https://cordely-customers.vercel.app")
}

func TestRegister_Success(t *testing.T) {
	repo := storememory.New()
	fb := &fakeBilling{}
	svc := newTestSitesService(repo, fb)

	resp, err := svc.Register(context.Background(), validRegisterReq())
	require.NoError(t, err)
	require.True(t, resp.OK)
	require.Equal(t, "tienda01", resp.SiteKey)
	require.NotEmpty(t, resp.OwnerID)
	require.Equal(t, "https://cordely-customers.vercel.app/?siteKey=tienda01", resp.CustomerURL)

	// billing sólo para planes pagos
	require.Len(t, fb.created, 1)
	require.Equal(t, "tienda01", fb.created[0].SiteKey)

	site, err := repo.Get(context.Background(), "tienda01")
	require.NoError(t, err)
	require.Equal(t, "owner@example.com", site.OwnerEmail)
	require.Equal(t, "cus_test", site.StripeCustomerID)
	require.Equal(t, "sub_test", site.StripeSubscriptionID)
	require.Equal(t, resp.CustomerURL, site.CustomerURL)
	require.False(t, site.SetupMode)
	// teléfono normalizado a formato nacional JP
	require.Equal(t, "090-1234-5678", site.OwnerPhone)
}

type fakeLookup struct {
	asked []string
	addr  *jpform.Address
}

func (f *fakeLookup) Lookup(_ context.Context, postalCode string) (*jpform.Address, error) {
	f.asked = append(f.asked, postalCode)
	return f.addr, nil
}

func TestRegister_PostalCodeNormalized(t *testing.T) {
	repo := storememory.New()
	fl := &fakeLookup{addr: &jpform.Address{Prefecture: "東京都", City: "千代田区", Town: "千代田"}}
	svc := NewSitesService(repo, identity.NewLocal(), &fakeBilling{}, fl, "https://cordely-customers.vercel.app")

	req := validRegisterReq()
	req.PostalCode = "1234567"
	req.OwnerAddress = ""
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	site, err := repo.Get(context.Background(), "tienda01")
	require.NoError(t, err)
	// el código postal se guarda normalizado y el lookup recibe la forma con guión
	require.Equal(t, "123-4567", site.PostalCode)
	require.Equal(t, []string{"123-4567"}, fl.asked)
	require.Equal(t, "東京都千代田区千代田", site.OwnerAddress)
}

func TestRegister_FreePlanSkipsBilling(t *testing.T) {
	repo := storememory.New()
	fb := &fakeBilling{}
	svc := newTestSitesService(repo, fb)

	req := validRegisterReq()
	req.IsFreePlan = true
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	require.Empty(t, fb.created)

	site, err := repo.Get(context.Background(), "tienda01")
	require.NoError(t, err)
	require.Empty(t, site.StripeCustomerID)
	require.True(t, site.IsFreePlan)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestSitesService(storememory.New(), &fakeBilling{})

	req := validRegisterReq()
	req.Email = ""
	_, err := svc.Register(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrMissingFields)
}

func TestRegister_InvalidSiteKey(t *testing.T) {
	svc := newTestSitesService(storememory.New(), &fakeBilling{})

	for _, key := range []string{"con espacios", "con-guion", "日本語", "a/b"} {
		req := validRegisterReq()
		req.SiteKey = key
		_, err := svc.Register(context.Background(), req)
		require.ErrorIs(t, err, apperrors.ErrInvalidFormat, "siteKey %q", key)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := newTestSitesService(storememory.New(), &fakeBilling{})

	req := validRegisterReq()
	req.Password = "12345"
	_, err := svc.Register(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrPasswordTooWeak)
}

func TestRegister_DuplicateSiteKey(t *testing.T) {
	repo := storememory.New()
	svc := newTestSitesService(repo, &fakeBilling{})

	_, err := svc.Register(context.Background(), validRegisterReq())
	require.NoError(t, err)

	req := validRegisterReq()
	req.Email = "otro@example.com"
	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	// overwrite explícito permite re-registrar
	req.Overwrite = true
	_, err = svc.Register(context.Background(), req)
	require.NoError(t, err)
}

func TestRegister_EmailInUse(t *testing.T) {
	repo := storememory.New()
	svc := newTestSitesService(repo, &fakeBilling{})

	_, err := svc.Register(context.Background(), validRegisterReq())
	require.NoError(t, err)

	// mismo email, site distinto
	req := validRegisterReq()
	req.SiteKey = "tienda02"
	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)
}

func TestCreateUser(t *testing.T) {
	svc := newTestSitesService(storememory.New(), &fakeBilling{})

	uid, err := svc.CreateUser(context.Background(), "u@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	_, err = svc.CreateUser(context.Background(), "u@example.com", "secret123")
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)

	_, err = svc.CreateUser(context.Background(), "corto@example.com", "123")
	require.ErrorIs(t, err, apperrors.ErrPasswordTooWeak)
}

func TestByOwnerEmail(t *testing.T) {
	repo := storememory.New()
	svc := newTestSitesService(repo, &fakeBilling{})

	_, err := svc.ByOwnerEmail(context.Background(), "nadie@example.com")
	require.ErrorIs(t, err, apperrors.ErrSiteNotFound)

	_, err = svc.Register(context.Background(), validRegisterReq())
	require.NoError(t, err)

	site, err := svc.ByOwnerEmail(context.Background(), "OWNER@example.com")
	require.NoError(t, err)
	require.Equal(t, "tienda01", site.SiteKey)
}
