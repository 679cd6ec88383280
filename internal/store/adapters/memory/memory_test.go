package memory

import (
	"context"
	"testing"

	"github.com/dropDatabas3/cordely/internal/store"
)

func TestGetPut(t *testing.T) {
	r := New()
	ctx := context.Background()

	if _, err := r.Get(ctx, "nope"); err != store.ErrNotFound {
		t.Fatalf("Get inexistente: err = %v", err)
	}

	s := &store.SiteSettings{SiteKey: "s1", SiteName: "Tienda", OwnerEmail: "o@e.com"}
	if err := r.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := r.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SiteName != "Tienda" || got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("documento inesperado: %+v", got)
	}

	// Get devuelve una copia
	got.SiteName = "mutada"
	again, _ := r.Get(ctx, "s1")
	if again.SiteName != "Tienda" {
		t.Fatal("Get no aísla el documento interno")
	}
}

func TestMerge(t *testing.T) {
	r := New()
	ctx := context.Background()

	if err := r.Merge(ctx, "nope", map[string]any{"x": 1}); err != store.ErrNotFound {
		t.Fatalf("Merge inexistente: err = %v", err)
	}

	_ = r.Put(ctx, &store.SiteSettings{SiteKey: "s1", SiteName: "Tienda", CancelPending: true})
	err := r.Merge(ctx, "s1", map[string]any{
		"cancelPending":      false,
		"subscriptionStatus": "active",
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	got, _ := r.Get(ctx, "s1")
	if got.CancelPending {
		t.Fatal("cancelPending no se actualizó")
	}
	if got.SubscriptionStatus != "active" {
		t.Fatalf("subscriptionStatus = %q", got.SubscriptionStatus)
	}
	// los campos no tocados se preservan
	if got.SiteName != "Tienda" {
		t.Fatalf("siteName = %q", got.SiteName)
	}
}

func TestGetByOwnerEmail(t *testing.T) {
	r := New()
	ctx := context.Background()

	_ = r.Put(ctx, &store.SiteSettings{SiteKey: "s1", OwnerEmail: "Owner@Example.com"})

	got, err := r.GetByOwnerEmail(ctx, "owner@example.com")
	if err != nil {
		t.Fatalf("GetByOwnerEmail: %v", err)
	}
	if got.SiteKey != "s1" {
		t.Fatalf("siteKey = %q", got.SiteKey)
	}

	if _, err := r.GetByOwnerEmail(ctx, "otro@example.com"); err != store.ErrNotFound {
		t.Fatalf("err = %v", err)
	}
}

func TestDeleteExistsList(t *testing.T) {
	r := New()
	ctx := context.Background()

	_ = r.Put(ctx, &store.SiteSettings{SiteKey: "b"})
	_ = r.Put(ctx, &store.SiteSettings{SiteKey: "a"})

	ok, _ := r.Exists(ctx, "a")
	if !ok {
		t.Fatal("Exists = false para site presente")
	}

	all, err := r.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].SiteKey != "a" || all[1].SiteKey != "b" {
		t.Fatalf("List desordenada: %+v", all)
	}

	if err := r.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := r.Delete(ctx, "a"); err != store.ErrNotFound {
		t.Fatalf("Delete repetido: err = %v", err)
	}
	if ok, _ := r.Exists(ctx, "a"); ok {
		t.Fatal("Exists = true tras Delete")
	}
}
