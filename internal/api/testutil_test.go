package api_test

import (
	"context"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/shopfabrik/slugd/internal/api"
	"github.com/shopfabrik/slugd/internal/store"
	"github.com/shopfabrik/slugd/internal/testutil"
	"github.com/shopfabrik/slugd/internal/urls"
)

// testEnv holds all stores and helpers needed for API integration tests.
type testEnv struct {
	Router    http.Handler
	URLs      *store.URLStore
	Languages *store.LanguageStore
	Products  *store.ProductStore
	Tenants   *store.TenantStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full router with real stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	urlStore := store.NewURLStore(db)
	langs := store.NewLanguageStore(db)
	products := store.NewProductStore(db)
	tenants := store.NewTenantStore(db)

	svc := urls.NewService(urlStore, products, langs, zap.NewNop())

	router := api.NewRouter(api.Deps{
		URLService: svc,
		Languages:  langs,
		Products:   products,
		Tenants:    tenants,
		Log:        zap.NewNop(),
	})

	return &testEnv{
		Router:    router,
		URLs:      urlStore,
		Languages: langs,
		Products:  products,
		Tenants:   tenants,
	}
}

// seedCatalog creates a language, tenant, and product for URL tests.
func seedCatalog(t *testing.T, env *testEnv) (*store.Language, *store.Product) {
	t.Helper()
	ctx := context.Background()

	lang, err := env.Languages.Create(ctx, "en", "English")
	if err != nil {
		t.Fatalf("seed language: %v", err)
	}
	tn, err := env.Tenants.Create(ctx, "Acme Outdoor", "test")
	if err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	p, err := env.Products.Create(ctx, tn.ID, "Trail Boot")
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return lang, p
}
