package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopfabrik/slugd/internal/store"
	"github.com/shopfabrik/slugd/internal/testutil"
)

// urlEnv bundles the stores and seed rows shared by URL store tests.
type urlEnv struct {
	URLs      *store.URLStore
	Languages *store.LanguageStore
	Lang      *store.Language
	Product   *store.Product
}

// newURLEnv creates a URL store plus a seeded language and product sharing
// the same DB.
func newURLEnv(t *testing.T) (*store.URLStore, *store.Language, *store.Product) {
	t.Helper()
	env := newURLEnvFull(t)
	return env.URLs, env.Lang, env.Product
}

func newURLEnvFull(t *testing.T) *urlEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	urls := store.NewURLStore(db)
	langs := store.NewLanguageStore(db)
	tenants := store.NewTenantStore(db)
	products := store.NewProductStore(db)

	ctx := context.Background()
	lang, err := langs.Create(ctx, "en", "English")
	if err != nil {
		t.Fatalf("seed language: %v", err)
	}
	tn, err := tenants.Create(ctx, "Acme Outdoor", "test")
	if err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	p, err := products.Create(ctx, tn.ID, "Trail Boot")
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &urlEnv{URLs: urls, Languages: langs, Lang: lang, Product: p}
}

func TestURLStore_CreateAndGet(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	created, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "trail-boot", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected non-empty ID")
	}

	got, err := urls.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Slug != "trail-boot" {
		t.Errorf("slug = %q, want %q", got.Slug, "trail-boot")
	}
	if got.LanguageID != lang.ID {
		t.Errorf("language_id = %q, want %q", got.LanguageID, lang.ID)
	}
	if !got.IsDefault {
		t.Error("is_default = false, want true")
	}
}

func TestURLStore_GetByID_NotFound(t *testing.T) {
	urls, _, _ := newURLEnv(t)

	_, err := urls.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID(nonexistent) = %v, want ErrNotFound", err)
	}
}

func TestURLStore_Create_DuplicateSlugSameLanguage(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	if _, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "dup", false); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Same slug and language but a different element still conflicts.
	_, err := urls.Create(ctx, store.ElementTypeProduct, "other-element", lang.ID, "dup", false)
	if !errors.Is(err, store.ErrSlugTaken) {
		t.Errorf("Create(dup) = %v, want ErrSlugTaken", err)
	}
}

func TestURLStore_Create_SameSlugOtherLanguage(t *testing.T) {
	env := newURLEnvFull(t)
	ctx := context.Background()

	if _, err := env.URLs.Create(ctx, store.ElementTypeProduct, env.Product.ID, env.Lang.ID, "boot", false); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Slug uniqueness is scoped per language; reuse in another language is fine.
	de, err := env.Languages.Create(ctx, "de", "German")
	if err != nil {
		t.Fatalf("create language: %v", err)
	}
	if _, err := env.URLs.Create(ctx, store.ElementTypeProduct, env.Product.ID, de.ID, "boot", false); err != nil {
		t.Errorf("Create(same slug, other language) = %v, want nil", err)
	}
}

func TestURLStore_Create_DefaultDemotesSiblings(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	first, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "first", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "second", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := urls.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.IsDefault {
		t.Error("first url still default after second default created")
	}

	def, err := urls.GetDefault(ctx, store.ElementTypeProduct, p.ID, lang.ID)
	if err != nil {
		t.Fatalf("GetDefault: %v", err)
	}
	if def.ID != second.ID {
		t.Errorf("default = %q, want %q", def.ID, second.ID)
	}
}

func TestURLStore_Update_BecomeDefault(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	a, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "a", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "b", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	on := true
	updated, err := urls.Update(ctx, b.ID, store.URLUpdate{IsDefault: &on})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.IsDefault {
		t.Error("updated url not default")
	}

	gotA, err := urls.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if gotA.IsDefault {
		t.Error("previous default not demoted")
	}
}

func TestURLStore_Update_SlugConflict(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	if _, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "taken", false); err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "free", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	taken := "taken"
	_, err = urls.Update(ctx, b.ID, store.URLUpdate{Slug: &taken})
	if !errors.Is(err, store.ErrSlugTaken) {
		t.Errorf("Update(taken slug) = %v, want ErrSlugTaken", err)
	}
}

func TestURLStore_Update_NotFound(t *testing.T) {
	urls, _, _ := newURLEnv(t)

	s := "whatever"
	_, err := urls.Update(context.Background(), "nonexistent", store.URLUpdate{Slug: &s})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update(nonexistent) = %v, want ErrNotFound", err)
	}
}

func TestURLStore_Delete_PromotesOldestSibling(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	def, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "home", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	alt1, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "home-alt", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	alt2, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "home-alt-2", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, promoted, err := urls.Delete(ctx, def.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("deleted = false, want true")
	}
	if promoted == nil {
		t.Fatal("promoted = nil, want the oldest sibling")
	}
	if promoted.ID != alt1.ID {
		t.Errorf("promoted = %q, want oldest sibling %q", promoted.ID, alt1.ID)
	}

	got, err := urls.GetDefault(ctx, store.ElementTypeProduct, p.ID, lang.ID)
	if err != nil {
		t.Fatalf("GetDefault: %v", err)
	}
	if got.ID != alt1.ID {
		t.Errorf("default = %q, want %q", got.ID, alt1.ID)
	}

	gotAlt2, err := urls.GetByID(ctx, alt2.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if gotAlt2.IsDefault {
		t.Error("younger sibling promoted; want oldest")
	}
}

func TestURLStore_Delete_NonDefaultNoPromotion(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	def, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "keep", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	alt, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "drop", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, promoted, err := urls.Delete(ctx, alt.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("deleted = false, want true")
	}
	if promoted != nil {
		t.Errorf("promoted = %v, want nil", promoted)
	}

	got, err := urls.GetDefault(ctx, store.ElementTypeProduct, p.ID, lang.ID)
	if err != nil {
		t.Fatalf("GetDefault: %v", err)
	}
	if got.ID != def.ID {
		t.Errorf("default = %q, want unchanged %q", got.ID, def.ID)
	}
}

func TestURLStore_Delete_LastRecordLeavesEmptyScope(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	only, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "only", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, promoted, err := urls.Delete(ctx, only.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted || promoted != nil {
		t.Errorf("Delete = (%v, %v), want (true, nil)", deleted, promoted)
	}

	_, err = urls.GetDefault(ctx, store.ElementTypeProduct, p.ID, lang.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetDefault after last delete = %v, want ErrNotFound", err)
	}
}

func TestURLStore_Delete_Idempotent(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	rec, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "once", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, _, err := urls.Delete(ctx, rec.ID)
	if err != nil || !deleted {
		t.Fatalf("first Delete = (%v, %v), want (true, nil)", deleted, err)
	}

	deleted, _, err = urls.Delete(ctx, rec.ID)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if deleted {
		t.Error("second Delete = true, want false")
	}
}

func TestURLStore_SetDefault_Idempotent(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	a, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "sa", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "sb", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := urls.SetDefault(ctx, b.ID)
	if err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	if !got.IsDefault {
		t.Error("SetDefault did not set the flag")
	}

	// Calling again changes nothing.
	got, err = urls.SetDefault(ctx, b.ID)
	if err != nil {
		t.Fatalf("SetDefault (again): %v", err)
	}
	if !got.IsDefault {
		t.Error("repeated SetDefault dropped the flag")
	}

	gotA, err := urls.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if gotA.IsDefault {
		t.Error("sibling still default after SetDefault")
	}
}

func TestURLStore_SetDefault_NotFound(t *testing.T) {
	urls, _, _ := newURLEnv(t)

	_, err := urls.SetDefault(context.Background(), "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("SetDefault(nonexistent) = %v, want ErrNotFound", err)
	}
}

func TestURLStore_SlugExists_Exclude(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	rec, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "mine", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	taken, err := urls.SlugExists(ctx, "mine", lang.ID, "")
	if err != nil {
		t.Fatalf("SlugExists: %v", err)
	}
	if !taken {
		t.Error("SlugExists = false, want true")
	}

	// Excluding the record itself lets an update keep its slug.
	taken, err = urls.SlugExists(ctx, "mine", lang.ID, rec.ID)
	if err != nil {
		t.Fatalf("SlugExists: %v", err)
	}
	if taken {
		t.Error("SlugExists with excludeID = true, want false")
	}
}

func TestURLStore_ListByElement_Ordered(t *testing.T) {
	urls, lang, p := newURLEnv(t)
	ctx := context.Background()

	first, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "l1", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := urls.Create(ctx, store.ElementTypeProduct, p.ID, lang.ID, "l2", false); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := urls.ListByElement(ctx, store.ElementTypeProduct, p.ID)
	if err != nil {
		t.Fatalf("ListByElement: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != first.ID {
		t.Errorf("list[0] = %q, want oldest %q", list[0].ID, first.ID)
	}
}
