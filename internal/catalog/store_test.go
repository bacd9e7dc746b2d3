package catalog

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func newStoreTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			definition_json TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed creating products table: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestStorePutGetRoundTripsCanonicalForm(t *testing.T) {
	store := NewStore(newStoreTestDB(t))

	p := &Product{
		ID:        "p1",
		Name:      "Aviso",
		BasePrice: 100,
		Currency:  "COP",
		LegacyMaterials: []VariationOption{
			{ID: "m1", Name: "Vinilo", Price: 20},
		},
	}
	p.Normalize()

	if err := store.Put(p); err != nil {
		t.Fatalf("put returned error: %v", err)
	}

	loaded, err := store.Get("p1")
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if loaded.Variations.Materials == nil || !loaded.Variations.Materials.Required {
		t.Fatalf("expected canonical materials group after load, got %+v", loaded.Variations.Materials)
	}
	if loaded.TaxRate != 0.10 {
		t.Fatalf("expected default tax rate after load, got %v", loaded.TaxRate)
	}
}

func TestStorePutIsAnUpsert(t *testing.T) {
	store := NewStore(newStoreTestDB(t))

	p := &Product{ID: "p1", Name: "Antes", BasePrice: 100, Currency: "COP"}
	p.Normalize()
	if err := store.Put(p); err != nil {
		t.Fatalf("first put returned error: %v", err)
	}

	p.Name = "Después"
	p.BasePrice = 150
	if err := store.Put(p); err != nil {
		t.Fatalf("second put returned error: %v", err)
	}

	loaded, err := store.Get("p1")
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if loaded.Name != "Después" || loaded.BasePrice != 150 {
		t.Fatalf("expected updated product, got %+v", loaded)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 product, got %d", len(summaries))
	}
}

func TestStoreGetUnknownIDReturnsErrNotFound(t *testing.T) {
	store := NewStore(newStoreTestDB(t))

	_, err := store.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreListOrdersByName(t *testing.T) {
	store := NewStore(newStoreTestDB(t))

	for _, p := range []*Product{
		{ID: "b", Name: "Beta", BasePrice: 2, Currency: "COP"},
		{ID: "a", Name: "Alfa", BasePrice: 1, Currency: "COP"},
	} {
		p.Normalize()
		if err := store.Put(p); err != nil {
			t.Fatalf("put %s returned error: %v", p.ID, err)
		}
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(summaries) != 2 || summaries[0].Name != "Alfa" || summaries[1].Name != "Beta" {
		t.Fatalf("unexpected order: %+v", summaries)
	}
	if summaries[0].BasePrice != 1 {
		t.Fatalf("expected base price in summary, got %+v", summaries[0])
	}
}
