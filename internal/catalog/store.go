package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a product id has no catalog entry.
var ErrNotFound = errors.New("catalog: product not found")

// Summary is the list-view projection of a product.
type Summary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"basePrice"`
	Currency  string  `json:"currency"`
}

// Store persists product definitions as JSON documents in SQLite. Documents
// are normalized on the way out, so consumers always see the canonical form.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Put inserts or replaces a product definition.
func (st *Store) Put(p *Product) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product definition: %w", err)
	}

	_, err = st.db.Exec(`
		INSERT INTO products (id, name, definition_json)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			definition_json = excluded.definition_json,
			updated_at = CURRENT_TIMESTAMP
	`, p.ID, p.Name, string(doc))
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// Get loads a product definition in canonical form.
func (st *Store) Get(id string) (*Product, error) {
	var doc string
	err := st.db.QueryRow(`SELECT definition_json FROM products WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}

	return Decode([]byte(doc))
}

// List returns product summaries ordered by name.
func (st *Store) List() ([]Summary, error) {
	rows, err := st.db.Query(`SELECT id, name, definition_json FROM products ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var id, name, doc string
		if err := rows.Scan(&id, &name, &doc); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		summary := Summary{ID: id, Name: name}
		if p, err := Decode([]byte(doc)); err == nil {
			summary.BasePrice = p.BasePrice
			summary.Currency = p.Currency
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return summaries, nil
}
