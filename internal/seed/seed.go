package seed

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Simplici0/configurador/internal/catalog"
)

const demoProductID = "banner-clasico"

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureDemoProduct(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	sum := sha256.Sum256([]byte(password))
	if _, err := tx.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, hex.EncodeToString(sum[:])); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureDemoProduct(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM products WHERE id = ? LIMIT 1)`, demoProductID).Scan(&exists); err != nil {
		return fmt.Errorf("check demo product existence: %w", err)
	}
	if exists {
		return nil
	}

	doc, err := json.Marshal(demoProduct())
	if err != nil {
		return fmt.Errorf("marshal demo product: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO products (id, name, definition_json)
		VALUES (?, ?, ?)
	`, demoProductID, "Aviso clásico", string(doc)); err != nil {
		return fmt.Errorf("insert demo product: %w", err)
	}
	stats.Inserts++
	return nil
}

// demoProduct is a representative catalog document covering styles with
// measurements, a branding feature that gates the artwork upload, and
// opt-in default seeding.
func demoProduct() *catalog.Product {
	return &catalog.Product{
		ID:        demoProductID,
		Name:      "Aviso clásico",
		BasePrice: 120,
		Currency:  "COP",
		Variations: catalog.Variations{
			Styles: &catalog.VariationGroup{
				Required: true,
				Options: []catalog.VariationOption{
					{
						ID: "rectangular", Name: "Rectangular",
						Measurements: []catalog.MeasurementDef{
							{ID: "width", Name: "Ancho", Required: true, Unit: "inches", Type: "number", Role: catalog.RoleWidth},
							{ID: "height", Name: "Alto", Required: true, Unit: "inches", Type: "number", Role: catalog.RoleHeight},
						},
					},
					{
						ID: "circular", Name: "Circular", Price: 25,
						Measurements: []catalog.MeasurementDef{
							{ID: "diameter", Name: "Diámetro", Required: true, Unit: "inches", Type: "number", Role: catalog.RoleDiameter},
						},
					},
				},
			},
			Materials: &catalog.VariationGroup{
				Required: true,
				Options: []catalog.VariationOption{
					{ID: "vinilo", Name: "Vinilo", Price: 40},
					{ID: "malla", Name: "Malla", Price: 55},
				},
			},
			Colors: &catalog.VariationGroup{
				Options: []catalog.VariationOption{
					{ID: "blanco", Name: "Blanco"},
					{ID: "negro", Name: "Negro", Price: 10},
				},
			},
			Features: map[string]*catalog.VariationGroup{
				"branding": {
					Options: []catalog.VariationOption{
						{ID: "none", Name: "Sin marca"},
						{ID: "una-cara", Name: "Logo una cara", Price: 30},
						{ID: "dos-caras", Name: "Logo dos caras", Price: 50},
					},
				},
			},
		},
		FileUploads: []catalog.UploadRequirement{
			{ID: "artwork", Name: "Arte del logo", Required: true, AcceptedTypes: []string{"image/png", "application/pdf"}, MaxSize: 10 << 20},
		},
		Defaults: &catalog.DefaultConfiguration{
			ShowDefaultPrice: true,
			Style:            "rectangular",
			Material:         "vinilo",
			Width:            48,
			Height:           24,
		},
	}
}
