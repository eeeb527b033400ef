package repos

import (
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Admin is the account seeded for the review surface.
type Admin struct {
	Email    string
	Password string
}

// OpenDB opens the sqlite database, migrates it and seeds the demo catalog.
// An empty admin is not seeded.
func OpenDB(dsn string, admin ...Admin) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is its own database
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := prepare(db, admin); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func prepare(db *sqlx.DB, admin []Admin) error {
	if err := db.Ping(); err != nil {
		return err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return err
	}
	if err := runMigrations(db); err != nil {
		return err
	}
	// Seed baseline catalog if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return err
	}
	for _, a := range admin {
		if err := seedAdmin(db, a); err != nil {
			return err
		}
	}
	return nil
}

func runMigrations(db *sqlx.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	// m.Close would close db as well
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO categories(id,name) VALUES
	  ('essential-spice-oil','Essential | Spice Oil'),
	  ('carrier-oil','Range of Carrier Oil'),
	  ('extract-soluble-oil','Extract | Soluble Oil'),
	  ('pg-water-extract','PG | Water Extract')`); err != nil {
		return err
	}

	if _, err := tx.Exec(`INSERT INTO products
	  (id,category_id,name,description,long_description,image_url,size,origin,usage_tips,characteristics_json,price,stock,is_featured,created_at) VALUES
	  ('mustard-oil','carrier-oil','Pure Mustard Oil','Traditional kachi ghani mustard oil, rich in flavor and aroma.',
	   'Extracted from the finest quality mustard seeds using the cold-press method.','/images/mustard-oil.jpg','1L','India',
	   'Pickling, deep frying, sauteing','["Cold-Pressed","Unrefined","Vegan"]',180,100,1,'2024-01-01T00:00:00Z'),
	  ('sesame-oil','carrier-oil','Cold Pressed Sesame Oil','Nutty til oil for cooking and massage.',
	   '','/images/sesame-oil.jpg','1L','India','Tadka, massage','["Cold-Pressed","Vegan"]',320,3,0,'2024-01-02T00:00:00Z'),
	  ('clove-oil','essential-spice-oil','Clove Bud Oil','Steam distilled clove oil with a warm spicy aroma.',
	   '','/images/clove-oil.jpg','100ml','India','Aromatherapy, oral care','["Steam-Distilled"]',750,12,1,'2024-01-03T00:00:00Z'),
	  ('black-pepper-oil','essential-spice-oil','Black Pepper Oil','Spice oil distilled from black peppercorns.',
	   '','/images/black-pepper-oil.jpg','100ml','India','Flavouring, aromatherapy','["Steam-Distilled"]',640,0,0,'2024-01-04T00:00:00Z'),
	  ('ginger-extract','pg-water-extract','Ginger Water Extract','Water soluble ginger extract for beverages.',
	   '','/images/ginger-extract.jpg','500ml','India','Beverages, syrups','["Water-Soluble","Vegan"]',420,NULL,1,'2024-01-05T00:00:00Z'),
	  ('vanilla-soluble','extract-soluble-oil','Vanilla Soluble Oil','Soluble vanilla oil for bakery and confectionery.',
	   '','/images/vanilla-soluble.jpg','250ml','India','Baking','["Water-Soluble"]',560,25,0,'2024-01-06T00:00:00Z')`); err != nil {
		return err
	}

	return tx.Commit()
}

// seedAdmin ensures the admin account exists (idempotent).
func seedAdmin(db *sqlx.DB, a Admin) error {
	if a.Email == "" || a.Password == "" {
		return nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,email,name,password_hash,role)
		VALUES(?,?,?,?,'ADMIN')
		ON CONFLICT(email) DO NOTHING
	`, "u-admin", a.Email, "Admin", string(h))
	return err
}
