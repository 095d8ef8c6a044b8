package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Connect opens (creating on first run) the SQLite database file and ensures
// the schema exists. The returned handle is the shared pool for the process.
func Connect(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path+"?_fk=1&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite serializes writers; a single writer connection avoids
	// SQLITE_BUSY during the ingestion pass.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := InitSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return conn, nil
}

// InitSchema applies the normalized food schema. Every statement is
// IF NOT EXISTS, so running it against a populated database is a no-op.
func InitSchema(conn *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS food_images (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	image_url TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS food_sources (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS foods (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	slug TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL UNIQUE,
	verified INTEGER NOT NULL DEFAULT 0,
	image_id INTEGER REFERENCES food_images(id),
	source_id INTEGER REFERENCES food_sources(id),
	glycemic_index REAL NOT NULL DEFAULT 0,
	energy REAL NOT NULL DEFAULT 0,
	carbohydrate REAL NOT NULL DEFAULT 0,
	protein REAL NOT NULL DEFAULT 0,
	fat REAL NOT NULL DEFAULT 0,
	saturated_fat REAL NOT NULL DEFAULT 0,
	trans_fat REAL NOT NULL DEFAULT 0,
	sugar REAL NOT NULL DEFAULT 0,
	fiber REAL NOT NULL DEFAULT 0,
	cholesterol REAL NOT NULL DEFAULT 0,
	sodium REAL NOT NULL DEFAULT 0,
	potassium REAL NOT NULL DEFAULT 0,
	iron REAL NOT NULL DEFAULT 0,
	magnesium REAL NOT NULL DEFAULT 0,
	calcium REAL NOT NULL DEFAULT 0,
	zinc REAL NOT NULL DEFAULT 0,
	vitamin_a REAL NOT NULL DEFAULT 0,
	vitamin_b6 REAL NOT NULL DEFAULT 0,
	vitamin_b12 REAL NOT NULL DEFAULT 0,
	vitamin_c REAL NOT NULL DEFAULT 0,
	vitamin_d REAL NOT NULL DEFAULT 0,
	vitamin_e REAL NOT NULL DEFAULT 0,
	vitamin_k REAL NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS allergens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS serving_descriptions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS food_tags (
	food_id INTEGER NOT NULL REFERENCES foods(id),
	tag_id INTEGER NOT NULL REFERENCES tags(id),
	UNIQUE (food_id, tag_id)
);

CREATE TABLE IF NOT EXISTS food_allergens (
	food_id INTEGER NOT NULL REFERENCES foods(id),
	allergen_id INTEGER NOT NULL REFERENCES allergens(id),
	UNIQUE (food_id, allergen_id)
);

CREATE TABLE IF NOT EXISTS food_servings (
	food_id INTEGER NOT NULL REFERENCES foods(id),
	serving_description_id INTEGER NOT NULL REFERENCES serving_descriptions(id),
	weight REAL NOT NULL CHECK (weight > 0),
	UNIQUE (food_id, serving_description_id)
);

CREATE INDEX IF NOT EXISTS idx_foods_description ON foods(description);
CREATE INDEX IF NOT EXISTS idx_foods_verified ON foods(verified)
`
