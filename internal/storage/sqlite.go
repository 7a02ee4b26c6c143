package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

// CatalogDB is a SQLite snapshot of the component catalog for external
// tooling. The server itself never reads from it.
type CatalogDB struct {
	db   *sql.DB
	path string
}

// OpenCatalogDB opens or creates the database at path
func OpenCatalogDB(path string) (*CatalogDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(10000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	cdb := &CatalogDB{db: db, path: path}
	if err := cdb.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return cdb, nil
}

func (c *CatalogDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS components (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT,
		variants TEXT,
		use_cases TEXT,
		related TEXT,
		keywords TEXT
	);

	CREATE TABLE IF NOT EXISTS props (
		component TEXT NOT NULL REFERENCES components(name) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		type TEXT,
		required INTEGER NOT NULL DEFAULT 0,
		description TEXT,
		default_value TEXT,
		PRIMARY KEY (component, name)
	);

	CREATE TABLE IF NOT EXISTS examples (
		component TEXT NOT NULL REFERENCES components(name) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		title TEXT,
		code TEXT,
		PRIMARY KEY (component, position)
	);

	CREATE INDEX IF NOT EXISTS idx_components_category ON components(category);
	`

	_, err := c.db.Exec(schema)
	return err
}

// Close closes the database connection
func (c *CatalogDB) Close() error {
	return c.db.Close()
}

type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// WithTransaction runs a function within a SQLite transaction
func (c *CatalogDB) WithTransaction(fn func(tx *sql.Tx) error) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// --- Export ---

// ExportCatalog replaces the database contents with cat in one transaction
func (c *CatalogDB) ExportCatalog(cat *catalog.Catalog) error {
	return c.WithTransaction(func(tx *sql.Tx) error {
		for _, table := range []string{"examples", "props", "components"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		for i, e := range cat.Entries() {
			if err := insertComponent(tx, i, e); err != nil {
				return fmt.Errorf("export %s: %w", e.Name, err)
			}
		}
		return nil
	})
}

func insertComponent(q queryer, position int, e types.ComponentDescriptor) error {
	variantsJSON, _ := json.Marshal(e.Variants)
	useCasesJSON, _ := json.Marshal(e.UseCases)
	relatedJSON, _ := json.Marshal(e.RelatedComponents)
	keywordsJSON, _ := json.Marshal(e.Keywords)

	_, err := q.Exec(`
		INSERT INTO components (name, position, category, description, variants, use_cases, related, keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.Name, position, string(e.Category), e.Description, string(variantsJSON),
		string(useCasesJSON), string(relatedJSON), string(keywordsJSON))
	if err != nil {
		return err
	}

	for i, p := range e.Props {
		_, err := q.Exec(`
			INSERT INTO props (component, position, name, type, required, description, default_value)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, e.Name, i, p.Name, p.Type, p.Required, p.Description, p.Default)
		if err != nil {
			return err
		}
	}

	for i, ex := range e.Examples {
		_, err := q.Exec(`
			INSERT INTO examples (component, position, title, code)
			VALUES (?, ?, ?, ?)
		`, e.Name, i, ex.Title, ex.Code)
		if err != nil {
			return err
		}
	}
	return nil
}

// --- Read back ---

// ComponentRow is the flat component record stored in the database
type ComponentRow struct {
	Name     string
	Category string
	Props    int
	Examples int
}

// Components lists the stored components in catalog order
func (c *CatalogDB) Components() ([]ComponentRow, error) {
	rows, err := c.db.Query(`
		SELECT c.name, c.category,
			(SELECT COUNT(*) FROM props p WHERE p.component = c.name),
			(SELECT COUNT(*) FROM examples x WHERE x.component = c.name)
		FROM components c
		ORDER BY c.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ComponentRow
	for rows.Next() {
		var r ComponentRow
		if err := rows.Scan(&r.Name, &r.Category, &r.Props, &r.Examples); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
