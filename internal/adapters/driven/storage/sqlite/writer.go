package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/addrbook/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
)

// Ensure Writer implements the ContactSink interface.
var _ driven.ContactSink = (*Writer)(nil)

// Writer creates and fills a SQLite address book.
type Writer struct {
	db   *sql.DB
	path string
}

// NewWriter opens (creating if needed) the database at path and applies
// pending migrations.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dsn, err := fileDSN(path, readWriteParams)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps PRAGMA foreign_keys in effect for every statement.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	w := &Writer{db: db, path: path}
	if err := w.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return w, nil
}

// Path returns the database file path.
func (w *Writer) Path() string {
	return w.path
}

// Close closes the database connection.
func (w *Writer) Close() error {
	return w.db.Close()
}

// ReplaceContacts replaces every contact of a container, creating the
// container if needed. The first container written becomes the default.
// The whole replacement runs in one transaction.
func (w *Writer) ReplaceContacts(ctx context.Context, containerID string, contacts []domain.Contact) (err error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO containers (id, name, is_default)
		VALUES (?, ?, NOT EXISTS (SELECT 1 FROM containers WHERE is_default = 1))
		ON CONFLICT(id) DO NOTHING
	`, containerID, containerID); err != nil {
		return fmt.Errorf("saving container: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM contacts WHERE container_id = ?`, containerID); err != nil {
		return fmt.Errorf("clearing container: %w", err)
	}

	for pos := range contacts {
		if err = insertContact(ctx, tx, containerID, pos, &contacts[pos]); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertContact(ctx context.Context, tx *sql.Tx, containerID string, pos int, c *domain.Contact) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO contacts (id, container_id, position) VALUES (?, ?, ?)
	`, c.ID, containerID, pos); err != nil {
		return fmt.Errorf("saving contact %s: %w", c.ID, err)
	}

	keys := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	for _, k := range keys {
		rows, err := encodeValue(domain.FieldKey(k), c.Fields[domain.FieldKey(k)])
		if err != nil {
			return fmt.Errorf("encoding %s/%s: %w", c.ID, k, err)
		}
		for _, r := range rows {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO contact_fields (contact_id, field_key, seq, kind, label, text_value, blob_value, payload_json)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, c.ID, k, r.seq, r.kind, r.label, r.text, r.blob, r.payload); err != nil {
				return fmt.Errorf("saving field %s/%s: %w", c.ID, k, err)
			}
		}
	}
	return nil
}

// migrate runs all pending migrations and records each applied version.
func (w *Writer) migrate(fsys embed.FS) error {
	_, err := w.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := w.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := w.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := w.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
