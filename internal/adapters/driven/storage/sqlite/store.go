package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
	"github.com/custodia-labs/addrbook/internal/logger"
)

// Ensure ContactStore implements the interface.
var _ driven.ContactStore = (*ContactStore)(nil)

// DefaultFileName is the database file name inside the config directory.
const DefaultFileName = "contacts.db"

// DefaultPath returns ~/.addrbook/contacts.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".addrbook", DefaultFileName), nil
}

// ContactStore reads contacts from a SQLite address book.
// The database is opened read-only on first access.
type ContactStore struct {
	path string

	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// NewContactStore creates a store over the database at path.
// Nothing is opened until the first call that needs the database.
func NewContactStore(path string) *ContactStore {
	return &ContactStore{path: path}
}

// Type returns the store type identifier.
func (s *ContactStore) Type() string {
	return domain.StoreTypeSQLite
}

// Path returns the database file path.
func (s *ContactStore) Path() string {
	return s.path
}

// RequestAccess grants access when the database file is readable and
// carries the address book schema. A missing or unreadable file is a denial;
// a readable file without the schema is an error.
func (s *ContactStore) RequestAccess(ctx context.Context) (bool, error) {
	if s.isClosed() {
		return false, domain.ErrStoreClosed
	}
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			logger.Debug("sqlite: %s not accessible: %v", s.path, err)
			return false, nil
		}
		return false, err
	}

	db, err := s.open()
	if err != nil {
		return false, err
	}

	var tables int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('containers', 'contacts', 'contact_fields')
	`).Scan(&tables)
	if err != nil {
		if isPermissionError(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: checking schema: %w", domain.ErrStoreUnavailable, err)
	}
	if tables != 3 {
		return false, fmt.Errorf("%w: %s is not an address book database", domain.ErrStoreUnavailable, s.path)
	}
	return true, nil
}

// DefaultContainerID returns the container flagged as default, falling back
// to the first container when none is flagged.
func (s *ContactStore) DefaultContainerID(ctx context.Context) (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}

	var id string
	err = db.QueryRowContext(ctx, `
		SELECT id FROM containers
		ORDER BY is_default DESC, rowid ASC
		LIMIT 1
	`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("default container: %w", domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("default container: %w", err)
	}
	return id, nil
}

// UnifiedContacts returns the contacts of a container, in position order,
// with the requested fields loaded.
func (s *ContactStore) UnifiedContacts(ctx context.Context, containerID string, keys []domain.FieldKey) ([]domain.Contact, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}

	var exists int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM containers WHERE id = ?`, containerID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("looking up container: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("container %q: %w", containerID, domain.ErrNotFound)
	}

	contacts, index, err := s.loadContacts(ctx, db, containerID)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 || len(contacts) == 0 {
		return contacts, nil
	}

	if err := s.loadFields(ctx, db, containerID, keys, contacts, index); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *ContactStore) loadContacts(ctx context.Context, db *sql.DB, containerID string) ([]domain.Contact, map[string]int, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id FROM contacts WHERE container_id = ? ORDER BY position, id
	`, containerID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	index := make(map[string]int)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, nil, fmt.Errorf("scanning contact: %w", err)
		}
		index[id] = len(contacts)
		contacts = append(contacts, domain.NewContact(id))
	}
	return contacts, index, rows.Err()
}

func (s *ContactStore) loadFields(
	ctx context.Context,
	db *sql.DB,
	containerID string,
	keys []domain.FieldKey,
	contacts []domain.Contact,
	index map[string]int,
) error {
	placeholders := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	args = append(args, containerID)
	for i, k := range keys {
		placeholders[i] = "?"
		args = append(args, string(k))
	}

	//nolint:gosec // placeholders only, values are bound
	query := `
		SELECT f.contact_id, f.field_key, f.seq, f.kind, f.label, f.text_value, f.blob_value, f.payload_json
		FROM contact_fields f
		JOIN contacts c ON c.id = f.contact_id
		WHERE c.container_id = ? AND f.field_key IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY f.contact_id, f.field_key, f.seq`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying fields: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var contactID string
		var r fieldRow
		var key string
		if err := rows.Scan(&contactID, &key, &r.seq, &r.kind, &r.label, &r.text, &r.blob, &r.payload); err != nil {
			return fmt.Errorf("scanning field: %w", err)
		}
		r.key = domain.FieldKey(key)

		value, err := decodeRow(r)
		if err != nil {
			logger.Warn("sqlite: skipping %s/%s: %v", contactID, key, err)
			continue
		}

		c := &contacts[index[contactID]]
		if r.key.IsMultiValued() {
			seq, _ := c.Fields[r.key].(domain.Sequence)
			c.Set(r.key, append(seq, value))
		} else {
			c.Set(r.key, value)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// Requested multi-valued fields with no rows are empty sequences.
	for i := range contacts {
		for _, k := range keys {
			if _, ok := contacts[i].Fields[k]; !ok && k.IsMultiValued() {
				contacts[i].Set(k, domain.Sequence{})
			}
		}
	}
	return nil
}

// open returns the shared read-only handle, opening it on first use.
func (s *ContactStore) open() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	if s.db != nil {
		return s.db, nil
	}

	dsn, err := fileDSN(s.path, readOnlyParams)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s.db = db
	return db, nil
}

func (s *ContactStore) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close closes the database connection.
func (s *ContactStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func isPermissionError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unable to open") || strings.Contains(msg, "permission denied")
}
