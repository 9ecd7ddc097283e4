package vcard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	govcard "github.com/emersion/go-vcard"
	"github.com/google/uuid"

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
	"github.com/custodia-labs/addrbook/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ContactStore = (*Store)(nil)

// Extension is the file extension of vCard files.
const Extension = ".vcf"

// Store reads contacts from a directory of vCard files.
// Files are read in name order and cards in file order. The directory has a
// single container whose ID is its absolute path.
type Store struct {
	dir string

	mu     sync.RWMutex
	closed bool
}

// NewStore creates a store over dir.
func NewStore(dir string) *Store {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Store{dir: dir}
}

// Type returns the store type identifier.
func (s *Store) Type() string {
	return domain.StoreTypeVCard
}

// Dir returns the absolute directory path.
func (s *Store) Dir() string {
	return s.dir
}

// RequestAccess grants access when the directory exists and can be listed.
func (s *Store) RequestAccess(_ context.Context) (bool, error) {
	if s.isClosed() {
		return false, domain.ErrStoreClosed
	}

	info, err := os.Stat(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			logger.Debug("vcard: %s not accessible: %v", s.dir, err)
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%w: %s is not a directory", domain.ErrStoreUnavailable, s.dir)
	}

	if _, err := os.ReadDir(s.dir); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DefaultContainerID returns the directory path.
func (s *Store) DefaultContainerID(_ context.Context) (string, error) {
	if s.isClosed() {
		return "", domain.ErrStoreClosed
	}
	return s.dir, nil
}

// UnifiedContacts parses every card in the directory.
// Files that fail to parse are skipped with a warning.
func (s *Store) UnifiedContacts(ctx context.Context, containerID string, keys []domain.FieldKey) ([]domain.Contact, error) {
	if s.isClosed() {
		return nil, domain.ErrStoreClosed
	}
	if containerID != s.dir {
		return nil, fmt.Errorf("container %q: %w", containerID, domain.ErrNotFound)
	}

	files, err := s.files()
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %w", domain.ErrStoreUnavailable, s.dir, err)
	}

	contacts := []domain.Contact{}
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cards, err := readFile(filepath.Join(s.dir, name))
		if err != nil {
			logger.Warn("vcard: skipping %s: %v", name, err)
			continue
		}
		for i, card := range cards {
			contacts = append(contacts, CardToContact(cardID(name, i, card), card, keys))
		}
	}

	logger.Debug("vcard: read %d contacts from %d files", len(contacts), len(files))
	return contacts, nil
}

// Close marks the store closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Store) files() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Extension) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// readFile decodes every card in a file.
func readFile(path string) ([]govcard.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cards []govcard.Card
	dec := govcard.NewDecoder(f)
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return cards, nil
		}
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
}

// cardID returns the card's UID, or a stable name-based UUID derived from
// the file name and the card's position in it.
func cardID(file string, index int, card govcard.Card) string {
	if uid := strings.TrimSpace(card.Value(govcard.FieldUID)); uid != "" {
		return uid
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(file+"#"+strconv.Itoa(index))).String()
}
