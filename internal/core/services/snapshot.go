package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/addrbook/internal/core/domain"
	"github.com/custodia-labs/addrbook/internal/core/ports/driven"
	"github.com/custodia-labs/addrbook/internal/core/ports/driving"
	"github.com/custodia-labs/addrbook/internal/logger"
)

// Ensure SnapshotService implements the interface.
var _ driving.SnapshotService = (*SnapshotService)(nil)

// SnapshotService copies contacts from a store into a sink, so a remote
// address book can later be read offline through the sqlite or vcard store.
// Unlike ContactService it reports failures as errors.
type SnapshotService struct {
	store driven.ContactStore
	sink  driven.ContactSink
}

// NewSnapshotService creates a snapshot service.
func NewSnapshotService(store driven.ContactStore, sink driven.ContactSink) *SnapshotService {
	return &SnapshotService{store: store, sink: sink}
}

// Snapshot copies the default container into the sink.
func (s *SnapshotService) Snapshot(ctx context.Context, fields []domain.FieldKey) (int, error) {
	if s.store == nil || s.sink == nil {
		return 0, errors.New("snapshot service not configured")
	}
	if len(fields) == 0 {
		fields = domain.AllFieldKeys()
	}

	logger.Section("Snapshot")

	granted, err := s.store.RequestAccess(ctx)
	if err != nil {
		return 0, fmt.Errorf("requesting access: %w", err)
	}
	if !granted {
		return 0, domain.ErrAccessDenied
	}

	containerID, err := s.store.DefaultContainerID(ctx)
	if err != nil {
		return 0, fmt.Errorf("default container: %w", err)
	}

	contacts, err := s.store.UnifiedContacts(ctx, containerID, fields)
	if err != nil {
		return 0, fmt.Errorf("unified contacts: %w", err)
	}

	if err := s.sink.ReplaceContacts(ctx, containerID, contacts); err != nil {
		return 0, fmt.Errorf("writing snapshot: %w", err)
	}

	logger.Info("Snapshot of %d contacts from %s", len(contacts), s.store.Type())
	return len(contacts), nil
}
