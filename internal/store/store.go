// Package store owns durability for the whole catalog/attempt/result graph.
// Every mutation in the service layer is a full load -> mutate -> save cycle
// over the snapshot, which keeps writes atomic from the caller's perspective
// as long as callers are serialized. There is no cross-process coordination
// here; a deployment with concurrent writers needs a locking or
// version-check layer on top.
package store

import (
	"context"
	"errors"

	"github.com/portal-provas/exam-service/internal/models"
)

// Namespace is the fixed key under which the snapshot lives in key-value
// backed stores. It matches the original portal's storage key.
const Namespace = "portal_provas_mock_data"

// ErrSnapshotCorrupt reports that a persisted snapshot existed but could not
// be decoded. Load still returns a usable seed state alongside it, so callers
// can log the data loss and keep going.
var ErrSnapshotCorrupt = errors.New("store: persisted snapshot is corrupt")

// Store is the persistence port injected into the catalog and attempt
// managers.
//
// Load returns the current snapshot, or the seed state when nothing has been
// persisted yet. Save replaces the entire snapshot.
type Store interface {
	Load(ctx context.Context) (*models.State, error)
	Save(ctx context.Context, state *models.State) error
}
