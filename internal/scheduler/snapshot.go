package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/segyhp/loan-backoffice/internal/domain"
	"github.com/segyhp/loan-backoffice/internal/storage"
)

// Exporter renders the documents a snapshot keeps.
type Exporter interface {
	Pending(ctx context.Context) (*domain.Document, error)
	General(ctx context.Context) (*domain.Document, error)
}

// Cleaner prunes snapshots past their retention.
type Cleaner interface {
	CleanupOlderThan(d time.Duration) error
}

// Snapshot stores a copy of the general report and the pending-loans listing.
type Snapshot struct {
	exports   Exporter
	store     storage.Storage
	retention time.Duration
	timeout   time.Duration
}

func NewSnapshot(exports Exporter, store storage.Storage, retention time.Duration) *Snapshot {
	return &Snapshot{
		exports:   exports,
		store:     store,
		retention: retention,
		timeout:   2 * time.Minute,
	}
}

// Run renders and saves both documents, then prunes old snapshots when the
// store supports it. It returns the saved locations.
func (s *Snapshot) Run(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	renders := []struct {
		name   string
		render func(context.Context) (*domain.Document, error)
	}{
		{name: "general", render: s.exports.General},
		{name: "pendientes", render: s.exports.Pending},
	}

	locations := make([]string, 0, len(renders))
	for _, r := range renders {
		doc, err := r.render(ctx)
		if err != nil {
			return locations, fmt.Errorf("render %s snapshot: %w", r.name, err)
		}

		location, err := s.store.Save(ctx, doc.FileName, doc.Data)
		if err != nil {
			return locations, fmt.Errorf("save %s snapshot: %w", r.name, err)
		}
		locations = append(locations, location)
		slog.InfoContext(ctx, "snapshot saved", "report", r.name, "location", location, "bytes", len(doc.Data))
	}

	if cleaner, ok := s.store.(Cleaner); ok && s.retention > 0 {
		if err := cleaner.CleanupOlderThan(s.retention); err != nil {
			slog.WarnContext(ctx, "snapshot cleanup failed", "error", err)
		}
	}

	return locations, nil
}
