package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/counterdesk/counterdesk/internal/shared"
)

// Fetcher retrieves the reference list from the backend.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]Entry, error)
}

// Service loads catalog snapshots for transaction forms. A failed load is
// surfaced immediately; there is no retry policy, the caller simply invokes
// Load again on the next form open.
type Service struct {
	fetcher Fetcher
	logger  *slog.Logger
	group   singleflight.Group
}

// NewService constructs a catalog service.
func NewService(fetcher Fetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: fetcher, logger: logger}
}

// Load fetches a fresh snapshot. Concurrent calls share a single fetch; each
// call still observes a snapshot no older than the moment it was issued.
func (s *Service) Load(ctx context.Context) (*Snapshot, error) {
	ch := s.group.DoChan("catalog", func() (interface{}, error) {
		entries, err := s.fetcher.FetchCatalog(ctx)
		if err != nil {
			return nil, err
		}
		return NewSnapshot(entries), nil
	})

	select {
	case <-ctx.Done():
		return nil, &shared.FetchError{Op: "load catalog", Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			s.logger.Error("catalog load failed", slog.Any("error", res.Err))
			return nil, &shared.FetchError{Op: "load catalog", Err: res.Err}
		}
		return res.Val.(*Snapshot), nil
	}
}
