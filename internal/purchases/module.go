package purchases

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/counterdesk/counterdesk/internal/catalog"
	"github.com/counterdesk/counterdesk/internal/form"
	"github.com/counterdesk/counterdesk/internal/lineitem"
	"github.com/counterdesk/counterdesk/internal/platform/rest"
	"github.com/counterdesk/counterdesk/internal/shared"
)

const reloadTimeout = 30 * time.Second

// fallbackDetail is shown when the backend rejection carries no detail.
const fallbackDetail = "Failed to create purchase"

// Module owns the purchases view state. It mirrors the sales module: the
// displayed list is always a fresh fetch after any mutation, every form open
// binds a new catalog snapshot, and the list is mutex-guarded because loads
// run off the event loop while the view reads it.
type Module struct {
	client  *Client
	catalog *catalog.Service
	logger  *slog.Logger

	mu        sync.Mutex
	purchases []Purchase
}

// NewModule constructs the purchases module.
func NewModule(client *Client, catalogSvc *catalog.Service, logger *slog.Logger) *Module {
	if logger == nil {
		logger = slog.Default()
	}
	return &Module{
		client:  client,
		catalog: catalogSvc,
		logger:  logger.With(slog.String("module", "purchases")),
	}
}

// Load refetches the purchases list and the catalog. A list failure aborts
// with a FetchError; a catalog failure during this background refresh is
// logged only.
func (m *Module) Load(ctx context.Context) error {
	purchases, err := m.client.List(ctx)
	if err != nil {
		return &shared.FetchError{Op: "load purchases", Err: err}
	}
	m.mu.Lock()
	m.purchases = purchases
	m.mu.Unlock()

	if _, err := m.catalog.Load(ctx); err != nil {
		m.logger.Warn("background catalog refresh failed", slog.Any("error", err))
	}
	return nil
}

// Purchases returns a copy of the last fetched list.
func (m *Module) Purchases() []Purchase {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Purchase, len(m.purchases))
	copy(out, m.purchases)
	return out
}

// Summary returns the figures for the summary cards.
func (m *Module) Summary() Summary { return Summarize(m.Purchases()) }

// OpenForm loads a fresh catalog snapshot and builds a new-purchase form
// bound to it. Every call yields an independent controller with an empty
// collection.
func (m *Module) OpenForm(ctx context.Context) (*form.Controller, error) {
	snap, err := m.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	return form.NewController(form.Config{
		Items:     lineitem.New(snap),
		Submitter: m,
		OnSuccess: m.reload,
		Logger:    m.logger,
	}), nil
}

// Submit implements form.Submitter for the purchases flavor.
func (m *Module) Submit(ctx context.Context, sub form.Submission) error {
	req := NewCreatePurchaseRequest(sub)
	if _, err := m.client.Create(ctx, req); err != nil {
		return asSubmissionError(err)
	}
	return nil
}

// Delete removes a purchase and refetches the list.
func (m *Module) Delete(ctx context.Context, id int64) error {
	if err := m.client.Delete(ctx, id); err != nil {
		return asSubmissionError(err)
	}
	return m.Load(ctx)
}

func (m *Module) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()
	if err := m.Load(ctx); err != nil {
		m.logger.Error("reload after submit failed", slog.Any("error", err))
	}
}

func asSubmissionError(err error) error {
	detail := fallbackDetail
	var apiErr *rest.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		detail = apiErr.Detail
	}
	return &shared.SubmissionError{Detail: detail, Err: err}
}
