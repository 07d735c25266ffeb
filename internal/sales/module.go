package sales

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
const fallbackDetail = "Failed to create sale"

// Module owns the sales view state: the fetched list and the catalog used by
// the new-sale form. The displayed list is always the result of a fresh fetch
// after any mutation; there is no optimistic local update. The list is
// mutex-guarded because loads run off the event loop while the view reads it.
type Module struct {
	client  *Client
	catalog *catalog.Service
	logger  *slog.Logger

	mu    sync.Mutex
	sales []Sale
}

// NewModule constructs the sales module.
func NewModule(client *Client, catalogSvc *catalog.Service, logger *slog.Logger) *Module {
	if logger == nil {
		logger = slog.Default()
	}
	return &Module{
		client:  client,
		catalog: catalogSvc,
		logger:  logger.With(slog.String("module", "sales")),
	}
}

// Load refetches the sales list and the catalog. A list failure aborts with a
// FetchError; a catalog failure during this background refresh is logged only,
// since opening a form always loads a fresh snapshot anyway.
func (m *Module) Load(ctx context.Context) error {
	sales, err := m.client.List(ctx)
	if err != nil {
		return &shared.FetchError{Op: "load sales", Err: err}
	}
	m.mu.Lock()
	m.sales = sales
	m.mu.Unlock()

	if _, err := m.catalog.Load(ctx); err != nil {
		m.logger.Warn("background catalog refresh failed", slog.Any("error", err))
	}
	return nil
}

// Sales returns a copy of the last fetched list.
func (m *Module) Sales() []Sale {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Sale, len(m.sales))
	copy(out, m.sales)
	return out
}

// Summary returns the figures for the summary cards.
func (m *Module) Summary() Summary { return Summarize(m.Sales()) }

// OpenForm loads a fresh catalog snapshot and builds a new-sale form bound to
// it. When the catalog cannot be loaded the form is not offered and the
// FetchError is returned for display. Every call yields an independent
// controller with an empty collection; nothing carries over from earlier
// drafts.
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

// Submit implements form.Submitter for the sales flavor.
func (m *Module) Submit(ctx context.Context, sub form.Submission) error {
	req := NewCreateSaleRequest(sub)
	if _, err := m.client.Create(ctx, req); err != nil {
		return asSubmissionError(err)
	}
	return nil
}

// Delete removes a sale and refetches the list.
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
