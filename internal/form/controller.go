// Package form implements the transaction form controller shared by the
// sales and purchases modules: header fields, the line-item collection,
// serialization and the submission lifecycle.
package form

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/counterdesk/counterdesk/internal/lineitem"
	"github.com/counterdesk/counterdesk/internal/shared"
)

// State enumerates the form lifecycle.
type State string

const (
	// StateOpen is the initial state before any edit.
	StateOpen State = "OPEN"
	// StateEditing is entered on the first edit and looped on.
	StateEditing State = "EDITING"
	// StateSubmitting covers the in-flight backend call.
	StateSubmitting State = "SUBMITTING"
	// StateClosed is terminal: successful submit or cancellation.
	StateClosed State = "CLOSED"
)

var (
	// ErrSubmitInFlight rejects a second submit while one is pending.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrFormClosed rejects operations on a closed form.
	ErrFormClosed = errors.New("form is closed")
)

// Item is one committed line in wire-neutral shape. Module packages map it to
// their flavored payload field names.
type Item struct {
	CatalogEntryID int64
	Quantity       int64
	UnitAmount     float64
}

// Submission is the serialized draft handed to the submitter.
type Submission struct {
	CounterpartyName  string `validate:"required"`
	CounterpartyEmail *string
	Items             []Item
	Notes             *string
	Total             float64
}

// Submitter posts a serialized draft to the backend. Implementations return
// *shared.SubmissionError on rejection.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) error
}

// Config wires a controller instance. OnSuccess is the caller-supplied hook
// run after a successful submission, replacing any ambient coupling between
// the form and its owning module.
type Config struct {
	Items     *lineitem.Collection
	Submitter Submitter
	OnSuccess func()
	Logger    *slog.Logger
}

// Controller owns one transaction draft. Each open form holds its own
// controller and collection exclusively; nothing is shared across instances.
// The lifecycle fields are mutex-guarded because Submit runs off the event
// loop while Cancel and the accessors run on it.
type Controller struct {
	id    uuid.UUID
	items *lineitem.Collection

	mu sync.Mutex

	counterpartyName  string
	counterpartyEmail string
	notes             string

	state     State
	alive     bool
	succeeded bool
	lastErr   error

	submitter Submitter
	onSuccess func()
	logger    *slog.Logger
	validate  *validator.Validate
}

// NewController constructs a controller in the Open state.
func NewController(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &Controller{
		id:        id,
		items:     cfg.Items,
		state:     StateOpen,
		alive:     true,
		submitter: cfg.Submitter,
		onSuccess: cfg.OnSuccess,
		logger:    logger.With(slog.String("form_id", id.String())),
		validate:  validator.New(),
	}
}

// ID returns the instance correlation id.
func (c *Controller) ID() uuid.UUID { return c.id }

// Items exposes the line-item collection for view bindings.
func (c *Controller) Items() *lineitem.Collection { return c.items }

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Succeeded reports whether the form closed through a successful submission.
func (c *Controller) Succeeded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.succeeded
}

// Err returns the error attached to the form after the last failed serialize
// or submit, for display next to the form.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// CounterpartyName returns the raw header field.
func (c *Controller) CounterpartyName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counterpartyName
}

// CounterpartyEmail returns the raw header field.
func (c *Controller) CounterpartyEmail() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counterpartyEmail
}

// Notes returns the raw header field.
func (c *Controller) Notes() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notes
}

// SetCounterpartyName stores the header field and marks the form dirty.
func (c *Controller) SetCounterpartyName(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counterpartyName = v
	c.edited()
}

// SetCounterpartyEmail stores the header field and marks the form dirty.
func (c *Controller) SetCounterpartyEmail(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counterpartyEmail = v
	c.edited()
}

// SetNotes stores the header field and marks the form dirty.
func (c *Controller) SetNotes(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = v
	c.edited()
}

// edited is called with c.mu held.
func (c *Controller) edited() {
	if c.state == StateOpen {
		c.state = StateEditing
	}
}

// Serialize builds the submission payload from the draft. Committed rows are
// emitted in insertion order; uncommitted rows are silently dropped. Blank
// optional fields serialize as nil, never as empty strings.
func (c *Controller) Serialize() (*Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serializeLocked()
}

func (c *Controller) serializeLocked() (*Submission, error) {
	committed := c.items.Committed()
	if len(committed) == 0 {
		return nil, &shared.ValidationError{Reason: shared.ReasonEmpty}
	}

	sub := Submission{
		CounterpartyName:  strings.TrimSpace(c.counterpartyName),
		CounterpartyEmail: optional(c.counterpartyEmail),
		Notes:             optional(c.notes),
		Items:             make([]Item, 0, len(committed)),
	}
	for _, row := range committed {
		item := Item{
			CatalogEntryID: row.CatalogEntryID,
			Quantity:       row.QuantityValue(),
			UnitAmount:     row.UnitAmountValue(),
		}
		sub.Total += float64(item.Quantity) * item.UnitAmount
		sub.Items = append(sub.Items, item)
	}

	if err := c.validate.Struct(sub); err != nil {
		return nil, &shared.ValidationError{Reason: shared.ReasonMissingName}
	}
	return &sub, nil
}

// Submit serializes the draft and posts it. Validation failures never reach
// the network. A failed submission returns the form to Editing with the error
// attached and the draft intact; success closes the form and runs the
// OnSuccess hook exactly once. The lock is released around the backend call,
// so Cancel stays responsive while the request is in flight.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return ErrSubmitInFlight
	case StateClosed:
		c.mu.Unlock()
		return ErrFormClosed
	}

	sub, err := c.serializeLocked()
	if err != nil {
		c.lastErr = err
		c.edited()
		c.mu.Unlock()
		return err
	}

	c.state = StateSubmitting
	c.lastErr = nil
	c.mu.Unlock()

	err = c.submitter.Submit(ctx, *sub)

	c.mu.Lock()
	if !c.alive {
		// The form was closed while the request was in flight; the
		// response is a no-op against it.
		c.mu.Unlock()
		c.logger.Info("late submission response ignored")
		return nil
	}
	if err != nil {
		c.state = StateEditing
		c.lastErr = err
		c.mu.Unlock()
		c.logger.Warn("submission failed", slog.Any("error", err))
		return err
	}

	c.state = StateClosed
	c.alive = false
	c.succeeded = true
	c.mu.Unlock()

	c.logger.Info("submission accepted", slog.Float64("total", sub.Total))
	if c.onSuccess != nil {
		c.onSuccess()
	}
	return nil
}

// Cancel discards the draft with no backend call. Permitted at any point
// before the form closes; an in-flight submission is not interrupted, its
// response is simply ignored.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateClosed {
		return
	}
	c.state = StateClosed
	c.alive = false
}

func optional(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
