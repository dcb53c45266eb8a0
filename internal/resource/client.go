package resource

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/simp-lee/hrdesk/internal/domain"
)

// Operation names used in logs, metrics and events.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Event describes a successful mutation. Record is nil for deletes. For
// actions, Action is the action name.
type Event struct {
	Resource string
	Action   string
	ID       uint
	Record   any
	Source   string
}

// Observer is notified after every successful mutation.
type Observer interface {
	Observe(ctx context.Context, e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, e Event)

func (f ObserverFunc) Observe(ctx context.Context, e Event) { f(ctx, e) }

// Options configure a Client. All fields are optional.
type Options struct {
	Logger    *slog.Logger
	Metrics   *Metrics
	Observers []Observer
}

// Client is the typed access point for one resource. It validates nothing
// itself; it delegates to its DataSource and adds logging, metrics and
// mutation events.
type Client[T any, C Creator[T], U Patcher[T]] struct {
	def       *Definition[T]
	source    DataSource[T, C, U]
	logger    *slog.Logger
	metrics   *Metrics
	observers []Observer
}

func NewClient[T any, C Creator[T], U Patcher[T]](def *Definition[T], source DataSource[T, C, U], opts Options) *Client[T, C, U] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client[T, C, U]{
		def:       def,
		source:    source,
		logger:    logger.With("resource", def.Name, "source", source.Kind()),
		metrics:   opts.Metrics,
		observers: slices.Clone(opts.Observers),
	}
}

// Definition returns the resource definition the client was built from.
func (c *Client[T, C, U]) Definition() *Definition[T] { return c.def }

// Kind names the underlying data source.
func (c *Client[T, C, U]) Kind() string { return c.source.Kind() }

// Observe adds an observer. It must be called before the client is shared.
func (c *Client[T, C, U]) Observe(o Observer) { c.observers = append(c.observers, o) }

func (c *Client[T, C, U]) List(ctx context.Context, req domain.PageRequest) (*domain.Page[T], error) {
	started := time.Now()
	page, err := c.source.List(ctx, req)
	c.done(ctx, OpList, 0, started, err)
	return page, err
}

func (c *Client[T, C, U]) Get(ctx context.Context, id uint) (*T, error) {
	started := time.Now()
	rec, err := c.source.Get(ctx, id)
	c.done(ctx, OpGet, id, started, err)
	return rec, err
}

func (c *Client[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	started := time.Now()
	rec, err := c.source.Create(ctx, in)
	var id uint
	if rec != nil {
		id = meta(rec).ID
	}
	c.done(ctx, OpCreate, id, started, err)
	if err == nil {
		c.notify(ctx, OpCreate, id, rec)
	}
	return rec, err
}

func (c *Client[T, C, U]) Update(ctx context.Context, id uint, in U) (*T, error) {
	started := time.Now()
	rec, err := c.source.Update(ctx, id, in)
	c.done(ctx, OpUpdate, id, started, err)
	if err == nil {
		c.notify(ctx, OpUpdate, id, rec)
	}
	return rec, err
}

func (c *Client[T, C, U]) Delete(ctx context.Context, id uint) error {
	started := time.Now()
	err := c.source.Delete(ctx, id)
	c.done(ctx, OpDelete, id, started, err)
	if err == nil {
		c.notify(ctx, OpDelete, id, nil)
	}
	return err
}

// Do runs the named action on record id.
func (c *Client[T, C, U]) Do(ctx context.Context, id uint, action string) (*T, error) {
	started := time.Now()
	rec, err := c.source.Do(ctx, id, action)
	c.done(ctx, action, id, started, err)
	if err == nil {
		c.notify(ctx, action, id, rec)
	}
	return rec, err
}

func (c *Client[T, C, U]) done(ctx context.Context, op string, id uint, started time.Time, err error) {
	c.metrics.observe(c.def.Name, op, c.source.Kind(), started, err)

	attrs := []any{"op", op, "duration", time.Since(started)}
	if id != 0 {
		attrs = append(attrs, "id", id)
	}
	switch {
	case err == nil:
		c.logger.DebugContext(ctx, "resource operation", attrs...)
	case domain.IsNotFound(err) || domain.IsValidation(err) || domain.IsAlreadyExists(err):
		c.logger.InfoContext(ctx, "resource operation rejected", append(attrs, "error", err)...)
	default:
		c.logger.ErrorContext(ctx, "resource operation failed", append(attrs, "error", err)...)
	}
}

func (c *Client[T, C, U]) notify(ctx context.Context, action string, id uint, rec *T) {
	if len(c.observers) == 0 {
		return
	}
	e := Event{Resource: c.def.Name, Action: action, ID: id, Source: c.source.Kind()}
	if rec != nil {
		e.Record = *rec
	}
	for _, o := range c.observers {
		o.Observe(ctx, e)
	}
}
