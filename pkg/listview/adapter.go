package listview

import (
	"log/slog"

	"github.com/vango-dev/vtree/pkg/seqdiff"
)

// Mode says how an update reached the target.
type Mode uint8

const (
	ModeNone   Mode = iota // rows were equal; the target was not touched
	ModeBatch              // animated deletions and insertions
	ModeReload             // full reload
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeBatch:
		return "batch"
	case ModeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Batch is one animated update. Deletions are indices into the old rows in
// descending order; Insertions are indices into the new rows in ascending
// order. Apply all deletions first.
type Batch struct {
	Deletions  []int
	Insertions []int
}

// Target is the list view being driven.
type Target interface {
	ReloadData(count int)
	ApplyBatch(b Batch)
}

// Update describes what SetRows did.
type Update struct {
	Mode       Mode
	OldCount   int
	NewCount   int
	Deletions  int
	Insertions int
}

type options struct {
	maxRows  int
	observer func(Update)
	logger   *slog.Logger
}

// Option configures an Adapter.
type Option func(*options)

// WithMaxRows sets the row limit above which updates fall back to a full
// reload. Zero disables the fallback.
func WithMaxRows(n int) Option {
	return func(o *options) { o.maxRows = n }
}

// WithObserver registers a callback run after every SetRows.
func WithObserver(fn func(Update)) Option {
	return func(o *options) { o.observer = fn }
}

// WithLogger sets the adapter's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Adapter drives a Target from successive row slices.
type Adapter[T any] struct {
	target Target
	eq     func(a, b T) bool
	rows   []T
	opts   options
}

// NewFunc creates an Adapter comparing rows with eq.
func NewFunc[T any](target Target, eq func(a, b T) bool, opts ...Option) *Adapter[T] {
	o := options{logger: slog.Default().With("component", "listview")}
	for _, opt := range opts {
		opt(&o)
	}
	return &Adapter[T]{target: target, eq: eq, opts: o}
}

// NewComparable creates an Adapter comparing rows with ==.
func NewComparable[T comparable](target Target, opts ...Option) *Adapter[T] {
	return NewFunc[T](target, func(a, b T) bool { return a == b }, opts...)
}

// Rows returns the current rows. Callers must not mutate the slice.
func (a *Adapter[T]) Rows() []T {
	return a.rows
}

// Len returns the current row count.
func (a *Adapter[T]) Len() int {
	return len(a.rows)
}

// Row returns the row at index i.
func (a *Adapter[T]) Row(i int) T {
	return a.rows[i]
}

// SetRows replaces the rows and updates the target.
func (a *Adapter[T]) SetRows(rows []T) Update {
	next := append([]T(nil), rows...)
	u := Update{OldCount: len(a.rows), NewCount: len(next)}

	if seqdiff.Exceeds(len(a.rows), len(next), a.opts.maxRows) {
		u.Mode = ModeReload
		a.rows = next
		a.target.ReloadData(len(next))
		a.opts.logger.Info("list reload",
			"old_rows", u.OldCount,
			"new_rows", u.NewCount,
			"max_rows", a.opts.maxRows,
		)
		a.notify(u)
		return u
	}

	cs := seqdiff.DiffFunc(a.rows, next, a.eq)
	a.rows = next
	if cs.IsEmpty() {
		a.notify(u)
		return u
	}

	deletions := cs.DeletedIndexes()
	for l, r := 0, len(deletions)-1; l < r; l, r = l+1, r-1 {
		deletions[l], deletions[r] = deletions[r], deletions[l]
	}
	u.Mode = ModeBatch
	u.Deletions = len(deletions)
	u.Insertions = len(cs.Insertions)
	a.target.ApplyBatch(Batch{Deletions: deletions, Insertions: cs.InsertedIndexes()})
	a.notify(u)
	return u
}

// Reload forces a full reload with the current rows.
func (a *Adapter[T]) Reload() {
	a.target.ReloadData(len(a.rows))
	a.notify(Update{Mode: ModeReload, OldCount: len(a.rows), NewCount: len(a.rows)})
}

func (a *Adapter[T]) notify(u Update) {
	if a.opts.observer != nil {
		a.opts.observer(u)
	}
}
