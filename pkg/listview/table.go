package listview

import "github.com/vango-dev/vtree/internal/errors"

// Table is an in-memory Target that tracks its row count and refuses
// batches that break the deletions-before-insertions ordering.
type Table struct {
	count   int
	reloads int
	batches int
}

// NewTable creates a Table with count rows.
func NewTable(count int) *Table {
	return &Table{count: count}
}

// Count returns the number of rows the table currently shows.
func (t *Table) Count() int { return t.count }

// Reloads returns how many full reloads were requested.
func (t *Table) Reloads() int { return t.reloads }

// Batches returns how many batches were applied.
func (t *Table) Batches() int { return t.batches }

// ReloadData implements Target.
func (t *Table) ReloadData(count int) {
	t.count = count
	t.reloads++
}

// ApplyBatch implements Target.
func (t *Table) ApplyBatch(b Batch) {
	last := t.count
	for _, idx := range b.Deletions {
		if idx < 0 || idx >= last {
			errors.Fatal("E020", "deletion index %d outside rows [0,%d)", idx, last)
		}
		last = idx
	}
	t.count -= len(b.Deletions)

	prev := -1
	for _, idx := range b.Insertions {
		if idx <= prev || idx > t.count {
			errors.Fatal("E020", "insertion index %d invalid with %d rows", idx, t.count)
		}
		prev = idx
		t.count++
	}
	t.batches++
}
