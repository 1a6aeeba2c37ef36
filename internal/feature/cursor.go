package feature

import (
	"errors"
	"fmt"

	"github.com/skytracker/skytracker/internal/seniverse"
)

// ErrBoundary is returned when paging past either end of a list. It is a
// notice, not a failure: the current entry is returned alongside it.
var ErrBoundary = errors.New("no more entries")

var errNotLoaded = fmt.Errorf("nothing loaded yet: %w", seniverse.ErrNoData)

// Page is one entry of a paged list with its position.
type Page[T any] struct {
	Item  T   `json:"item"`
	Index int `json:"index"`
	Total int `json:"total"`
}

// Cursor is a zero-based position over a fixed list. It clamps at both ends.
type Cursor[T any] struct {
	items []T
	index int
}

// NewCursor creates a cursor at the first item.
func NewCursor[T any](items []T) *Cursor[T] {
	return &Cursor[T]{items: items}
}

// Len returns the number of items.
func (c *Cursor[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Index returns the current position.
func (c *Cursor[T]) Index() int {
	if c == nil {
		return 0
	}
	return c.index
}

// Current returns the page at the current position.
func (c *Cursor[T]) Current() (Page[T], error) {
	if c.Len() == 0 {
		return Page[T]{}, errNotLoaded
	}
	return c.page(), nil
}

// Next advances one step. At the last item it stays put and returns the
// current page with ErrBoundary.
func (c *Cursor[T]) Next() (Page[T], error) {
	if c.Len() == 0 {
		return Page[T]{}, errNotLoaded
	}
	if c.index >= len(c.items)-1 {
		return c.page(), fmt.Errorf("already at the last entry: %w", ErrBoundary)
	}
	c.index++
	return c.page(), nil
}

// Prev steps back one. At the first item it stays put and returns the
// current page with ErrBoundary.
func (c *Cursor[T]) Prev() (Page[T], error) {
	if c.Len() == 0 {
		return Page[T]{}, errNotLoaded
	}
	if c.index <= 0 {
		return c.page(), fmt.Errorf("already at the first entry: %w", ErrBoundary)
	}
	c.index--
	return c.page(), nil
}

func (c *Cursor[T]) page() Page[T] {
	return Page[T]{Item: c.items[c.index], Index: c.index, Total: len(c.items)}
}
