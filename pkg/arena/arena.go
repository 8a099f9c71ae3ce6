// Package arena stores match entities in append-only slices addressed by
// generation-checked handles.
//
// A Handle[T] is only valid for the arena generation it was issued in:
// Reset starts a new generation and every previously issued handle reports
// stale instead of silently aliasing a new entity.
package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleHandle is returned when a handle belongs to an older generation.
	ErrStaleHandle = errors.New("arena: stale handle")
	// ErrOutOfRange is returned when a handle index is past the arena length.
	ErrOutOfRange = errors.New("arena: handle out of range")
	// ErrNilHandle is returned for the zero Handle.
	ErrNilHandle = errors.New("arena: nil handle")
)

// Handle addresses one element of an Arena[T]. The zero value is the nil handle.
type Handle[T any] struct {
	index uint32
	gen   uint32
}

// Nil reports whether h is the zero handle.
func (h Handle[T]) Nil() bool { return h.gen == 0 }

// Index returns the slot index of h. The value is meaningless for a nil handle.
func (h Handle[T]) Index() int { return int(h.index) }

func (h Handle[T]) String() string {
	if h.Nil() {
		return "nil"
	}
	return fmt.Sprintf("#%d/g%d", h.index, h.gen)
}

// Arena is an append-only collection of T. It is not safe for concurrent use.
type Arena[T any] struct {
	items []T
	gen   uint32
}

// New returns an empty arena with room for capacity elements.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{items: make([]T, 0, capacity), gen: 1}
}

// Insert appends v and returns its handle.
func (a *Arena[T]) Insert(v T) Handle[T] {
	if a.gen == 0 {
		a.gen = 1
	}
	a.items = append(a.items, v)
	return Handle[T]{index: uint32(len(a.items) - 1), gen: a.gen}
}

// Len returns the number of elements.
func (a *Arena[T]) Len() int { return len(a.items) }

// Get returns the element addressed by h, or false when h is nil, stale or
// out of range.
func (a *Arena[T]) Get(h Handle[T]) (*T, bool) {
	v, err := a.Lookup(h)
	return v, err == nil
}

// Lookup is Get with the reason for failure.
func (a *Arena[T]) Lookup(h Handle[T]) (*T, error) {
	switch {
	case h.Nil():
		return nil, ErrNilHandle
	case h.gen != a.gen:
		return nil, fmt.Errorf("%w: %s, arena generation %d", ErrStaleHandle, h, a.gen)
	case int(h.index) >= len(a.items):
		return nil, fmt.Errorf("%w: %s, len %d", ErrOutOfRange, h, len(a.items))
	}
	return &a.items[h.index], nil
}

// At returns the i-th element and its handle. It panics if i is out of range,
// like a slice index.
func (a *Arena[T]) At(i int) (*T, Handle[T]) {
	return &a.items[i], Handle[T]{index: uint32(i), gen: a.gen}
}

// HandleAt returns the handle of the i-th element.
func (a *Arena[T]) HandleAt(i int) Handle[T] {
	return Handle[T]{index: uint32(i), gen: a.gen}
}

// Reset drops every element and starts a new generation.
func (a *Arena[T]) Reset() {
	clear(a.items)
	a.items = a.items[:0]
	a.gen++
	if a.gen == 0 {
		a.gen = 1
	}
}
