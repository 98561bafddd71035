package model

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by Reorder when either index is outside the collection.
var ErrIndexOutOfRange = errors.New("index out of range")

// Collection is the ordered list of shortcuts. Order is grid order (row-major).
//
// Every command returns a new Collection and leaves the receiver untouched, so
// callers decide when to persist the result.
type Collection []Shortcut

// Len returns the number of shortcuts.
func (c Collection) Len() int {
	return len(c)
}

// Clone returns a copy that shares no backing array with c.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// IndexOf returns the position of the shortcut with the given ID, or -1.
func (c Collection) IndexOf(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Get finds a shortcut by ID, returns nil if not found.
func (c Collection) Get(id string) *Shortcut {
	if i := c.IndexOf(id); i >= 0 {
		s := c[i]
		return &s
	}
	return nil
}

// HasURL reports whether any shortcut points at url.
func (c Collection) HasURL(url string) bool {
	for _, s := range c {
		if s.URL == url {
			return true
		}
	}
	return false
}

// Add appends s to the end of the collection.
func (c Collection) Add(s Shortcut) Collection {
	out := make(Collection, len(c), len(c)+1)
	copy(out, c)
	return append(out, s)
}

// Update replaces the shortcut whose ID matches s.ID.
// found is false, and the collection is returned unchanged, when no ID matches.
func (c Collection) Update(s Shortcut) (out Collection, found bool) {
	i := c.IndexOf(s.ID)
	if i < 0 {
		return c, false
	}
	out = c.Clone()
	out[i] = s
	return out, true
}

// Remove drops the shortcut with the given ID.
// found is false, and the collection is returned unchanged, when the ID is absent.
func (c Collection) Remove(id string) (out Collection, found bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, false
	}
	out = make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	out = append(out, c[i+1:]...)
	return out, true
}

// Reorder moves the shortcut at from to position to, shifting the entries in between.
// Indices outside [0, Len) are rejected.
func (c Collection) Reorder(from, to int) (Collection, error) {
	if from < 0 || from >= len(c) || to < 0 || to >= len(c) {
		return c, fmt.Errorf("reorder %d -> %d of %d: %w", from, to, len(c), ErrIndexOutOfRange)
	}
	out := c.Clone()
	if from == to {
		return out, nil
	}
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}
