// Package collection wraps an ordered list of entities returned by a finder.
package collection

import (
	"encoding/json"
	"iter"
	"maps"
)

// Attributer is anything exposing its attribute mapping.
type Attributer interface {
	Attributes() map[string]any
}

// Structured is the plain-data form of a collection.
type Structured struct {
	Collection []map[string]any `json:"collection" yaml:"collection"`
	Meta       map[string]any   `json:"meta" yaml:"meta"`
}

// Collection keeps a restartable forward cursor. It is not safe for
// concurrent iteration through the cursor methods; All is.
type Collection[T Attributer] struct {
	items    []T
	meta     map[string]any
	position int
}

func New[T Attributer](items []T, meta map[string]any) *Collection[T] {
	if meta == nil {
		meta = map[string]any{}
	}
	return &Collection[T]{
		items: append([]T(nil), items...),
		meta:  maps.Clone(meta),
	}
}

func (c *Collection[T]) Rewind() {
	c.position = 0
}

func (c *Collection[T]) Valid() bool {
	return c.position >= 0 && c.position < len(c.items)
}

// Current returns the item under the cursor, or the zero value past the end.
func (c *Collection[T]) Current() T {
	if !c.Valid() {
		var zero T
		return zero
	}
	return c.items[c.position]
}

func (c *Collection[T]) Key() int {
	return c.position
}

func (c *Collection[T]) Next() {
	c.position++
}

func (c *Collection[T]) Size() int {
	return len(c.items)
}

func (c *Collection[T]) First() (T, bool) {
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return c.items[0], true
}

func (c *Collection[T]) Last() (T, bool) {
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return c.items[len(c.items)-1], true
}

func (c *Collection[T]) Items() []T {
	return append([]T(nil), c.items...)
}

// All iterates index and item without touching the cursor.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for idx, item := range c.items {
			if !yield(idx, item) {
				return
			}
		}
	}
}

// Meta returns the response keys other than the collection key.
func (c *Collection[T]) Meta() map[string]any {
	return maps.Clone(c.meta)
}

func (c *Collection[T]) ToStructured() Structured {
	structured := Structured{
		Collection: make([]map[string]any, 0, len(c.items)),
		Meta:       c.Meta(),
	}
	for _, item := range c.items {
		structured.Collection = append(structured.Collection, item.Attributes())
	}
	return structured
}

func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToStructured())
}

func (c *Collection[T]) ToJSON() (string, error) {
	encoded, err := c.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
