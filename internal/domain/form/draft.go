// Package form holds the editable state of one form instance and the field
// controllers that read and write its slots.
package form

import (
	"fmt"
	"sync"
)

// Draft maps field names to their current values for the lifetime of one
// form. Each field controller owns the slots it was created for; address
// autofill is the only cross-field writer.
type Draft struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewDraft creates a draft, optionally pre-populated from a fetched record
func NewDraft(initial map[string]any) *Draft {
	d := &Draft{values: make(map[string]any, len(initial))}
	for k, v := range initial {
		d.values[k] = v
	}
	return d
}

// Get returns the value stored for field
func (d *Draft) Get(field string) (any, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.values[field]
	return v, ok
}

// String returns the field as text; missing or nil fields are empty
func (d *Draft) String(field string) string {
	v, ok := d.Get(field)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Set stores a value for field
func (d *Draft) Set(field string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[field] = value
}

// SetIfEmpty stores value only when the field currently holds no text.
// It reports whether the value was written.
func (d *Draft) SetIfEmpty(field, value string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if cur, ok := d.values[field]; ok && cur != nil {
		if s, isString := cur.(string); !isString || s != "" {
			return false
		}
	}
	d.values[field] = value
	return true
}

// Delete removes a field
func (d *Draft) Delete(field string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.values, field)
}

// Update runs fn with exclusive access to the values
func (d *Draft) Update(fn func(values map[string]any)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.values)
}

// Snapshot returns a copy of every field
func (d *Draft) Snapshot() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]any, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// Reset discards every field
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values = make(map[string]any)
}
