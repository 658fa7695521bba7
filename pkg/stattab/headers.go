package stattab

import (
	"github.com/arthur-debert/stattab/pkg/errors"
)

// Header defines one column: a stable key and the name shown in the
// header row. Column order follows slice order.
type Header struct {
	Key  string
	Name string
}

// Columns builds a header list where each display name equals its key
func Columns(keys ...string) []Header {
	headers := make([]Header, len(keys))
	for i, k := range keys {
		headers[i] = Header{Key: k, Name: k}
	}
	return headers
}

// headerEntry is the registry's per-column record. minWidth starts at the
// display name's length and only ever grows.
type headerEntry struct {
	index    int
	key      string
	name     string
	minWidth int
}

// headerRegistry holds the ordered column set
type headerRegistry struct {
	entries []*headerEntry
	byKey   map[string]*headerEntry
}

func newHeaderRegistry(headers []Header) (*headerRegistry, error) {
	r := &headerRegistry{
		byKey: make(map[string]*headerEntry, len(headers)),
	}
	for i, h := range headers {
		if h.Key == "" {
			return nil, errors.New(errors.ErrInvalidInput, "header key must not be empty")
		}
		if _, ok := r.byKey[h.Key]; ok {
			return nil, errors.Newf(errors.ErrDuplicateHeader, "duplicate header key %q", h.Key)
		}
		name := h.Name
		if name == "" {
			name = h.Key
		}
		entry := &headerEntry{
			index:    i,
			key:      h.Key,
			name:     name,
			minWidth: len([]rune(name)),
		}
		r.entries = append(r.entries, entry)
		r.byKey[h.Key] = entry
	}
	return r, nil
}

func (r *headerRegistry) len() int {
	return len(r.entries)
}

func (r *headerRegistry) get(key string) (*headerEntry, bool) {
	e, ok := r.byKey[key]
	return e, ok
}

// rename updates display names, raising minWidth when a new name is
// wider. It validates every key before touching the registry so a failed
// rename leaves the headers untouched.
func (r *headerRegistry) rename(names map[string]string) error {
	for key := range names {
		if _, ok := r.byKey[key]; !ok {
			return errors.Newf(errors.ErrUnknownHeader, "wrong header key %q", key)
		}
	}
	for key, name := range names {
		entry := r.byKey[key]
		entry.name = name
		if w := len([]rune(name)); w > entry.minWidth {
			entry.minWidth = w
		}
	}
	return nil
}

// growToFit raises the column's minWidth to the value's length and
// reports whether growth occurred
func (e *headerEntry) growToFit(value string) bool {
	if w := len([]rune(value)); w > e.minWidth {
		e.minWidth = w
		return true
	}
	return false
}

// headers returns the ordered column definitions as seen by callers
func (r *headerRegistry) headers() []Header {
	out := make([]Header, len(r.entries))
	for i, e := range r.entries {
		out[i] = Header{Key: e.key, Name: e.name}
	}
	return out
}
