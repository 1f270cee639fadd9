// Package linkreg assigns each longname a stable unique identifier for
// link-generating consumers. Doclets are a multimap over longnames;
// this mapping is strictly 1:1. Identifiers are deterministic v5 UUIDs,
// so repeated runs over the same input assign the same IDs.
package linkreg

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// namespace scopes the v5 UUID derivation for longname identifiers.
var namespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8") // RFC 4122 DNS namespace

// Registry maps longnames to identifiers and back. Safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	ids     map[string]string // longname -> id
	reverse map[string]string // id -> longname
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		ids:     make(map[string]string),
		reverse: make(map[string]string),
	}
}

// ID returns the identifier for longname, assigning it on first use.
func (r *Registry) ID(longname string) string {
	r.mu.RLock()
	id, ok := r.ids[longname]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[longname]; ok {
		return id
	}
	id = uuid.NewSHA1(namespace, []byte(longname)).String()
	r.ids[longname] = id
	r.reverse[id] = longname
	return id
}

// Longname returns the longname registered under id.
func (r *Registry) Longname(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ln, ok := r.reverse[id]
	return ln, ok
}

// Longnames returns the registered longnames in sorted order.
func (r *Registry) Longnames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ids))
	for ln := range r.ids {
		out = append(out, ln)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered longnames.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}
