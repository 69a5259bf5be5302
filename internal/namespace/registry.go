// Package namespace keeps the registry of XML namespaces reached during
// a conversion run, each paired with the URL of its primary schema document.
package namespace

import (
	"sync"
)

// Well-known namespaces.
const (
	XSD = "http://www.w3.org/2001/XMLSchema"
	XML = "http://www.w3.org/XML/1998/namespace"
)

// Namespace is one XML namespace known to the registry.
type Namespace struct {
	ID     int    // Registration order, stable for one run
	URI    string // Namespace name; empty for no-namespace schemas
	URL    string // Schema document the namespace was first reached through
	Prefix string // Preferred short name, if any document declared one
}

// Registry maps namespace URIs to Namespace values.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	byURI   map[string]*Namespace
	ordered []*Namespace
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byURI: make(map[string]*Namespace),
	}
}

// Register returns the namespace for uri, creating it if needed.
// A non-empty url is recorded only if the namespace has no URL yet.
func (r *Registry) Register(uri, url string) *Namespace {
	r.mu.Lock()
	defer r.mu.Unlock()

	ns, ok := r.byURI[uri]
	if !ok {
		ns = &Namespace{ID: len(r.ordered), URI: uri}
		r.byURI[uri] = ns
		r.ordered = append(r.ordered, ns)
	}

	if ns.URL == "" && url != "" {
		ns.URL = url
	}

	return ns
}

// Lookup returns the namespace registered for uri.
func (r *Registry) Lookup(uri string) (*Namespace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ns, ok := r.byURI[uri]

	return ns, ok
}

// SetPrefix records a preferred prefix for the namespace, first one wins.
func (r *Registry) SetPrefix(ns *Namespace, prefix string) {
	if prefix == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ns.Prefix == "" {
		ns.Prefix = prefix
	}
}

// All returns every registered namespace in registration order.
func (r *Registry) All() []*Namespace {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Namespace, len(r.ordered))
	copy(out, r.ordered)

	return out
}
