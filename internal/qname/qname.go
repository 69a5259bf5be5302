package qname

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// QName is an immutable namespace URI + local name pair.
type QName struct {
	Namespace string // e.g., "http://www.w3.org/2001/XMLSchema"
	Local     string // e.g., "string"
}

// Resolver maps a namespace prefix to a namespace URI.
// The empty prefix denotes the default namespace.
type Resolver interface {
	ResolvePrefix(prefix string) (uri string, ok bool)
}

// New returns the QName for the given namespace and local name.
func New(namespace, local string) QName {
	return QName{Namespace: namespace, Local: local}
}

// Full returns the fully qualified "{namespace}local" form.
func (q QName) Full() string {
	if q.Namespace == "" {
		return q.Local
	}

	return "{" + q.Namespace + "}" + q.Local
}

// String returns the fully qualified form.
func (q QName) String() string {
	return q.Full()
}

// IsZero reports whether the name has no local part.
func (q QName) IsZero() bool {
	return q.Local == ""
}

// Split separates an optionally prefixed raw name into prefix and local part.
func Split(raw string) (prefix, local string) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		return raw[:i], raw[i+1:]
	}

	return "", raw
}

// Parse builds a QName from a raw, possibly prefixed, string.
// The prefix is resolved through r. An unknown prefix is an error; the
// caller decides whether that is fatal.
func Parse(raw string, r Resolver) (QName, error) {
	prefix, local := Split(raw)
	if local == "" {
		return QName{}, fmt.Errorf("invalid qualified name %q: empty local part", raw)
	}

	if r == nil {
		return QName{Local: local}, nil
	}

	uri, ok := r.ResolvePrefix(prefix)
	if !ok && prefix != "" {
		return QName{Local: local}, fmt.Errorf("invalid qualified name %q: unknown prefix %q", raw, prefix)
	}

	return QName{Namespace: uri, Local: local}, nil
}

// Compare orders names by namespace, then local name.
func Compare(a, b QName) int {
	if c := cmp.Compare(a.Namespace, b.Namespace); c != 0 {
		return c
	}

	return cmp.Compare(a.Local, b.Local)
}

// SortedKeys returns the keys of m in Compare order.
func SortedKeys[V any](m map[QName]V) []QName {
	keys := make([]QName, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.SortFunc(keys, Compare)

	return keys
}
