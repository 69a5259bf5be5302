package schema

import "xsd-binder/internal/qname"

type refState int

const (
	refUnset refState = iota
	refResolved
	refUnresolved
)

// Ref is the result of a reference lookup: either a resolved node or the
// literal qualified name that failed to resolve. The zero Ref is unset.
type Ref struct {
	state refState
	node  NodeID
	name  qname.QName
}

// Resolved returns a Ref pointing at id.
func Resolved(id NodeID) Ref {
	return Ref{state: refResolved, node: id}
}

// Unresolved returns a Ref carrying the literal name.
func Unresolved(name qname.QName) Ref {
	return Ref{state: refUnresolved, node: NoNode, name: name}
}

// IsSet reports whether the Ref holds either arm.
func (r Ref) IsSet() bool {
	return r.state != refUnset
}

// IsResolved reports whether the Ref points at a node.
func (r Ref) IsResolved() bool {
	return r.state == refResolved
}

// Node returns the resolved node.
func (r Ref) Node() (NodeID, bool) {
	if r.state != refResolved {
		return NoNode, false
	}

	return r.node, true
}

// Name returns the literal name of an unresolved reference.
func (r Ref) Name() (qname.QName, bool) {
	if r.state != refUnresolved {
		return qname.QName{}, false
	}

	return r.name, true
}
