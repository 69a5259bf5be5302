package schema

import (
	"slices"

	"xsd-binder/internal/qname"
)

// bindings is the per-kind symbol table record of a scope.
type bindings struct {
	elements        map[qname.QName]NodeID
	attributes      map[qname.QName]NodeID
	groups          map[qname.QName]NodeID
	attributeGroups map[qname.QName]NodeID
	types           map[qname.QName]NodeID
}

func (b *bindings) table(kind SymbolKind) *map[qname.QName]NodeID {
	switch kind {
	case SymbolElement:
		return &b.elements
	case SymbolAttribute:
		return &b.attributes
	case SymbolGroup:
		return &b.groups
	case SymbolAttributeGroup:
		return &b.attributeGroups
	case SymbolType:
		return &b.types
	default:
		return nil
	}
}

// Scope is a lexical symbol table owned by one tag node.
//
// Names bound in a scope are visible from every descendant scope and
// from no sibling. The pending lists hold content contributed by the
// owning node's children until it is promoted to an ancestor.
type Scope struct {
	arena  *Arena
	id     ScopeID
	parent ScopeID

	bindings bindings

	elements   []NodeID
	attributes []NodeID
	types      []NodeID
}

// ID returns the scope's arena index.
func (s *Scope) ID() ScopeID {
	return s.id
}

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.arena.Scope(s.parent)
}

// Bind inserts target under (name, kind), overwriting any existing binding.
func (s *Scope) Bind(name qname.QName, kind SymbolKind, target NodeID) {
	tbl := s.bindings.table(kind)
	if tbl == nil {
		return
	}

	if *tbl == nil {
		*tbl = make(map[qname.QName]NodeID)
	}

	(*tbl)[name] = target
}

// BindInParent binds into the enclosing scope. It is a no-op returning
// false on a root scope.
func (s *Scope) BindInParent(name qname.QName, kind SymbolKind, target NodeID) bool {
	parent := s.Parent()
	if parent == nil {
		return false
	}

	parent.Bind(name, kind, target)

	return true
}

// Bound returns the binding for (name, kind) in this scope only.
func (s *Scope) Bound(name qname.QName, kind SymbolKind) (NodeID, bool) {
	tbl := s.bindings.table(kind)
	if tbl == nil || *tbl == nil {
		return NoNode, false
	}

	id, ok := (*tbl)[name]

	return id, ok
}

// Lookup walks from this scope toward the root and returns the first
// binding for (name, kind).
func (s *Scope) Lookup(name qname.QName, kind SymbolKind) (NodeID, bool) {
	for cur := s; cur != nil; cur = cur.Parent() {
		if id, ok := cur.Bound(name, kind); ok {
			return id, true
		}
	}

	return NoNode, false
}

// Names returns the names bound under kind in this scope, sorted.
func (s *Scope) Names(kind SymbolKind) []qname.QName {
	tbl := s.bindings.table(kind)
	if tbl == nil {
		return nil
	}

	return qname.SortedKeys(*tbl)
}

// AppendElement adds an element to this scope's pending list.
func (s *Scope) AppendElement(id NodeID) {
	s.elements = append(s.elements, id)
}

// AppendAttribute adds an attribute to this scope's pending list.
func (s *Scope) AppendAttribute(id NodeID) {
	s.attributes = append(s.attributes, id)
}

// AppendType adds a type to this scope's pending list.
func (s *Scope) AppendType(id NodeID) {
	s.types = append(s.types, id)
}

// PromoteElementsToParent copies this scope's pending elements into the
// parent of self. A nil self means this scope. Passing another scope
// flattens a referenced construct's content into the referencing site.
func (s *Scope) PromoteElementsToParent(self *Scope) bool {
	target := s.promotionTarget(self)
	if target == nil {
		return false
	}

	target.elements = append(target.elements, s.elements...)

	return true
}

// PromoteAttributesToParent is PromoteElementsToParent for attributes.
func (s *Scope) PromoteAttributesToParent(self *Scope) bool {
	target := s.promotionTarget(self)
	if target == nil {
		return false
	}

	target.attributes = append(target.attributes, s.attributes...)

	return true
}

func (s *Scope) promotionTarget(self *Scope) *Scope {
	if self == nil {
		self = s
	}

	return self.Parent()
}

// Elements returns a copy of the pending element list.
func (s *Scope) Elements() []NodeID {
	return slices.Clone(s.elements)
}

// Attributes returns a copy of the pending attribute list.
func (s *Scope) Attributes() []NodeID {
	return slices.Clone(s.attributes)
}

// TypeCount returns the number of pending types.
func (s *Scope) TypeCount() int {
	return len(s.types)
}

// Types returns a copy of the pending type list.
func (s *Scope) Types() []NodeID {
	return slices.Clone(s.types)
}
