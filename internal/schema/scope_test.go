package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xsd-binder/internal/qname"
)

func TestScopeLookupVisibleFromDescendants(t *testing.T) {
	a := NewArena()
	root := a.NewScope(NoScope)
	child := a.NewScope(root.ID())
	grandchild := a.NewScope(child.ID())

	name := qname.New("urn:a", "Foo")
	child.Bind(name, SymbolType, 7)

	for _, s := range []*Scope{child, grandchild} {
		id, ok := s.Lookup(name, SymbolType)
		require.True(t, ok)
		assert.Equal(t, NodeID(7), id)
	}

	_, ok := root.Lookup(name, SymbolType)
	assert.False(t, ok, "bindings never leak upward")

	_, ok = grandchild.Lookup(name, SymbolElement)
	assert.False(t, ok, "kinds are separate tables")
}

func TestScopeNoSidewaysVisibility(t *testing.T) {
	a := NewArena()
	root := a.NewScope(NoScope)
	left := a.NewScope(root.ID())
	right := a.NewScope(root.ID())
	rightChild := a.NewScope(right.ID())

	name := qname.New("", "x")
	left.Bind(name, SymbolElement, 1)

	_, ok := right.Lookup(name, SymbolElement)
	assert.False(t, ok)

	_, ok = rightChild.Lookup(name, SymbolElement)
	assert.False(t, ok)
}

func TestScopeBindOverwrites(t *testing.T) {
	a := NewArena()
	s := a.NewScope(NoScope)
	name := qname.New("urn:a", "T")

	s.Bind(name, SymbolType, 1)
	s.Bind(name, SymbolType, 2)

	id, ok := s.Bound(name, SymbolType)
	require.True(t, ok)
	assert.Equal(t, NodeID(2), id)
	assert.Equal(t, []qname.QName{name}, s.Names(SymbolType))
}

func TestScopeBindInParent(t *testing.T) {
	a := NewArena()
	root := a.NewScope(NoScope)
	child := a.NewScope(root.ID())
	name := qname.New("", "g")

	assert.True(t, child.BindInParent(name, SymbolGroup, 3))

	id, ok := root.Bound(name, SymbolGroup)
	require.True(t, ok)
	assert.Equal(t, NodeID(3), id)

	_, ok = child.Bound(name, SymbolGroup)
	assert.False(t, ok)

	assert.False(t, root.BindInParent(name, SymbolGroup, 4))
}

func TestScopePromote(t *testing.T) {
	a := NewArena()
	container := a.NewScope(NoScope)
	usage := a.NewScope(container.ID())
	definitionParent := a.NewScope(NoScope)
	definition := a.NewScope(definitionParent.ID())

	definition.AppendElement(10)
	definition.AppendElement(11)
	definition.AppendAttribute(20)

	// Flatten the definition into the usage site's container.
	assert.True(t, definition.PromoteElementsToParent(usage))
	assert.True(t, definition.PromoteAttributesToParent(usage))
	assert.Equal(t, []NodeID{10, 11}, container.Elements())
	assert.Equal(t, []NodeID{20}, container.Attributes())

	// Promotion copies; the definition keeps its content.
	assert.Equal(t, []NodeID{10, 11}, definition.Elements())
	assert.Empty(t, definitionParent.Elements())

	// Self promotion goes to the scope's own parent.
	assert.True(t, usage.PromoteElementsToParent(nil))
	assert.False(t, container.PromoteElementsToParent(nil))
}

func TestScopeTypes(t *testing.T) {
	a := NewArena()
	s := a.NewScope(NoScope)
	assert.Equal(t, 0, s.TypeCount())

	s.AppendType(5)
	types := s.Types()
	types[0] = 99

	assert.Equal(t, 1, s.TypeCount())
	assert.Equal(t, []NodeID{5}, s.Types())
}

func TestRef(t *testing.T) {
	var zero Ref
	assert.False(t, zero.IsSet())

	r := Resolved(4)
	id, ok := r.Node()
	assert.True(t, ok)
	assert.Equal(t, NodeID(4), id)
	_, ok = r.Name()
	assert.False(t, ok)

	u := Unresolved(qname.New("urn:ns", "Missing"))
	assert.True(t, u.IsSet())
	assert.False(t, u.IsResolved())
	name, ok := u.Name()
	assert.True(t, ok)
	assert.Equal(t, qname.New("urn:ns", "Missing"), name)
}
