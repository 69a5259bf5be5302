package schema

// NodeID addresses a Node in its Arena.
type NodeID int

// ScopeID addresses a Scope in its Arena.
type ScopeID int

const (
	NoNode  NodeID  = -1
	NoScope ScopeID = -1
)

// Arena owns every node and scope of one conversion run.
// Links between nodes and scopes are indices, never owning pointers.
type Arena struct {
	nodes  []*Node
	scopes []*Scope
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewScope allocates a scope whose enclosing scope is parent.
func (a *Arena) NewScope(parent ScopeID) *Scope {
	s := &Scope{
		arena:  a,
		id:     ScopeID(len(a.scopes)),
		parent: parent,
	}
	a.scopes = append(a.scopes, s)

	return s
}

// Scope returns the scope with the given id, or nil.
func (a *Arena) Scope(id ScopeID) *Scope {
	if id < 0 || int(id) >= len(a.scopes) {
		return nil
	}

	return a.scopes[id]
}

// Node returns the node with the given id, or nil.
func (a *Arena) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(a.nodes) {
		return nil
	}

	return a.nodes[id]
}

// Nodes returns the number of allocated nodes.
func (a *Arena) Nodes() int {
	return len(a.nodes)
}

// Scopes returns the number of allocated scopes.
func (a *Arena) Scopes() int {
	return len(a.scopes)
}

func (a *Arena) addNode(n *Node) NodeID {
	n.ID = NodeID(len(a.nodes))
	a.nodes = append(a.nodes, n)

	return n.ID
}
