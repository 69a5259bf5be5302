package schema

import (
	"fmt"

	"xsd-binder/internal/diagnostic"
)

// ResolveTree runs the resolve phase post-order over the subtree rooted at
// id. Nodes already resolved are skipped, so it may be called again for
// any node, e.g. to resolve a referenced group on demand. It returns false
// if id is still being resolved further up the stack (a reference cycle).
func (c *Context) ResolveTree(id NodeID) bool {
	n := c.arena.Node(id)
	if n == nil {
		return false
	}

	switch n.state {
	case stateDone:
		return true
	case stateResolving:
		return false
	}

	n.state = stateResolving

	for _, child := range n.Children {
		c.ResolveTree(child)
	}

	c.resolve(n)
	n.state = stateDone

	return true
}

// resolve runs the resolve phase of one node whose descendants are done.
func (c *Context) resolve(n *Node) {
	switch n.Kind {
	case KindElement:
		c.resolveElement(n)
	case KindAttribute:
		c.resolveAttribute(n)
	case KindGroup:
		c.resolveGroup(n)
	case KindAttributeGroup:
		c.resolveAttributeGroup(n)
	case KindSequence, KindChoice, KindAll:
		c.arena.Scope(n.Scope).PromoteElementsToParent(nil)
	case KindSimpleContent, KindComplexContent:
		c.resolveContent(n)
	case KindExtension, KindRestriction:
		c.resolveDerivation(n)
	case KindUnknown, KindRoot, KindSchema,
		KindImport, KindInclude,
		KindSimpleType, KindComplexType:
		// Nothing to resolve.
	}
}

func (c *Context) resolveElement(n *Node) {
	scope := c.arena.Scope(n.Scope)

	effective := n.ID
	if n.Ref != "" {
		effective = c.resolveRef(n, SymbolElement, diagnostic.CodeUnresolvedElement)
	}

	if effective != NoNode {
		if parent := scope.Parent(); parent != nil {
			parent.AppendElement(effective)
		}
	}

	switch {
	case n.TypeName != "":
		n.Type = c.resolveType(n, n.TypeName, diagnostic.CodeUnresolvedType)
	case scope.TypeCount() == 1:
		n.Type = Resolved(scope.Types()[0])
	}
}

func (c *Context) resolveAttribute(n *Node) {
	scope := c.arena.Scope(n.Scope)

	effective := n.ID
	if n.Ref != "" {
		effective = c.resolveRef(n, SymbolAttribute, diagnostic.CodeUnresolvedAttribute)
	}

	if effective != NoNode {
		if parent := scope.Parent(); parent != nil {
			parent.AppendAttribute(effective)
		}
	}

	if n.TypeName != "" {
		n.Type = c.resolveType(n, n.TypeName, diagnostic.CodeUnresolvedType)
	}
}

func (c *Context) resolveGroup(n *Node) {
	if n.Ref == "" {
		return
	}

	target := c.resolveRef(n, SymbolGroup, diagnostic.CodeUnresolvedGroup)

	// Named groups are only templates for usage sites.
	if n.IsNamed() || target == NoNode {
		return
	}

	if !c.ensureResolved(n, target) {
		return
	}

	c.arena.Scope(c.arena.Node(target).Scope).PromoteElementsToParent(c.arena.Scope(n.Scope))
}

func (c *Context) resolveAttributeGroup(n *Node) {
	if n.Ref == "" {
		return
	}

	target := c.resolveRef(n, SymbolAttributeGroup, diagnostic.CodeUnresolvedAttributeGroup)

	if n.IsNamed() || target == NoNode {
		return
	}

	if !c.ensureResolved(n, target) {
		return
	}

	c.arena.Scope(c.arena.Node(target).Scope).PromoteAttributesToParent(c.arena.Scope(n.Scope))
}

// ensureResolved resolves a referenced definition before its content is
// copied. A definition still on the resolve stack means the usage is
// nested inside its own target; its content is incomplete, so the usage
// is reported and skipped. Nesting through an element is ordinary
// recursion and only noted; anything else is a cycle.
func (c *Context) ensureResolved(n *Node, target NodeID) bool {
	if c.ResolveTree(target) {
		return true
	}

	t := c.arena.Node(target)

	if e := c.enclosingElement(n); e != nil {
		c.diags.AddInfo(diagnostic.CodeRecursiveGroup,
			fmt.Sprintf("%s recurses through %s; the nested use is not expanded", t.Describe(), e.Describe()),
			t.QName().Full(), n.Describe(), n.document())

		return false
	}

	c.diags.AddWarning(diagnostic.CodeGroupCycle,
		fmt.Sprintf("%s is referenced from within its own definition", t.Describe()),
		t.QName().Full(), n.Describe(), n.document())

	return false
}

// enclosingElement returns the nearest element between n and the named
// group or attribute-group definition around it, or nil.
func (c *Context) enclosingElement(n *Node) *Node {
	for p := c.arena.Node(n.Parent); p != nil; p = c.arena.Node(p.Parent) {
		switch p.Kind {
		case KindElement:
			return p
		case KindGroup, KindAttributeGroup:
			if p.IsNamed() {
				return nil
			}
		}
	}

	return nil
}

// resolveContent copies the derivation link onto the enclosing type and
// lifts the derived members into it.
func (c *Context) resolveContent(n *Node) {
	if owner := c.arena.Node(n.Parent); owner != nil && owner.Kind.IsType() {
		owner.Derivation = n.Derivation
	}

	c.liftContent(n)
}

func (c *Context) resolveDerivation(n *Node) {
	if n.Base != "" {
		ref := c.resolveType(n, n.Base, diagnostic.CodeUnresolvedBase)
		n.Derivation = ref

		if owner := c.arena.Node(n.Parent); owner != nil && (owner.Kind.IsContent() || owner.Kind.IsType()) {
			owner.Derivation = ref
		}
	}

	c.liftContent(n)
}

func (c *Context) liftContent(n *Node) {
	scope := c.arena.Scope(n.Scope)
	scope.PromoteElementsToParent(nil)
	scope.PromoteAttributesToParent(nil)
}

// resolveRef looks up n.Ref and records the outcome in n.Target. It
// returns NoNode when the reference does not resolve.
func (c *Context) resolveRef(n *Node, kind SymbolKind, code string) NodeID {
	name, ok := c.parseName(n, n.Ref)
	if !ok {
		n.Target = Unresolved(name)
		return NoNode
	}

	if id, found := c.Lookup(n.ID, name, kind); found {
		n.Target = Resolved(id)
		return id
	}

	n.Target = Unresolved(name)
	c.diags.AddError(code, fmt.Sprintf("%s %s not found", kind, name.Full()), name.Full(), n.Describe(), n.document())

	return NoNode
}

// resolveType looks up a type name. On failure the literal name is kept.
func (c *Context) resolveType(n *Node, raw, code string) Ref {
	name, ok := c.parseName(n, raw)
	if !ok {
		return Unresolved(name)
	}

	if id, found := c.Lookup(n.ID, name, SymbolType); found {
		return Resolved(id)
	}

	c.diags.AddError(code, fmt.Sprintf("type %s not found", name.Full()), name.Full(), n.Describe(), n.document())

	return Unresolved(name)
}
