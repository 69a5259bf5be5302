package schema

import (
	"fmt"

	"xsd-binder/internal/diagnostic"
	"xsd-binder/internal/qname"
)

// Declare runs the declare phase of a node. The traversal engine calls it
// when the tag opens, before any child exists.
func (c *Context) Declare(id NodeID) {
	n := c.arena.Node(id)
	if n == nil {
		return
	}

	switch n.Kind {
	case KindSchema:
		c.declareSchema(n)
	case KindImport:
		c.declareImport(n)
	case KindInclude:
		c.declareInclude(n)
	case KindElement:
		c.bindNamed(n, SymbolElement)
	case KindAttribute:
		c.bindNamed(n, SymbolAttribute)
	case KindGroup:
		c.bindNamed(n, SymbolGroup)
	case KindAttributeGroup:
		c.bindNamed(n, SymbolAttributeGroup)
	case KindSimpleType, KindComplexType:
		c.declareType(n)
	case KindUnknown, KindRoot,
		KindSequence, KindChoice, KindAll,
		KindSimpleContent, KindComplexContent,
		KindExtension, KindRestriction:
		// Nothing to declare.
	}
}

func (c *Context) declareSchema(n *Node) {
	if c.root == NoNode {
		c.root = n.ID
	}

	if n.Doc == nil {
		return
	}

	n.Doc.Parse(n.Attrs)

	// Global declarations of every document in a namespace share one scope.
	n.Scope = c.NamespaceScope(n.Doc.TargetNamespace.URI).ID()
}

func (c *Context) declareImport(n *Node) {
	if n.SchemaLocation == "" || n.Doc == nil {
		return
	}

	url, ok := c.resolveLocation(n)
	if !ok {
		return
	}

	ns := n.Doc.TargetNamespace
	if _, present := n.Attrs["namespace"]; present {
		ns = c.registry.Register(n.Namespace, url)
	}

	c.RegisterImport(ns, url)
}

func (c *Context) declareInclude(n *Node) {
	if n.SchemaLocation == "" || n.Doc == nil {
		return
	}

	url, ok := c.resolveLocation(n)
	if !ok {
		return
	}

	c.RegisterImport(n.Doc.TargetNamespace, url)
}

func (c *Context) resolveLocation(n *Node) (string, bool) {
	url, err := n.Doc.ResolveLocation(n.SchemaLocation)
	if err != nil {
		c.diags.AddError(diagnostic.CodeImportURL, err.Error(), n.SchemaLocation, n.Describe(), n.document())
		return "", false
	}

	return url, true
}

func (c *Context) declareType(n *Node) {
	if parent := c.arena.Scope(n.Scope).Parent(); parent != nil {
		parent.AppendType(n.ID)
	}

	c.bindNamed(n, SymbolType)
}

// bindNamed binds a named node one level up, applying the duplicate policy.
func (c *Context) bindNamed(n *Node, kind SymbolKind) {
	if !n.IsNamed() {
		return
	}

	scope := c.arena.Scope(n.Scope)
	parent := scope.Parent()
	if parent == nil {
		return
	}

	name := n.QName()
	if prev, exists := parent.Bound(name, kind); exists && prev != n.ID {
		if !c.duplicate(n, kind, name, prev) {
			return
		}
	}

	parent.Bind(name, kind, n.ID)
	c.log.Debug("bound", "kind", kind.String(), "name", name.Full(), "node", n.ID)
}

// duplicate applies the duplicate policy and reports whether the new
// binding should replace the existing one.
func (c *Context) duplicate(n *Node, kind SymbolKind, name qname.QName, prev NodeID) bool {
	msg := fmt.Sprintf("%s %s declared more than once", kind, name.Full())
	if p := c.arena.Node(prev); p != nil && p.Doc != nil {
		msg += " (previous declaration in " + p.Doc.URL + ")"
	}

	switch c.duplicates {
	case DuplicateWarn:
		c.diags.AddWarning(diagnostic.CodeDuplicateBinding, msg, name.Full(), n.Describe(), n.document())
		return true
	case DuplicateReject:
		c.diags.AddError(diagnostic.CodeDuplicateBinding, msg, name.Full(), n.Describe(), n.document())
		return false
	default:
		return true
	}
}
