package schema

import (
	"strconv"
	"strings"

	"xsd-binder/internal/qname"
	"xsd-binder/internal/source"
)

// Unbounded is the MaxOccurs value for maxOccurs="unbounded".
const Unbounded = -1

type resolveState int

const (
	stateOpen resolveState = iota
	stateResolving
	stateDone
)

// Node is one schema tag.
type Node struct {
	ID       NodeID
	Kind     Kind
	Scope    ScopeID  // owned scope, child of the enclosing tag's scope
	Parent   NodeID   // enclosing tag
	Children []NodeID // in document order

	Doc   *source.Source    // document the tag was read from; nil for builtins
	Attrs map[string]string // raw attribute values

	Name           string
	Ref            string
	TypeName       string // raw type attribute
	Base           string
	MinOccurs      int
	MaxOccurs      int // Unbounded for "unbounded"
	SchemaLocation string
	Namespace      string
	AttrID         string // id attribute
	Default        string
	Fixed          string
	Use            string
	Builtin        bool

	// Target is the node a ref attribute resolved to.
	Target Ref
	// Type is the resolved type of an element or attribute.
	Type Ref
	// Derivation is the base type link of a type, content or derivation node.
	Derivation Ref

	qname qname.QName
	state resolveState
}

func newNode(kind Kind, attrs map[string]string) *Node {
	n := &Node{
		Kind:      kind,
		Parent:    NoNode,
		Scope:     NoScope,
		Attrs:     attrs,
		MinOccurs: 1,
		MaxOccurs: 1,
	}

	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}

	n.Name = strings.TrimSpace(n.Attrs["name"])
	n.Ref = strings.TrimSpace(n.Attrs["ref"])
	n.TypeName = strings.TrimSpace(n.Attrs["type"])
	n.Base = strings.TrimSpace(n.Attrs["base"])
	n.SchemaLocation = strings.TrimSpace(n.Attrs["schemaLocation"])
	n.Namespace = n.Attrs["namespace"]
	n.AttrID = n.Attrs["id"]
	n.Default = n.Attrs["default"]
	n.Fixed = n.Attrs["fixed"]
	n.Use = n.Attrs["use"]
	n.MinOccurs = parseOccurs(n.Attrs["minOccurs"], 1)
	n.MaxOccurs = parseOccurs(n.Attrs["maxOccurs"], 1)

	return n
}

func parseOccurs(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	if raw == "unbounded" {
		return Unbounded
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}

	return v
}

// QName returns the declared qualified name, or the zero QName for
// anonymous nodes.
func (n *Node) QName() qname.QName {
	return n.qname
}

// IsNamed reports whether the node declares a name.
func (n *Node) IsNamed() bool {
	return n.Name != ""
}

// IsResolved reports whether the resolve phase has completed for n.
func (n *Node) IsResolved() bool {
	return n.state == stateDone
}

// Describe returns a short label such as "element Foo" or "group ref=G".
func (n *Node) Describe() string {
	tag := n.Kind.TagName()
	if tag == "" {
		tag = n.Kind.String()
	}

	switch {
	case n.Name != "":
		return tag + " " + n.Name
	case n.Ref != "":
		return tag + " ref=" + n.Ref
	case n.Base != "":
		return tag + " base=" + n.Base
	default:
		return tag
	}
}

func (n *Node) document() string {
	if n.Doc == nil {
		return ""
	}

	return n.Doc.URL
}
