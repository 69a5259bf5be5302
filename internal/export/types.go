package export

import "xsd-binder/internal/diagnostic"

// Model is the exported model of one conversion.
type Model struct {
	Namespaces  []Namespace             `json:"namespaces" yaml:"namespaces"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Namespace lists the global declarations of one namespace.
type Namespace struct {
	ID              int              `json:"id" yaml:"id"`
	URI             string           `json:"uri" yaml:"uri"`
	URL             string           `json:"url,omitempty" yaml:"url,omitempty"`
	Prefix          string           `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Elements        []Element        `json:"elements,omitempty" yaml:"elements,omitempty"`
	Types           []Type           `json:"types,omitempty" yaml:"types,omitempty"`
	Attributes      []Attribute      `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Groups          []Group          `json:"groups,omitempty" yaml:"groups,omitempty"`
	AttributeGroups []AttributeGroup `json:"attribute_groups,omitempty" yaml:"attribute_groups,omitempty"`
}

// TypeRef is a reference to a type: resolved by name, unresolved by
// literal name, or an inline anonymous type.
type TypeRef struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Resolved bool   `json:"resolved" yaml:"resolved"`
	Builtin  bool   `json:"builtin,omitempty" yaml:"builtin,omitempty"`
	Inline   *Type  `json:"inline,omitempty" yaml:"inline,omitempty"`
}

// Element is an element declaration or an element member of a type.
// A member with Ref set stands for the global element of that name.
type Element struct {
	Name      string   `json:"name" yaml:"name"`
	Ref       bool     `json:"ref,omitempty" yaml:"ref,omitempty"`
	Type      *TypeRef `json:"type,omitempty" yaml:"type,omitempty"`
	MinOccurs int      `json:"min_occurs" yaml:"min_occurs"`
	MaxOccurs int      `json:"max_occurs" yaml:"max_occurs"` // -1 for unbounded
	Default   string   `json:"default,omitempty" yaml:"default,omitempty"`
	Fixed     string   `json:"fixed,omitempty" yaml:"fixed,omitempty"`
}

// Attribute is an attribute declaration or an attribute member of a type.
type Attribute struct {
	Name    string   `json:"name" yaml:"name"`
	Type    *TypeRef `json:"type,omitempty" yaml:"type,omitempty"`
	Use     string   `json:"use,omitempty" yaml:"use,omitempty"`
	Default string   `json:"default,omitempty" yaml:"default,omitempty"`
	Fixed   string   `json:"fixed,omitempty" yaml:"fixed,omitempty"`
}

// Type is a simple or complex type.
type Type struct {
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Kind       string      `json:"kind" yaml:"kind"`
	Parent     *TypeRef    `json:"parent,omitempty" yaml:"parent,omitempty"`
	Builtin    bool        `json:"builtin,omitempty" yaml:"builtin,omitempty"`
	Elements   []Element   `json:"elements,omitempty" yaml:"elements,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Group is a named model group.
type Group struct {
	Name     string    `json:"name" yaml:"name"`
	Elements []Element `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// AttributeGroup is a named attribute group.
type AttributeGroup struct {
	Name       string      `json:"name" yaml:"name"`
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// FindType returns the type with the given qualified name.
func (n *Namespace) FindType(name string) (*Type, bool) {
	for i := range n.Types {
		if n.Types[i].Name == name {
			return &n.Types[i], true
		}
	}

	return nil, false
}

// FindElement returns the element with the given qualified name.
func (n *Namespace) FindElement(name string) (*Element, bool) {
	for i := range n.Elements {
		if n.Elements[i].Name == name {
			return &n.Elements[i], true
		}
	}

	return nil, false
}

// Namespace returns the namespace with the given ID.
func (m *Model) Namespace(id int) (*Namespace, bool) {
	for i := range m.Namespaces {
		if m.Namespaces[i].ID == id {
			return &m.Namespaces[i], true
		}
	}

	return nil, false
}
