package export

import (
	"xsd-binder/internal/namespace"
	"xsd-binder/internal/schema"
)

// Options selects what Build exports.
type Options struct {
	// IncludeBuiltins exports the XML Schema and xml: namespaces too.
	IncludeBuiltins bool
}

// Build exports every registered namespace that has declarations.
func Build(ctx *schema.Context, opts Options) *Model {
	model := &Model{
		Diagnostics: ctx.Diagnostics().All(),
	}

	for _, ns := range ctx.Registry().All() {
		if !opts.IncludeBuiltins && isBuiltin(ns.URI) {
			continue
		}

		scope, ok := ctx.LookupNamespaceScope(ns.URI)
		if !ok {
			continue
		}

		model.Namespaces = append(model.Namespaces, exportNamespace(ctx, ns, scope))
	}

	return model
}

func isBuiltin(uri string) bool {
	return uri == namespace.XSD || uri == namespace.XML
}

func exportNamespace(ctx *schema.Context, ns *namespace.Namespace, scope *schema.Scope) Namespace {
	e := exporter{ctx: ctx}

	out := Namespace{
		ID:     ns.ID,
		URI:    ns.URI,
		URL:    ns.URL,
		Prefix: ns.Prefix,
	}

	for _, name := range scope.Names(schema.SymbolElement) {
		id, _ := scope.Bound(name, schema.SymbolElement)
		out.Elements = append(out.Elements, e.element(id))
	}

	for _, name := range scope.Names(schema.SymbolType) {
		id, _ := scope.Bound(name, schema.SymbolType)
		out.Types = append(out.Types, e.typ(id))
	}

	for _, name := range scope.Names(schema.SymbolAttribute) {
		id, _ := scope.Bound(name, schema.SymbolAttribute)
		out.Attributes = append(out.Attributes, e.attribute(id))
	}

	for _, name := range scope.Names(schema.SymbolGroup) {
		id, _ := scope.Bound(name, schema.SymbolGroup)
		n := ctx.Node(id)
		out.Groups = append(out.Groups, Group{
			Name:     n.QName().Full(),
			Elements: e.elements(ctx.Arena().Scope(n.Scope).Elements()),
		})
	}

	for _, name := range scope.Names(schema.SymbolAttributeGroup) {
		id, _ := scope.Bound(name, schema.SymbolAttributeGroup)
		n := ctx.Node(id)
		out.AttributeGroups = append(out.AttributeGroups, AttributeGroup{
			Name:       n.QName().Full(),
			Attributes: e.attributes(ctx.Arena().Scope(n.Scope).Attributes()),
		})
	}

	return out
}

type exporter struct {
	ctx *schema.Context
}

func (e exporter) element(id schema.NodeID) Element {
	n := e.ctx.Node(id)

	return Element{
		Name:      n.QName().Full(),
		Type:      e.typeRef(n.Type),
		MinOccurs: n.MinOccurs,
		MaxOccurs: n.MaxOccurs,
		Default:   n.Default,
		Fixed:     n.Fixed,
	}
}

// elements exports the members of a type or group. A member that is a
// global element was reached through ref and is exported by name only:
// its type may contain the member itself.
func (e exporter) elements(ids []schema.NodeID) []Element {
	var out []Element
	for _, id := range ids {
		n := e.ctx.Node(id)
		if e.isGlobal(n) {
			out = append(out, Element{
				Name:      n.QName().Full(),
				Ref:       true,
				MinOccurs: n.MinOccurs,
				MaxOccurs: n.MaxOccurs,
			})

			continue
		}

		out = append(out, e.element(id))
	}

	return out
}

func (e exporter) isGlobal(n *schema.Node) bool {
	p := e.ctx.Node(n.Parent)
	return p != nil && p.Kind == schema.KindSchema
}

func (e exporter) attribute(id schema.NodeID) Attribute {
	n := e.ctx.Node(id)

	return Attribute{
		Name:    n.QName().Full(),
		Type:    e.typeRef(n.Type),
		Use:     n.Use,
		Default: n.Default,
		Fixed:   n.Fixed,
	}
}

func (e exporter) attributes(ids []schema.NodeID) []Attribute {
	var out []Attribute
	for _, id := range ids {
		out = append(out, e.attribute(id))
	}

	return out
}

func (e exporter) typ(id schema.NodeID) Type {
	n := e.ctx.Node(id)
	scope := e.ctx.Arena().Scope(n.Scope)

	kind := "simple"
	if n.Kind == schema.KindComplexType {
		kind = "complex"
	}

	return Type{
		Name:       n.QName().Full(),
		Kind:       kind,
		Parent:     e.typeRef(n.Derivation),
		Builtin:    n.Builtin,
		Elements:   e.elements(scope.Elements()),
		Attributes: e.attributes(scope.Attributes()),
	}
}

// typeRef exports either arm of a Ref. Anonymous types are inlined at
// their owner; global elements inside them are exported by name, so
// inlining terminates.
func (e exporter) typeRef(ref schema.Ref) *TypeRef {
	if id, ok := ref.Node(); ok {
		n := e.ctx.Node(id)
		if !n.IsNamed() {
			inline := e.typ(id)
			return &TypeRef{Resolved: true, Inline: &inline}
		}

		return &TypeRef{Name: n.QName().Full(), Resolved: true, Builtin: n.Builtin}
	}

	if name, ok := ref.Name(); ok {
		return &TypeRef{Name: name.Full()}
	}

	return nil
}
