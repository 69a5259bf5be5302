package schema

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"xsd-binder/internal/diagnostic"
	"xsd-binder/internal/namespace"
	"xsd-binder/internal/qname"
	"xsd-binder/internal/source"
)

// DuplicatePolicy decides what happens when a name is bound twice under
// the same kind in one scope.
type DuplicatePolicy int

const (
	// DuplicateOverwrite silently keeps the last binding.
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateWarn keeps the last binding and records a warning.
	DuplicateWarn
	// DuplicateReject keeps the first binding and records an error.
	DuplicateReject
)

// String returns the policy name as used in configuration.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateOverwrite:
		return "overwrite"
	case DuplicateWarn:
		return "warn"
	case DuplicateReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseDuplicatePolicy parses a policy name.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overwrite":
		return DuplicateOverwrite, nil
	case "warn":
		return DuplicateWarn, nil
	case "reject":
		return DuplicateReject, nil
	default:
		return DuplicateOverwrite, fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// ImportFunc receives every import/include registration.
type ImportFunc func(ns *namespace.Namespace, url string)

// Import is one registered import or include.
type Import struct {
	Namespace *namespace.Namespace
	URL       string
}

// Context is the mutable state of one conversion run. It is threaded
// explicitly through both phases and is not safe for concurrent use.
type Context struct {
	arena    *Arena
	registry *namespace.Registry
	source   *source.Source
	root     NodeID

	nsScopes map[string]ScopeID
	imports  []Import
	onImport ImportFunc

	diags      diagnostic.Diagnostics
	duplicates DuplicatePolicy
	log        *slog.Logger
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger. The default discards output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDuplicatePolicy sets the duplicate binding policy.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(c *Context) {
		c.duplicates = p
	}
}

// WithImportFunc installs the import registration callback.
func WithImportFunc(fn ImportFunc) Option {
	return func(c *Context) {
		c.onImport = fn
	}
}

// WithRegistry shares an existing namespace registry.
func WithRegistry(r *namespace.Registry) Option {
	return func(c *Context) {
		if r != nil {
			c.registry = r
		}
	}
}

// NewContext creates the context for one conversion run.
func NewContext(opts ...Option) *Context {
	c := &Context{
		arena:    NewArena(),
		registry: namespace.NewRegistry(),
		root:     NoNode,
		nsScopes: make(map[string]ScopeID),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Arena returns the node and scope arena.
func (c *Context) Arena() *Arena {
	return c.arena
}

// Node is shorthand for c.Arena().Node(id).
func (c *Context) Node(id NodeID) *Node {
	return c.arena.Node(id)
}

// Registry returns the namespace registry.
func (c *Context) Registry() *namespace.Registry {
	return c.registry
}

// Source returns the active document.
func (c *Context) Source() *source.Source {
	return c.source
}

// SetSource makes src the active document for subsequently opened tags.
func (c *Context) SetSource(src *source.Source) {
	c.source = src
}

// Root returns the first schema node declared in this run, or NoNode.
func (c *Context) Root() NodeID {
	return c.root
}

// Diagnostics returns the diagnostics collected so far.
func (c *Context) Diagnostics() *diagnostic.Diagnostics {
	return &c.diags
}

// Logger returns the context logger.
func (c *Context) Logger() *slog.Logger {
	return c.log
}

// DuplicatePolicy returns the configured duplicate binding policy.
func (c *Context) DuplicatePolicy() DuplicatePolicy {
	return c.duplicates
}

// Imports returns every import/include registered so far.
func (c *Context) Imports() []Import {
	out := make([]Import, len(c.imports))
	copy(out, c.imports)

	return out
}

// RegisterImport records an import/include and forwards it to the
// installed ImportFunc. Scheduling the fetch is the caller's business.
func (c *Context) RegisterImport(ns *namespace.Namespace, url string) {
	c.imports = append(c.imports, Import{Namespace: ns, URL: url})
	c.log.Debug("import registered", "namespace", ns.URI, "url", url)

	if c.onImport != nil {
		c.onImport(ns, url)
	}
}

// NamespaceScope returns the shared top-level scope of a namespace,
// creating it on first use. Every schema document targeting the
// namespace binds its global declarations here.
func (c *Context) NamespaceScope(uri string) *Scope {
	if id, ok := c.nsScopes[uri]; ok {
		return c.arena.Scope(id)
	}

	s := c.arena.NewScope(NoScope)
	c.nsScopes[uri] = s.ID()

	return s
}

// LookupNamespaceScope returns the namespace scope if one exists.
func (c *Context) LookupNamespaceScope(uri string) (*Scope, bool) {
	id, ok := c.nsScopes[uri]
	if !ok {
		return nil, false
	}

	return c.arena.Scope(id), true
}

// NewNode allocates a node and its scope under parent without declaring
// it. The node is attributed to the active document.
func (c *Context) NewNode(kind Kind, parent NodeID, attrs map[string]string) NodeID {
	n := newNode(kind, attrs)
	n.Doc = c.source
	n.Parent = parent

	parentScope := NoScope
	if p := c.arena.Node(parent); p != nil {
		parentScope = p.Scope
	}

	n.Scope = c.arena.NewScope(parentScope).ID()
	id := c.arena.addNode(n)

	if p := c.arena.Node(parent); p != nil {
		p.Children = append(p.Children, id)
	}

	if n.Name != "" {
		n.qname = qname.New(c.targetNamespaceURI(n), n.Name)
	}

	return id
}

// Open allocates a node and runs its declare phase immediately.
func (c *Context) Open(kind Kind, parent NodeID, attrs map[string]string) NodeID {
	id := c.NewNode(kind, parent, attrs)
	c.Declare(id)

	return id
}

// DeclareBuiltin creates a pre-resolved named type or attribute bound
// in the scope of name's namespace. base, when set, becomes the
// derivation link of the new node.
func (c *Context) DeclareBuiltin(kind Kind, name qname.QName, base qname.QName) NodeID {
	nsScope := c.NamespaceScope(name.Namespace)

	n := newNode(kind, map[string]string{"name": name.Local})
	n.Builtin = true
	n.qname = name
	n.Scope = c.arena.NewScope(nsScope.ID()).ID()
	n.state = stateDone
	id := c.arena.addNode(n)

	if !base.IsZero() {
		if baseID, ok := nsScope.Bound(base, SymbolType); ok {
			n.Derivation = Resolved(baseID)
		} else {
			n.Derivation = Unresolved(base)
		}
	}

	kindSym := SymbolType
	if kind == KindAttribute {
		kindSym = SymbolAttribute
	}

	nsScope.Bind(name, kindSym, id)

	return id
}

// Lookup resolves (name, kind) as seen from node: first through the
// lexical scope chain, then through the scope of name's namespace.
func (c *Context) Lookup(node NodeID, name qname.QName, kind SymbolKind) (NodeID, bool) {
	n := c.arena.Node(node)
	if n == nil {
		return NoNode, false
	}

	if scope := c.arena.Scope(n.Scope); scope != nil {
		if id, ok := scope.Lookup(name, kind); ok {
			return id, true
		}
	}

	if nsScope, ok := c.LookupNamespaceScope(name.Namespace); ok {
		return nsScope.Lookup(name, kind)
	}

	return NoNode, false
}

func (c *Context) targetNamespaceURI(n *Node) string {
	if n.Doc == nil || n.Doc.TargetNamespace == nil {
		return ""
	}

	return n.Doc.TargetNamespace.URI
}

// parseName turns a raw reference into a QName using the node's own
// document, not the active one: resolve runs after all documents loaded.
// When the name cannot be parsed it returns the raw token and false; the
// caller must not look it up.
func (c *Context) parseName(n *Node, raw string) (qname.QName, bool) {
	var r qname.Resolver
	if n.Doc != nil {
		r = n.Doc
	}

	q, err := qname.Parse(raw, r)
	if err != nil {
		c.diags.AddError(diagnostic.CodeInvalidName, err.Error(), raw, n.Describe(), n.document())
		// The raw token, prefix included, stands in for the name.
		return qname.QName{Local: strings.TrimSpace(raw)}, false
	}

	return q, true
}
