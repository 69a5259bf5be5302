package xsdparse

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"xsd-binder/internal/diagnostic"
	"xsd-binder/internal/namespace"
	"xsd-binder/internal/schema"
	"xsd-binder/internal/source"
)

// ErrNoSchema is returned for documents without an xs:schema root.
var ErrNoSchema = errors.New("no schema element")

// ignoredTags are XSD constructs that the model does not represent.
var ignoredTags = map[string]bool{
	"annotation":         true,
	"documentation":      true,
	"appinfo":            true,
	"any":                true,
	"anyAttribute":       true,
	"list":               true,
	"union":              true,
	"enumeration":        true,
	"pattern":            true,
	"length":             true,
	"minLength":          true,
	"maxLength":          true,
	"minInclusive":       true,
	"maxInclusive":       true,
	"minExclusive":       true,
	"maxExclusive":       true,
	"totalDigits":        true,
	"fractionDigits":     true,
	"whiteSpace":         true,
	"explicitTimezone":   true,
	"key":                true,
	"keyref":             true,
	"unique":             true,
	"selector":           true,
	"field":              true,
	"notation":           true,
	"redefine":           true,
	"override":           true,
	"openContent":        true,
	"defaultOpenContent": true,
	"assert":             true,
	"assertion":          true,
	"alternative":        true,
}

// Document is one parsed and declared schema document.
type Document struct {
	Source *source.Source
	Root   schema.NodeID
	Schema schema.NodeID

	// Diagnostics holds the grammar problems found in this document. They
	// are also merged into the context once the document is parsed.
	Diagnostics diagnostic.Diagnostics

	ctx *schema.Context
}

// Resolve runs the resolve phase over the whole document tree. Call it
// only after every document the conversion reaches has been parsed.
func (d *Document) Resolve() {
	d.ctx.ResolveTree(d.Root)
}

type frame struct {
	node schema.NodeID
	kind schema.Kind
}

type parser struct {
	ctx     *schema.Context
	src     *source.Source
	doc     *Document
	stack   []frame
	skip    int
	schemas int
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(ctx *schema.Context, src *source.Source, data []byte) (*Document, error) {
	return Parse(ctx, src, bytes.NewReader(data))
}

// Parse reads one schema document, creating and declaring a node for each
// recognised tag. The resolve phase is left to the caller.
func Parse(ctx *schema.Context, src *source.Source, r io.Reader) (*Document, error) {
	ctx.SetSource(src)

	p := &parser{
		ctx: ctx,
		src: src,
		doc: &Document{Source: src, Schema: schema.NoNode, ctx: ctx},
	}

	p.doc.Root = ctx.Open(schema.KindRoot, schema.NoNode, nil)
	p.stack = append(p.stack, frame{node: p.doc.Root, kind: schema.KindRoot})

	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to parse schema document %s: %w", src.URL, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p.start(t)
		case xml.EndElement:
			p.end()
		}
	}

	if p.doc.Schema == schema.NoNode {
		return nil, fmt.Errorf("%s: %w", src.URL, ErrNoSchema)
	}

	ctx.Diagnostics().Merge(p.doc.Diagnostics)

	ctx.Logger().Debug("schema document declared", "url", src.URL, "namespace", src.TargetNamespace.URI)

	return p.doc, nil
}

func (p *parser) start(el xml.StartElement) {
	if p.skip > 0 {
		p.skip++
		return
	}

	parent := p.stack[len(p.stack)-1]

	kind, known := schema.KindForTag(el.Name.Local)
	switch {
	case el.Name.Space != namespace.XSD:
		p.skipTag(el, parent, "foreign element")
		return
	case !known:
		if !ignoredTags[el.Name.Local] {
			p.skipTag(el, parent, "unsupported tag")
		} else {
			p.skip = 1
		}

		return
	case !parent.kind.Allows(kind):
		p.skipTag(el, parent, "unexpected tag")
		return
	case kind == schema.KindSchema && p.schemas > 0:
		p.skipTag(el, parent, "second schema tag")
		return
	}

	id := p.ctx.Open(kind, parent.node, attributes(el.Attr))
	if kind == schema.KindSchema {
		p.schemas++
		p.doc.Schema = id
	}

	p.stack = append(p.stack, frame{node: id, kind: kind})
}

func (p *parser) end() {
	if p.skip > 0 {
		p.skip--
		return
	}

	if len(p.stack) > 1 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

func (p *parser) skipTag(el xml.StartElement, parent frame, reason string) {
	p.skip = 1

	where := parent.kind.TagName()
	if where == "" {
		where = "document root"
	}

	p.doc.Diagnostics.AddWarning(diagnostic.CodeGrammar,
		fmt.Sprintf("%s <%s> inside %s skipped", reason, el.Name.Local, where),
		el.Name.Local, where, p.src.URL)
}

// attributes flattens decoder attributes into raw names as written in the
// schema tag. Namespace declarations keep their "xmlns:" form.
func attributes(attrs []xml.Attr) map[string]string {
	out := make(map[string]string, len(attrs))

	for _, a := range attrs {
		switch {
		case a.Name.Space == "xmlns":
			out["xmlns:"+a.Name.Local] = a.Value
		case a.Name.Space == "":
			out[a.Name.Local] = a.Value
		default:
			// Foreign qualified attributes are not part of the model.
		}
	}

	return out
}
