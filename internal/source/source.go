// Package source describes one schema document being compiled: where it
// came from, which namespace it targets and which prefixes it declares.
package source

import (
	"fmt"
	"net/url"
	"strings"

	"xsd-binder/internal/namespace"
)

// Attribute names captured from the schema tag.
const (
	attrTargetNamespace      = "targetNamespace"
	attrElementFormDefault   = "elementFormDefault"
	attrAttributeFormDefault = "attributeFormDefault"
	attrXMLNS                = "xmlns"
	prefixXML                = "xml"
)

// Source is one schema document.
type Source struct {
	URL             string
	TargetNamespace *namespace.Namespace

	ElementFormDefault   string
	AttributeFormDefault string

	registry     *namespace.Registry
	prefixes     map[string]string
	defaultNS    string
	hasDefaultNS bool
}

// New creates a Source for the document at docURL, initially attributed to ns.
func New(docURL string, ns *namespace.Namespace, registry *namespace.Registry) *Source {
	return &Source{
		URL:             docURL,
		TargetNamespace: ns,
		registry:        registry,
		prefixes:        make(map[string]string),
	}
}

// Parse captures document-level attributes of the schema tag: the target
// namespace, declared prefixes and form defaults. Keys are raw attribute
// names as written, e.g. "xmlns:xs".
func (s *Source) Parse(attrs map[string]string) {
	for name, value := range attrs {
		switch {
		case name == attrXMLNS:
			s.defaultNS = value
			s.hasDefaultNS = true
		case strings.HasPrefix(name, attrXMLNS+":"):
			s.prefixes[strings.TrimPrefix(name, attrXMLNS+":")] = value
		}
	}

	if tns, ok := attrs[attrTargetNamespace]; ok {
		if s.TargetNamespace == nil || s.TargetNamespace.URI != tns {
			s.TargetNamespace = s.registry.Register(tns, s.URL)
		}
	} else if s.TargetNamespace == nil {
		s.TargetNamespace = s.registry.Register("", s.URL)
	}

	for prefix, uri := range s.prefixes {
		if uri == s.TargetNamespace.URI {
			s.registry.SetPrefix(s.TargetNamespace, prefix)
		}
	}

	s.ElementFormDefault = attrs[attrElementFormDefault]
	s.AttributeFormDefault = attrs[attrAttributeFormDefault]
}

// ResolvePrefix implements qname.Resolver. The empty prefix maps to the
// declared default namespace, or to the target namespace when none is declared.
func (s *Source) ResolvePrefix(prefix string) (string, bool) {
	if prefix == "" {
		if s.hasDefaultNS {
			return s.defaultNS, true
		}

		if s.TargetNamespace != nil {
			return s.TargetNamespace.URI, true
		}

		return "", true
	}

	if prefix == prefixXML {
		return namespace.XML, true
	}

	uri, ok := s.prefixes[prefix]

	return uri, ok
}

// Prefixes returns a copy of the declared prefix map.
func (s *Source) Prefixes() map[string]string {
	out := make(map[string]string, len(s.prefixes))
	for k, v := range s.prefixes {
		out[k] = v
	}

	return out
}

// BaseURL is the URL that relative schema locations resolve against:
// the target namespace's URL, or the document's own URL when unset.
func (s *Source) BaseURL() string {
	if s.TargetNamespace != nil && s.TargetNamespace.URL != "" {
		return s.TargetNamespace.URL
	}

	return s.URL
}

// ResolveLocation turns a schemaLocation into an absolute URL.
func (s *Source) ResolveLocation(location string) (string, error) {
	base, err := url.Parse(s.BaseURL())
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", s.BaseURL(), err)
	}

	ref, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return "", fmt.Errorf("invalid schema location %q: %w", location, err)
	}

	return base.ResolveReference(ref).String(), nil
}
