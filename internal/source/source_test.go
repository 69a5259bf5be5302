package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xsd-binder/internal/namespace"
)

func TestParseCapturesTargetNamespaceAndPrefixes(t *testing.T) {
	reg := namespace.NewRegistry()
	src := New("http://x/y/schema.xsd", nil, reg)

	src.Parse(map[string]string{
		"targetNamespace":    "urn:pets",
		"xmlns:p":            "urn:pets",
		"xmlns:xs":           namespace.XSD,
		"elementFormDefault": "qualified",
	})

	require.NotNil(t, src.TargetNamespace)
	assert.Equal(t, "urn:pets", src.TargetNamespace.URI)
	assert.Equal(t, "http://x/y/schema.xsd", src.TargetNamespace.URL)
	assert.Equal(t, "p", src.TargetNamespace.Prefix)
	assert.Equal(t, "qualified", src.ElementFormDefault)

	uri, ok := src.ResolvePrefix("xs")
	assert.True(t, ok)
	assert.Equal(t, namespace.XSD, uri)

	// No default namespace declared: unprefixed names fall into the target namespace.
	uri, ok = src.ResolvePrefix("")
	assert.True(t, ok)
	assert.Equal(t, "urn:pets", uri)

	uri, ok = src.ResolvePrefix("xml")
	assert.True(t, ok)
	assert.Equal(t, namespace.XML, uri)

	_, ok = src.ResolvePrefix("nope")
	assert.False(t, ok)
}

func TestParseDefaultNamespace(t *testing.T) {
	reg := namespace.NewRegistry()
	src := New("file:///s.xsd", nil, reg)

	src.Parse(map[string]string{
		"targetNamespace": "urn:a",
		"xmlns":           namespace.XSD,
	})

	uri, ok := src.ResolvePrefix("")
	assert.True(t, ok)
	assert.Equal(t, namespace.XSD, uri)
}

func TestParseWithoutTargetNamespace(t *testing.T) {
	reg := namespace.NewRegistry()
	src := New("file:///s.xsd", nil, reg)

	src.Parse(map[string]string{})

	require.NotNil(t, src.TargetNamespace)
	assert.Equal(t, "", src.TargetNamespace.URI)
}

func TestResolveLocation(t *testing.T) {
	reg := namespace.NewRegistry()
	src := New("http://x/y/schema.xsd", nil, reg)
	src.Parse(map[string]string{"targetNamespace": "urn:y"})

	got, err := src.ResolveLocation("a.xsd")
	require.NoError(t, err)
	assert.Equal(t, "http://x/y/a.xsd", got)

	got, err = src.ResolveLocation("../common/b.xsd")
	require.NoError(t, err)
	assert.Equal(t, "http://x/common/b.xsd", got)

	_, err = src.ResolveLocation("%zz")
	assert.Error(t, err)
}
