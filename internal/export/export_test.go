package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"xsd-binder/internal/loader"
	"xsd-binder/internal/schema"
)

const petsXSD = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  xmlns:p="urn:pets" targetNamespace="urn:pets">
  <xs:complexType name="Animal">
    <xs:sequence>
      <xs:element name="name" type="xs:string"/>
    </xs:sequence>
    <xs:attribute name="id" type="xs:ID" use="required"/>
  </xs:complexType>
  <xs:complexType name="Dog">
    <xs:complexContent>
      <xs:extension base="p:Animal">
        <xs:sequence>
          <xs:group ref="p:Tricks"/>
        </xs:sequence>
      </xs:extension>
    </xs:complexContent>
  </xs:complexType>
  <xs:group name="Tricks">
    <xs:sequence>
      <xs:element name="trick" type="xs:string" minOccurs="0" maxOccurs="unbounded"/>
    </xs:sequence>
  </xs:group>
  <xs:element name="Kennel">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="dog" type="p:Dog" maxOccurs="unbounded"/>
        <xs:element name="cat" type="p:Cat"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func build(t *testing.T, opts Options) *Model {
	t.Helper()

	l := loader.New(loader.MapFetcher{"file:///pets.xsd": petsXSD}, loader.Options{})
	_, err := l.Import(context.Background(), "file:///pets.xsd")
	require.NoError(t, err)

	return Build(l.Context(), opts)
}

func TestBuildNamespace(t *testing.T) {
	model := build(t, Options{})

	require.Len(t, model.Namespaces, 1)
	ns := model.Namespaces[0]
	assert.Equal(t, "urn:pets", ns.URI)
	assert.Equal(t, "p", ns.Prefix)
	assert.Equal(t, "file:///pets.xsd", ns.URL)

	var types []string
	for _, typ := range ns.Types {
		types = append(types, typ.Name)
	}

	assert.Equal(t, []string{"{urn:pets}Animal", "{urn:pets}Dog"}, types)

	require.Len(t, ns.Groups, 1)
	assert.Equal(t, "{urn:pets}Tricks", ns.Groups[0].Name)
	require.Len(t, ns.Groups[0].Elements, 1)
	assert.Equal(t, 0, ns.Groups[0].Elements[0].MinOccurs)
	assert.Equal(t, schema.Unbounded, ns.Groups[0].Elements[0].MaxOccurs)
}

func TestBuildTypeParentAndMembers(t *testing.T) {
	ns := build(t, Options{}).Namespaces[0]

	animal, ok := ns.FindType("{urn:pets}Animal")
	require.True(t, ok)
	assert.Equal(t, "complex", animal.Kind)
	assert.Nil(t, animal.Parent)
	require.Len(t, animal.Elements, 1)
	assert.Equal(t, "{urn:pets}name", animal.Elements[0].Name)
	assert.Equal(t, &TypeRef{Name: "{http://www.w3.org/2001/XMLSchema}string", Resolved: true, Builtin: true},
		animal.Elements[0].Type)
	require.Len(t, animal.Attributes, 1)
	assert.Equal(t, "required", animal.Attributes[0].Use)

	dog, ok := ns.FindType("{urn:pets}Dog")
	require.True(t, ok)
	require.NotNil(t, dog.Parent)
	assert.Equal(t, "{urn:pets}Animal", dog.Parent.Name)
	assert.True(t, dog.Parent.Resolved)
	require.Len(t, dog.Elements, 1, "only its own members")
	assert.Equal(t, "{urn:pets}trick", dog.Elements[0].Name)
}

func TestBuildInlineAndUnresolved(t *testing.T) {
	model := build(t, Options{})
	ns := model.Namespaces[0]

	kennel, ok := ns.FindElement("{urn:pets}Kennel")
	require.True(t, ok)
	require.NotNil(t, kennel.Type)
	require.NotNil(t, kennel.Type.Inline)
	assert.Empty(t, kennel.Type.Name)

	members := kennel.Type.Inline.Elements
	require.Len(t, members, 2)
	assert.Equal(t, "{urn:pets}Dog", members[0].Type.Name)
	assert.True(t, members[0].Type.Resolved)
	assert.Equal(t, "{urn:pets}Cat", members[1].Type.Name)
	assert.False(t, members[1].Type.Resolved)

	require.Len(t, model.Diagnostics, 1)
	assert.Equal(t, "unresolved-type", model.Diagnostics[0].Code)
}

func TestBuildIncludeBuiltins(t *testing.T) {
	model := build(t, Options{IncludeBuiltins: true})

	var uris []string
	for _, ns := range model.Namespaces {
		uris = append(uris, ns.URI)
	}

	assert.Contains(t, uris, "http://www.w3.org/2001/XMLSchema")
	assert.Contains(t, uris, "http://www.w3.org/XML/1998/namespace")
	assert.Contains(t, uris, "urn:pets")
}

const treeXSD = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  xmlns:t="urn:tree" targetNamespace="urn:tree">
  <xs:element name="node">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="t:node" minOccurs="0" maxOccurs="unbounded"/>
      </xs:sequence>
      <xs:attribute name="label" type="xs:string"/>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func TestBuildSelfReferencingElement(t *testing.T) {
	l := loader.New(loader.MapFetcher{"file:///tree.xsd": treeXSD}, loader.Options{})
	_, err := l.Import(context.Background(), "file:///tree.xsd")
	require.NoError(t, err)
	require.True(t, l.Context().Diagnostics().IsValid())

	model := Build(l.Context(), Options{})
	require.Len(t, model.Namespaces, 1)

	node, ok := model.Namespaces[0].FindElement("{urn:tree}node")
	require.True(t, ok)
	require.NotNil(t, node.Type)
	require.NotNil(t, node.Type.Inline)

	members := node.Type.Inline.Elements
	require.Len(t, members, 1)
	assert.Equal(t, "{urn:tree}node", members[0].Name)
	assert.True(t, members[0].Ref)
	assert.Nil(t, members[0].Type)

	require.Len(t, node.Type.Inline.Attributes, 1)

	data, err := Marshal(model, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ref: true")
}

func TestMarshalFormats(t *testing.T) {
	model := build(t, Options{})

	data, err := Marshal(model, FormatYAML)
	require.NoError(t, err)

	var fromYAML Model
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.Len(t, fromYAML.Namespaces, 1)
	assert.Len(t, fromYAML.Namespaces[0].Types, 2)
	assert.Contains(t, string(data), "severity: error")

	data, err = Marshal(model, FormatJSON)
	require.NoError(t, err)

	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Contains(t, fromJSON, "namespaces")

	_, err = Marshal(model, Format("xml"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{"json", FormatJSON, false},
		{"toml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteDir(t *testing.T) {
	model := build(t, Options{})
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := WriteDir(model, dir, FormatJSON)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "p.json")}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)

	var ns Namespace
	require.NoError(t, json.Unmarshal(data, &ns))
	assert.Equal(t, "urn:pets", ns.URI)
}

func TestFileNameWithoutPrefix(t *testing.T) {
	assert.Equal(t, "ns3.yaml", FileName(&Namespace{ID: 3}, FormatYAML))
}
