package schema

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the tag variant of a Node.
type Kind int

const (
	KindUnknown Kind = iota

	KindRoot // synthetic document root, no tag of its own
	KindSchema
	KindImport
	KindInclude
	KindElement
	KindAttribute
	KindGroup
	KindAttributeGroup
	KindSequence
	KindChoice
	KindAll
	KindSimpleType
	KindComplexType
	KindSimpleContent
	KindComplexContent
	KindExtension
	KindRestriction

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var tagNames = [KindTotal]string{
	KindSchema:         "schema",
	KindImport:         "import",
	KindInclude:        "include",
	KindElement:        "element",
	KindAttribute:      "attribute",
	KindGroup:          "group",
	KindAttributeGroup: "attributeGroup",
	KindSequence:       "sequence",
	KindChoice:         "choice",
	KindAll:            "all",
	KindSimpleType:     "simpleType",
	KindComplexType:    "complexType",
	KindSimpleContent:  "simpleContent",
	KindComplexContent: "complexContent",
	KindExtension:      "extension",
	KindRestriction:    "restriction",
}

var kindsByTag = func() map[string]Kind {
	m := make(map[string]Kind, KindTotal)
	for k, name := range tagNames {
		if name != "" {
			m[name] = Kind(k)
		}
	}

	return m
}()

// TagName returns the XSD local tag name, or "" for KindRoot and KindUnknown.
func (k Kind) TagName() string {
	if k < 0 || int(k) >= KindTotal {
		return ""
	}

	return tagNames[k]
}

// KindForTag maps an XSD local tag name to its Kind.
func KindForTag(local string) (Kind, bool) {
	k, ok := kindsByTag[local]
	return k, ok
}

// IsType reports whether k declares a type.
func (k Kind) IsType() bool {
	return k == KindSimpleType || k == KindComplexType
}

// IsContent reports whether k is a simple or complex content wrapper.
func (k Kind) IsContent() bool {
	return k == KindSimpleContent || k == KindComplexContent
}

//go:generate go tool stringer -type=SymbolKind -linecomment -output=symbolkind_string.go

// SymbolKind selects one of the per-scope binding tables.
type SymbolKind int

const (
	SymbolElement        SymbolKind = iota // element
	SymbolAttribute                        // attribute
	SymbolGroup                            // group
	SymbolAttributeGroup                   // attribute-group
	SymbolType                             // type
)
