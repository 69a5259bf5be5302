// Package builtin pre-registers the XML Schema primitive namespace and
// the xml: namespace so that references such as xs:string and xml:lang
// resolve without a schema document of their own.
package builtin

import (
	"xsd-binder/internal/namespace"
	"xsd-binder/internal/qname"
	"xsd-binder/internal/schema"
)

// datatype is one built-in type and the type it is derived from.
type datatype struct {
	name string
	base string
}

// Ordered so that every base precedes the types derived from it.
var datatypes = []datatype{
	{name: "anySimpleType", base: "anyType"},

	{name: "string", base: "anySimpleType"},
	{name: "boolean", base: "anySimpleType"},
	{name: "float", base: "anySimpleType"},
	{name: "double", base: "anySimpleType"},
	{name: "decimal", base: "anySimpleType"},
	{name: "duration", base: "anySimpleType"},
	{name: "dateTime", base: "anySimpleType"},
	{name: "time", base: "anySimpleType"},
	{name: "date", base: "anySimpleType"},
	{name: "gYearMonth", base: "anySimpleType"},
	{name: "gYear", base: "anySimpleType"},
	{name: "gMonthDay", base: "anySimpleType"},
	{name: "gDay", base: "anySimpleType"},
	{name: "gMonth", base: "anySimpleType"},
	{name: "hexBinary", base: "anySimpleType"},
	{name: "base64Binary", base: "anySimpleType"},
	{name: "anyURI", base: "anySimpleType"},
	{name: "QName", base: "anySimpleType"},
	{name: "NOTATION", base: "anySimpleType"},

	{name: "normalizedString", base: "string"},
	{name: "token", base: "normalizedString"},
	{name: "language", base: "token"},
	{name: "NMTOKEN", base: "token"},
	{name: "NMTOKENS", base: "anySimpleType"},
	{name: "Name", base: "token"},
	{name: "NCName", base: "Name"},
	{name: "ID", base: "NCName"},
	{name: "IDREF", base: "NCName"},
	{name: "IDREFS", base: "anySimpleType"},
	{name: "ENTITY", base: "NCName"},
	{name: "ENTITIES", base: "anySimpleType"},

	{name: "integer", base: "decimal"},
	{name: "nonPositiveInteger", base: "integer"},
	{name: "negativeInteger", base: "nonPositiveInteger"},
	{name: "long", base: "integer"},
	{name: "int", base: "long"},
	{name: "short", base: "int"},
	{name: "byte", base: "short"},
	{name: "nonNegativeInteger", base: "integer"},
	{name: "unsignedLong", base: "nonNegativeInteger"},
	{name: "unsignedInt", base: "unsignedLong"},
	{name: "unsignedShort", base: "unsignedInt"},
	{name: "unsignedByte", base: "unsignedShort"},
	{name: "positiveInteger", base: "nonNegativeInteger"},

	{name: "dateTimeStamp", base: "dateTime"},
	{name: "dayTimeDuration", base: "duration"},
	{name: "yearMonthDuration", base: "duration"},
}

var xmlAttributes = []string{"lang", "space", "base", "id"}

// Register declares the primitive and xml: namespaces in ctx. It must run
// before any schema document is declared.
func Register(ctx *schema.Context) {
	xsd := ctx.Registry().Register(namespace.XSD, "")
	ctx.Registry().SetPrefix(xsd, "xs")

	xml := ctx.Registry().Register(namespace.XML, "")
	ctx.Registry().SetPrefix(xml, "xml")

	ctx.DeclareBuiltin(schema.KindComplexType, qname.New(namespace.XSD, "anyType"), qname.QName{})

	for _, dt := range datatypes {
		ctx.DeclareBuiltin(schema.KindSimpleType,
			qname.New(namespace.XSD, dt.name),
			qname.New(namespace.XSD, dt.base))
	}

	for _, name := range xmlAttributes {
		ctx.DeclareBuiltin(schema.KindAttribute, qname.New(namespace.XML, name), qname.QName{})
	}

	ctx.Logger().Debug("builtins registered", "types", len(Types()), "attributes", len(xmlAttributes))
}

// Types returns the local names of all built-in types.
func Types() []string {
	out := make([]string, 0, len(datatypes)+1)
	out = append(out, "anyType")

	for _, dt := range datatypes {
		out = append(out, dt.name)
	}

	return out
}
