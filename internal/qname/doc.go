// Package qname provides qualified XML names.
//
// A QName pairs a namespace URI with a local name. Two names are equal
// when their full "{namespace}local" forms are equal, which is plain
// struct equality, so QName is used directly as a map key by every
// symbol table in the schema model.
package qname
