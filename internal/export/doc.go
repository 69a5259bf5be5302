// Package export turns a built schema model into the per-namespace view
// consumed by code generators: top-level elements, types with their
// derivation parent, attributes, groups and attribute groups, each
// reachable by qualified name.
//
// Unresolved references stay visible: a TypeRef whose Resolved flag is
// false names the literal qualified name that failed to resolve.
package export
