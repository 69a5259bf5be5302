// Package schema builds the resolved in-memory model of XML Schema documents.
//
// Every schema tag becomes a Node in an Arena and owns a Scope linked to
// the scope of its enclosing tag. A traversal engine drives two lifecycle
// phases per node:
//
//  1. Declare runs when the tag opens, in document order. Named
//     declarations are bound one level up, into the enclosing scope, and
//     type nodes are queued on the enclosing scope's pending type list.
//  2. Resolve runs post-order once every document reachable from the
//     conversion has been declared. References (ref, type, base) are
//     looked up through the scope chain, content is propagated into the
//     containing scope, and groups referenced by usage sites are flattened.
//
// Nothing in this package aborts on a bad reference. Unresolved names are
// kept as literal qualified names (see Ref) and reported through the
// Context diagnostics.
//
// Key types:
//   - Kind: closed set of tag variants with a static grammar table
//   - Scope: lexical symbol table with pending content lists
//   - Node: one tag, with its raw attributes and resolved links
//   - Context: per-conversion state threaded through both phases
package schema
