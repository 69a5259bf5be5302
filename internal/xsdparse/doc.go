// Package xsdparse walks a schema document and drives the schema model
// builder: one node per recognised tag, declared as the tag opens, and a
// post-order resolve pass over the finished tree on request.
//
// Tags outside the modelled set (annotations, facets, wildcards, identity
// constraints) are skipped with their subtrees. Tags that are modelled
// but not allowed where they appear are skipped and reported as grammar
// diagnostics; they never abort the document.
package xsdparse
