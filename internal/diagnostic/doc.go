// Package diagnostic provides structured warnings and errors collected
// while a schema model is built.
//
// Resolution problems never abort a build. They are recorded here with
// the qualified name involved, the kind of reference and the owning tag,
// and returned next to the model so the caller can report them.
//
// Key capabilities:
//   - Unresolved element/attribute/group/type/base references
//   - Duplicate bindings under the configured policy
//   - Grammar violations skipped by the traversal engine
//   - Import/include location failures
package diagnostic
