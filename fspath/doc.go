// Package fspath provides a structured, immutable representation of
// filesystem paths together with canonicalization and composition.
//
// A Path is parsed once from host syntax and manipulated structurally from
// then on: the component sequence, the absolute/relative kind, and the
// directory/file form are all explicit, so path algebra is independent of
// the host OS path quirks. Rendering back to host syntax happens only at
// the boundary, via String.
//
// Canonicalize reduces a component sequence to normal form (self-references
// dropped, parent-references cancelled where possible) and is idempotent.
// MergeDirectory and MergeFile compose several paths with left-to-right
// override semantics: a later absolute path replaces everything accumulated
// so far, a later relative path extends it.
//
// Wildcard paths exist only to drive host directory enumeration. They are
// produced by Wildcard and rejected by every other operation.
package fspath
