// Package rtos assembles target-specific RTOS modules from reusable
// component fragment files.
//
// A skeleton names an ordered list of components; each component contributes
// named sections of C code extracted from its fragment file and rendered
// through a strict template pass. Sections with the same name are
// concatenated across components in skeleton order, type definitions are
// sorted into dependency order, per-component schema fragments are merged
// into one tree, and the result is written out as a source file, a header
// file, a schema.xml and a copied metadata artifact.
package rtos
