// Package datatable is the row-type-generic core behind every list view:
// declarative column metadata, a tri-state stable sort, free-text search
// composed with multi-select facets, a renderer-agnostic projection with
// explicit empty states, and a column visibility/sizing control.
//
// Everything here is pure and synchronous. Inputs are never mutated; each
// stage returns a fresh slice or value:
//
//	rows -> Filter.Apply -> Sort -> Project -> View
//
// Column lists are owned by the caller. ColumnControl computes replacements
// and reports them through a callback instead of editing in place.
//
// Caller mistakes such as sorting on an unknown or non-sortable key are
// ignored rather than reported.
package datatable
