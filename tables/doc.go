// Package tables transcodes the marching-cubes lookup tables from their
// hand-authored source form into fixed-width constant arrays.
//
// Two tables are recognized:
//
//	EDGE_TABLE  256 scalar entries, each a 12-bit edge mask stored as u16
//	TRI_TABLE   256 rows of at most 16 edge indices, stored as i8
//
// The source is never evaluated. A bounded scanner finds the named
// declaration, captures the bracketed region that follows, and accepts only
// integer literals, commas and nested brackets inside it.
//
// Basic usage:
//
//	out, err := tables.Transcode(src, tables.Options{Source: "src/surface.js"})
//
// Triangle rows are right-padded to 16 entries with Sentinel (-1).
package tables
