// Package geom provides the small float32 geometry vocabulary used by the
// bounds table: vectors, axis-aligned boxes, box/sphere bounds and the packed
// component-relative box encoding.
package geom
