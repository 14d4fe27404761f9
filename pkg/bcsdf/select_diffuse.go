//go:build !hairfiber

package bcsdf

// activeModel is resolved at build time so façade calls dispatch statically.
// Build with -tags hairfiber to select the hair fiber model instead.
type activeModel = Diffuse
