//go:build hairfiber

package bcsdf

// activeModel is resolved at build time so façade calls dispatch statically.
type activeModel = Hair
