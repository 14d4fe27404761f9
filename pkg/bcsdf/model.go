package bcsdf

import (
	"github.com/strandlight/go-bcsdf/pkg/core"
)

// Model is the contract every scattering model satisfies. All directions are
// unit vectors in the model's local shading frame; the façade owns the
// world↔local conversion.
//
// Cosine convention: Eval returns the throughput-ready scattering value with
// any cosine/foreshortening term already folded in, so integrating Eval over
// the sphere yields the model's albedo and Weight = Eval/PDF is the
// Monte-Carlo throughput multiplier directly. The façade never multiplies a
// cosine on top.
type Model interface {
	// Setup derives internal state from the shading context. Out-of-range
	// parameters are clamped; Setup never fails.
	Setup(ctx *ShadingContext)

	// Frame returns the local shading frame derived during Setup.
	Frame() core.Frame

	// Eval returns the scattering value for an outgoing/incident direction
	// pair. Non-negative per channel; zero outside the model's support.
	Eval(wo, wi core.Vec3) core.Vec3

	// Sample draws one incident direction distributed according to the
	// model's scattering function. Returns false when the outgoing
	// direction is degenerate or has no support; the caller must treat
	// that as zero contribution. On success PDF > 0 is guaranteed.
	Sample(wo core.Vec3, sg core.Sampler) (ScatterSample, bool)

	// PDF returns the solid-angle density Sample would have assigned to
	// the direction pair, for MIS against other strategies.
	PDF(wo, wi core.Vec3) float64
}

// Interface compliance checks
var (
	_ Model = (*Diffuse)(nil)
	_ Model = (*Hair)(nil)
)
