// Package bcsdf evaluates bidirectional curve/surface scattering distribution
// functions. It hosts interchangeable scattering models (Lambertian diffuse,
// Chiang et al. 2016 hair fiber) behind one contract: evaluate the scattering
// value for a direction pair, importance-sample an incident direction, and
// evaluate the sampling pdf for multiple importance sampling.
//
// The active model is chosen at build time (see select_diffuse.go and
// select_hair.go); switching models requires a rebuild, not a runtime flag.
package bcsdf

import (
	"github.com/strandlight/go-bcsdf/pkg/core"
)

// ShadingContext is an immutable per-call snapshot of the shading point.
// Normal and View are unit vectors in the same world frame; View points
// toward the viewer and is never zero.
type ShadingContext struct {
	Normal core.Vec3 // outward surface or curve normal
	View   core.Vec3 // direction toward the viewer
	Albedo core.Vec3 // reflectance, used by the diffuse model

	// Hair holds fiber parameters, used only by the hair model
	Hair HairParams
}

// ScatterSample is the result of importance-sampling a scattering model.
// From the façade Wi is in world space; from a model it is in the model's
// local frame.
type ScatterSample struct {
	Wi     core.Vec3 // sampled incident direction, unit length
	PDF    float64   // solid-angle density, > 0 on success
	Weight core.Vec3 // Eval(wo, wi) / PDF, the throughput multiplier
	Lobe   Lobe      // which physical lobe produced the sample
}

// EvalCosine returns the scattering value toward light direction l, with the
// model's cosine term folded in. l and ctx.View are world-space unit vectors.
func EvalCosine(ctx *ShadingContext, l core.Vec3) core.Vec3 {
	var m activeModel
	m.Setup(ctx)
	frame := m.Frame()
	return m.Eval(frame.ToLocal(ctx.View), frame.ToLocal(l))
}

// Sample draws one incident direction for the shading point, advancing the
// sample generator. Returns false when the model reports no sample; the
// caller must treat that as zero contribution and not trace further.
func Sample(ctx *ShadingContext, sg core.Sampler) (ScatterSample, bool) {
	var m activeModel
	m.Setup(ctx)
	frame := m.Frame()

	sample, ok := m.Sample(frame.ToLocal(ctx.View), sg)
	if !ok {
		return ScatterSample{}, false
	}

	sample.Wi = frame.ToWorld(sample.Wi)
	return sample, true
}

// EvalPdf returns the density Sample would have assigned to world-space light
// direction l, for MIS weight computation.
func EvalPdf(ctx *ShadingContext, l core.Vec3) float64 {
	var m activeModel
	m.Setup(ctx)
	frame := m.Frame()
	return m.PDF(frame.ToLocal(ctx.View), frame.ToLocal(l))
}
