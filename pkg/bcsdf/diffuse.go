package bcsdf

import (
	"math"

	"github.com/strandlight/go-bcsdf/pkg/core"
)

// Diffuse is a Lambertian reflectance lobe with cosine-weighted importance
// sampling. Support is the upper hemisphere of the shading frame.
type Diffuse struct {
	albedo core.Vec3
	frame  core.Frame
}

// Setup derives the local frame from the normal and clamps the albedo to [0,1].
func (d *Diffuse) Setup(ctx *ShadingContext) {
	d.albedo = ctx.Albedo.Clamp(0, 1)
	d.frame = core.NewFrame(ctx.Normal)
}

// Frame returns the shading frame built around the surface normal.
func (d *Diffuse) Frame() core.Frame {
	return d.frame
}

// Eval returns albedo/π · cos(θi) for directions in the upper hemisphere,
// zero otherwise. The cosine term is folded in per the model contract.
func (d *Diffuse) Eval(wo, wi core.Vec3) core.Vec3 {
	if core.CosTheta(wo) <= 0 || core.CosTheta(wi) <= 0 {
		return core.Vec3{}
	}
	return d.albedo.Multiply(core.CosTheta(wi) / math.Pi)
}

// Sample draws a cosine-weighted direction in the upper hemisphere. The
// cosine-weighted pdf cancels the cosine in Eval exactly, so the sample
// weight is the albedo itself.
func (d *Diffuse) Sample(wo core.Vec3, sg core.Sampler) (ScatterSample, bool) {
	if core.CosTheta(wo) <= 0 {
		return ScatterSample{}, false
	}

	wi := core.SampleCosineHemisphere(sg.Get2D())
	pdf := core.CosineHemispherePDF(core.CosTheta(wi))
	if pdf <= 0 {
		return ScatterSample{}, false
	}

	return ScatterSample{
		Wi:     wi,
		PDF:    pdf,
		Weight: d.albedo,
		Lobe:   LobeDiffuse,
	}, true
}

// PDF returns the cosine-weighted hemisphere density cos(θi)/π, zero when
// either direction is outside the upper hemisphere.
func (d *Diffuse) PDF(wo, wi core.Vec3) float64 {
	if core.CosTheta(wo) <= 0 {
		return 0
	}
	return core.CosineHemispherePDF(core.CosTheta(wi))
}
