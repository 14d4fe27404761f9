package validate

import (
	"github.com/strandlight/go-bcsdf/pkg/bcsdf"
	"github.com/strandlight/go-bcsdf/pkg/core"
)

// PdfIntegral numerically integrates the model's sampling density over the
// full sphere with jittered stratified sampling. A correctly normalized pdf
// integrates to 1 for any outgoing direction.
func PdfIntegral(m bcsdf.Model, ctx *bcsdf.ShadingContext, strataU, strataV int, seed int64) float64 {
	m.Setup(ctx)
	wo := m.Frame().ToLocal(ctx.View)
	sg := core.NewSeededSampler(seed)

	sum := 0.0
	for i := 0; i < strataU; i++ {
		for j := 0; j < strataV; j++ {
			u := (float64(i) + sg.Get1D()) / float64(strataU)
			v := (float64(j) + sg.Get1D()) / float64(strataV)
			wi := core.SampleUniformSphere(core.NewVec2(u, v))
			sum += m.PDF(wo, wi) / core.UniformSpherePDF()
		}
	}

	return sum / float64(strataU*strataV)
}

// EvalIntegral numerically integrates the model's scattering value over the
// full sphere. Because models fold their cosine term into Eval, the integral
// is the model's albedo, bounded by 1 per channel for an energy-conserving
// model.
func EvalIntegral(m bcsdf.Model, ctx *bcsdf.ShadingContext, strataU, strataV int, seed int64) core.Vec3 {
	m.Setup(ctx)
	wo := m.Frame().ToLocal(ctx.View)
	sg := core.NewSeededSampler(seed)

	var sum core.Vec3
	for i := 0; i < strataU; i++ {
		for j := 0; j < strataV; j++ {
			u := (float64(i) + sg.Get1D()) / float64(strataU)
			v := (float64(j) + sg.Get1D()) / float64(strataV)
			wi := core.SampleUniformSphere(core.NewVec2(u, v))
			sum = sum.Add(m.Eval(wo, wi).Multiply(1 / core.UniformSpherePDF()))
		}
	}

	return sum.Multiply(1 / float64(strataU*strataV))
}
