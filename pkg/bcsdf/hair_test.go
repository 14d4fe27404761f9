package bcsdf

import (
	"math"
	"testing"

	"github.com/strandlight/go-bcsdf/pkg/core"
)

func hairContext(sigmaA core.Vec3, betaM, betaN, h, alphaDeg float64) *ShadingContext {
	return &ShadingContext{
		Normal: core.NewVec3(0, 0, 1),
		View:   core.NewVec3(0.3, 0.1, 0.95).Normalize(),
		Hair: HairParams{
			Tangent:  core.NewVec3(1, 0, 0),
			H:        h,
			SigmaA:   sigmaA,
			BetaM:    betaM,
			BetaN:    betaN,
			Eta:      1.55,
			AlphaDeg: alphaDeg,
		},
	}
}

// woFromTheta builds a local outgoing direction at the given inclination from
// the fiber normal plane.
func woFromTheta(theta, phi float64) core.Vec3 {
	return core.NewVec3(
		math.Sin(theta),
		math.Cos(theta)*math.Cos(phi),
		math.Cos(theta)*math.Sin(phi),
	)
}

func TestHair_WhiteFurnace(t *testing.T) {
	// With no absorption the attenuations sum to one and the sample weight
	// is exactly one for gray parameters, so the energy estimate is tight.
	var hm Hair
	hm.Setup(hairContext(core.Vec3{}, 0.3, 0.3, 0.3, 2))

	wo := woFromTheta(0.4, 0.7)
	sg := core.NewSeededSampler(42)

	var weightSum core.Vec3
	const n = 10000
	for i := 0; i < n; i++ {
		sample, ok := hm.Sample(wo, sg)
		if !ok {
			t.Fatal("Hair sampling should succeed for a regular outgoing direction")
		}
		lum := sample.Weight.Luminance()
		if math.Abs(lum-1) > 1e-6 {
			t.Fatalf("White furnace sample weight should be 1, got %f", lum)
		}
		weightSum = weightSum.Add(sample.Weight)
	}

	mean := weightSum.Multiply(1.0 / n)
	if math.Abs(mean.Luminance()-1) > 1e-3 {
		t.Errorf("White furnace mean weight should be 1, got %v", mean)
	}
}

func TestHair_EnergyNonAmplifying(t *testing.T) {
	// With absorption the scattered energy must drop below one
	var clear, absorbing Hair
	clear.Setup(hairContext(core.Vec3{}, 0.3, 0.3, 0.3, 2))
	absorbing.Setup(hairContext(core.NewVec3(1, 1, 1), 0.3, 0.3, 0.3, 2))

	wo := woFromTheta(0.4, 0.7)

	mean := func(hm *Hair) float64 {
		sg := core.NewSeededSampler(42)
		sum := 0.0
		const n = 10000
		for i := 0; i < n; i++ {
			sample, ok := hm.Sample(wo, sg)
			if !ok {
				continue
			}
			sum += sample.Weight.Luminance()
		}
		return sum / n
	}

	clearMean := mean(&clear)
	absorbingMean := mean(&absorbing)

	if absorbingMean >= clearMean {
		t.Errorf("Absorption should reduce scattered energy: %f >= %f", absorbingMean, clearMean)
	}
	if absorbingMean > 1+1e-3 {
		t.Errorf("Absorbing fiber amplifies energy: mean weight %f", absorbingMean)
	}
}

func TestHair_PdfIntegratesToOne(t *testing.T) {
	var hm Hair
	hm.Setup(hairContext(core.NewVec3(0.3, 0.5, 0.9), 0.4, 0.4, 0.3, 2))

	for _, theta := range []float64{0.1, 0.7} {
		wo := woFromTheta(theta, 0.5)
		sg := core.NewSeededSampler(42)

		const strata = 400
		sum := 0.0
		for i := 0; i < strata; i++ {
			for j := 0; j < strata; j++ {
				u := (float64(i) + sg.Get1D()) / strata
				v := (float64(j) + sg.Get1D()) / strata
				wi := core.SampleUniformSphere(core.NewVec2(u, v))
				sum += hm.PDF(wo, wi) * 4 * math.Pi
			}
		}
		integral := sum / (strata * strata)

		if math.Abs(integral-1) > 0.05 {
			t.Errorf("theta=%.1f: pdf should integrate to 1, got %f", theta, integral)
		}
	}
}

func TestHair_SampleEvalConsistency(t *testing.T) {
	contexts := []*ShadingContext{
		hairContext(core.NewVec3(0.2, 0.4, 0.8), 0.3, 0.3, 0.3, 2),
		hairContext(core.NewVec3(1, 1, 1), 0.6, 0.5, -0.5, 0),
		hairContext(core.Vec3{}, 0.1, 0.2, 0.8, 3),
	}

	for ci, ctx := range contexts {
		var hm Hair
		hm.Setup(ctx)

		wo := woFromTheta(0.5, 1.2)
		sg := core.NewSeededSampler(int64(100 + ci))

		for i := 0; i < 1000; i++ {
			sample, ok := hm.Sample(wo, sg)
			if !ok {
				continue
			}

			if sample.PDF <= 0 {
				t.Fatalf("ctx %d: success with non-positive pdf %f", ci, sample.PDF)
			}
			if math.Abs(sample.Wi.Length()-1) > 1e-6 {
				t.Fatalf("ctx %d: sampled direction not unit length: %v", ci, sample.Wi)
			}

			switch sample.Lobe {
			case LobeR, LobeTT, LobeTRT, LobeTRRT:
			default:
				t.Fatalf("ctx %d: unexpected lobe %v", ci, sample.Lobe)
			}

			// evalPdf must reproduce the sampling density
			pdf := hm.PDF(wo, sample.Wi)
			if math.Abs(pdf-sample.PDF) > 1e-6*sample.PDF {
				t.Fatalf("ctx %d: PDF %g disagrees with sample pdf %g", ci, pdf, sample.PDF)
			}

			// weight must equal eval/pdf
			ratio := hm.Eval(wo, sample.Wi).Multiply(1 / sample.PDF)
			if ratio.Subtract(sample.Weight).Length() > 1e-6*(1+sample.Weight.Length()) {
				t.Fatalf("ctx %d: weight %v should equal eval/pdf %v", ci, sample.Weight, ratio)
			}
		}
	}
}

func TestHair_EvalNonNegative(t *testing.T) {
	var hm Hair
	hm.Setup(hairContext(core.NewVec3(0.4, 0.6, 1.2), 0.25, 0.3, -0.7, 2))

	wo := woFromTheta(0.3, 0.4)
	sg := core.NewSeededSampler(42)

	for i := 0; i < 1000; i++ {
		wi := core.SampleUniformSphere(sg.Get2D())
		f := hm.Eval(wo, wi)
		if f.X < 0 || f.Y < 0 || f.Z < 0 {
			t.Fatalf("Eval returned negative value %v for wi %v", f, wi)
		}
		if !f.IsFinite() {
			t.Fatalf("Eval returned non-finite value %v for wi %v", f, wi)
		}
	}
}

func TestHair_DegenerateView(t *testing.T) {
	var hm Hair
	hm.Setup(hairContext(core.NewVec3(0.2, 0.4, 0.8), 0.3, 0.3, 0.3, 2))

	// Looking straight down the fiber axis
	wo := core.NewVec3(1, 0, 0)
	sg := core.NewSeededSampler(42)

	if _, ok := hm.Sample(wo, sg); ok {
		t.Error("Sample should fail for a view direction along the fiber axis")
	}
	if f := hm.Eval(wo, core.NewVec3(0, 0, 1)); f != (core.Vec3{}) {
		t.Errorf("Eval should be zero for a degenerate view direction, got %v", f)
	}
	if pdf := hm.PDF(wo, core.NewVec3(0, 0, 1)); pdf != 0 {
		t.Errorf("PDF should be zero for a degenerate view direction, got %f", pdf)
	}
}

func TestHair_SetupClampsParameters(t *testing.T) {
	var hm Hair
	hm.Setup(&ShadingContext{
		Normal: core.NewVec3(0, 0, 1),
		View:   core.NewVec3(0, 0, 1),
		Hair: HairParams{
			Tangent: core.NewVec3(1, 0, 0),
			H:       2,                        // out of range
			SigmaA:  core.NewVec3(-1, -1, -1), // negative absorption
			BetaM:   -0.5,                     // out of range
			BetaN:   7,                        // out of range
			Eta:     0,                        // invalid, defaults
		},
	})

	if hm.h != 1 {
		t.Errorf("H should clamp to 1, got %f", hm.h)
	}
	if hm.sigmaA != (core.Vec3{}) {
		t.Errorf("Negative absorption should clamp to zero, got %v", hm.sigmaA)
	}
	if hm.eta != 1.55 {
		t.Errorf("Invalid eta should default to 1.55, got %f", hm.eta)
	}
	for p := 0; p <= pMax; p++ {
		if hm.v[p] <= 0 {
			t.Errorf("Lobe variance %d should be positive after clamping, got %f", p, hm.v[p])
		}
	}
	if hm.s <= 0 {
		t.Errorf("Azimuthal scale should be positive after clamping, got %f", hm.s)
	}
}
