//go:build hairfiber

package bcsdf

import (
	"math"
	"testing"

	"github.com/strandlight/go-bcsdf/pkg/core"
)

// Façade tests for builds with the hair fiber model active.

func hairShadingContext() *ShadingContext {
	return &ShadingContext{
		Normal: core.NewVec3(0, 0, 1),
		View:   core.NewVec3(0.3, 0.1, 0.95).Normalize(),
		Hair: HairParams{
			Tangent:  core.NewVec3(1, 0, 0),
			H:        0.3,
			SigmaA:   core.NewVec3(0.2, 0.4, 0.8),
			BetaM:    0.3,
			BetaN:    0.3,
			Eta:      1.55,
			AlphaDeg: 2,
		},
	}
}

func TestSample_HairWorldSpace(t *testing.T) {
	ctx := hairShadingContext()
	sg := core.NewSeededSampler(42)

	for i := 0; i < 1000; i++ {
		sample, ok := Sample(ctx, sg)
		if !ok {
			continue
		}

		if math.Abs(sample.Wi.Length()-1) > 1e-6 {
			t.Fatalf("Sampled world direction not unit length: %v", sample.Wi)
		}
		switch sample.Lobe {
		case LobeR, LobeTT, LobeTRT, LobeTRRT:
		default:
			t.Fatalf("Unexpected lobe %v from fiber model", sample.Lobe)
		}

		if pdf := EvalPdf(ctx, sample.Wi); math.Abs(pdf-sample.PDF) > 1e-6*sample.PDF {
			t.Fatalf("EvalPdf %g disagrees with sample pdf %g", pdf, sample.PDF)
		}
		ratio := EvalCosine(ctx, sample.Wi).Multiply(1 / sample.PDF)
		if ratio.Subtract(sample.Weight).Length() > 1e-6*(1+sample.Weight.Length()) {
			t.Fatalf("Weight %v should equal evalCosine/pdf %v", sample.Weight, ratio)
		}
	}
}

func TestSample_HairDegenerateView(t *testing.T) {
	ctx := hairShadingContext()
	ctx.View = core.NewVec3(1, 0, 0) // straight down the fiber axis

	sg := core.NewSeededSampler(42)
	if _, ok := Sample(ctx, sg); ok {
		t.Error("Sample should fail for a view along the fiber axis")
	}
}
