package cmd

import (
	"fmt"
	"math"

	"github.com/strandlight/go-bcsdf/pkg/bcsdf"
	"github.com/strandlight/go-bcsdf/pkg/core"
	"github.com/urfave/cli"
)

// buildModel constructs the scattering model and shading context described by
// the shared model flags. The shading point uses a +z normal with the fiber
// tangent along +x; the outgoing direction is tilted by view-theta degrees.
func buildModel(ctx *cli.Context) (bcsdf.Model, *bcsdf.ShadingContext, error) {
	theta := ctx.Float64("view-theta") * math.Pi / 180
	view := core.NewVec3(math.Sin(theta), 0, math.Cos(theta))

	albedo := ctx.Float64("albedo")
	absorption := ctx.Float64("absorption")

	shading := &bcsdf.ShadingContext{
		Normal: core.NewVec3(0, 0, 1),
		View:   view,
		Albedo: core.NewVec3(albedo, albedo, albedo),
		Hair: bcsdf.HairParams{
			Tangent:  core.NewVec3(1, 0, 0),
			H:        ctx.Float64("h"),
			SigmaA:   core.NewVec3(absorption, absorption, absorption),
			BetaM:    ctx.Float64("beta-m"),
			BetaN:    ctx.Float64("beta-n"),
			AlphaDeg: ctx.Float64("alpha"),
		},
	}

	switch ctx.String("model") {
	case "diffuse":
		return &bcsdf.Diffuse{}, shading, nil
	case "hair":
		return &bcsdf.Hair{}, shading, nil
	}

	return nil, nil, fmt.Errorf("unknown model %q", ctx.String("model"))
}
