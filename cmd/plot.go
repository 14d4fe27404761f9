package cmd

import (
	"image"
	"image/png"
	"math"
	"os"

	"github.com/strandlight/go-bcsdf/pkg/core"
	"github.com/urfave/cli"
	"golang.org/x/image/draw"
)

// PlotFlags returns the flags specific to the plot command.
func PlotFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "res",
			Value: 256,
			Usage: "grid resolution for incident inclination (width is 2x)",
		},
		cli.IntFlag{
			Name:  "upscale",
			Value: 2,
			Usage: "integer upscale factor for the output image",
		},
		cli.StringFlag{
			Name:  "out, o",
			Value: "lobes.png",
			Usage: "image filename for the intensity map",
		},
	}
}

// Plot evaluates the model over a (θi, φi) grid for the fixed outgoing
// direction and writes a gamma-corrected intensity map as a PNG.
func Plot(ctx *cli.Context) error {
	setupLogging(ctx)

	model, shading, err := buildModel(ctx)
	if err != nil {
		return err
	}

	model.Setup(shading)
	frame := model.Frame()
	wo := frame.ToLocal(shading.View)

	res := ctx.Int("res")
	width, height := 2*res, res

	// Evaluate the scattering value over the direction grid
	values := make([]core.Vec3, width*height)
	maxLum := 0.0
	for y := 0; y < height; y++ {
		// θi sweeps inclination, φi sweeps azimuth around the frame
		theta := (float64(y)+0.5)/float64(height)*math.Pi - math.Pi/2
		for x := 0; x < width; x++ {
			phi := (float64(x) + 0.5) / float64(width) * 2 * math.Pi
			wi := core.NewVec3(
				math.Sin(theta),
				math.Cos(theta)*math.Cos(phi),
				math.Cos(theta)*math.Sin(phi),
			)
			v := model.Eval(wo, wi)
			values[y*width+x] = v
			maxLum = math.Max(maxLum, v.Luminance())
		}
	}

	if maxLum == 0 {
		maxLum = 1
	}

	// Tone map to 8-bit with gamma correction
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, v := range values {
		c := v.Multiply(1 / maxLum).Clamp(0, 1).GammaCorrect(2.2)
		img.Pix[4*i+0] = uint8(c.X * 255)
		img.Pix[4*i+1] = uint8(c.Y * 255)
		img.Pix[4*i+2] = uint8(c.Z * 255)
		img.Pix[4*i+3] = 255
	}

	out := img
	if scale := ctx.Int("upscale"); scale > 1 {
		scaled := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)
		out = scaled
	}

	file, err := os.Create(ctx.String("out"))
	if err != nil {
		return err
	}
	defer file.Close()

	if err := png.Encode(file, out); err != nil {
		return err
	}

	logger.Noticef("wrote %dx%d intensity map to %s", out.Bounds().Dx(), out.Bounds().Dy(), ctx.String("out"))
	return nil
}
