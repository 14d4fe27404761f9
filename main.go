package main

import (
	"os"

	"github.com/strandlight/go-bcsdf/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-bcsdf"
	app.Usage = "validate and visualize curve/surface scattering models"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "furnace",
			Usage: "run an energy-conservation check on a scattering model",
			Description: `
Draw incident directions from the model's own importance sampling and average
the sample weights. For an energy-conserving model the mean converges to the
model albedo and never exceeds one per channel.`,
			Flags:  append(modelFlags(), cmd.FurnaceFlags()...),
			Action: cmd.Furnace,
		},
		{
			Name:  "pdf",
			Usage: "check that the sampling pdf integrates to one over the sphere",
			Description: `
Integrate the model's sampling density over the full sphere with jittered
stratified sampling, for a sweep of outgoing directions.`,
			Flags:  append(modelFlags(), cmd.PdfFlags()...),
			Action: cmd.PdfCheck,
		},
		{
			Name:  "plot",
			Usage: "render an intensity map of the scattering function to a PNG",
			Description: `
Evaluate the model over a grid of incident directions for one fixed outgoing
direction and write the tone-mapped result as a PNG image.`,
			Flags:  append(modelFlags(), cmd.PlotFlags()...),
			Action: cmd.Plot,
		},
	}

	app.Run(os.Args)
}

func modelFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "model",
			Value: "diffuse",
			Usage: "scattering model: 'diffuse' or 'hair'",
		},
		cli.Float64Flag{
			Name:  "view-theta",
			Value: 30,
			Usage: "outgoing direction inclination in degrees",
		},
		cli.Float64Flag{
			Name:  "albedo",
			Value: 0.8,
			Usage: "diffuse reflectance",
		},
		cli.Float64Flag{
			Name:  "h",
			Value: 0.3,
			Usage: "fiber width offset in [-1,1]",
		},
		cli.Float64Flag{
			Name:  "absorption",
			Value: 0.2,
			Usage: "fiber interior absorption coefficient",
		},
		cli.Float64Flag{
			Name:  "beta-m",
			Value: 0.3,
			Usage: "fiber longitudinal roughness",
		},
		cli.Float64Flag{
			Name:  "beta-n",
			Value: 0.3,
			Usage: "fiber azimuthal roughness",
		},
		cli.Float64Flag{
			Name:  "alpha",
			Value: 2,
			Usage: "cuticle scale tilt in degrees",
		},
	}
}
