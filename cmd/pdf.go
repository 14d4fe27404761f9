package cmd

import (
	"bytes"
	"fmt"
	"math"

	"github.com/olekukonko/tablewriter"
	"github.com/strandlight/go-bcsdf/pkg/core"
	"github.com/strandlight/go-bcsdf/pkg/validate"
	"github.com/urfave/cli"
)

// PdfFlags returns the flags specific to the pdf command.
func PdfFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "strata",
			Value: 256,
			Usage: "stratification resolution per sphere axis",
		},
		cli.IntFlag{
			Name:  "directions",
			Value: 5,
			Usage: "number of outgoing inclinations to sweep",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 42,
			Usage: "deterministic base seed",
		},
	}
}

// PdfCheck integrates the sampling density over the sphere for a sweep of
// outgoing directions and prints the deviation from one.
func PdfCheck(ctx *cli.Context) error {
	setupLogging(ctx)

	model, shading, err := buildModel(ctx)
	if err != nil {
		return err
	}

	strata := ctx.Int("strata")
	directions := ctx.Int("directions")

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"View theta", "Integral", "Error"})

	worst := 0.0
	for i := 0; i < directions; i++ {
		// Sweep inclinations away from grazing at both ends
		theta := (float64(i) + 0.5) / float64(directions) * math.Pi / 2
		shading.View = core.NewVec3(math.Sin(theta), 0, math.Cos(theta))

		integral := validate.PdfIntegral(model, shading, strata, strata, ctx.Int64("seed")+int64(i))
		errAbs := math.Abs(integral - 1)
		worst = math.Max(worst, errAbs)

		table.Append([]string{
			fmt.Sprintf("%5.1f°", theta*180/math.Pi),
			fmt.Sprintf("%.5f", integral),
			fmt.Sprintf("%.5f", errAbs),
		})
	}
	table.SetFooter([]string{"", "WORST", fmt.Sprintf("%.5f", worst)})
	table.Render()

	logger.Noticef("pdf integration for %s model\n%s", ctx.String("model"), buf.String())

	if worst > 0.05 {
		return fmt.Errorf("pdf integral deviates from 1 by %.4f", worst)
	}
	return nil
}
