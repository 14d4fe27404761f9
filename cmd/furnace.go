package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/strandlight/go-bcsdf/pkg/validate"
	"github.com/urfave/cli"
)

// FurnaceFlags returns the flags specific to the furnace command.
func FurnaceFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "samples",
			Value: 1 << 20,
			Usage: "total number of Monte-Carlo draws",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 42,
			Usage: "deterministic base seed",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "worker goroutines (0 = NumCPU)",
		},
	}
}

// Furnace runs the energy-conservation check and prints the result table.
func Furnace(ctx *cli.Context) error {
	setupLogging(ctx)

	model, shading, err := buildModel(ctx)
	if err != nil {
		return err
	}

	logger.Infof("running furnace test with %d samples", ctx.Int("samples"))

	start := time.Now()
	result := validate.Furnace(model, shading, ctx.Int("samples"), ctx.Int64("seed"), ctx.Int("workers"))
	elapsed := time.Since(start)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Mean R", "Mean G", "Mean B", "Variance", "Failure rate", "Time"})
	table.Append([]string{
		fmt.Sprintf("%.5f", result.Mean.X),
		fmt.Sprintf("%.5f", result.Mean.Y),
		fmt.Sprintf("%.5f", result.Mean.Z),
		fmt.Sprintf("%.3g", result.Variance),
		fmt.Sprintf("%.3f %%", 100*result.FailureRate),
		fmt.Sprintf("%s", elapsed),
	})
	table.Render()

	logger.Noticef("furnace result for %s model\n%s", ctx.String("model"), buf.String())

	if result.Mean.MaxComponent() > 1 {
		return fmt.Errorf("model amplifies energy: mean weight %v exceeds 1", result.Mean)
	}
	return nil
}
