// Package validate provides Monte-Carlo checks for scattering models: an
// energy-conservation (furnace) test driven by the model's own importance
// sampling, and stratified pdf-integration checks. It is the module's only
// concurrent component; the evaluator itself stays pure per call.
package validate

import (
	"github.com/strandlight/go-bcsdf/pkg/bcsdf"
	"github.com/strandlight/go-bcsdf/pkg/core"
)

const batchSize = 4096

// FurnaceResult summarizes an energy-conservation run
type FurnaceResult struct {
	Mean        core.Vec3 // average sample weight; converges to the model albedo
	Variance    float64   // sample variance of the weight luminance
	Samples     int       // successful draws
	Failures    int       // rejected draws
	FailureRate float64
}

// Furnace runs an energy-conservation check: it draws totalSamples incident
// directions from the model's own sampling routine and averages the sample
// weights. For an energy-conserving model the mean converges to the albedo
// and never exceeds one per channel.
//
// The model is Setup once and then only read, so sharing it across workers
// is safe. Results are merged in batch order, making the outcome
// deterministic for a fixed seed regardless of worker count.
func Furnace(m bcsdf.Model, ctx *bcsdf.ShadingContext, totalSamples int, seed int64, workers int) FurnaceResult {
	m.Setup(ctx)
	wo := m.Frame().ToLocal(ctx.View)

	fn := func(sg core.Sampler) (core.Vec3, bool) {
		sample, ok := m.Sample(wo, sg)
		if !ok {
			return core.Vec3{}, false
		}
		return sample.Weight, true
	}

	numBatches := (totalSamples + batchSize - 1) / batchSize
	pool := NewWorkerPool(fn, numBatches, workers)
	pool.Start()

	remaining := totalSamples
	for i := 0; i < numBatches; i++ {
		samples := min(batchSize, remaining)
		remaining -= samples
		pool.SubmitTask(BatchTask{BatchID: i, Samples: samples, Seed: seed + int64(i)})
	}
	pool.Stop()

	// Merge in batch order for determinism
	results := make([]Accumulator, numBatches)
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		results[result.BatchID] = result.Acc
	}

	var total Accumulator
	for _, acc := range results {
		total.Merge(acc)
	}

	return FurnaceResult{
		Mean:        total.Mean(),
		Variance:    total.Variance(),
		Samples:     total.SampleCount,
		Failures:    total.Failures,
		FailureRate: total.FailureRate(),
	}
}
