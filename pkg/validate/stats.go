package validate

import "github.com/strandlight/go-bcsdf/pkg/core"

// Accumulator tracks Monte-Carlo statistics for a stream of sample weights
type Accumulator struct {
	ColorAccum       core.Vec3 // RGB accumulator for the mean estimate
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of successful samples
	Failures         int       // Number of draws the model rejected
}

// AddSample adds a new weight sample to the statistics
func (a *Accumulator) AddSample(weight core.Vec3) {
	a.ColorAccum = a.ColorAccum.Add(weight)
	luminance := weight.Luminance()
	a.LuminanceAccum += luminance
	a.LuminanceSqAccum += luminance * luminance
	a.SampleCount++
}

// AddFailure records a draw where the model produced no sample
func (a *Accumulator) AddFailure() {
	a.Failures++
}

// Merge folds another accumulator into this one
func (a *Accumulator) Merge(other Accumulator) {
	a.ColorAccum = a.ColorAccum.Add(other.ColorAccum)
	a.LuminanceAccum += other.LuminanceAccum
	a.LuminanceSqAccum += other.LuminanceSqAccum
	a.SampleCount += other.SampleCount
	a.Failures += other.Failures
}

// Mean returns the average weight. Failed draws count as zero contribution,
// matching how an integrator treats a rejected sample.
func (a *Accumulator) Mean() core.Vec3 {
	total := a.SampleCount + a.Failures
	if total == 0 {
		return core.Vec3{}
	}
	return a.ColorAccum.Multiply(1.0 / float64(total))
}

// Variance returns the sample variance of the weight luminance
func (a *Accumulator) Variance() float64 {
	if a.SampleCount < 2 {
		return 0
	}
	n := float64(a.SampleCount)
	mean := a.LuminanceAccum / n
	return (a.LuminanceSqAccum - n*mean*mean) / (n - 1)
}

// FailureRate returns the fraction of draws the model rejected
func (a *Accumulator) FailureRate() float64 {
	total := a.SampleCount + a.Failures
	if total == 0 {
		return 0
	}
	return float64(a.Failures) / float64(total)
}
