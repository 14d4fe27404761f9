package bcsdf

import (
	"math"

	"github.com/strandlight/go-bcsdf/pkg/core"
)

// pMax is the number of discrete fiber lobes (R, TT, TRT); all higher-order
// internal bounces are collected into one residual lobe.
const pMax = 3

const sqrtPiOver8 = 0.626657069

// HairParams are the fiber parameters consumed by the hair model's Setup.
type HairParams struct {
	Tangent  core.Vec3 // curve direction at the shading point
	H        float64   // offset across the fiber width, in [-1, 1]
	SigmaA   core.Vec3 // interior absorption coefficient, per channel
	BetaM    float64   // longitudinal roughness, in (0, 1]
	BetaN    float64   // azimuthal roughness, in (0, 1]
	Eta      float64   // index of refraction of the fiber interior
	AlphaDeg float64   // cuticle scale tilt in degrees
}

// Hair is the Chiang et al. 2016 fiber scattering model: a product of
// longitudinal lobes Mp, azimuthal lobes Np and attenuations Ap for the first
// pMax bounce orders, plus a uniform residual lobe. Local frame convention:
// the x axis runs along the fiber tangent, so sin(θ) of a local direction is
// its x component and the azimuth φ is measured in the y-z plane.
type Hair struct {
	frame  core.Frame
	h      float64
	gammaO float64
	eta    float64
	sigmaA core.Vec3
	s      float64
	v      [pMax + 1]float64
	// sin/cos of 2^k · α for the cuticle tilt recurrence
	sin2kAlpha [3]float64
	cos2kAlpha [3]float64
}

// Setup clamps the fiber parameters and precomputes lobe variances, the
// azimuthal logistic scale and the cuticle tilt terms.
func (hm *Hair) Setup(ctx *ShadingContext) {
	p := ctx.Hair

	hm.frame = core.NewFiberFrame(p.Tangent, ctx.Normal)
	hm.h = clamp(p.H, -1, 1)
	hm.gammaO = math.Asin(hm.h)
	hm.sigmaA = p.SigmaA.Clamp(0, math.Inf(1))

	hm.eta = p.Eta
	if hm.eta <= 1 {
		hm.eta = 1.55
	}

	betaM := clamp(p.BetaM, 1e-3, 1)
	betaN := clamp(p.BetaN, 1e-3, 1)

	// Longitudinal variances per lobe (Chiang's roughness mapping)
	hm.v[0] = sqr(0.726*betaM + 0.812*betaM*betaM + 3.7*math.Pow(betaM, 20))
	hm.v[1] = 0.25 * hm.v[0]
	hm.v[2] = 4 * hm.v[0]
	hm.v[3] = hm.v[2]

	// Azimuthal logistic scale from azimuthal roughness
	hm.s = sqrtPiOver8 * (0.265*betaN + 1.194*betaN*betaN + 5.372*math.Pow(betaN, 22))

	// Angle-doubling recurrence for the per-lobe scale tilt
	alpha := p.AlphaDeg * math.Pi / 180
	hm.sin2kAlpha[0] = math.Sin(alpha)
	hm.cos2kAlpha[0] = math.Sqrt(math.Max(0, 1-sqr(hm.sin2kAlpha[0])))
	for i := 1; i < 3; i++ {
		hm.sin2kAlpha[i] = 2 * hm.cos2kAlpha[i-1] * hm.sin2kAlpha[i-1]
		hm.cos2kAlpha[i] = sqr(hm.cos2kAlpha[i-1]) - sqr(hm.sin2kAlpha[i-1])
	}
}

// Frame returns the fiber frame with the tangent axis along the curve.
func (hm *Hair) Frame() core.Frame {
	return hm.frame
}

// Eval returns the fiber scattering value, summed over lobes. Per the model
// contract the value is throughput-ready: its integral over the sphere is the
// fiber albedo, and no extra cosine is applied by the caller.
func (hm *Hair) Eval(wo, wi core.Vec3) core.Vec3 {
	sinThetaO := wo.X
	cosThetaO := math.Sqrt(math.Max(0, 1-sqr(sinThetaO)))
	phiO := math.Atan2(wo.Z, wo.Y)

	sinThetaI := wi.X
	cosThetaI := math.Sqrt(math.Max(0, 1-sqr(sinThetaI)))
	phiI := math.Atan2(wi.Z, wi.Y)

	if cosThetaO == 0 {
		return core.Vec3{}
	}

	// Longitudinal angle and azimuthal offset of the refracted ray
	sinThetaT := sinThetaO / hm.eta
	cosThetaT := math.Sqrt(math.Max(0, 1-sqr(sinThetaT)))
	etap := math.Sqrt(sqr(hm.eta)-sqr(sinThetaO)) / cosThetaO
	sinGammaT := clamp(hm.h/etap, -1, 1)
	cosGammaT := math.Sqrt(math.Max(0, 1-sqr(sinGammaT)))
	gammaT := math.Asin(sinGammaT)

	// Absorption along the internal path
	transmittance := expVec(hm.sigmaA.Multiply(-2 * cosGammaT / cosThetaT))

	ap := hm.attenuation(cosThetaO, transmittance)

	phi := phiI - phiO
	var fsum core.Vec3
	for p := 0; p < pMax; p++ {
		sinThetaOp, cosThetaOp := hm.tiltThetaO(p, sinThetaO, cosThetaO)
		m := mp(cosThetaI, cosThetaOp, sinThetaI, sinThetaOp, hm.v[p])
		n := np(phi, p, hm.s, hm.gammaO, gammaT)
		fsum = fsum.Add(ap[p].Multiply(m * n))
	}

	// Residual lobe: uniform in azimuth
	mRes := mp(cosThetaI, cosThetaO, sinThetaI, sinThetaO, hm.v[pMax])
	fsum = fsum.Add(ap[pMax].Multiply(mRes / (2 * math.Pi)))

	if !fsum.IsFinite() {
		return core.Vec3{}
	}
	return fsum
}

// Sample draws an incident direction by first picking a lobe with probability
// proportional to its attenuation energy, then sampling the lobe's
// longitudinal and azimuthal distributions by inverse CDF.
func (hm *Hair) Sample(wo core.Vec3, sg core.Sampler) (ScatterSample, bool) {
	sinThetaO := wo.X
	cosThetaO := math.Sqrt(math.Max(0, 1-sqr(sinThetaO)))
	phiO := math.Atan2(wo.Z, wo.Y)

	if cosThetaO == 0 {
		// Viewing straight down the fiber axis
		return ScatterSample{}, false
	}

	u0 := sg.Get2D()
	u1 := sg.Get2D()

	// Pick a lobe by attenuation energy
	apPdf := hm.attenuationPDF(cosThetaO)
	p := 0
	uLobe := u0.X
	for p = 0; p < pMax; p++ {
		if uLobe < apPdf[p] {
			break
		}
		uLobe -= apPdf[p]
	}

	// Sample the longitudinal lobe
	sinThetaOp, cosThetaOp := hm.tiltThetaO(p, sinThetaO, cosThetaO)
	uM := math.Max(u0.Y, 1e-5)
	cosTheta := 1 + hm.v[p]*math.Log(uM+(1-uM)*math.Exp(-2/hm.v[p]))
	sinTheta := math.Sqrt(math.Max(0, 1-sqr(cosTheta)))
	cosPhi := math.Cos(2 * math.Pi * u1.X)
	sinThetaI := clamp(-cosTheta*sinThetaOp+sinTheta*cosPhi*cosThetaOp, -1, 1)
	cosThetaI := math.Sqrt(math.Max(0, 1-sqr(sinThetaI)))

	// Sample the azimuthal lobe
	etap := math.Sqrt(sqr(hm.eta)-sqr(sinThetaO)) / cosThetaO
	sinGammaT := clamp(hm.h/etap, -1, 1)
	gammaT := math.Asin(sinGammaT)

	var dphi float64
	if p < pMax {
		dphi = phiFn(p, hm.gammaO, gammaT) + sampleTrimmedLogistic(u1.Y, hm.s, -math.Pi, math.Pi)
	} else {
		dphi = 2 * math.Pi * u1.Y
	}

	phiI := phiO + dphi
	wi := core.NewVec3(sinThetaI, cosThetaI*math.Cos(phiI), cosThetaI*math.Sin(phiI))

	pdf := hm.PDF(wo, wi)
	if pdf <= 0 {
		return ScatterSample{}, false
	}

	weight := hm.Eval(wo, wi).Multiply(1 / pdf)
	if !weight.IsFinite() {
		return ScatterSample{}, false
	}

	return ScatterSample{
		Wi:     wi,
		PDF:    pdf,
		Weight: weight,
		Lobe:   lobeForOrder(p),
	}, true
}

// PDF returns the mixture density Sample draws from: per-lobe longitudinal
// times azimuthal densities weighted by the lobe selection probabilities.
func (hm *Hair) PDF(wo, wi core.Vec3) float64 {
	sinThetaO := wo.X
	cosThetaO := math.Sqrt(math.Max(0, 1-sqr(sinThetaO)))
	phiO := math.Atan2(wo.Z, wo.Y)

	sinThetaI := wi.X
	cosThetaI := math.Sqrt(math.Max(0, 1-sqr(sinThetaI)))
	phiI := math.Atan2(wi.Z, wi.Y)

	if cosThetaO == 0 {
		return 0
	}

	etap := math.Sqrt(sqr(hm.eta)-sqr(sinThetaO)) / cosThetaO
	sinGammaT := clamp(hm.h/etap, -1, 1)
	gammaT := math.Asin(sinGammaT)

	apPdf := hm.attenuationPDF(cosThetaO)

	phi := phiI - phiO
	pdf := 0.0
	for p := 0; p < pMax; p++ {
		sinThetaOp, cosThetaOp := hm.tiltThetaO(p, sinThetaO, cosThetaO)
		m := mp(cosThetaI, cosThetaOp, sinThetaI, sinThetaOp, hm.v[p])
		pdf += apPdf[p] * m * np(phi, p, hm.s, hm.gammaO, gammaT)
	}
	pdf += apPdf[pMax] * mp(cosThetaI, cosThetaO, sinThetaI, sinThetaO, hm.v[pMax]) / (2 * math.Pi)

	if math.IsNaN(pdf) || math.IsInf(pdf, 0) {
		return 0
	}
	return pdf
}

// tiltThetaO rotates the outgoing inclination by the cuticle scale tilt for
// lobe order p: -2α for R, +α for TT, +4α for TRT.
func (hm *Hair) tiltThetaO(p int, sinThetaO, cosThetaO float64) (float64, float64) {
	var sinThetaOp, cosThetaOp float64
	switch p {
	case 0:
		sinThetaOp = sinThetaO*hm.cos2kAlpha[1] - cosThetaO*hm.sin2kAlpha[1]
		cosThetaOp = cosThetaO*hm.cos2kAlpha[1] + sinThetaO*hm.sin2kAlpha[1]
	case 1:
		sinThetaOp = sinThetaO*hm.cos2kAlpha[0] + cosThetaO*hm.sin2kAlpha[0]
		cosThetaOp = cosThetaO*hm.cos2kAlpha[0] - sinThetaO*hm.sin2kAlpha[0]
	case 2:
		sinThetaOp = sinThetaO*hm.cos2kAlpha[2] + cosThetaO*hm.sin2kAlpha[2]
		cosThetaOp = cosThetaO*hm.cos2kAlpha[2] - sinThetaO*hm.sin2kAlpha[2]
	default:
		sinThetaOp, cosThetaOp = sinThetaO, cosThetaO
	}
	return sinThetaOp, math.Abs(cosThetaOp)
}

// attenuation returns the per-lobe attenuation factors: Fresnel reflection
// for R, two transmissions plus absorption for TT, extra internal bounces for
// TRT, and a geometric-series residual for everything past pMax.
func (hm *Hair) attenuation(cosThetaO float64, transmittance core.Vec3) [pMax + 1]core.Vec3 {
	var ap [pMax + 1]core.Vec3

	cosGammaO := math.Sqrt(math.Max(0, 1-sqr(hm.h)))
	f := frDielectric(cosThetaO*cosGammaO, hm.eta)

	ap[0] = core.NewVec3(f, f, f)
	ap[1] = transmittance.Multiply(sqr(1 - f))
	for p := 2; p < pMax; p++ {
		ap[p] = ap[p-1].MultiplyVec(transmittance).Multiply(f)
	}

	// Remaining bounce orders sum to a geometric series
	ap[pMax] = core.Vec3{
		X: residual(ap[pMax-1].X, transmittance.X, f),
		Y: residual(ap[pMax-1].Y, transmittance.Y, f),
		Z: residual(ap[pMax-1].Z, transmittance.Z, f),
	}

	return ap
}

func residual(prev, t, f float64) float64 {
	denom := 1 - t*f
	if denom <= 0 {
		return 0
	}
	return prev * t * f / denom
}

// attenuationPDF returns the lobe selection probabilities, proportional to
// the luminance of each lobe's attenuation.
func (hm *Hair) attenuationPDF(cosThetaO float64) [pMax + 1]float64 {
	sinThetaO := math.Sqrt(math.Max(0, 1-sqr(cosThetaO)))

	sinThetaT := sinThetaO / hm.eta
	cosThetaT := math.Sqrt(math.Max(0, 1-sqr(sinThetaT)))
	etap := math.Sqrt(sqr(hm.eta)-sqr(sinThetaO)) / cosThetaO
	sinGammaT := clamp(hm.h/etap, -1, 1)
	cosGammaT := math.Sqrt(math.Max(0, 1-sqr(sinGammaT)))

	transmittance := expVec(hm.sigmaA.Multiply(-2 * cosGammaT / cosThetaT))
	ap := hm.attenuation(cosThetaO, transmittance)

	var pdf [pMax + 1]float64
	sumY := 0.0
	for i := 0; i <= pMax; i++ {
		sumY += ap[i].Luminance()
	}
	if sumY <= 0 {
		return pdf
	}
	for i := 0; i <= pMax; i++ {
		pdf[i] = ap[i].Luminance() / sumY
	}
	return pdf
}

// mp is the longitudinal scattering distribution, normalized so that its
// integral against cos(θi) dθi is one. The log form avoids overflow for the
// low-variance (smooth) case.
func mp(cosThetaI, cosThetaO, sinThetaI, sinThetaO, v float64) float64 {
	a := cosThetaI * cosThetaO / v
	b := sinThetaI * sinThetaO / v
	if v <= 0.1 {
		return math.Exp(logBesselI0(a) - b - 1/v + 0.6931 + math.Log(1/(2*v)))
	}
	return math.Exp(-b) * besselI0(a) / (math.Sinh(1/v) * 2 * v)
}

// np is the azimuthal scattering distribution: a trimmed logistic around the
// perfect-specular azimuth for lobe order p, wrapped to [-π, π].
func np(phi float64, p int, s, gammaO, gammaT float64) float64 {
	dphi := phi - phiFn(p, gammaO, gammaT)
	for dphi > math.Pi {
		dphi -= 2 * math.Pi
	}
	for dphi < -math.Pi {
		dphi += 2 * math.Pi
	}
	return trimmedLogistic(dphi, s, -math.Pi, math.Pi)
}

// phiFn is the net azimuthal deflection of a ray after p internal segments.
func phiFn(p int, gammaO, gammaT float64) float64 {
	return 2*float64(p)*gammaT - 2*gammaO + float64(p)*math.Pi
}

func lobeForOrder(p int) Lobe {
	switch p {
	case 0:
		return LobeR
	case 1:
		return LobeTT
	case 2:
		return LobeTRT
	}
	return LobeTRRT
}

// besselI0 is the modified Bessel function of the first kind, order zero,
// via its power series.
func besselI0(x float64) float64 {
	val := 0.0
	x2i := 1.0
	ifact := 1.0
	i4 := 1.0
	for i := 0; i < 10; i++ {
		if i > 1 {
			ifact *= float64(i)
		}
		val += x2i / (i4 * sqr(ifact))
		x2i *= x * x
		i4 *= 4
	}
	return val
}

func logBesselI0(x float64) float64 {
	if x > 12 {
		return x + 0.5*(-math.Log(2*math.Pi)+math.Log(1/x)+1/(8*x))
	}
	return math.Log(besselI0(x))
}

// logistic distribution helpers for the azimuthal lobe

func logistic(x, s float64) float64 {
	x = math.Abs(x)
	e := math.Exp(-x / s)
	return e / (s * sqr(1+e))
}

func logisticCDF(x, s float64) float64 {
	return 1 / (1 + math.Exp(-x/s))
}

func trimmedLogistic(x, s, a, b float64) float64 {
	return logistic(x, s) / (logisticCDF(b, s) - logisticCDF(a, s))
}

func sampleTrimmedLogistic(u, s, a, b float64) float64 {
	k := logisticCDF(b, s) - logisticCDF(a, s)
	x := -s * math.Log(1/(u*k+logisticCDF(a, s))-1)
	return clamp(x, a, b)
}

// frDielectric is the unpolarized Fresnel reflectance for a dielectric
// boundary with relative index eta.
func frDielectric(cosThetaI, eta float64) float64 {
	cosThetaI = clamp(cosThetaI, -1, 1)
	etaI, etaT := 1.0, eta
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-sqr(cosThetaI)))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1 // Total internal reflection
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sqr(sinThetaT)))

	rParl := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerp := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	return (rParl*rParl + rPerp*rPerp) / 2
}

func expVec(v core.Vec3) core.Vec3 {
	return core.NewVec3(math.Exp(v.X), math.Exp(v.Y), math.Exp(v.Z))
}

func sqr(x float64) float64 {
	return x * x
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
