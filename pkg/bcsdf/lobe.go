package bcsdf

// Lobe identifies which physical scattering mode produced a sample.
type Lobe int

const (
	lobeInvalid Lobe = iota
	// LobeDiffuse is Lambertian reflection off a surface
	LobeDiffuse
	// LobeR is the primary reflection off the fiber cuticle
	LobeR
	// LobeTT is transmission through the fiber (two refractions)
	LobeTT
	// LobeTRT is transmission, internal reflection, transmission
	LobeTRT
	// LobeTRRT collects all higher-order internal bounces
	LobeTRRT
)

func (l Lobe) String() string {
	switch l {
	case LobeDiffuse:
		return "diffuse"
	case LobeR:
		return "R"
	case LobeTT:
		return "TT"
	case LobeTRT:
		return "TRT"
	case LobeTRRT:
		return "TRRT"
	}

	return "invalid"
}
