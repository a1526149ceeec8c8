package core

const (
	// DegenerateEpsilon is the smallest length or denominator treated as non-zero
	// by the intersection math.
	DegenerateEpsilon = 1e-9

	// ShadowEpsilon offsets secondary ray origins off the surface they leave.
	ShadowEpsilon = 1e-4

	// MinHitDistance is the smallest ray parameter counted as a hit in front of the origin.
	MinHitDistance = 1e-6
)
