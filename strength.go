package kiwi

import "math"

// Priority is the scalar weight of a constraint. Strengths are encoded as a
// single floating point (a*1e6 + b*1e3 + c) rather than lexicographic
// triples: adequate separation for GUI workloads at the cost of blending
// when user strengths are very close.
type Priority float64

const (
	Weak     Priority = 1
	Medium            = 1e3 * Weak
	Strong            = 1e3 * Medium
	Required          = 1e3*Strong + 1e3*Medium + 1e3*Weak
)

// Create builds a priority from its three components scaled by weight. Each
// component is clamped to [0, 1000] before being folded in.
func Create(a, b, c, weight float64) Priority {
	result := math.Max(0, math.Min(1000, a*weight)) * 1e6
	result += math.Max(0, math.Min(1000, b*weight)) * 1e3
	result += math.Max(0, math.Min(1000, c*weight))
	return Priority(result)
}

// Clip clamps a priority to [0, Required].
func Clip(p Priority) Priority {
	return Priority(math.Max(0, math.Min(float64(Required), float64(p))))
}

func (p Priority) Val() float64 { return float64(p) }
