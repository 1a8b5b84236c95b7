// Package model names the external physical collaborators of the engine.
//
// The angular correlation itself, states, transitions, selection rules,
// F/A/E coefficients, is somebody else's validated code. This package only
// fixes the function shapes the engine scans and the analyzing-power sign
// conventions in circulation, so a scanner can be pointed at any
// implementation.
package model

import "math"

// Correlation is an angular correlation W(theta, phi): the relative
// emission probability into the direction with polar angle theta and
// azimuthal angle phi, in radians.
type Correlation func(theta, phi float64) float64

// Convention selects the sign of the analyzing power.
//
// Kneissl, Pitz and Zilges define A as
// (W(theta, pi/2) - W(theta, 0)) / (W(theta, pi/2) + W(theta, 0));
// much of the polarized-photon-beam literature uses the opposite sign.
type Convention int

const (
	Natural Convention = iota
	KPZ
)

func (c Convention) String() string {
	if c == KPZ {
		return "KPZ"
	}
	return "natural"
}

func (c Convention) sign() float64 {
	if c == KPZ {
		return -1
	}
	return 1
}

// AnalyzingPower builds the analyzing power A(theta) of w under the given
// convention: the relative difference of in-plane and out-of-plane
// emission probabilities at the same polar angle.
//
// If both probabilities vanish (a degenerate configuration) the division
// yields NaN, which is returned as-is; downstream tolerance matching
// treats it as "matches nothing".
func AnalyzingPower(w Correlation, c Convention) func(theta float64) float64 {
	return func(theta float64) float64 {
		wPara := w(theta, 0)
		wPerp := w(theta, 0.5*math.Pi)
		return c.sign() * (wPara - wPerp) / (wPara + wPerp)
	}
}
