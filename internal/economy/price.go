package economy

import (
	"math"

	"github.com/talgya/statecraft/internal/tuning"
)

// PriceStep advances one commodity's price given world demand and supply.
// The step is additive and damped: the over/under factors are clamped by a
// slope bound that grows with the square root of the imbalance, so a large
// shock moves the price quickly but never unboundedly, and the step shrinks
// to zero as supply and demand converge.
func PriceStep(current, demand, supply float64, t *tuning.Tuning) float64 {
	imbalance := demand - supply
	maxSlope := math.Sqrt(math.Abs(imbalance)) + 20.0

	oversupply := Clamp((supply+0.001)/(demand+0.001)-1.0, 0, maxSlope)
	overdemand := Clamp((demand+0.001)/(supply+0.001)-1.0, 0, maxSlope)

	speed := t.PriceSpeed * (overdemand - oversupply)
	if current < 1.0 {
		speed *= current
	} else {
		speed *= math.Sqrt(current)
	}

	return Clamp(current+speed, t.MinPrice, t.MaxPrice)
}

// PseudoExpNeg is a bounded approximation of e^x for x ≤ 0: a cubic
// polynomial of x/128 squared seven times. Monotone on its domain,
// saturates to exactly zero below -128, and never overflows. Producer
// allocation depends on the hard zero for invalid goods.
func PseudoExpNeg(x float64) float64 {
	if x < -128.0 {
		return 0
	}
	x /= 128.0
	x = 1.0 + x + x*x/2.0 + x*x*x/6.0

	x *= x // 2
	x *= x // 4
	x *= x // 8
	x *= x // 16
	x *= x // 32
	x *= x // 64
	x *= x // 128

	return x
}
