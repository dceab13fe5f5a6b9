package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/tuning"
)

func TestPriceStepDirection(t *testing.T) {
	tune := tuning.Default()

	up := PriceStep(5.0, 100.0, 10.0, &tune)
	assert.Greater(t, up, 5.0, "excess demand should raise the price")

	down := PriceStep(5.0, 10.0, 100.0, &tune)
	assert.Less(t, down, 5.0, "excess supply should lower the price")
}

func TestPriceStepBalanced(t *testing.T) {
	tune := tuning.Default()

	p := PriceStep(5.0, 50.0, 50.0, &tune)
	assert.InDelta(t, 5.0, p, 1e-9, "balanced market leaves the price alone")

	// Empty market: nothing traded, price holds.
	p = PriceStep(5.0, 0.0, 0.0, &tune)
	assert.InDelta(t, 5.0, p, 1e-9)
}

func TestPriceStepBounds(t *testing.T) {
	tune := tuning.Default()

	// Shocks of any size stay inside the configured band.
	p := tune.MaxPrice
	for i := 0; i < 100; i++ {
		p = PriceStep(p, 1e9, 0.0, &tune)
		require.LessOrEqual(t, p, tune.MaxPrice)
	}
	p = tune.MinPrice
	for i := 0; i < 100; i++ {
		p = PriceStep(p, 0.0, 1e9, &tune)
		require.GreaterOrEqual(t, p, tune.MinPrice)
	}
}

func TestPseudoExpNeg(t *testing.T) {
	assert.InDelta(t, 1.0, PseudoExpNeg(0), 1e-6)
	assert.Zero(t, PseudoExpNeg(-129))
	assert.Zero(t, PseudoExpNeg(-1e12))

	// Monotone and bounded on the negative axis.
	prev := PseudoExpNeg(-128)
	for x := -127.0; x <= 0; x++ {
		v := PseudoExpNeg(x)
		require.GreaterOrEqual(t, v, prev, "x=%v", x)
		require.LessOrEqual(t, v, 1.0+1e-9, "x=%v", x)
		prev = v
	}

	// Close to the real exponential over the useful range.
	assert.InDelta(t, 0.3679, PseudoExpNeg(-1), 0.01)
	assert.InDelta(t, 0.1353, PseudoExpNeg(-2), 0.01)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 2.0, Clamp(1.0, 2.0, 3.0))
	assert.Equal(t, 3.0, Clamp(4.0, 2.0, 3.0))
	assert.Equal(t, 2.5, Clamp(2.5, 2.0, 3.0))
}

func TestCommoditySetAmountOf(t *testing.T) {
	var set CommoditySet
	set.Add(3, 1.5)
	set.Add(7, 0.25)

	assert.Equal(t, 1.5, set.AmountOf(3))
	assert.Equal(t, 0.25, set.AmountOf(7))
	assert.Zero(t, set.AmountOf(1), "absent commodity reads zero")
}
