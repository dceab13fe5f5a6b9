package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBankruptciesDefaults(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	n := &w.Nations[id]

	n.AllowBorrowing = true
	n.Treasury = -(s.Tuning.SmallDebtLimit + 1000)

	s.checkBankruptcies()

	assert.Zero(t, n.Treasury)
	assert.False(t, n.AllowBorrowing)
	assert.Equal(t, w.Day+s.Tuning.BankruptcyDuration, n.BankruptUntil)
	assert.Equal(t, w.Day+s.Tuning.BadDebtorDuration, n.BadDebtorUntil)
	assert.True(t, n.InBankruptcy(w.Day))
	assert.True(t, n.BadDebtor(w.Day))

	events := s.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "debtor_default", events[0].Key)
	assert.Equal(t, id, events[0].Nation)
}

func TestCheckBankruptciesSmallDebt(t *testing.T) {
	s, id := newBareSim(t)
	n := &s.World.Nations[id]

	n.Treasury = -(s.Tuning.SmallDebtLimit * 0.5)

	s.checkBankruptcies()

	events := s.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "debtor_default_small", events[0].Key)
	assert.Equal(t, id, events[0].Nation)
}

func TestCheckBankruptciesSparesDebtWithinCeiling(t *testing.T) {
	s, id := newBareSim(t)
	n := &s.World.Nations[id]

	// A healthy tax base keeps a modest debt legal.
	n.PoorIncome = 1e9
	n.Treasury = -100

	s.checkBankruptcies()

	assert.Empty(t, s.DrainEvents())
	assert.InDelta(t, -100.0, n.Treasury, 1e-9)
}

func TestBankruptcyBlocksLoans(t *testing.T) {
	s, id := newBareSim(t)
	w := s.World
	n := &w.Nations[id]

	n.AllowBorrowing = true
	require.True(t, s.canTakeLoans(n))

	s.goBankrupt(id)
	assert.False(t, s.canTakeLoans(n))

	// The window expires; borrowing stays off until re-enabled by policy.
	w.Day = n.BankruptUntil
	assert.False(t, n.InBankruptcy(w.Day))
	assert.False(t, s.canTakeLoans(n))

	n.AllowBorrowing = true
	assert.True(t, s.canTakeLoans(n))
}
