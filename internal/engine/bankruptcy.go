package engine

import "github.com/talgya/statecraft/internal/world"

// goBankrupt wipes the debt, locks borrowing, and starts the bankruptcy
// and bad-debtor windows. The event key distinguishes repeat defaulters
// and trivial debts so creditors can react proportionately.
func (s *Simulation) goBankrupt(id world.NationID) {
	w, t := s.World, s.Tuning
	n := &w.Nations[id]

	key := "debtor_default"
	switch {
	case n.InBankruptcy(w.Day):
		key = "debtor_default_second"
	case n.Treasury >= -t.SmallDebtLimit:
		key = "debtor_default_small"
	}

	n.Treasury = 0
	n.AllowBorrowing = false
	n.BankruptUntil = w.Day + t.BankruptcyDuration
	n.BadDebtorUntil = w.Day + t.BadDebtorDuration

	s.Notify(key, id, 0)
}

// checkBankruptcies defaults every nation whose debt exceeds its loan
// ceiling.
func (s *Simulation) checkBankruptcies() {
	w := s.World
	for id := range w.Nations {
		n := &w.Nations[id]
		if n.Treasury < 0 && n.Treasury < -s.maxLoan(n) {
			s.goBankrupt(world.NationID(id))
		}
	}
}
