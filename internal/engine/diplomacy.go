package engine

import "math"

// settleDiplomaticExpenses moves money along active war subsidies and
// reparations. A subsidy the source can no longer afford is cancelled;
// reparations are capped at whatever the debtor has left.
func (s *Simulation) settleDiplomaticExpenses() {
	w, t := s.World, s.Tuning

	kept := w.Subsidies[:0]
	for _, sub := range w.Subsidies {
		src := &w.Nations[sub.Source]
		dst := &w.Nations[sub.Target]
		cost := dst.MaximumMilitaryCosts * t.WarSubsidiesFraction
		if cost <= src.Treasury {
			src.Treasury -= cost
			dst.Treasury += cost
			kept = append(kept, sub)
		} else {
			s.Notify("war_subsidies_end", sub.Source, int32(sub.Target))
		}
	}
	w.Subsidies = kept

	for _, rep := range w.Reparations {
		if w.Day >= rep.Until {
			continue
		}
		src := &w.Nations[rep.Source]
		dst := &w.Nations[rep.Target]
		payout := src.TaxBase() * src.Mods.TaxEfficiency * t.ReparationsTaxHit
		payout = math.Min(src.Treasury, payout)
		if payout <= 0 {
			continue
		}
		src.Treasury -= payout
		dst.Treasury += payout
	}
}
