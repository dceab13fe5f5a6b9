package engine

import "golang.org/x/sync/errgroup"

// parallelOver fans fn out over [0, n) in contiguous chunks, bounded by
// the simulation's worker count. Callers must not touch shared state
// outside their own index.
func (s *Simulation) parallelOver(n int, fn func(i int)) {
	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		start := start
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors
}
