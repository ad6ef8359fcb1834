package irv

// tally is the outcome of counting one round.
type tally struct {
	counts    map[string]int
	countable int
	exhausted int
}

// tabulate counts every ballot for its highest-ranked active candidate.
// Ballots with no active candidate left are exhausted for the round.
// Every active candidate is present in counts, possibly with zero.
func tabulate(active candidateSet, ballots [][]string) tally {
	t := tally{counts: make(map[string]int, len(active))}
	for name := range active {
		t.counts[name] = 0
	}

	for _, prefs := range ballots {
		counted := false
		for _, name := range prefs {
			if active.contains(name) {
				t.counts[name]++
				t.countable++
				counted = true
				break
			}
		}
		if !counted {
			t.exhausted++
		}
	}
	return t
}
