package irv

import "sort"

type outcome int

const (
	// continueCounting means a candidate is eliminated and another round follows.
	continueCounting outcome = iota
	winnerFound
	noWinner
)

type decision struct {
	outcome    outcome
	winner     string
	eliminated string
}

// majority is the smallest count strictly above half of the countable total.
func majority(countable int) int {
	return countable/2 + 1
}

// decide applies the elimination rules to one round's tally:
//  1. a sole active candidate wins, whatever its count
//  2. a candidate at or above the majority threshold wins
//  3. otherwise exactly one lowest-count candidate is eliminated, ties going to
//     the name that sorts first in byte order
func decide(t tally) decision {
	if len(t.counts) == 0 {
		return decision{outcome: noWinner}
	}

	names := make([]string, 0, len(t.counts))
	for name := range t.counts {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 1 {
		return decision{outcome: winnerFound, winner: names[0]}
	}

	if t.countable > 0 {
		threshold := majority(t.countable)
		for _, name := range names {
			if t.counts[name] >= threshold {
				return decision{outcome: winnerFound, winner: name}
			}
		}
	}

	return decision{outcome: continueCounting, eliminated: lowest(names, t.counts)}
}

// lowest returns the first of the sorted names holding the minimum count.
func lowest(sorted []string, counts map[string]int) string {
	loser := sorted[0]
	for _, name := range sorted[1:] {
		if counts[name] < counts[loser] {
			loser = name
		}
	}
	return loser
}
