package irv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabulate(t *testing.T) {
	t.Run("Happy path - first active preference counts", func(t *testing.T) {
		active := newCandidateSet([]string{"A", "B", "C"})
		res := tabulate(active, [][]string{{"A", "B"}, {"B"}, {"C", "A"}, {"A"}})

		assert.Equal(t, map[string]int{"A": 2, "B": 1, "C": 1}, res.counts)
		assert.Equal(t, 4, res.countable)
		assert.Equal(t, 0, res.exhausted)
	})

	t.Run("Eliminated candidates are skipped", func(t *testing.T) {
		active := newCandidateSet([]string{"B", "C"})
		res := tabulate(active, [][]string{{"A", "B"}, {"A", "C"}, {"A"}})

		assert.Equal(t, map[string]int{"B": 1, "C": 1}, res.counts)
		assert.Equal(t, 2, res.countable)
		assert.Equal(t, 1, res.exhausted)
	})

	t.Run("Zero counts are reported", func(t *testing.T) {
		active := newCandidateSet([]string{"A", "B", "C"})
		res := tabulate(active, [][]string{{"A"}})

		assert.Equal(t, map[string]int{"A": 1, "B": 0, "C": 0}, res.counts)
	})

	t.Run("Empty ballots are exhausted", func(t *testing.T) {
		active := newCandidateSet([]string{"A", "B"})
		res := tabulate(active, [][]string{{}, {}, {"B"}})

		assert.Equal(t, 1, res.countable)
		assert.Equal(t, 2, res.exhausted)
	})

	t.Run("Conservation holds", func(t *testing.T) {
		ballots := [][]string{{"A"}, {"B", "A"}, {}, {"C"}, {"C", "B"}}
		active := newCandidateSet([]string{"A", "B"})
		res := tabulate(active, ballots)

		assert.Equal(t, len(ballots), res.countable+res.exhausted)
	})
}
