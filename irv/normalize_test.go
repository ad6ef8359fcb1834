package irv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	candidates := []string{"Alice", "Bob", "Carol"}

	tests := []struct {
		name     string
		raw      []string
		expected []string
	}{
		{"Happy path - full ranking", []string{"Carol", "Alice", "Bob"}, []string{"Carol", "Alice", "Bob"}},
		{"Happy path - partial ranking", []string{"Bob"}, []string{"Bob"}},
		{"Duplicates keep first occurrence", []string{"Bob", "Alice", "Bob", "Alice"}, []string{"Bob", "Alice"}},
		{"Unknown names are dropped", []string{"Dave", "Alice", "Eve"}, []string{"Alice"}},
		{"Whitespace is trimmed", []string{"  Carol", "Bob\t", " Carol "}, []string{"Carol", "Bob"}},
		{"Case sensitive", []string{"alice", "BOB", "Carol"}, []string{"Carol"}},
		{"Nothing valid", []string{"", "   ", "Zed"}, []string{}},
		{"Nil input", nil, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.raw, candidates))
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raw := []string{" Bob ", "Bob", "Alice"}
	_ = Normalize(raw, []string{"Alice", "Bob"})
	assert.Equal(t, []string{" Bob ", "Bob", "Alice"}, raw)
}
