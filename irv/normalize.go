package irv

import "strings"

// candidateSet is the set of names a poll accepts on a ballot.
type candidateSet map[string]struct{}

func newCandidateSet(candidates []string) candidateSet {
	set := make(candidateSet, len(candidates))
	for _, c := range candidates {
		set[c] = struct{}{}
	}
	return set
}

func (s candidateSet) contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Normalize turns a raw ranking into a preference list over candidates.
// Entries are trimmed, unknown names are dropped and only the first
// occurrence of a repeated name is kept. It never fails; the result may be empty.
func Normalize(raw []string, candidates []string) []string {
	return newCandidateSet(candidates).normalize(raw)
}

func (s candidateSet) normalize(raw []string) []string {
	prefs := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		name := strings.TrimSpace(entry)
		if !s.contains(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		prefs = append(prefs, name)
	}
	return prefs
}
