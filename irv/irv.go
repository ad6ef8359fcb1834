// Package irv tabulates ranked ballots with instant-runoff voting.
//
// ComputeResults is a pure function of its inputs: it keeps no state between
// calls, performs no I/O and is safe to call concurrently. Identical inputs
// always produce identical round histories; ties for last place are broken by
// eliminating the candidate whose name sorts first.
package irv

import "time"

// Poll is the part of a poll the tabulation needs.
type Poll struct {
	ID         string
	Candidates []string
}

// Ballot is a raw ranking as submitted, most preferred first.
type Ballot struct {
	ID       string
	Rankings []string
	VotedAt  time.Time
}

// ComputeResults runs instant-runoff rounds over a snapshot of ballots.
//
// Rankings are normalized against the poll's candidates first, so malformed
// ballots never fail tabulation; they are simply exhausted earlier. A poll
// without ballots produces no rounds and no winner. Otherwise rounds continue
// until a candidate holds a majority of the countable ballots or only one
// candidate remains.
func ComputeResults(poll Poll, ballots []Ballot) *PollResults {
	if len(ballots) == 0 {
		return assemble(poll.ID, 0, nil, "")
	}

	candidates := newCandidateSet(poll.Candidates)
	prefs := make([][]string, len(ballots))
	for i, b := range ballots {
		prefs[i] = candidates.normalize(b.Rankings)
	}

	active := make(candidateSet, len(candidates))
	for name := range candidates {
		active[name] = struct{}{}
	}

	var rounds []Round
	winner := ""
	for n := 1; n <= len(candidates)+1; n++ {
		t := tabulate(active, prefs)
		d := decide(t)
		if d.outcome == noWinner {
			break
		}

		round := Round{
			RoundNumber: n,
			Votes:       t.counts,
			Exhausted:   t.exhausted,
		}
		if d.outcome == winnerFound {
			rounds = append(rounds, round)
			winner = d.winner
			break
		}

		round.Eliminated = d.eliminated
		rounds = append(rounds, round)
		delete(active, d.eliminated)
	}

	return assemble(poll.ID, len(ballots), rounds, winner)
}
