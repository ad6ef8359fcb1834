package irv

// Round is one counting pass. Votes holds every candidate still active in
// the round. Eliminated is empty only on the final round.
type Round struct {
	RoundNumber int            `json:"roundNumber"`
	Votes       map[string]int `json:"votes"`
	Eliminated  string         `json:"eliminated,omitempty"`

	// Exhausted is the number of ballots with no active candidate left.
	Exhausted int `json:"-"`
}

// Countable is the sum of the round's candidate counts.
func (r Round) Countable() int {
	total := 0
	for _, n := range r.Votes {
		total += n
	}
	return total
}

type PollResults struct {
	PollID     string  `json:"pollId"`
	TotalVotes int     `json:"totalVotes"`
	Rounds     []Round `json:"rounds"`
	Winner     string  `json:"winner,omitempty"`
}

// HasWinner reports whether tabulation ended with a winner.
func (r *PollResults) HasWinner() bool {
	return r.Winner != ""
}

// FinalRound returns the last round, or false when no round was counted.
func (r *PollResults) FinalRound() (Round, bool) {
	if len(r.Rounds) == 0 {
		return Round{}, false
	}
	return r.Rounds[len(r.Rounds)-1], true
}

func assemble(pollID string, totalVotes int, rounds []Round, winner string) *PollResults {
	if rounds == nil {
		rounds = []Round{}
	}
	return &PollResults{
		PollID:     pollID,
		TotalVotes: totalVotes,
		Rounds:     rounds,
		Winner:     winner,
	}
}
