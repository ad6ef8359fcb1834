package models

import (
	"time"

	"github.com/tydonelson/ranked-choice/storage"
)

type CreateVoteRequest struct {
	Rankings []string `json:"rankings"`
}

type VoteResponse struct {
	ID       string    `json:"id"`
	PollID   string    `json:"pollId"`
	Rankings []string  `json:"rankings"`
	VotedAt  time.Time `json:"votedAt"`
}

func TransformBallotFromStorage(b *storage.Ballot) VoteResponse {
	return VoteResponse{
		ID:       b.ID,
		PollID:   b.PollID,
		Rankings: b.Rankings,
		VotedAt:  b.VotedAt,
	}
}
