package models

import (
	"time"

	"github.com/tydonelson/ranked-choice/storage"
)

type CreatePollRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Candidates  []string   `json:"candidates"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

type PollResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Candidates  []string   `json:"candidates"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

func TransformPollFromStorage(p *storage.Poll) PollResponse {
	return PollResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Candidates:  p.Candidates,
		CreatedAt:   p.CreatedAt,
		ExpiresAt:   p.ExpiresAt,
	}
}
