package storage

import "time"

type Poll struct {
	ID          string     `dynamodbav:"PK" gorm:"primaryKey;size:32" json:"id"`
	Title       string     `dynamodbav:"Title" gorm:"not null" json:"title"`
	Description string     `dynamodbav:"Description" gorm:"type:text" json:"description"`
	Candidates  []string   `dynamodbav:"Candidates" gorm:"serializer:json;type:text;not null" json:"candidates"`
	CreatedAt   time.Time  `dynamodbav:"CreatedAt" json:"createdAt"`
	ExpiresAt   *time.Time `dynamodbav:"ExpiresAt,omitempty" json:"expiresAt,omitempty"`
}

// Expired reports whether the poll stopped accepting ballots before now.
func (p *Poll) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}

type Ballot struct {
	PollID   string    `dynamodbav:"PK" gorm:"index;size:32;not null" json:"pollId"`
	ID       string    `dynamodbav:"SK" gorm:"primaryKey;size:36" json:"id"`
	Rankings []string  `dynamodbav:"Rankings" gorm:"serializer:json;type:text" json:"rankings"`
	VotedAt  time.Time `dynamodbav:"VotedAt" json:"votedAt"`
}
