package models

// Poll IDs double as share links, so they stay short and unambiguous.
var PollIDAlphabet = "23456789abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

const PollIDLength = 10

const MinCandidates = 2

type ErrorResponse struct {
	Error string `json:"error"`
}

type ResetBallotsResponse struct {
	PollID  string `json:"pollId"`
	Deleted int    `json:"deleted"`
}
