package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tydonelson/ranked-choice/api/models"
	"github.com/tydonelson/ranked-choice/api/transport"
	"github.com/tydonelson/ranked-choice/logging"
	"github.com/tydonelson/ranked-choice/storage"
)

type VotingController struct {
	pollsStorage   storage.PollStorage
	ballotsStorage storage.BallotStorage
	limiter        *transport.ClientLimiter
}

func NewVotingController(pollStorage storage.PollStorage, ballotStorage storage.BallotStorage, limiter *transport.ClientLimiter) *VotingController {
	return &VotingController{
		pollsStorage:   pollStorage,
		ballotsStorage: ballotStorage,
		limiter:        limiter,
	}
}

func (c *VotingController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/polls")

	group.POST("/:id/vote", transport.RateLimitMiddleware(c.limiter), c.registerVote)
}

// registerVote godoc
// @Summary Submit a ranked ballot
// @Description Stores a ranking of the poll's candidates, most preferred first
// @Tags voting
// @Accept json
// @Produce json
// @Param id path string true "Poll ID"
// @Param vote body models.CreateVoteRequest true "Ranked ballot"
// @Success 201 {object} models.VoteResponse
// @Failure 400 {object} models.ErrorResponse "Invalid ranking"
// @Failure 404 {object} models.ErrorResponse "Poll not found"
// @Failure 409 {object} models.ErrorResponse "Poll expired"
// @Failure 429 {object} models.ErrorResponse "Too many requests"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /api/polls/{id}/vote [post]
func (c *VotingController) registerVote(g *gin.Context) {
	var req models.CreateVoteRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	poll, ok := loadPoll(g, c.pollsStorage)
	if !ok {
		return
	}

	now := time.Now().UTC()
	if poll.Expired(now) {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "poll has expired"})
		return
	}

	rankings, err := validateRankings(req.Rankings, poll.Candidates)
	if err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: err.Error()})
		return
	}

	ballot := &storage.Ballot{
		PollID:   poll.ID,
		ID:       uuid.NewString(),
		Rankings: rankings,
		VotedAt:  now,
	}
	if err := c.ballotsStorage.Create(g.Request.Context(), ballot); err != nil {
		logging.Log.Errorf("BALLOT: failed to store ballot for poll %s: %v", poll.ID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not save vote"})
		return
	}

	logging.Log.Infof("BALLOT: registered ballot %s for poll %s", ballot.ID, poll.ID)
	g.JSON(http.StatusCreated, models.TransformBallotFromStorage(ballot))
}

// validateRankings checks a submitted ranking against the poll's candidates.
func validateRankings(raw []string, candidates []string) ([]string, error) {
	valid := make(map[string]bool, len(candidates))
	for _, name := range candidates {
		valid[name] = true
	}

	rankings := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, name := range raw {
		name = strings.TrimSpace(name)
		if !valid[name] {
			return nil, fmt.Errorf("unknown candidate: %q", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("candidate ranked twice: %s", name)
		}
		seen[name] = true
		rankings = append(rankings, name)
	}
	if len(rankings) == 0 {
		return nil, errors.New("rankings are required")
	}
	return rankings, nil
}
