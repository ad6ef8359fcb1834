package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tydonelson/ranked-choice/api/models"
	"github.com/tydonelson/ranked-choice/cache"
	"github.com/tydonelson/ranked-choice/irv"
	"github.com/tydonelson/ranked-choice/logging"
	"github.com/tydonelson/ranked-choice/storage"
)

type ResultsController struct {
	pollsStorage   storage.PollStorage
	ballotsStorage storage.BallotStorage
	resultsCache   cache.ResultsCache
}

func NewResultsController(pollStorage storage.PollStorage, ballotStorage storage.BallotStorage, resultsCache cache.ResultsCache) *ResultsController {
	return &ResultsController{
		pollsStorage:   pollStorage,
		ballotsStorage: ballotStorage,
		resultsCache:   resultsCache,
	}
}

func (c *ResultsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/polls")

	group.GET("/:id/results", c.getResults)
}

// getResults godoc
// @Summary Get instant-runoff results
// @Description Tabulates the current ballots round by round. The ETag identifies the ballot snapshot.
// @Tags results
// @Produce json
// @Param id path string true "Poll ID"
// @Param If-None-Match header string false "ETag of a previously fetched result"
// @Success 200 {object} irv.PollResults
// @Success 304 "Ballots unchanged"
// @Failure 404 {object} models.ErrorResponse "Poll not found"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /api/polls/{id}/results [get]
func (c *ResultsController) getResults(g *gin.Context) {
	poll, ok := loadPoll(g, c.pollsStorage)
	if !ok {
		return
	}

	ctx := g.Request.Context()
	ballots, err := c.ballotsStorage.GetByPoll(ctx, poll.ID)
	if err != nil {
		logging.Log.Errorf("RESULTS: failed to load ballots for poll %s: %v", poll.ID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load ballots"})
		return
	}

	snapshot := cache.SnapshotHash(ballots)
	etag := fmt.Sprintf("%q", snapshot)
	g.Header("ETag", etag)
	if g.GetHeader("If-None-Match") == etag {
		g.Status(http.StatusNotModified)
		return
	}

	results, err := c.resultsCache.Get(ctx, poll.ID, snapshot)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logging.Log.Warnf("RESULTS: cache lookup for poll %s failed, recomputing: %v", poll.ID, err)
		}
		results = irv.ComputeResults(toIRVPoll(poll), toIRVBallots(ballots))
		logging.Log.Infof("RESULTS: tabulated poll %s: %d ballots, %d rounds, winner %q",
			poll.ID, results.TotalVotes, len(results.Rounds), results.Winner)

		if err := c.resultsCache.Put(ctx, poll.ID, snapshot, results); err != nil {
			logging.Log.Warnf("RESULTS: could not cache results for poll %s: %v", poll.ID, err)
		}
	}

	g.JSON(http.StatusOK, results)
}

func toIRVPoll(p *storage.Poll) irv.Poll {
	return irv.Poll{ID: p.ID, Candidates: p.Candidates}
}

func toIRVBallots(ballots []*storage.Ballot) []irv.Ballot {
	out := make([]irv.Ballot, len(ballots))
	for i, b := range ballots {
		out[i] = irv.Ballot{ID: b.ID, Rankings: b.Rankings, VotedAt: b.VotedAt}
	}
	return out
}
