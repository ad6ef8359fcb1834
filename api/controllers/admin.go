package controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/tydonelson/ranked-choice/api/models"
	"github.com/tydonelson/ranked-choice/api/transport"
	"github.com/tydonelson/ranked-choice/logging"
	"github.com/tydonelson/ranked-choice/storage"
)

type AdminController struct {
	pollsStorage   storage.PollStorage
	ballotsStorage storage.BallotStorage
}

func NewAdminController(pollStorage storage.PollStorage, ballotStorage storage.BallotStorage) *AdminController {
	return &AdminController{
		pollsStorage:   pollStorage,
		ballotsStorage: ballotStorage,
	}
}

func (c *AdminController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin", transport.AdminAuthMiddleware())

	group.GET("/polls", c.listPolls)
	group.POST("/polls/:id/reset", c.resetBallots)
	group.DELETE("/polls/:id", c.deletePoll)
}

// @Security AdminToken
// listPolls godoc
// @Summary List all polls
// @Tags admin
// @Produce json
// @Success 200 {array} models.PollResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/polls [get]
func (c *AdminController) listPolls(g *gin.Context) {
	polls, err := c.pollsStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list polls: %v", err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	// Newest first so it shows the same for everyone
	sort.SliceStable(polls, func(i, j int) bool {
		if polls[i].CreatedAt.Equal(polls[j].CreatedAt) {
			return polls[i].ID < polls[j].ID
		}
		return polls[i].CreatedAt.After(polls[j].CreatedAt)
	})

	responses := make([]models.PollResponse, 0, len(polls))
	for _, p := range polls {
		responses = append(responses, models.TransformPollFromStorage(p))
	}

	logging.Log.Infof("ADMIN: listed %d polls", len(responses))
	g.JSON(http.StatusOK, responses)
}

// @Security AdminToken
// resetBallots godoc
// @Summary Delete every ballot of a poll
// @Tags admin
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} models.ResetBallotsResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/polls/{id}/reset [post]
func (c *AdminController) resetBallots(g *gin.Context) {
	poll, ok := loadPoll(g, c.pollsStorage)
	if !ok {
		return
	}

	deleted, err := c.ballotsStorage.DeleteByPoll(g.Request.Context(), poll.ID)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to reset ballots of poll %s after %d deletions: %v", poll.ID, deleted, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	logging.Log.Infof("ADMIN: reset poll %s, %d ballots deleted", poll.ID, deleted)
	g.JSON(http.StatusOK, models.ResetBallotsResponse{PollID: poll.ID, Deleted: deleted})
}

// @Security AdminToken
// deletePoll godoc
// @Summary Delete a poll and its ballots
// @Tags admin
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/polls/{id} [delete]
func (c *AdminController) deletePoll(g *gin.Context) {
	poll, ok := loadPoll(g, c.pollsStorage)
	if !ok {
		return
	}

	if _, err := c.ballotsStorage.DeleteByPoll(g.Request.Context(), poll.ID); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete ballots of poll %s: %v", poll.ID, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err := c.pollsStorage.Delete(g.Request.Context(), poll.ID); err != nil {
		logging.Log.Errorf("ADMIN: failed to delete poll %s: %v", poll.ID, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	logging.Log.Infof("ADMIN: deleted poll: %s", poll.ID)
	g.JSON(http.StatusOK, gin.H{"deleted": poll.ID})
}
