package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tydonelson/ranked-choice/api/models"
	"github.com/tydonelson/ranked-choice/logging"
	"github.com/tydonelson/ranked-choice/storage"
)

// Attempts at a fresh poll ID before giving up on collisions.
const pollIDAttempts = 3

type PollsController struct {
	pollsStorage storage.PollStorage
}

func NewPollsController(s storage.PollStorage) *PollsController {
	return &PollsController{pollsStorage: s}
}

func (c *PollsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/polls")

	group.POST("", c.createPoll)
	group.GET("/:id", c.getPoll)
}

// createPoll godoc
// @Summary Create a poll
// @Description Creates a ranked-choice poll with at least two unique candidates
// @Tags polls
// @Accept json
// @Produce json
// @Param poll body models.CreatePollRequest true "Poll definition"
// @Success 201 {object} models.PollResponse
// @Failure 400 {object} models.ErrorResponse "Invalid poll definition"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /api/polls [post]
func (c *PollsController) createPoll(g *gin.Context) {
	var req models.CreatePollRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "title is required"})
		return
	}

	candidates, err := cleanCandidates(req.Candidates)
	if err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: err.Error()})
		return
	}

	now := time.Now().UTC()
	if req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "expiresAt must be in the future"})
		return
	}

	poll := &storage.Poll{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Candidates:  candidates,
		CreatedAt:   now,
		ExpiresAt:   req.ExpiresAt,
	}

	for attempt := 1; ; attempt++ {
		poll.ID, err = gonanoid.Generate(models.PollIDAlphabet, models.PollIDLength)
		if err != nil {
			logging.Log.Errorf("POLL: failed to generate poll id: %v", err)
			g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create poll"})
			return
		}

		err = c.pollsStorage.Create(g.Request.Context(), poll)
		if err == nil {
			break
		}
		if errors.Is(err, storage.ErrItemWithIDAlreadyExists) && attempt < pollIDAttempts {
			logging.Log.Warnf("POLL: id collision on %s, retrying", poll.ID)
			continue
		}
		logging.Log.Errorf("POLL: failed to create poll: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create poll"})
		return
	}

	logging.Log.Infof("POLL: created poll %s with %d candidates", poll.ID, len(poll.Candidates))
	g.JSON(http.StatusCreated, models.TransformPollFromStorage(poll))
}

// getPoll godoc
// @Summary Get a poll
// @Tags polls
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} models.PollResponse
// @Failure 404 {object} models.ErrorResponse "Poll not found"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /api/polls/{id} [get]
func (c *PollsController) getPoll(g *gin.Context) {
	poll, ok := loadPoll(g, c.pollsStorage)
	if !ok {
		return
	}
	g.JSON(http.StatusOK, models.TransformPollFromStorage(poll))
}

// cleanCandidates trims names and rejects empty or repeated ones.
func cleanCandidates(raw []string) ([]string, error) {
	candidates := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.New("candidate names must not be empty")
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate candidate: %s", name)
		}
		seen[name] = true
		candidates = append(candidates, name)
	}
	if len(candidates) < models.MinCandidates {
		return nil, fmt.Errorf("at least %d candidates are needed", models.MinCandidates)
	}
	return candidates, nil
}

// loadPoll writes the error response itself when the poll cannot be loaded.
func loadPoll(g *gin.Context, s storage.PollStorage) (*storage.Poll, bool) {
	id := g.Param("id")
	if id == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "poll id is required"})
		return nil, false
	}

	poll, err := s.Get(g.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPollNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: fmt.Sprintf("poll not found: %s", id)})
			return nil, false
		}
		logging.Log.Errorf("POLL: error trying to get poll %s from storage: %v", id, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load poll"})
		return nil, false
	}
	return poll, true
}
