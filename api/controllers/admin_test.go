package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testutils "github.com/tydonelson/ranked-choice/api/controllers/testing"
	"github.com/tydonelson/ranked-choice/api/models"
	"github.com/tydonelson/ranked-choice/storage"
)

var adminHeaders = map[string]string{"x-admin-token": "secret"}

func TestAdminAuth(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("Unhappy path - missing token", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/admin/polls", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - wrong token", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/admin/polls", nil,
			map[string]string{"x-admin-token": "guess"})
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})
}

func TestListPolls(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)
	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, env.polls.Create(ctx, &storage.Poll{
			ID:         id,
			Title:      id,
			Candidates: []string{"A", "B"},
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	res := testutils.PerformRequest(env.router, http.MethodGet, "/api/admin/polls", nil, adminHeaders)
	require.Equal(t, http.StatusOK, res.Code)

	var polls []models.PollResponse
	testutils.DecodeJSON(t, res, &polls)
	require.Len(t, polls, 3)
	assert.Equal(t, "third", polls[0].ID)
	assert.Equal(t, "second", polls[1].ID)
	assert.Equal(t, "first", polls[2].ID)
}

func TestResetBallots(t *testing.T) {
	env := setupTestEnv(t)
	env.seedPoll(t, "p1", "A", "B")
	env.seedPoll(t, "p2", "A", "B")
	env.seedBallots(t, "p1", []string{"A"}, []string{"B"}, []string{"A", "B"})
	env.seedBallots(t, "p2", []string{"B"})

	t.Run("Happy path - only the target poll is cleared", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/admin/polls/p1/reset", nil, adminHeaders)
		require.Equal(t, http.StatusOK, res.Code)

		var body models.ResetBallotsResponse
		testutils.DecodeJSON(t, res, &body)
		assert.Equal(t, "p1", body.PollID)
		assert.Equal(t, 3, body.Deleted)

		left, err := env.ballots.GetByPoll(context.Background(), "p1")
		require.NoError(t, err)
		assert.Empty(t, left)

		other, err := env.ballots.GetByPoll(context.Background(), "p2")
		require.NoError(t, err)
		assert.Len(t, other, 1)
	})

	t.Run("Happy path - results start over", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/polls/p1/results", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		assert.JSONEq(t, `{"pollId": "p1", "totalVotes": 0, "rounds": []}`, res.Body.String())
	})

	t.Run("Unhappy path - unknown poll", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/admin/polls/nope/reset", nil, adminHeaders)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestDeletePoll(t *testing.T) {
	env := setupTestEnv(t)
	env.seedPoll(t, "gone", "A", "B")
	env.seedBallots(t, "gone", []string{"A"}, []string{"B"})

	res := testutils.PerformRequest(env.router, http.MethodDelete, "/api/admin/polls/gone", nil, adminHeaders)
	require.Equal(t, http.StatusOK, res.Code)

	_, err := env.polls.Get(context.Background(), "gone")
	assert.ErrorIs(t, err, storage.ErrPollNotFound)

	ballots, err := env.ballots.GetByPoll(context.Background(), "gone")
	require.NoError(t, err)
	assert.Empty(t, ballots)

	again := testutils.PerformRequest(env.router, http.MethodDelete, "/api/admin/polls/gone", nil, adminHeaders)
	assert.Equal(t, http.StatusNotFound, again.Code)
}
