package controllers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/tydonelson/ranked-choice/api/transport"
	"github.com/tydonelson/ranked-choice/cache"
	"github.com/tydonelson/ranked-choice/irv"
	"github.com/tydonelson/ranked-choice/logging"
	"github.com/tydonelson/ranked-choice/storage"
)

type testEnv struct {
	router  *gin.Engine
	polls   storage.PollStorage
	ballots storage.BallotStorage
	cache   *memoryResultsCache
}

// memoryResultsCache records how often it was hit.
type memoryResultsCache struct {
	mu      sync.Mutex
	entries map[string]*irv.PollResults
	hits    int
	puts    int
}

func (c *memoryResultsCache) Get(_ context.Context, pollID, snapshot string) (*irv.PollResults, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[pollID+"/"+snapshot]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	c.hits++
	return r, nil
}

func (c *memoryResultsCache) Put(_ context.Context, pollID, snapshot string, results *irv.PollResults) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[pollID+"/"+snapshot] = results
	c.puts++
	return nil
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logging.Log = logrus.New()
	t.Setenv("ADMIN_TOKEN", "secret")

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := storage.OpenSQL("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err, "failed to open in-memory database")
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{
		polls:   &storage.GormPollStorage{DB: db},
		ballots: &storage.GormBallotStorage{DB: db},
		cache:   &memoryResultsCache{entries: map[string]*irv.PollResults{}},
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewPollsController(env.polls).RegisterRoutes(r)
	NewVotingController(env.polls, env.ballots, transport.NewClientLimiter(1000, 1000)).RegisterRoutes(r)
	NewResultsController(env.polls, env.ballots, env.cache).RegisterRoutes(r)
	NewAdminController(env.polls, env.ballots).RegisterRoutes(r)
	env.router = r

	return env
}

// seedPoll stores a poll directly, bypassing the API.
func (e *testEnv) seedPoll(t *testing.T, id string, candidates ...string) *storage.Poll {
	t.Helper()
	p := &storage.Poll{
		ID:         id,
		Title:      "Poll " + id,
		Candidates: candidates,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, e.polls.Create(context.Background(), p))
	return p
}

// seedBallots stores raw rankings without ingestion validation.
func (e *testEnv) seedBallots(t *testing.T, pollID string, rankings ...[]string) {
	t.Helper()
	for i, r := range rankings {
		require.NoError(t, e.ballots.Create(context.Background(), &storage.Ballot{
			PollID:   pollID,
			ID:       fmt.Sprintf("%s-seed-%d", pollID, i),
			Rankings: r,
			VotedAt:  time.Now().UTC(),
		}))
	}
}
