package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tydonelson/ranked-choice/logging"
)

func setupSQLStorage(t *testing.T) (*GormPollStorage, *GormBallotStorage) {
	t.Helper()
	logging.Log = logrus.New()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := OpenSQL("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err, "failed to open sqlite")

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	return &GormPollStorage{DB: db}, &GormBallotStorage{DB: db}
}

func newPoll(id string) *Poll {
	return &Poll{
		ID:          id,
		Title:       "Lunch",
		Description: "Where do we eat?",
		Candidates:  []string{"Tacos", "Ramen", "Pizza"},
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestGormPollStorage(t *testing.T) {
	polls, _ := setupSQLStorage(t)
	ctx := context.Background()

	t.Run("Happy path - create and get", func(t *testing.T) {
		expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		p := newPoll("poll-1")
		p.ExpiresAt = &expires
		require.NoError(t, polls.Create(ctx, p))

		got, err := polls.Get(ctx, "poll-1")
		require.NoError(t, err)
		assert.Equal(t, "Lunch", got.Title)
		assert.Equal(t, []string{"Tacos", "Ramen", "Pizza"}, got.Candidates)
		require.NotNil(t, got.ExpiresAt)
		assert.True(t, expires.Equal(*got.ExpiresAt))
	})

	t.Run("Unhappy path - duplicate id", func(t *testing.T) {
		err := polls.Create(ctx, newPoll("poll-1"))
		assert.ErrorIs(t, err, ErrItemWithIDAlreadyExists)
	})

	t.Run("Unhappy path - unknown id", func(t *testing.T) {
		_, err := polls.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrPollNotFound)
	})

	t.Run("Happy path - list and delete", func(t *testing.T) {
		require.NoError(t, polls.Create(ctx, newPoll("poll-2")))

		all, err := polls.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		require.NoError(t, polls.Delete(ctx, "poll-2"))
		_, err = polls.Get(ctx, "poll-2")
		assert.ErrorIs(t, err, ErrPollNotFound)
	})
}

func TestGormBallotStorage(t *testing.T) {
	polls, ballots := setupSQLStorage(t)
	ctx := context.Background()
	require.NoError(t, polls.Create(ctx, newPoll("poll-1")))
	require.NoError(t, polls.Create(ctx, newPoll("poll-2")))

	now := time.Now().UTC()
	for i, ranking := range [][]string{{"Tacos", "Ramen"}, {"Pizza"}, {}} {
		require.NoError(t, ballots.Create(ctx, &Ballot{
			PollID:   "poll-1",
			ID:       fmt.Sprintf("b-%d", i),
			Rankings: ranking,
			VotedAt:  now.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, ballots.Create(ctx, &Ballot{PollID: "poll-2", ID: "other", Rankings: []string{"Ramen"}, VotedAt: now}))

	t.Run("Happy path - get by poll in submission order", func(t *testing.T) {
		got, err := ballots.GetByPoll(ctx, "poll-1")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "b-0", got[0].ID)
		assert.Equal(t, []string{"Tacos", "Ramen"}, got[0].Rankings)
		assert.Equal(t, []string{"Pizza"}, got[1].Rankings)
		assert.Empty(t, got[2].Rankings)
	})

	t.Run("Unhappy path - duplicate ballot", func(t *testing.T) {
		err := ballots.Create(ctx, &Ballot{PollID: "poll-1", ID: "b-0", Rankings: []string{"Pizza"}, VotedAt: now})
		assert.ErrorIs(t, err, ErrItemWithIDAlreadyExists)
	})

	t.Run("Happy path - unknown poll has no ballots", func(t *testing.T) {
		got, err := ballots.GetByPoll(ctx, "missing")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Happy path - delete by poll", func(t *testing.T) {
		n, err := ballots.DeleteByPoll(ctx, "poll-1")
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		got, err := ballots.GetByPoll(ctx, "poll-1")
		require.NoError(t, err)
		assert.Empty(t, got)

		other, err := ballots.GetByPoll(ctx, "poll-2")
		require.NoError(t, err)
		assert.Len(t, other, 1)
	})
}

func TestOpenSQL_UnknownDriver(t *testing.T) {
	logging.Log = logrus.New()
	_, err := OpenSQL("oracle", "whatever")
	assert.Error(t, err)
}

func TestPollExpired(t *testing.T) {
	now := time.Now()
	p := newPoll("x")
	assert.False(t, p.Expired(now))

	past := now.Add(-time.Minute)
	p.ExpiresAt = &past
	assert.True(t, p.Expired(now))

	future := now.Add(time.Minute)
	p.ExpiresAt = &future
	assert.False(t, p.Expired(now))
}
