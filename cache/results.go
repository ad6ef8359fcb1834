// Package cache stores computed poll results keyed by the ballot snapshot
// they were computed from.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tydonelson/ranked-choice/irv"
	"github.com/tydonelson/ranked-choice/logging"
	"github.com/tydonelson/ranked-choice/storage"
)

var ErrCacheMiss = errors.New("results not cached")

type ResultsCache interface {
	Get(ctx context.Context, pollID, snapshot string) (*irv.PollResults, error)
	Put(ctx context.Context, pollID, snapshot string, results *irv.PollResults) error
}

// SnapshotHash identifies a set of ballots. Ballots are immutable once
// stored, so two snapshots with the same IDs hold the same rankings.
func SnapshotHash(ballots []*storage.Ballot) string {
	if len(ballots) == 0 {
		return "empty"
	}
	ids := make([]string, len(ballots))
	for i, b := range ballots {
		ids[i] = b.ID
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func resultsKey(pollID, snapshot string) string {
	return fmt.Sprintf("results:%s:%s", pollID, snapshot)
}

type RedisResultsCache struct {
	Client redis.Cmdable
	TTL    time.Duration
}

func (c *RedisResultsCache) Get(ctx context.Context, pollID, snapshot string) (*irv.PollResults, error) {
	data, err := c.Client.Get(ctx, resultsKey(pollID, snapshot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		logging.Log.Errorf("CACHE: GET for poll %s failed: %v", pollID, err)
		return nil, err
	}

	var results irv.PollResults
	if err := json.Unmarshal(data, &results); err != nil {
		logging.Log.Errorf("CACHE: failed to decode results for poll %s: %v", pollID, err)
		return nil, err
	}
	return &results, nil
}

func (c *RedisResultsCache) Put(ctx context.Context, pollID, snapshot string, results *irv.PollResults) error {
	data, err := json.Marshal(results)
	if err != nil {
		logging.Log.Errorf("CACHE: failed to encode results for poll %s: %v", pollID, err)
		return err
	}
	if err := c.Client.Set(ctx, resultsKey(pollID, snapshot), data, c.TTL).Err(); err != nil {
		logging.Log.Errorf("CACHE: SET for poll %s failed: %v", pollID, err)
		return err
	}
	return nil
}

// NoopResultsCache never holds anything; every Get is a miss.
type NoopResultsCache struct{}

func (NoopResultsCache) Get(context.Context, string, string) (*irv.PollResults, error) {
	return nil, ErrCacheMiss
}

func (NoopResultsCache) Put(context.Context, string, string, *irv.PollResults) error {
	return nil
}
