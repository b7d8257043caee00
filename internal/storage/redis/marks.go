// Package redis provides a Redis-backed storage.MarkStore.
//
// Debt marks are plain sets of debt-line keys, one set per
// (trip, participant, direction), which maps directly onto Redis sets:
//
//	travelsplit:marks:<tripID>:<participantID>:<direction> -> {"<counterparty>-<amount>", ...}
//	travelsplit:marks-index:<tripID>                      -> {mark set keys of the trip}
//
// IDs are query-escaped so they never contain ':' or glob characters.
package redis

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sushant-k-tiwari/TravelSplit/internal/models"
	"github.com/sushant-k-tiwari/TravelSplit/internal/storage"
)

const (
	keyPrefix   = "travelsplit:marks"
	indexPrefix = "travelsplit:marks-index"
)

// Ensure MarkStore implements storage.MarkStore
var _ storage.MarkStore = (*MarkStore)(nil)

// toggleScript removes the member if present, otherwise adds it and records
// the set in the trip index. It returns 1 when the member is set afterwards.
var toggleScript = goredis.NewScript(`
if redis.call('SREM', KEYS[1], ARGV[1]) == 1 then
	return 0
end
redis.call('SADD', KEYS[1], ARGV[1])
redis.call('SADD', KEYS[2], KEYS[1])
return 1
`)

// MarkStore keeps debt marks in Redis sets.
type MarkStore struct {
	client goredis.UniversalClient
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options) (*MarkStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return &MarkStore{client: client}, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client goredis.UniversalClient) *MarkStore {
	return &MarkStore{client: client}
}

// Close closes the underlying client.
func (s *MarkStore) Close() error {
	return s.client.Close()
}

func setKey(tripID, participantID string, d models.Direction) string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, url.QueryEscape(tripID), url.QueryEscape(participantID), d)
}

func indexKey(tripID string) string {
	return fmt.Sprintf("%s:%s", indexPrefix, url.QueryEscape(tripID))
}

// ListMarks returns a participant's marks, sorted, keyed by direction.
func (s *MarkStore) ListMarks(ctx context.Context, tripID, participantID string) (map[models.Direction][]string, error) {
	marks := make(map[models.Direction][]string, 2)
	for _, d := range []models.Direction{models.DirectionSettled, models.DirectionReceived} {
		members, err := s.client.SMembers(ctx, setKey(tripID, participantID, d)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to list %s marks: %w", d, err)
		}
		sort.Strings(members)
		marks[d] = members
	}
	return marks, nil
}

// ToggleMark flips a mark atomically and reports whether it is now set.
func (s *MarkStore) ToggleMark(ctx context.Context, mark models.DebtMark) (bool, error) {
	key := setKey(mark.TripID, mark.ParticipantID, mark.Direction)
	n, err := toggleScript.Run(ctx, s.client, []string{key, indexKey(mark.TripID)}, mark.Key).Int()
	if err != nil {
		return false, fmt.Errorf("failed to toggle mark: %w", err)
	}
	return n == 1, nil
}

// DeleteTripMarks removes every mark set listed in the trip's index, then
// the index itself.
func (s *MarkStore) DeleteTripMarks(ctx context.Context, tripID string) error {
	index := indexKey(tripID)
	keys, err := s.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("failed to read mark index: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, append(keys, index)...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete marks: %w", err)
	}
	return nil
}
