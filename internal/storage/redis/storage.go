package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.matchKey(match.Code), data, s.cfg.MatchTTL)
	pipe.SAdd(ctx, s.matchIndexKey(), string(match.Code))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatch(ctx context.Context, code model.MatchCode) (*model.Match, error) {
	data, err := s.client.Get(ctx, s.matchKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, code model.MatchCode) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.matchKey(code))
	pipe.SRem(ctx, s.matchIndexKey(), string(code))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) MatchExists(ctx context.Context, code model.MatchCode) (bool, error) {
	n, err := s.client.Exists(ctx, s.matchKey(code)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListMatches returns the codes of all live matches. Index entries whose
// match has expired are pruned on the way.
func (s *Storage) ListMatches(ctx context.Context) ([]model.MatchCode, error) {
	members, err := s.client.SMembers(ctx, s.matchIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	codes := make([]model.MatchCode, 0, len(members))
	var stale []any
	for _, m := range members {
		exists, err := s.MatchExists(ctx, model.MatchCode(m))
		if err != nil {
			return nil, err
		}
		if !exists {
			stale = append(stale, m)
			continue
		}
		codes = append(codes, model.MatchCode(m))
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, s.matchIndexKey(), stale...).Err(); err != nil {
			return nil, err
		}
	}

	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes, nil
}
