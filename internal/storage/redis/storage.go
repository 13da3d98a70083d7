package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/storage"
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

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// The first save allocates the next first-seen sequence number as
	// the index score. ZAddNX keeps the score a racing writer already
	// set, so ordering stays stable across updates and concurrent saves.
	err = s.client.ZScore(ctx, playerIndexKey(), string(player.UserKey)).Err()
	if errors.Is(err, redis.Nil) {
		seq, err := s.client.Incr(ctx, playerSeqKey()).Result()
		if err != nil {
			return err
		}
		if err := s.client.ZAddNX(ctx, playerIndexKey(), redis.Z{
			Score:  float64(seq),
			Member: string(player.UserKey),
		}).Err(); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return s.client.Set(ctx, playerKey(player.UserKey), data, 0).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, key model.UserKey) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, key model.UserKey) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(key))
	pipe.ZRem(ctx, playerIndexKey(), string(key))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	keys, err := s.client.ZRange(ctx, playerIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	fullKeys := make([]string, len(keys))
	for i, k := range keys {
		fullKeys[i] = playerKey(model.UserKey(k))
	}

	values, err := s.client.MGet(ctx, fullKeys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Index entry without a record; skip
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(str), &player); err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	return players, nil
}

// Ghost run operations

func (s *Storage) SaveRun(ctx context.Context, run *model.GhostRun) error {
	if run.ID == 0 {
		id, err := s.client.Incr(ctx, runSeqKey()).Result()
		if err != nil {
			return err
		}
		run.ID = model.RunID(id)
	}

	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	var ttl time.Duration
	if run.IsGuest() {
		ttl = s.cfg.GuestRunTTL
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, runKey(run.ID), data, ttl)
	pipe.SAdd(ctx, runsForBookIndexKey(run.Book), int64(run.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRun(ctx context.Context, id model.RunID) (*model.GhostRun, error) {
	data, err := s.client.Get(ctx, runKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRunNotFound
		}
		return nil, err
	}

	var run model.GhostRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *Storage) ListRunsForBook(ctx context.Context, book model.BookID) ([]*model.GhostRun, error) {
	ids, err := s.client.SMembers(ctx, runsForBookIndexKey(book)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, err
		}
		keys[i] = runKey(model.RunID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	runs := make([]*model.GhostRun, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Expired guest run still in the index; skip
			continue
		}
		var run model.GhostRun
		if err := json.Unmarshal([]byte(str), &run); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, nil
}

func (s *Storage) DeleteGuestRuns(ctx context.Context) (int, error) {
	deleted := 0
	for _, book := range model.Books {
		runs, err := s.ListRunsForBook(ctx, book)
		if err != nil {
			return deleted, err
		}
		for _, run := range runs {
			if !run.IsGuest() {
				continue
			}
			pipe := s.client.Pipeline()
			pipe.Del(ctx, runKey(run.ID))
			pipe.SRem(ctx, runsForBookIndexKey(book), int64(run.ID))
			if _, err := pipe.Exec(ctx); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}
