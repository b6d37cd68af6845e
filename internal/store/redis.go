package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"

	"github.com/robalobadob/wordle-answer/internal/words"
)

const redisPrefix = "wordle:answer:"

type redisStore struct {
	rdb *redis.Client
}

// OpenRedis connects to addr and checks the connection with PING.
func OpenRedis(ctx context.Context, addr string) (Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	return &redisStore{rdb: rdb}, nil
}

func (s *redisStore) Save(ctx context.Context, rec words.Record) error {
	old, err := s.Get(ctx, rec.Date)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	data, err := json.Marshal(merge(old, rec))
	if err != nil {
		return err
	}
	// Answers are permanent; no expiry.
	return s.rdb.Set(ctx, redisPrefix+rec.Date, data, 0).Err()
}

func (s *redisStore) Get(ctx context.Context, date string) (words.Record, error) {
	data, err := s.rdb.Get(ctx, redisPrefix+date).Bytes()
	if errors.Is(err, redis.Nil) {
		return words.Record{}, ErrNotFound
	}
	if err != nil {
		return words.Record{}, fmt.Errorf("get %s: %w", date, err)
	}
	var r words.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return words.Record{}, fmt.Errorf("decode %s: %w", date, err)
	}
	return r, nil
}

func (s *redisStore) List(ctx context.Context, limit int) ([]words.Record, error) {
	var out []words.Record
	iter := s.rdb.Scan(ctx, 0, redisPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		r, err := s.Get(ctx, iter.Val()[len(redisPrefix):])
		if err != nil {
			continue
		}
		out = append(out, r)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *redisStore) Close() error { return s.rdb.Close() }
