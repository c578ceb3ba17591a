package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	bferrors "github.com/matzehuels/blockfall/pkg/errors"
	"github.com/matzehuels/blockfall/pkg/observability"
)

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Prefix   string // key prefix, default "blockfall"
}

// RedisStore keeps each record as a JSON string and indexes slot IDs in a
// sorted set scored by creation time.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "blockfall"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "connect to redis at %s", cfg.Addr)
	}
	return newRedisStore(client, cfg.Prefix), nil
}

func newRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) recordKey(id string) string {
	return fmt.Sprintf("%s:save:%s", s.prefix, id)
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":saves"
}

func (s *RedisStore) Save(ctx context.Context, rec *Record) (err error) {
	size := 0
	defer func() { observability.Store().OnSave(ctx, BackendRedis, rec.ID, size, err) }()

	if err := bferrors.ValidateSaveID(rec.ID); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	size = len(data)

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.recordKey(rec.ID), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{
			Score:  float64(rec.CreatedAt.UnixNano()),
			Member: rec.ID,
		})
		return nil
	})
	if err != nil {
		return bferrors.Wrap(bferrors.ErrCodeStorage, err, "save to redis")
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (rec *Record, err error) {
	start := time.Now()
	defer func() { observability.Store().OnLoad(ctx, BackendRedis, id, time.Since(start), err) }()

	if err := bferrors.ValidateSaveID(id); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "load from redis")
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "parse save %s", id)
	}
	return &r, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Summary, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "list redis index")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.recordKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeStorage, err, "read redis records")
	}

	out := make([]Summary, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Indexed but expired or removed out of band.
			continue
		}
		var r Record
		if err := json.Unmarshal([]byte(str), &r); err != nil {
			continue
		}
		out = append(out, r.Summary())
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) (err error) {
	defer func() { observability.Store().OnDelete(ctx, BackendRedis, id, err) }()

	if err := bferrors.ValidateSaveID(id); err != nil {
		return err
	}

	var del *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.recordKey(id))
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return bferrors.Wrap(bferrors.ErrCodeStorage, err, "delete from redis")
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
