package redisadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"
	"doodle/contexts/community-scheduling/doodle-poll/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "doodle:voteset:"

// Client is the subset of redis commands the store needs. *redis.Client and
// *redis.ClusterClient both satisfy it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Store keeps each vote set as one redis string without expiry.
type Store struct {
	client Client
	prefix string
	logger *slog.Logger
}

func NewStore(client Client, prefix string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix, logger: logger}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	redisKey := s.prefix + strings.TrimSpace(key)
	blob, err := s.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, s.logError("doodle_redis_get_failed", err, "redis_key", redisKey)
	}
	return blob, true, nil
}

func (s *Store) Put(ctx context.Context, key string, blob []byte) error {
	redisKey := s.prefix + strings.TrimSpace(key)
	if err := s.client.Set(ctx, redisKey, blob, 0).Err(); err != nil {
		return s.logError("doodle_redis_set_failed", err, "redis_key", redisKey, "bytes", len(blob))
	}
	return nil
}

func (s *Store) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "community-scheduling/doodle-poll",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	s.logger.Error("doodle redis store operation failed", fields...)
	return fmt.Errorf("%w: %w", domainerrors.ErrStorage, err)
}

var _ ports.BlobStore = (*Store)(nil)
var _ Client = (*redis.Client)(nil)
