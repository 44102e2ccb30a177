// Package votestore persists one vote set per poll identity as a single blob.
//
// A vote set is always read and written whole. There is no locking between
// concurrent writers of the same key; the last Save wins and earlier
// snapshots are lost.
package votestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	application "doodle/contexts/community-scheduling/doodle-poll/application"
	"doodle/contexts/community-scheduling/doodle-poll/domain/entities"
	domainerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"
	"doodle/contexts/community-scheduling/doodle-poll/ports"
)

type VoteStore struct {
	Blobs  ports.BlobStore
	Logger *slog.Logger
}

// Load returns the vote set stored under key. A missing blob is an empty set.
func (s VoteStore) Load(ctx context.Context, key string) (entities.VoteSet, error) {
	const op = "VoteStore.Load"
	logger := application.ResolveLogger(s.Logger)

	blob, found, err := s.Blobs.Get(ctx, key)
	if err != nil {
		logger.Error("vote set load failed",
			"event", "doodle_voteset_load_failed",
			"module", "community-scheduling/doodle-poll",
			"layer", "application",
			"storage_key", key,
			"error", err.Error(),
		)
		return nil, storageError(op, err)
	}
	if !found {
		logger.Debug("vote set not found, starting empty",
			"event", "doodle_voteset_empty",
			"module", "community-scheduling/doodle-poll",
			"layer", "application",
			"storage_key", key,
		)
		return entities.VoteSet{}, nil
	}

	set, err := Decode(blob)
	if err != nil {
		logger.Error("vote set decode failed",
			"event", "doodle_voteset_decode_failed",
			"module", "community-scheduling/doodle-poll",
			"layer", "application",
			"storage_key", key,
			"error", err.Error(),
		)
		return nil, storageError(op, err)
	}
	return set, nil
}

// Save sorts the set by mode and overwrites the blob stored under key.
func (s VoteStore) Save(ctx context.Context, key string, set entities.VoteSet, mode entities.SortMode) error {
	const op = "VoteStore.Save"
	logger := application.ResolveLogger(s.Logger)

	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%s: %w: empty storage key", op, domainerrors.ErrConfig)
	}

	blob, err := Encode(Sort(set, mode))
	if err != nil {
		return storageError(op, err)
	}
	if err := s.Blobs.Put(ctx, key, blob); err != nil {
		logger.Error("vote set save failed",
			"event", "doodle_voteset_save_failed",
			"module", "community-scheduling/doodle-poll",
			"layer", "application",
			"storage_key", key,
			"error", err.Error(),
		)
		return storageError(op, err)
	}

	logger.Debug("vote set saved",
		"event", "doodle_voteset_saved",
		"module", "community-scheduling/doodle-poll",
		"layer", "application",
		"storage_key", key,
		"voters", len(set),
		"bytes", len(blob),
	)
	return nil
}

func storageError(op string, err error) error {
	if errors.Is(err, domainerrors.ErrStorage) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domainerrors.ErrStorage, err)
}
