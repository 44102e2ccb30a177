package commands

import (
	"context"
	"encoding/json"
	"time"

	application "doodle/contexts/community-scheduling/doodle-poll/application"
	"doodle/contexts/community-scheduling/doodle-poll/ports"
	contractsv1 "doodle/contracts/gen/events/v1"

	"github.com/google/uuid"
)

const (
	VoteEventsTopic  = "doodle.votes"
	eventVoteSaved   = "doodle.vote.saved"
	eventVoteDeleted = "doodle.vote.deleted"
)

func newVoteEnvelope(eventID string, eventType string, payload contractsv1.VotePayload, occurredAt time.Time) (ports.EventEnvelope, error) {
	// Partitioned by poll so consumers see one poll's votes in order.
	data, err := json.Marshal(payload)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "doodle-poll",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "storage_key",
		PartitionKey:     payload.StorageKey,
		Data:             data,
	}, nil
}

// publish never fails the vote: the vote set is already persisted.
func (uc VoteUseCase) publish(ctx context.Context, eventType string, storageKey string, decision Decision, now time.Time) {
	if uc.Events == nil {
		return
	}
	logger := application.ResolveLogger(uc.Logger)

	eventID, err := uc.newEventID(ctx)
	if err != nil {
		logger.Warn("vote event id generation failed",
			"event", "doodle_vote_event_id_failed",
			"module", "community-scheduling/doodle-poll",
			"layer", "application",
			"error", err.Error(),
		)
		return
	}

	payload := contractsv1.VotePayload{
		StorageKey: storageKey,
		VoterName:  decision.VoterName,
	}
	if record, ok := decision.Votes[decision.VoterName]; ok && eventType == eventVoteSaved {
		payload.SelectedIndexes = record.SelectedIndexes
		payload.SubmittedAt = record.SubmittedAt
		payload.SourceAddress = record.SourceAddress
	}
	envelope, err := newVoteEnvelope(eventID, eventType, payload, now)
	if err == nil {
		err = uc.Events.Publish(ctx, VoteEventsTopic, envelope)
	}
	if err != nil {
		logger.Warn("vote event publish failed",
			"event", "doodle_vote_event_publish_failed",
			"module", "community-scheduling/doodle-poll",
			"layer", "application",
			"storage_key", storageKey,
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}

func (uc VoteUseCase) newEventID(ctx context.Context) (string, error) {
	if uc.IDGen == nil {
		return uuid.NewString(), nil
	}
	return uc.IDGen.NewID(ctx)
}
