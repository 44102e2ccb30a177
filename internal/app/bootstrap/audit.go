package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"doodle/contexts/community-scheduling/doodle-poll/application/commands"
	"doodle/contexts/community-scheduling/doodle-poll/ports"
	contractsv1 "doodle/contracts/gen/events/v1"
	"doodle/internal/platform/messaging"
)

// StartVoteAudit subscribes a consumer that writes one log line per vote event.
func StartVoteAudit(ctx context.Context, bus *messaging.Bus, logger *slog.Logger) {
	bus.Subscribe(ctx, commands.VoteEventsTopic, "doodle-vote-audit", func(_ context.Context, event ports.EventEnvelope) error {
		return auditVoteEvent(logger, event)
	})
}

func auditVoteEvent(logger *slog.Logger, event ports.EventEnvelope) error {
	var payload contractsv1.VotePayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return fmt.Errorf("decode vote payload %s: %w", event.EventID, err)
	}
	logger.Info("vote audited",
		"event", "doodle_vote_audit",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"storage_key", payload.StorageKey,
		"voter_name", payload.VoterName,
		"selected_indexes", payload.SelectedIndexes,
		"source_address", payload.SourceAddress,
	)
	return nil
}
