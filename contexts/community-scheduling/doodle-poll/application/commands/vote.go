package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "doodle/contexts/community-scheduling/doodle-poll/application"
	"doodle/contexts/community-scheduling/doodle-poll/application/votestore"
	"doodle/contexts/community-scheduling/doodle-poll/domain/entities"
	"doodle/contexts/community-scheduling/doodle-poll/domain/markup"
	"doodle/contexts/community-scheduling/doodle-poll/ports"
)

// ApplyVoteCommand is one submitted vote form.
type ApplyVoteCommand struct {
	StorageKey      string
	SortMode        entities.SortMode
	VoterName       string
	SelectedIndexes []int
	SourceAddress   string
}

// ApplyVoteResult carries the vote set after the action and the message shown
// to the voter. Persisted is false when the action was rejected.
type ApplyVoteResult struct {
	Votes     entities.VoteSet
	Message   entities.Message
	Persisted bool
}

type actionKind int

const (
	actionRejected actionKind = iota
	actionWithdraw
	actionCastOrUpdate
)

// Decision is the pure outcome of a vote form applied to a vote set.
type Decision struct {
	Votes     entities.VoteSet
	Message   entities.Message
	VoterName string
	kind      actionKind
}

// Persist reports whether the decision changed what must be stored.
func (d Decision) Persist() bool {
	return d.kind != actionRejected
}

// Decide applies one vote form to current without mutating it:
//   - a blank name is rejected and current is returned as is;
//   - an empty selection withdraws the voter (a no-op when absent);
//   - anything else replaces the voter's record entirely.
//
// Submitted indexes are stored as given (deduplicated). They are not checked
// against the option list, so shrinking a poll never truncates old ballots.
func Decide(current entities.VoteSet, cmd ApplyVoteCommand, now time.Time) Decision {
	name := markup.Sanitize(cmd.VoterName)
	if name == "" {
		return Decision{Votes: current, Message: entities.MessageNameRequired, kind: actionRejected}
	}

	next := current.Clone()
	if len(cmd.SelectedIndexes) == 0 {
		delete(next, name)
		return Decision{Votes: next, Message: entities.MessageVoteDeleted, VoterName: name, kind: actionWithdraw}
	}

	next[name] = entities.VoteRecord{
		SelectedIndexes: entities.NormalizeSelection(cmd.SelectedIndexes),
		SubmittedAt:     now.Unix(),
		SourceAddress:   strings.TrimSpace(cmd.SourceAddress),
	}
	return Decision{Votes: next, Message: entities.MessageVoteSaved, VoterName: name, kind: actionCastOrUpdate}
}

// VoteUseCase casts, updates and withdraws named votes. It does not check
// whether the poll is open; callers gate the vote form instead.
type VoteUseCase struct {
	Store  votestore.VoteStore
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Events ports.EventPublisher
	Logger *slog.Logger
}

func (uc VoteUseCase) Apply(ctx context.Context, current entities.VoteSet, cmd ApplyVoteCommand) (ApplyVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.now()

	decision := Decide(current, cmd, now)
	if !decision.Persist() {
		logger.Warn("vote rejected without voter name",
			"event", "doodle_vote_name_required",
			"module", "community-scheduling/doodle-poll",
			"layer", "application",
			"storage_key", cmd.StorageKey,
		)
		return ApplyVoteResult{Votes: current, Message: decision.Message}, nil
	}

	if err := uc.Store.Save(ctx, cmd.StorageKey, decision.Votes, cmd.SortMode); err != nil {
		return ApplyVoteResult{}, err
	}

	eventType := eventVoteSaved
	if decision.kind == actionWithdraw {
		eventType = eventVoteDeleted
	}
	logger.Info("vote applied",
		"event", "doodle_vote_applied",
		"module", "community-scheduling/doodle-poll",
		"layer", "application",
		"storage_key", cmd.StorageKey,
		"voter_name", decision.VoterName,
		"action", eventType,
		"voters", len(decision.Votes),
	)
	uc.publish(ctx, eventType, cmd.StorageKey, decision, now)

	return ApplyVoteResult{Votes: decision.Votes, Message: decision.Message, Persisted: true}, nil
}

func (uc VoteUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
