package commands

import (
	"context"
	"log/slog"
	"time"

	application "doodle/contexts/community-scheduling/doodle-poll/application"
	"doodle/contexts/community-scheduling/doodle-poll/application/queries"
	"doodle/contexts/community-scheduling/doodle-poll/application/votestore"
	"doodle/contexts/community-scheduling/doodle-poll/domain/entities"
	"doodle/contexts/community-scheduling/doodle-poll/domain/identity"
	"doodle/contexts/community-scheduling/doodle-poll/domain/markup"
)

// PendingVote is a vote form submitted with the current request.
type PendingVote struct {
	FormID          string
	VoterName       string
	SelectedIndexes []int
	SourceAddress   string
}

// RenderCommand is the immutable input of one render cycle.
type RenderCommand struct {
	Config           entities.PollConfig
	Options          []string
	DisplayMode      entities.DisplayMode
	IsLatestRevision bool
	Vote             *PendingVote
}

// RenderUseCase runs one render cycle: derive identity, load, apply at most
// one pending vote, project tallies.
type RenderUseCase struct {
	Votes    VoteUseCase
	Location *time.Location
	Logger   *slog.Logger
}

func (uc RenderUseCase) Render(ctx context.Context, cmd RenderCommand) (entities.Projection, error) {
	logger := application.ResolveLogger(uc.Logger)
	config := cmd.Config.Normalized()

	storageKey, err := identity.DeriveStorageKey(config.Title)
	if err != nil {
		logger.Warn("poll rendered without title",
			"event", "doodle_render_config_invalid",
			"module", "community-scheduling/doodle-poll",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Projection{}, err
	}
	formID, err := identity.DeriveFormID(config.Title)
	if err != nil {
		return entities.Projection{}, err
	}

	// A poll without options never reads its old data; a vote submitted to it
	// therefore starts from an empty set and resets what was stored.
	votes := entities.VoteSet{}
	if len(cmd.Options) > 0 {
		votes, err = uc.Votes.Store.Load(ctx, storageKey)
		if err != nil {
			return entities.Projection{}, err
		}
	}

	eligibility := queries.EligibilityContext{
		IsOpen:           config.IsOpen,
		DisplayMode:      cmd.DisplayMode,
		IsLatestRevision: cmd.IsLatestRevision,
	}

	message := entities.MessageNone
	if vote := cmd.Vote; vote != nil && vote.FormID == formID && queries.AcceptsActions(eligibility) {
		result, err := uc.Votes.Apply(ctx, votes, ApplyVoteCommand{
			StorageKey:      storageKey,
			SortMode:        config.SortMode,
			VoterName:       vote.VoterName,
			SelectedIndexes: vote.SelectedIndexes,
			SourceAddress:   vote.SourceAddress,
		})
		if err != nil {
			return entities.Projection{}, err
		}
		votes = result.Votes
		message = result.Message
	} else if vote != nil {
		logger.Debug("vote form ignored",
			"event", "doodle_render_vote_ignored",
			"module", "community-scheduling/doodle-poll",
			"layer", "application",
			"storage_key", storageKey,
			"form_id", vote.FormID,
			"display_mode", string(cmd.DisplayMode),
		)
	}

	entries := votestore.Sort(votes, config.SortMode)
	return entities.Projection{
		StorageKey:    storageKey,
		FormID:        formID,
		Title:         markup.Sanitize(config.Title),
		Options:       append([]string(nil), cmd.Options...),
		Tally:         queries.ComputeTallies(cmd.Options, entries, uc.Location),
		ResultLabel:   queries.ResultLabelFor(config),
		InputType:     queries.InputTypeFor(config),
		VotingEnabled: queries.CanVote(eligibility),
		Message:       message,
	}, nil
}
