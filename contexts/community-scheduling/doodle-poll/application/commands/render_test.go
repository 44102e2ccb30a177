package commands

import (
	"context"
	"testing"
	"time"

	"doodle/contexts/community-scheduling/doodle-poll/adapters/memory"
	"doodle/contexts/community-scheduling/doodle-poll/domain/entities"
	domainerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderUseCase(store *memory.Store) RenderUseCase {
	return RenderUseCase{Votes: newVoteUseCase(store), Location: time.UTC}
}

func renderCommand(vote *PendingVote) RenderCommand {
	return RenderCommand{
		Config:           entities.PollConfig{Title: "Team Lunch", IsOpen: true},
		Options:          []string{"Pizza", "Sushi", "Tacos"},
		DisplayMode:      entities.DisplayModeShow,
		IsLatestRevision: true,
		Vote:             vote,
	}
}

func TestRenderAppliesMatchingVote(t *testing.T) {
	uc := newRenderUseCase(memory.NewStore(nil))

	projection, err := uc.Render(context.Background(), renderCommand(&PendingVote{
		FormID:          "doodle__form__team_lunch",
		VoterName:       "Ann",
		SelectedIndexes: []int{0, 2},
	}))
	require.NoError(t, err)

	assert.Equal(t, "team_lunch", projection.StorageKey)
	assert.Equal(t, "doodle__form__team_lunch", projection.FormID)
	assert.Equal(t, entities.MessageVoteSaved, projection.Message)
	assert.Equal(t, []int{1, 0, 1}, projection.Tally.Counts)
	assert.True(t, projection.VotingEnabled)
	assert.Equal(t, entities.ResultLabelCount, projection.ResultLabel)
	assert.Equal(t, entities.InputTypeRadio, projection.InputType)
	require.Len(t, projection.Tally.Rows, 1)
	assert.Equal(t, "2024/05/01 12:00", projection.Tally.Rows[0].VotedAtDisplay)
}

func TestRenderIgnoresVoteForOtherForm(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newRenderUseCase(store)

	projection, err := uc.Render(context.Background(), renderCommand(&PendingVote{
		FormID:          "doodle__form__other_poll",
		VoterName:       "Ann",
		SelectedIndexes: []int{0},
	}))
	require.NoError(t, err)
	assert.Equal(t, entities.MessageNone, projection.Message)
	assert.Empty(t, projection.Tally.Rows)
	assert.Empty(t, store.Keys())
}

func TestRenderIgnoresVoteOutsideShowModeOrOldRevision(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newRenderUseCase(store)
	vote := &PendingVote{FormID: "doodle__form__team_lunch", VoterName: "Ann", SelectedIndexes: []int{0}}

	edit := renderCommand(vote)
	edit.DisplayMode = entities.DisplayModeEdit
	projection, err := uc.Render(context.Background(), edit)
	require.NoError(t, err)
	assert.Equal(t, entities.MessageNone, projection.Message)
	assert.False(t, projection.VotingEnabled)

	old := renderCommand(vote)
	old.IsLatestRevision = false
	_, err = uc.Render(context.Background(), old)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestRenderClosedPollStillAcceptsSubmittedVote(t *testing.T) {
	uc := newRenderUseCase(memory.NewStore(nil))
	cmd := renderCommand(&PendingVote{FormID: "doodle__form__team_lunch", VoterName: "Ann", SelectedIndexes: []int{1}})
	cmd.Config.IsOpen = false

	projection, err := uc.Render(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, entities.MessageVoteSaved, projection.Message)
	assert.False(t, projection.VotingEnabled)
	assert.Equal(t, entities.ResultLabelFinalResult, projection.ResultLabel)
}

func TestRenderPreservesStaleIndexesAfterOptionsShrink(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	uc := newRenderUseCase(store)

	_, err := uc.Render(ctx, renderCommand(&PendingVote{FormID: "doodle__form__team_lunch", VoterName: "Ann", SelectedIndexes: []int{0, 2}}))
	require.NoError(t, err)

	shrunk := renderCommand(nil)
	shrunk.Options = []string{"Pizza"}
	projection, err := uc.Render(ctx, shrunk)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, projection.Tally.Counts)

	stored, err := uc.Votes.Store.Load(ctx, "team_lunch")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, stored["Ann"].SelectedIndexes)
}

func TestRenderRequiresTitle(t *testing.T) {
	uc := newRenderUseCase(memory.NewStore(nil))
	cmd := renderCommand(nil)
	cmd.Config.Title = "  "

	_, err := uc.Render(context.Background(), cmd)
	assert.ErrorIs(t, err, domainerrors.ErrConfig)
}

func TestRenderEscapesTitleAndSharesKeyAcrossCollidingTitles(t *testing.T) {
	ctx := context.Background()
	uc := newRenderUseCase(memory.NewStore(nil))

	first := renderCommand(&PendingVote{FormID: "doodle__form__a_amp_b", VoterName: "Ann", SelectedIndexes: []int{0}})
	first.Config.Title = "A & B"
	projection, err := uc.Render(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "A &amp; B", projection.Title)
	assert.Equal(t, entities.MessageVoteSaved, projection.Message)

	second := renderCommand(nil)
	second.Config.Title = "a amp b"
	projection, err = uc.Render(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "a_amp_b", projection.StorageKey)
	require.Len(t, projection.Tally.Rows, 1)
	assert.Equal(t, "Ann", projection.Tally.Rows[0].VoterName)
}

func TestRenderPollWithoutOptionsStartsFromEmptySet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	uc := newRenderUseCase(store)

	_, err := uc.Render(ctx, renderCommand(&PendingVote{FormID: "doodle__form__team_lunch", VoterName: "Ann", SelectedIndexes: []int{0}}))
	require.NoError(t, err)

	empty := renderCommand(&PendingVote{FormID: "doodle__form__team_lunch", VoterName: "Bob", SelectedIndexes: []int{0}})
	empty.Options = nil
	projection, err := uc.Render(ctx, empty)
	require.NoError(t, err)
	assert.Empty(t, projection.Tally.Counts)

	stored, err := uc.Votes.Store.Load(ctx, "team_lunch")
	require.NoError(t, err)
	assert.NotContains(t, stored, "Ann")
	assert.Contains(t, stored, "Bob")
}
