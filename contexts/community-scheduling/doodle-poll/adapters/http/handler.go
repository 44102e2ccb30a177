package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"doodle/contexts/community-scheduling/doodle-poll/application/commands"
	"doodle/contexts/community-scheduling/doodle-poll/application/votestore"
	"doodle/contexts/community-scheduling/doodle-poll/domain/entities"
	"doodle/contexts/community-scheduling/doodle-poll/domain/markup"
	httptransport "doodle/contexts/community-scheduling/doodle-poll/transport/http"
)

type Handler struct {
	Render commands.RenderUseCase
	Store  votestore.VoteStore
	Logger *slog.Logger
}

func (h Handler) RenderPollHandler(
	ctx context.Context,
	req httptransport.RenderPollRequest,
	sourceAddress string,
) (httptransport.PollResponse, error) {
	config, options, err := pollFromRequest(req)
	if err != nil {
		return httptransport.PollResponse{}, err
	}

	cmd := commands.RenderCommand{
		Config:           config,
		Options:          options,
		DisplayMode:      entities.DisplayModeShow,
		IsLatestRevision: true,
	}
	if mode := strings.TrimSpace(req.DisplayMode); mode != "" {
		cmd.DisplayMode = entities.DisplayMode(mode)
	}
	if req.IsLatestRevision != nil {
		cmd.IsLatestRevision = *req.IsLatestRevision
	}
	if req.Vote != nil {
		cmd.Vote = &commands.PendingVote{
			FormID:          strings.TrimSpace(req.Vote.FormID),
			VoterName:       req.Vote.FullName,
			SelectedIndexes: req.Vote.SelectedIndexes,
			SourceAddress:   sourceAddress,
		}
	}

	projection, err := h.Render.Render(ctx, cmd)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return mapProjection(projection), nil
}

func (h Handler) VoteSetHandler(ctx context.Context, storageKey string, sortedBy string) (httptransport.VoteSetResponse, error) {
	mode := entities.SortByName
	if strings.TrimSpace(sortedBy) == string(entities.SortByTime) {
		mode = entities.SortByTime
	}
	set, err := h.Store.Load(ctx, strings.TrimSpace(storageKey))
	if err != nil {
		return httptransport.VoteSetResponse{}, err
	}
	entries := votestore.Sort(set, mode)
	records := make([]httptransport.VoteRecordResponse, 0, len(entries))
	for _, entry := range entries {
		records = append(records, httptransport.VoteRecordResponse{
			VoterName:       entry.VoterName,
			SelectedIndexes: entry.Record.SelectedIndexes,
			SubmittedAt:     entry.Record.SubmittedAt,
			SourceAddress:   entry.Record.SourceAddress,
		})
	}
	return httptransport.VoteSetResponse{
		StorageKey: strings.TrimSpace(storageKey),
		SortedBy:   string(mode),
		Records:    records,
	}, nil
}

func pollFromRequest(req httptransport.RenderPollRequest) (entities.PollConfig, []string, error) {
	if strings.TrimSpace(req.Markup) != "" {
		return markup.ParseBlock(req.Markup)
	}

	config := entities.DefaultPollConfig()
	config.Title = strings.TrimSpace(req.Title)
	config.VoteType = entities.VoteType(strings.TrimSpace(req.VoteType))
	config.SortMode = entities.SortMode(strings.TrimSpace(req.SortedBy))
	if req.IsOpen != nil {
		config.IsOpen = *req.IsOpen
	}

	options := make([]string, 0, len(req.Options))
	for _, raw := range req.Options {
		if option, ok := markup.EncodeOption(raw); ok {
			options = append(options, option)
		}
	}
	return config.Normalized(), options, nil
}

func mapProjection(p entities.Projection) httptransport.PollResponse {
	rows := make([]httptransport.VoterRowResponse, 0, len(p.Tally.Rows))
	for _, row := range p.Tally.Rows {
		rows = append(rows, httptransport.VoterRowResponse{
			VoterName:      row.VoterName,
			Marked:         row.Marked,
			VotedAt:        row.VotedAt.UTC().Format(time.RFC3339),
			VotedAtDisplay: row.VotedAtDisplay,
		})
	}
	return httptransport.PollResponse{
		StorageKey:    p.StorageKey,
		FormID:        p.FormID,
		Title:         p.Title,
		Options:       p.Options,
		Counts:        p.Tally.Counts,
		Rows:          rows,
		ResultLabel:   string(p.ResultLabel),
		InputType:     string(p.InputType),
		VotingEnabled: p.VotingEnabled,
		Message:       string(p.Message),
	}
}
