package queries

import (
	"time"

	"doodle/contexts/community-scheduling/doodle-poll/domain/entities"
)

// VotedAtLayout formats the vote time shown as a tooltip on marked cells.
const VotedAtLayout = "2006/01/02 15:04"

// ComputeTallies counts, for every option, the voters whose selection
// contains its index, and builds one row per voter in the given order.
// Indexes outside the option list are ignored.
func ComputeTallies(options []string, entries []entities.Entry, location *time.Location) entities.Tally {
	if location == nil {
		location = time.UTC
	}

	counts := make([]int, len(options))
	rows := make([]entities.VoterRow, 0, len(entries))
	for _, entry := range entries {
		marked := make([]bool, len(options))
		for _, index := range entry.Record.SelectedIndexes {
			if index < 0 || index >= len(options) || marked[index] {
				continue
			}
			marked[index] = true
			counts[index]++
		}
		votedAt := time.Unix(entry.Record.SubmittedAt, 0).In(location)
		rows = append(rows, entities.VoterRow{
			VoterName:      entry.VoterName,
			Marked:         marked,
			VotedAt:        votedAt,
			VotedAtDisplay: votedAt.Format(VotedAtLayout),
		})
	}
	return entities.Tally{Counts: counts, Rows: rows}
}
