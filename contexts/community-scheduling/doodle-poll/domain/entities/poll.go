package entities

import (
	"sort"
	"time"
)

type VoteType string

const (
	VoteTypeSingle VoteType = "single"
	VoteTypeMulti  VoteType = "multi"
)

type SortMode string

const (
	SortByName SortMode = "name"
	SortByTime SortMode = "time"
)

type DisplayMode string

const (
	DisplayModeShow    DisplayMode = "show"
	DisplayModeEdit    DisplayMode = "edit"
	DisplayModePreview DisplayMode = "preview"
)

// DefaultTitle is used by the markup parser when a block carries no title.
const DefaultTitle = "Default title"

// PollConfig is immutable for the duration of one render cycle.
type PollConfig struct {
	Title    string
	VoteType VoteType
	SortMode SortMode
	IsOpen   bool
}

func DefaultPollConfig() PollConfig {
	return PollConfig{
		Title:    DefaultTitle,
		VoteType: VoteTypeSingle,
		SortMode: SortByName,
		IsOpen:   true,
	}
}

// Normalized fills zero-valued enums with their defaults.
func (c PollConfig) Normalized() PollConfig {
	if c.VoteType != VoteTypeMulti {
		c.VoteType = VoteTypeSingle
	}
	if c.SortMode != SortByTime {
		c.SortMode = SortByName
	}
	return c
}

// VoteRecord is one named ballot. SelectedIndexes is kept verbatim, including
// indexes that no longer exist in the current option list.
type VoteRecord struct {
	SelectedIndexes []int
	SubmittedAt     int64
	SourceAddress   string
}

// Selects reports whether the record marks the given choice index.
func (r VoteRecord) Selects(index int) bool {
	for _, selected := range r.SelectedIndexes {
		if selected == index {
			return true
		}
	}
	return false
}

// VoteSet maps a sanitized voter name to its record for one poll identity.
type VoteSet map[string]VoteRecord

// Clone returns an independent copy so callers never mutate a loaded set.
func (s VoteSet) Clone() VoteSet {
	out := make(VoteSet, len(s))
	for name, record := range s {
		record.SelectedIndexes = append([]int(nil), record.SelectedIndexes...)
		out[name] = record
	}
	return out
}

// Entry is a VoteSet element in render/persist order.
type Entry struct {
	VoterName string
	Record    VoteRecord
}

// NormalizeSelection removes duplicates and orders the indexes ascending.
// Out-of-range values are kept; they are filtered only at render time.
func NormalizeSelection(indexes []int) []int {
	if len(indexes) == 0 {
		return []int{}
	}
	seen := make(map[int]struct{}, len(indexes))
	out := make([]int, 0, len(indexes))
	for _, index := range indexes {
		if _, ok := seen[index]; ok {
			continue
		}
		seen[index] = struct{}{}
		out = append(out, index)
	}
	sort.Ints(out)
	return out
}

type Message string

const (
	MessageNone         Message = ""
	MessageNameRequired Message = "dont_have_name"
	MessageVoteDeleted  Message = "vote_deleted"
	MessageVoteSaved    Message = "vote_saved"
)

type ResultLabel string

const (
	ResultLabelCount       ResultLabel = "count"
	ResultLabelFinalResult ResultLabel = "final_result"
)

type InputType string

const (
	InputTypeRadio    InputType = "radio"
	InputTypeCheckbox InputType = "checkbox"
)

// VoterRow is one row of the tally table.
type VoterRow struct {
	VoterName      string
	Marked         []bool
	VotedAt        time.Time
	VotedAtDisplay string
}

type Tally struct {
	Counts []int
	Rows   []VoterRow
}

// Projection is everything a renderer needs for one poll instance.
type Projection struct {
	StorageKey    string
	FormID        string
	Title         string
	Options       []string
	Tally         Tally
	ResultLabel   ResultLabel
	InputType     InputType
	VotingEnabled bool
	Message       Message
}
