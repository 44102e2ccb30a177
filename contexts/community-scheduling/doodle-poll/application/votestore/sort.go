package votestore

import (
	"sort"

	"doodle/contexts/community-scheduling/doodle-poll/domain/entities"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort orders a vote set for persisting and rendering. Both paths use this
// function so on-disk order and displayed order always match.
//
// SortByName compares voter names case-insensitively with embedded numbers
// compared by value ("voter2" before "voter10"). SortByTime orders by
// submission time ascending; equal times keep the name order.
func Sort(set entities.VoteSet, mode entities.SortMode) []entities.Entry {
	entries := make([]entities.Entry, 0, len(set))
	for name, record := range set {
		entries = append(entries, entities.Entry{VoterName: name, Record: record})
	}

	natural := newNaturalOrder()
	sort.Slice(entries, func(i, j int) bool {
		return natural.less(entries[i].VoterName, entries[j].VoterName)
	})
	if mode == entities.SortByTime {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Record.SubmittedAt < entries[j].Record.SubmittedAt
		})
	}
	return entries
}

type naturalOrder struct {
	collator *collate.Collator
}

// A Collator keeps internal buffers and is not safe for concurrent use, so
// every sort builds its own.
func newNaturalOrder() naturalOrder {
	return naturalOrder{
		collator: collate.New(language.Und, collate.IgnoreCase, collate.Numeric),
	}
}

func (n naturalOrder) less(a, b string) bool {
	if c := n.collator.CompareString(a, b); c != 0 {
		return c < 0
	}
	return a < b
}
