package votestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"doodle/contexts/community-scheduling/doodle-poll/domain/entities"
	domainerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"
)

const (
	FormatName     = "doodle.voteset"
	FormatVersion  = 1
	legacyVersion0 = 0
)

type document struct {
	Format  string           `json:"format"`
	Version int              `json:"version"`
	Records []recordDocument `json:"records"`
}

type recordDocument struct {
	Name            string          `json:"name"`
	SelectedIndexes json.RawMessage `json:"selected_indexes"`
	SubmittedAt     int64           `json:"submitted_at"`
	SourceAddress   string          `json:"source_address"`
}

// Encode serializes entries in the given order. Entries with an empty
// selection are dropped: a withdrawal removes the voter, it never persists a
// zero-vote record.
func Encode(entries []entities.Entry) ([]byte, error) {
	doc := document{
		Format:  FormatName,
		Version: FormatVersion,
		Records: make([]recordDocument, 0, len(entries)),
	}
	for _, entry := range entries {
		if len(entry.Record.SelectedIndexes) == 0 {
			continue
		}
		indexes, err := json.Marshal(entry.Record.SelectedIndexes)
		if err != nil {
			return nil, err
		}
		doc.Records = append(doc.Records, recordDocument{
			Name:            entry.VoterName,
			SelectedIndexes: indexes,
			SubmittedAt:     entry.Record.SubmittedAt,
			SourceAddress:   entry.Record.SourceAddress,
		})
	}
	return json.Marshal(doc)
}

// Decode parses a persisted vote set. A selection that is not an array of
// integers is normalized to an empty set instead of failing the whole blob.
func Decode(blob []byte) (entities.VoteSet, error) {
	set := entities.VoteSet{}
	if len(bytes.TrimSpace(blob)) == 0 {
		return set, nil
	}

	var doc document
	if err := json.Unmarshal(blob, &doc); err != nil {
		return nil, fmt.Errorf("decode vote set: %w", err)
	}
	if doc.Format != "" && doc.Format != FormatName {
		return nil, fmt.Errorf("%w: format %q", domainerrors.ErrUnsupportedFormat, doc.Format)
	}
	if doc.Version != legacyVersion0 && doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: version %d", domainerrors.ErrUnsupportedFormat, doc.Version)
	}

	for _, record := range doc.Records {
		set[record.Name] = entities.VoteRecord{
			SelectedIndexes: decodeSelection(record.SelectedIndexes),
			SubmittedAt:     record.SubmittedAt,
			SourceAddress:   record.SourceAddress,
		}
	}
	return set, nil
}

// decodeSelection keeps every integral element of an array, so one bad
// element never costs a voter the rest of the ballot. Anything that is not
// an array decodes as an empty selection.
func decodeSelection(raw json.RawMessage) []int {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil || elements == nil {
		return []int{}
	}
	indexes := make([]int, 0, len(elements))
	for _, element := range elements {
		var value float64
		if err := json.Unmarshal(element, &value); err != nil {
			continue
		}
		if value != math.Trunc(value) || value < math.MinInt32 || value > math.MaxInt32 {
			continue
		}
		indexes = append(indexes, int(value))
	}
	return indexes
}
