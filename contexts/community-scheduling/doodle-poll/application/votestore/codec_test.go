package votestore

import (
	"testing"

	"doodle/contexts/community-scheduling/doodle-poll/domain/entities"
	domainerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	set := entities.VoteSet{
		"Ann": {SelectedIndexes: []int{0, 2}, SubmittedAt: 1700000000, SourceAddress: "10.0.0.1"},
		"Bob": {SelectedIndexes: []int{7}, SubmittedAt: 1700000100, SourceAddress: "10.0.0.2"},
	}

	blob, err := Encode(Sort(set, entities.SortByName))
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, set, decoded)
}

func TestEncodeDropsEmptySelections(t *testing.T) {
	blob, err := Encode([]entities.Entry{
		{VoterName: "Ann", Record: entities.VoteRecord{SelectedIndexes: []int{1}}},
		{VoterName: "Ghost", Record: entities.VoteRecord{SelectedIndexes: []int{}}},
	})
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	assert.Len(t, decoded, 1)
	assert.Contains(t, decoded, "Ann")
}

func TestDecodeNormalizesNonArraySelection(t *testing.T) {
	blob := []byte(`{"format":"doodle.voteset","version":1,"records":[
		{"name":"Ann","selected_indexes":"oops","submitted_at":5},
		{"name":"Bob","selected_indexes":null,"submitted_at":6},
		{"name":"Cid","selected_indexes":{"0":1},"submitted_at":7},
		{"name":"Dan","selected_indexes":3,"submitted_at":8}
	]}`)

	set, err := Decode(blob)
	require.NoError(t, err)
	require.Len(t, set, 4)
	for name, record := range set {
		assert.NotNil(t, record.SelectedIndexes, name)
		assert.Empty(t, record.SelectedIndexes, name)
	}
	assert.Equal(t, int64(5), set["Ann"].SubmittedAt)
}

func TestDecodeKeepsIntegralElementsOfMixedArrays(t *testing.T) {
	blob := []byte(`{"format":"doodle.voteset","version":1,"records":[
		{"name":"Ann","selected_indexes":[1,"x"],"submitted_at":5},
		{"name":"Bob","selected_indexes":[1.0,2],"submitted_at":6},
		{"name":"Cid","selected_indexes":[0.5,null,4],"submitted_at":7}
	]}`)

	set, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, set["Ann"].SelectedIndexes)
	assert.Equal(t, []int{1, 2}, set["Bob"].SelectedIndexes)
	assert.Equal(t, []int{4}, set["Cid"].SelectedIndexes)
}

func TestDecodeEmptyBlobIsEmptySet(t *testing.T) {
	set, err := Decode([]byte("  "))
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestDecodeAcceptsLegacyVersionZero(t *testing.T) {
	set, err := Decode([]byte(`{"records":[{"name":"Ann","selected_indexes":[0]}]}`))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, set["Ann"].SelectedIndexes)
}

func TestDecodeRejectsUnknownFormatOrVersion(t *testing.T) {
	_, err := Decode([]byte(`{"format":"other","version":1}`))
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedFormat)

	_, err = Decode([]byte(`{"format":"doodle.voteset","version":9}`))
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedFormat)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}
