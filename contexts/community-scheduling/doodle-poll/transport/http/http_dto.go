package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type VoteRequest struct {
	FormID          string `json:"form_id"`
	FullName        string `json:"fullname"`
	SelectedIndexes []int  `json:"selected_indexes"`
}

// RenderPollRequest describes a poll either as a markup block or as explicit
// fields. Markup wins when both are present.
type RenderPollRequest struct {
	Markup           string       `json:"markup,omitempty"`
	Title            string       `json:"title,omitempty"`
	Options          []string     `json:"options,omitempty"`
	VoteType         string       `json:"vote_type,omitempty"`
	SortedBy         string       `json:"sorted_by,omitempty"`
	IsOpen           *bool        `json:"is_open,omitempty"`
	DisplayMode      string       `json:"display_mode,omitempty"`
	IsLatestRevision *bool        `json:"is_latest_revision,omitempty"`
	Vote             *VoteRequest `json:"vote,omitempty"`
}

type VoterRowResponse struct {
	VoterName      string `json:"voter_name"`
	Marked         []bool `json:"marked"`
	VotedAt        string `json:"voted_at"`
	VotedAtDisplay string `json:"voted_at_display"`
}

type PollResponse struct {
	StorageKey    string             `json:"storage_key"`
	FormID        string             `json:"form_id"`
	Title         string             `json:"title"`
	Options       []string           `json:"options"`
	Counts        []int              `json:"counts"`
	Rows          []VoterRowResponse `json:"rows"`
	ResultLabel   string             `json:"result_label"`
	InputType     string             `json:"input_type"`
	VotingEnabled bool               `json:"voting_enabled"`
	Message       string             `json:"message,omitempty"`
}

type VoteRecordResponse struct {
	VoterName       string `json:"voter_name"`
	SelectedIndexes []int  `json:"selected_indexes"`
	SubmittedAt     int64  `json:"submitted_at"`
	SourceAddress   string `json:"source_address"`
}

type VoteSetResponse struct {
	StorageKey string               `json:"storage_key"`
	SortedBy   string               `json:"sorted_by"`
	Records    []VoteRecordResponse `json:"records"`
}
