package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	doodlepoll "doodle/contexts/community-scheduling/doodle-poll"
	doodlehttp "doodle/contexts/community-scheduling/doodle-poll/transport/http"
)

func newTestServer() *Server {
	return New(doodlepoll.NewInMemoryModule(nil, nil), nil, ":0", nil)
}

func postRender(t *testing.T, server *Server, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/doodle/render", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRenderPollRejectsInvalidJSON(t *testing.T) {
	rr := postRender(t, newTestServer(), `{`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRenderPollRejectsMissingTitle(t *testing.T) {
	rr := postRender(t, newTestServer(), `{"title":"   ","options":["a"]}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp doodlehttp.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "invalid_poll_config" {
		t.Fatalf("unexpected error code %q", resp.Code)
	}
}

func TestRenderPollRejectsMarkupWithoutHeaderEnd(t *testing.T) {
	rr := postRender(t, newTestServer(), `{"markup":"<doodlesimple title=\"x\""}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRenderPollRecordsVoteAndListsIt(t *testing.T) {
	server := newTestServer()
	body := `{"title":"Team Lunch","options":["Pizza","Sushi"],"is_open":true,
		"vote":{"form_id":"doodle__form__team_lunch","fullname":"Ann","selected_indexes":[1]}}`

	rr := postRender(t, server, body, map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var poll doodlehttp.PollResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &poll); err != nil {
		t.Fatalf("decode poll: %v", err)
	}
	if poll.Message != "vote_saved" {
		t.Fatalf("expected vote_saved, got %q", poll.Message)
	}
	if len(poll.Counts) != 2 || poll.Counts[0] != 0 || poll.Counts[1] != 1 {
		t.Fatalf("unexpected counts %v", poll.Counts)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/v1/doodle/polls/team_lunch/votes?sorted_by=time", nil)
	listRR := httptest.NewRecorder()
	server.mux.ServeHTTP(listRR, listReq)
	if listRR.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", listRR.Code, listRR.Body.String())
	}
	var set doodlehttp.VoteSetResponse
	if err := json.Unmarshal(listRR.Body.Bytes(), &set); err != nil {
		t.Fatalf("decode vote set: %v", err)
	}
	if set.SortedBy != "time" || len(set.Records) != 1 {
		t.Fatalf("unexpected vote set %+v", set)
	}
	if set.Records[0].VoterName != "Ann" || set.Records[0].SourceAddress != "203.0.113.9" {
		t.Fatalf("unexpected record %+v", set.Records[0])
	}
}

func TestResolveClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:4242"
	if got := resolveClientIP(req); got != "192.0.2.1" {
		t.Fatalf("expected remote host, got %q", got)
	}
	req.Header.Set("X-Forwarded-For", " 198.51.100.7 ,10.0.0.1")
	if got := resolveClientIP(req); got != "198.51.100.7" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}
}

func TestSwaggerDocIsServed(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "/v1/doodle/render") {
		t.Fatalf("swagger doc missing render route")
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	server := New(doodlepoll.NewInMemoryModule(nil, nil), nil, ":0", []string{"https://wiki.example.org"})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://wiki.example.org")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://wiki.example.org" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for unknown origin, got %q", got)
	}
}
