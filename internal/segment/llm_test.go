package segment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"internship-journey-agent/internal/model"
	"internship-journey-agent/pkg/gemini"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, args ...any) {}
func (nopLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Info(ctx context.Context, args ...any) {}
func (nopLogger) Infof(ctx context.Context, format string, args ...any) {}
func (nopLogger) Warn(ctx context.Context, args ...any) {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Error(ctx context.Context, args ...any) {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...any) {}
func (nopLogger) DPanic(ctx context.Context, args ...any) {}
func (nopLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Panic(ctx context.Context, args ...any) {}
func (nopLogger) Panicf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Fatal(ctx context.Context, args ...any) {}
func (nopLogger) Fatalf(ctx context.Context, format string, args ...any) {}

// fakeGemini returns a server that always answers with the given text as
// the single candidate part.
func fakeGemini(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := gemini.GenerateResponse{
			Candidates: []gemini.Candidate{
				{Content: gemini.Content{Parts: []gemini.Part{{Text: text}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestExtractor(serverURL string) *LLMExtractor {
	client := gemini.NewClient("test-key")
	client.SetAPIURL(serverURL)
	return NewLLMExtractor(client, nopLogger{})
}

func TestLLMExtract(t *testing.T) {
	payload := `[
		{"raw_span": "completed the user authentication module", "workstream": "Platform", "task": "user authentication module", "subtask": "", "temporal_cue": "past", "effort_hint": "", "date_hint": "yesterday"},
		{"raw_span": "started database integration", "workstream": "", "task": "database integration", "subtask": "", "temporal_cue": "present_continuous", "effort_hint": "all day", "date_hint": ""}
	]`
	server := fakeGemini(t, payload)
	defer server.Close()

	mentions, err := newTestExtractor(server.URL).Extract(context.Background(),
		"Today I completed the user authentication module and started database integration")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(mentions) != 2 {
		t.Fatalf("expected 2 mentions, got %d", len(mentions))
	}
	if mentions[0].TemporalCue != model.CuePast || mentions[0].CandidateWorkstream != "Platform" {
		t.Errorf("unexpected first mention: %+v", mentions[0])
	}
	if mentions[1].EffortHint != "all day" {
		t.Errorf("effort hint = %q, want all day", mentions[1].EffortHint)
	}
	if mentions[0].DateHint != "yesterday" || mentions[1].DateHint != "" {
		t.Errorf("date hints = %q, %q", mentions[0].DateHint, mentions[1].DateHint)
	}
}

func TestLLMExtract_FencedJSON(t *testing.T) {
	payload := "Here is the result:\n```json\n[{\"raw_span\": \"fixed the build\", \"task\": \"build fix\", \"temporal_cue\": \"past\"}]\n```"
	server := fakeGemini(t, payload)
	defer server.Close()

	mentions, err := newTestExtractor(server.URL).Extract(context.Background(), "fixed the build")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(mentions) != 1 || mentions[0].CandidateTask != "build fix" {
		t.Fatalf("unexpected mentions: %+v", mentions)
	}
}

func TestLLMExtract_SkipsTasklessCandidates(t *testing.T) {
	payload := `[
		{"raw_span": "hello team", "task": "", "temporal_cue": "unknown"},
		{"raw_span": "shipped the importer", "task": "importer", "temporal_cue": "past"}
	]`
	server := fakeGemini(t, payload)
	defer server.Close()

	mentions, err := newTestExtractor(server.URL).Extract(context.Background(), "hello team, shipped the importer")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(mentions) != 1 {
		t.Fatalf("expected the taskless candidate to be dropped, got %d", len(mentions))
	}
}

func TestLLMExtract_UnknownCueNormalized(t *testing.T) {
	payload := `[{"raw_span": "x", "task": "x", "temporal_cue": "past_perfect_subjunctive"}]`
	server := fakeGemini(t, payload)
	defer server.Close()

	mentions, err := newTestExtractor(server.URL).Extract(context.Background(), "x")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if mentions[0].TemporalCue != model.CueUnknown {
		t.Errorf("cue = %q, want unknown", mentions[0].TemporalCue)
	}
}

func TestLLMExtract_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestExtractor(server.URL).Extract(context.Background(), "completed the thing")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestLLMExtract_BadJSONIsUnavailable(t *testing.T) {
	server := fakeGemini(t, "I could not parse that update, sorry!")
	defer server.Close()

	_, err := newTestExtractor(server.URL).Extract(context.Background(), "completed the thing")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestSanitizeJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `[{"a":1}]`, `[{"a":1}]`},
		{"fenced", "```json\n[1,2]\n```", "[1,2]"},
		{"prose around", "Sure thing: [1,2] hope that helps", "[1,2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeJSONResponse(tt.in); got != tt.want {
				t.Errorf("sanitizeJSONResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
