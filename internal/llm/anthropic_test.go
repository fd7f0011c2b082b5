// ABOUTME: Tests for the Anthropic provider using a local httptest server
// ABOUTME: Covers request headers, text block concatenation, and API errors

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewAnthropicProviderRequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := NewAnthropicProvider(AnthropicConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestNewAnthropicProviderDefaults(t *testing.T) {
	t.Parallel()

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewAnthropicProvider() error = %v", err)
	}
	if p.model != defaultAnthropicModel {
		t.Errorf("model = %q, want %q", p.model, defaultAnthropicModel)
	}
	if p.maxTokens != defaultMaxTokens {
		t.Errorf("maxTokens = %d, want %d", p.maxTokens, defaultMaxTokens)
	}
}

func TestCompleteConcatenatesTextBlocks(t *testing.T) {
	t.Parallel()

	var gotReq anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q, want %q", r.Header.Get("x-api-key"), "test-key")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("missing anthropic-version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "{\"action\":"},
				{"type": "text", "text": "\"continue\"}"},
			},
		})
	}))
	defer srv.Close()

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewAnthropicProvider() error = %v", err)
	}

	got, err := p.Complete(context.Background(), "is this safe?", "")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != `{"action":"continue"}` {
		t.Errorf("Complete() = %q, want %q", got, `{"action":"continue"}`)
	}
	if gotReq.Model != defaultAnthropicModel {
		t.Errorf("request model = %q, want default %q", gotReq.Model, defaultAnthropicModel)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "is this safe?" {
		t.Errorf("unexpected request messages: %+v", gotReq.Messages)
	}
}

func TestCompleteModelOverride(t *testing.T) {
	t.Parallel()

	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req anthropicRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "ok"}},
		})
	}))
	defer srv.Close()

	p, _ := NewAnthropicProvider(AnthropicConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := p.Complete(context.Background(), "x", "claude-haiku-test"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if gotModel != "claude-haiku-test" {
		t.Errorf("request model = %q, want override", gotModel)
	}
}

func TestCompleteAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "invalid_request_error", "message": "bad model"},
		})
	}))
	defer srv.Close()

	p, _ := NewAnthropicProvider(AnthropicConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Complete(context.Background(), "x", "")
	if err == nil {
		t.Fatal("expected API error")
	}
}
