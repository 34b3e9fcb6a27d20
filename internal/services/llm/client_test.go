package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"capsum/internal/prompt"
	"capsum/internal/services"
)

func TestClientCompleteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "demo-model" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages %+v", req.Messages)
		}
		if req.Messages[1].Content != "subtitles" {
			t.Errorf("unexpected user content %q", req.Messages[1].Content)
		}
		payload := map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"role": "assistant", "content": "Summary text"}},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: " test-key\n", BaseURL: server.URL, Model: "demo-model"})
	result, err := client.Complete(context.Background(), prompt.Prompt{SystemInstruction: "sys", UserContent: "subtitles"})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	success, ok := result.(Success)
	if !ok {
		t.Fatalf("expected Success, got %T", result)
	}
	if success.Display() != "Summary text" {
		t.Fatalf("unexpected display %q", success.Display())
	}
}

func TestClientCompleteErrorEnvelopeIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key <redacted>","type":"invalid_request_error","code":401}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad", BaseURL: server.URL})
	result, err := client.Complete(context.Background(), prompt.Prompt{UserContent: "x"})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if _, ok := result.(Failure); !ok {
		t.Fatalf("expected Failure, got %T", result)
	}
	want := "{\n  \"error\": {\n    \"code\": 401,\n    \"message\": \"Incorrect API key <redacted>\",\n    \"type\": \"invalid_request_error\"\n  }\n}"
	if got := result.Display(); got != want {
		t.Fatalf("unexpected display:\n%s\nwant:\n%s", got, want)
	}
}

func TestClientCompleteMissingChoicesIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"b":1,"a":[true,null]}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	result, err := client.Complete(context.Background(), prompt.Prompt{UserContent: "x"})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	want := "{\n  \"a\": [\n    true,\n    null\n  ],\n  \"b\": 1\n}"
	if got := result.Display(); got != want {
		t.Fatalf("unexpected display:\n%s", got)
	}
}

func TestClientCompleteOddShapesAreFailures(t *testing.T) {
	for _, body := range []string{`{"choices":[]}`, `{"choices":"nope"}`, `[1,2]`, `{"choices":[{"message":{}}]}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
		result, err := client.Complete(context.Background(), prompt.Prompt{UserContent: "x"})
		server.Close()
		if err != nil {
			t.Fatalf("body %s: unexpected error %v", body, err)
		}
		if _, ok := result.(Failure); !ok {
			t.Fatalf("body %s: expected Failure, got %T", body, result)
		}
	}
}

func TestClientCompleteEmptyContentIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	result, err := client.Complete(context.Background(), prompt.Prompt{UserContent: "x"})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if s, ok := result.(Success); !ok || s.Text != "" {
		t.Fatalf("expected empty Success, got %#v", result)
	}
}

func TestClientCompleteMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := client.Complete(context.Background(), prompt.Prompt{UserContent: "x"})
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}

func TestClientCompleteRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:0"})
	_, err := client.Complete(context.Background(), prompt.Prompt{UserContent: "x"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestClientCompleteTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL}, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	_, err := client.Complete(context.Background(), prompt.Prompt{UserContent: "x"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestClientSendsOptionalHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("HTTP-Referer") != "https://example.com" || r.Header.Get("X-Title") != "capsum" {
			t.Errorf("missing optional headers: %v", r.Header)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Referer: "https://example.com", Title: "capsum"})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestClientHealthCheckFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad", BaseURL: server.URL, Model: "demo"})
	err := client.HealthCheck(context.Background())
	if err == nil {
		t.Fatal("expected health check to fail")
	}
	if !strings.Contains(err.Error(), "unauthorized") {
		t.Fatalf("expected payload snippet in error, got %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	if client.cfg.BaseURL != defaultBaseURL {
		t.Fatalf("unexpected base url %q", client.cfg.BaseURL)
	}
	if client.Model() != defaultModel {
		t.Fatalf("unexpected model %q", client.Model())
	}
	if client.timeoutDuration() != DefaultHTTPTimeout() {
		t.Fatalf("unexpected timeout %s", client.timeoutDuration())
	}
}
