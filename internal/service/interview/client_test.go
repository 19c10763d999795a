package interview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(serverURL string, opts ...Option) *Client {
	return NewClient(http.DefaultClient, append([]Option{WithBaseURL(serverURL), WithAPIKey("test-key")}, opts...)...)
}

func TestCompleteSendsChatRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
			t.Errorf("messages = %+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": "hi there"}}},
		})
	}))
	defer srv.Close()

	reply, err := newTestClient(srv.URL, WithModel("test-model")).
		Complete(context.Background(), []Message{{Role: "user", Content: "hello"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("reply = %q", reply)
	}
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, `{}`, ErrRateLimited},
		{"server error", http.StatusBadGateway, `{}`, ErrUpstream},
		{"no choices", http.StatusOK, `{"choices":[]}`, ErrEmptyReply},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, ErrEmptyReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Retry-After", "7")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Complete(context.Background(), []Message{{Role: "user", Content: "x"}})
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var upErr *UpstreamError
			if errors.As(err, &upErr) && upErr.RetryAfter != "7" {
				t.Errorf("RetryAfter = %q", upErr.RetryAfter)
			}
		})
	}
}

func TestCompleteWithoutKey(t *testing.T) {
	c := NewClient(http.DefaultClient)
	if _, err := c.Complete(context.Background(), nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}
