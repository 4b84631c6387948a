package assistant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campustrack/backend/internal/config"
)

func completionBody(content string) []byte {
	b, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return b
}

func TestGenerate(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write(completionBody("hello there"))
	}))
	defer srv.Close()

	client := NewClient(&config.Config{
		AIAPIKey:  "test-key",
		AIAPIURL:  srv.URL,
		AIModel:   "test-model",
		AITimeout: 5 * time.Second,
	})

	reply, err := client.Generate("be helpful", "hi")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "hello there" {
		t.Errorf("reply = %q, want %q", reply, "hello there")
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer key", gotAuth)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q, want test-model", gotReq.Model)
	}
}

func TestGenerateFallback(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionBody("from fallback"))
	}))
	defer fallback.Close()

	client := NewClient(&config.Config{
		AIAPIKey:         "k1",
		AIAPIURL:         primary.URL,
		AIModel:          "m1",
		AIFallbackAPIKey: "k2",
		AIFallbackAPIURL: fallback.URL,
		AIFallbackModel:  "m2",
		AITimeout:        5 * time.Second,
	})

	reply, err := client.Generate("", "hi")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "from fallback" {
		t.Errorf("reply = %q, want fallback response", reply)
	}
}

func TestGenerateNoProviders(t *testing.T) {
	client := NewClient(&config.Config{})
	if client.Available() {
		t.Error("client with no keys should not be available")
	}
	if _, err := client.Generate("", "hi"); err == nil {
		t.Error("expected error with no providers")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\nsome code\n```", "some code"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
