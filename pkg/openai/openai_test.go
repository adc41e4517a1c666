package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"content-review-tutor/pkg/openai"
)

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, body map[string]any)) (*httptest.Server, openai.IOpenAI) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"bad key"}}`))
			return
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		handler(w, body)
	}))
	t.Cleanup(ts.Close)

	client, err := openai.New(openai.Config{APIKey: "test-key", BaseURL: ts.URL + "/", Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return ts, client
}

func TestGenerateContent_Success(t *testing.T) {
	var got map[string]any
	_, client := newTestServer(t, func(w http.ResponseWriter, body map[string]any) {
		got = body
		w.Write([]byte(`{
			"model": "gpt-4o-2024",
			"choices": [{"message": {"role": "assistant", "content": "Question 1: ..."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	})

	resp, err := client.GenerateContent(context.Background(), &openai.Request{
		Messages: []openai.Message{
			{Role: "system", Content: "S"},
			{Role: "user", Content: "Quiz me"},
		},
		Temperature: 0.3,
		MaxTokens:   4000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "Question 1: ..." || resp.Usage.TotalTokens != 15 {
		t.Errorf("unexpected response: %+v", resp)
	}

	if got["model"] != "gpt-4o" || got["temperature"] != 0.3 || got["max_tokens"] != float64(4000) {
		t.Errorf("unexpected request body: %v", got)
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %v", got["messages"])
	}
	first, _ := msgs[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "S" {
		t.Errorf("message order not preserved: %v", msgs)
	}
}

func TestGenerateContent_ModelOverride(t *testing.T) {
	var model any
	_, client := newTestServer(t, func(w http.ResponseWriter, body map[string]any) {
		model = body["model"]
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "ok"}}]}`))
	})

	if _, err := client.GenerateContent(context.Background(), &openai.Request{Model: "gpt-4o-mini"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model != "gpt-4o-mini" {
		t.Errorf("expected override model, got %v", model)
	}
}

func TestGenerateContent_Errors(t *testing.T) {
	t.Run("api error carries status and message", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, body map[string]any) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
		})

		_, err := client.GenerateContent(context.Background(), &openai.Request{})
		var apiErr *openai.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusTooManyRequests || apiErr.Message != "slow down" {
			t.Errorf("unexpected api error: %+v", apiErr)
		}
	})

	t.Run("empty completion", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, body map[string]any) {
			w.Write([]byte(`{"choices": []}`))
		})

		_, err := client.GenerateContent(context.Background(), &openai.Request{})
		if !errors.Is(err, openai.ErrEmptyCompletion) {
			t.Fatalf("expected ErrEmptyCompletion, got %v", err)
		}
	})

	t.Run("transport error", func(t *testing.T) {
		ts, client := newTestServer(t, func(w http.ResponseWriter, body map[string]any) {})
		ts.Close()

		_, err := client.GenerateContent(context.Background(), &openai.Request{})
		var apiErr *openai.APIError
		if err == nil || errors.As(err, &apiErr) {
			t.Fatalf("expected transport error, got %v", err)
		}
	})
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := openai.New(openai.Config{}); err == nil {
		t.Fatal("expected error without api key")
	}
}
