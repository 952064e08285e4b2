//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coffeehaus/brew-rag-server/internal/llm"
)

func TestComplete(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"content": "a latte answer"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14}
		}`))
	}))
	defer srv.Close()

	p := NewCompletionProvider("test-key",
		WithCompletionClient(NewClient("test-key", WithBaseURL(srv.URL))))

	resp, err := p.Complete(context.Background(), llm.CompletionRequest{
		Prompt:      "recommend a drink",
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}

	if resp.Content != "a latte answer" {
		t.Errorf("Content = %q, want %q", resp.Content, "a latte answer")
	}
	if resp.FinishReason != "stop" {
		t.Errorf("FinishReason = %q, want %q", resp.FinishReason, "stop")
	}
	if resp.Usage.TotalTokens != 14 {
		t.Errorf("TotalTokens = %d, want 14", resp.Usage.TotalTokens)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer key", gotAuth)
	}
	if gotReq.Model != defaultChatModel {
		t.Errorf("model = %q, want %q", gotReq.Model, defaultChatModel)
	}
	if gotReq.MaxTokens != 1000 {
		t.Errorf("max_tokens = %d, want 1000", gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("messages = %+v, want one user message", gotReq.Messages)
	}
	if gotReq.Messages[0].Content != "recommend a drink" {
		t.Errorf("prompt = %q, want %q", gotReq.Messages[0].Content, "recommend a drink")
	}
}

func TestCompleteAPIError(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCode  string
		retryable bool
	}{
		{"unauthorized", http.StatusUnauthorized, llm.ErrCodeInvalidKey, false},
		{"rate limited", http.StatusTooManyRequests, llm.ErrCodeRateLimit, true},
		{"server error", http.StatusInternalServerError, llm.ErrCodeModelError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error": {"message": "nope"}}`))
			}))
			defer srv.Close()

			p := NewCompletionProvider("test-key",
				WithCompletionClient(NewClient("test-key", WithBaseURL(srv.URL))))

			_, err := p.Complete(context.Background(), llm.CompletionRequest{Prompt: "hi"})

			var provErr *llm.Error
			if !errors.As(err, &provErr) {
				t.Fatalf("err = %v, want *llm.Error", err)
			}
			if provErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", provErr.Code, tt.wantCode)
			}
			if provErr.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", provErr.Retryable, tt.retryable)
			}
			if provErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", provErr.StatusCode, tt.status)
			}
		})
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	p := NewCompletionProvider("test-key",
		WithCompletionClient(NewClient("test-key", WithBaseURL(srv.URL))))

	_, err := p.Complete(context.Background(), llm.CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}
