//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coffeehaus/brew-rag-server/internal/llm"
)

func TestComplete(t *testing.T) {
	var gotReq generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": "a local answer",
			"done": true,
			"done_reason": "stop",
			"prompt_eval_count": 12,
			"eval_count": 5
		}`))
	}))
	defer srv.Close()

	p := NewCompletionProvider(
		WithCompletionClient(NewClient(WithBaseURL(srv.URL))))

	resp, err := p.Complete(context.Background(), llm.CompletionRequest{
		Prompt:      "recommend a drink",
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}

	if resp.Content != "a local answer" {
		t.Errorf("Content = %q, want %q", resp.Content, "a local answer")
	}
	if resp.Usage.TotalTokens != 17 {
		t.Errorf("TotalTokens = %d, want 17", resp.Usage.TotalTokens)
	}

	if gotReq.Stream {
		t.Error("stream must be disabled")
	}
	if gotReq.Prompt != "recommend a drink" {
		t.Errorf("prompt = %q, want %q", gotReq.Prompt, "recommend a drink")
	}
	if gotReq.Options == nil || gotReq.Options.NumPredict != 1000 {
		t.Errorf("options = %+v, want num_predict 1000", gotReq.Options)
	}
}

func TestCompleteSerializesRequests(t *testing.T) {
	var inFlight, maxInFlight int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			max := atomic.LoadInt32(&maxInFlight)
			if n <= max || atomic.CompareAndSwapInt32(&maxInFlight, max, n) {
				break
			}
		}
		atomic.AddInt32(&inFlight, -1)

		_, _ = w.Write([]byte(`{"response": "ok", "done": true}`))
	}))
	defer srv.Close()

	p := NewCompletionProvider(
		WithCompletionClient(NewClient(WithBaseURL(srv.URL))))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = p.Complete(context.Background(), llm.CompletionRequest{Prompt: "hi"})
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&maxInFlight); got > 1 {
		t.Errorf("observed %d concurrent inferences, want at most 1", got)
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models": []}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestCompletePreservesDeadlineCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{"response": "too late", "done": true}`))
	}))
	defer srv.Close()

	p := NewCompletionProvider(WithCompletionClient(NewClient(WithBaseURL(srv.URL))))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Complete(ctx, llm.CompletionRequest{Prompt: "hello"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !llm.IsProviderError(err) {
		t.Errorf("err = %v, want a provider error", err)
	}
	// The transport classification must not hide the deadline from
	// callers that inspect the cause.
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want to match context.DeadlineExceeded", err)
	}
}

func TestPingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	if err := c.Ping(context.Background()); err == nil {
		t.Error("Ping() should fail when the backend is down")
	}
}
