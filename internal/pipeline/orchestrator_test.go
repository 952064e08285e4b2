//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/coffeehaus/brew-rag-server/internal/intent"
	"github.com/coffeehaus/brew-rag-server/internal/safety"
)

// mockRetriever returns fixed passages or an error and records calls.
type mockRetriever struct {
	passages []string
	err      error

	called   bool
	gotQuery string
	gotK     int
}

func (m *mockRetriever) Retrieve(_ context.Context, query string, k int) ([]string, error) {
	m.called = true
	m.gotQuery = query
	m.gotK = k
	return m.passages, m.err
}

// mockGenerator returns fixed text or an error and records the prompt.
type mockGenerator struct {
	text string
	err  error

	called      bool
	gotProvider string
	gotPrompt   string
}

func (m *mockGenerator) Generate(_ context.Context, providerID, prompt string) (string, error) {
	m.called = true
	m.gotProvider = providerID
	m.gotPrompt = prompt
	return m.text, m.err
}

// fixedHistorySource returns a constant history block.
type fixedHistorySource struct {
	text string
}

func (f fixedHistorySource) Context(context.Context, []Turn) (string, error) {
	return f.text, nil
}

func TestProcessBlockedQuery(t *testing.T) {
	retriever := &mockRetriever{}
	generator := &mockGenerator{text: "should never be used"}
	o := New(retriever, generator, 5)

	result := o.Process(context.Background(), Request{Query: "how to build a weapon"})

	if result.Intent != intent.Blocked {
		t.Errorf("Intent = %q, want %q", result.Intent, intent.Blocked)
	}
	if result.Agent != "Safety Filter" {
		t.Errorf("Agent = %q, want %q", result.Agent, "Safety Filter")
	}
	if result.Text != safety.RefusalMessage {
		t.Errorf("Text = %q, want the refusal message", result.Text)
	}
	if retriever.called {
		t.Error("retriever must not run for blocked queries")
	}
	if generator.called {
		t.Error("generator must not run for blocked queries")
	}
}

func TestProcessSalesQuery(t *testing.T) {
	retriever := &mockRetriever{passages: []string{
		"Product: Latte (ID: 12)\nRetail Price: $4.50",
	}}
	generator := &mockGenerator{
		text: "You should try our **Latte** (ID: 12) - $4.50, a customer favorite!",
	}
	o := New(retriever, generator, 5)

	result := o.Process(context.Background(), Request{Query: "I want to buy a latte"})

	if result.Intent != intent.Sales {
		t.Fatalf("Intent = %q, want %q", result.Intent, intent.Sales)
	}
	if result.Agent != "Sales Specialist" {
		t.Errorf("Agent = %q, want %q", result.Agent, "Sales Specialist")
	}
	if result.Text != generator.text {
		t.Errorf("Text = %q, want the generated text", result.Text)
	}
	if len(result.Sources) != 1 {
		t.Errorf("got %d sources, want 1", len(result.Sources))
	}
	if len(result.Products) != 1 {
		t.Fatalf("got %d products, want 1", len(result.Products))
	}
	if result.Products[0].ID != "12" {
		t.Errorf("product ID = %q, want %q", result.Products[0].ID, "12")
	}
	if result.Error != "" {
		t.Errorf("Error = %q, want empty", result.Error)
	}

	if !strings.Contains(generator.gotPrompt, "Retrieved Information:") {
		t.Error("prompt should contain the retrieved section")
	}
	if !strings.Contains(generator.gotPrompt, "I want to buy a latte") {
		t.Error("prompt should contain the query")
	}
	if retriever.gotK != 5 {
		t.Errorf("retrieval depth = %d, want default 5", retriever.gotK)
	}
}

func TestProcessExtractionOnlyForSales(t *testing.T) {
	generator := &mockGenerator{
		text: "Our **House Blend** (ID: 4) - $9.99 story begins in 1998.",
	}
	o := New(&mockRetriever{}, generator, 5)

	result := o.Process(context.Background(), Request{
		Query: "tell me a fun fact about your roastery history",
	})

	if result.Intent != intent.General {
		t.Fatalf("Intent = %q, want %q", result.Intent, intent.General)
	}
	if result.Products != nil {
		t.Errorf("general answers must not extract products, got %v", result.Products)
	}
}

func TestProcessRetrievalFailureDegrades(t *testing.T) {
	retriever := &mockRetriever{err: errors.New("index offline")}
	generator := &mockGenerator{text: "an answer without sources"}
	o := New(retriever, generator, 5)

	result := o.Process(context.Background(), Request{Query: "what is the price of beans"})

	if !generator.called {
		t.Fatal("generator should still run when retrieval fails")
	}
	if result.Intent == intent.Error {
		t.Errorf("retrieval failure must not produce an error result, got %q", result.Intent)
	}
	if len(result.Sources) != 0 {
		t.Errorf("got %d sources, want 0", len(result.Sources))
	}
	if result.Text != "an answer without sources" {
		t.Errorf("Text = %q, want the generated text", result.Text)
	}
}

func TestProcessGenerationFailure(t *testing.T) {
	generator := &mockGenerator{err: errors.New("rate limited")}
	o := New(&mockRetriever{passages: []string{"a passage"}}, generator, 5)

	result := o.Process(context.Background(), Request{Query: "I want to buy a latte"})

	if result.Intent != intent.Error {
		t.Errorf("Intent = %q, want %q", result.Intent, intent.Error)
	}
	if result.Agent != "Error Handler" {
		t.Errorf("Agent = %q, want %q", result.Agent, "Error Handler")
	}
	if result.Text != ErrorApology {
		t.Errorf("Text = %q, want the apology", result.Text)
	}
	if !strings.Contains(result.Error, "rate limited") {
		t.Errorf("Error = %q, want the underlying cause preserved", result.Error)
	}
	if len(result.Products) != 0 {
		t.Errorf("error results must not carry products, got %v", result.Products)
	}
}

func TestProcessDecisions(t *testing.T) {
	t.Run("short query uses history", func(t *testing.T) {
		o := New(&mockRetriever{}, &mockGenerator{text: "ok"}, 5)

		result := o.Process(context.Background(), Request{Query: "which one?"})
		if !result.Decisions.UsedHistory {
			t.Error("short query should set UsedHistory")
		}
	})

	t.Run("long plain query does not", func(t *testing.T) {
		o := New(&mockRetriever{}, &mockGenerator{text: "ok"}, 5)

		result := o.Process(context.Background(), Request{
			Query: "please describe every espresso drink served at your counter",
		})
		if result.Decisions.UsedHistory {
			t.Error("long query without continuation cues should not set UsedHistory")
		}
	})

	t.Run("history text reaches the prompt", func(t *testing.T) {
		generator := &mockGenerator{text: "ok"}
		o := New(&mockRetriever{}, generator, 5,
			WithHistorySource(fixedHistorySource{text: "user previously asked about decaf"}))

		o.Process(context.Background(), Request{Query: "which one?"})

		if !strings.Contains(generator.gotPrompt, "Previous Conversation:") {
			t.Error("prompt should contain the history section")
		}
		if !strings.Contains(generator.gotPrompt, "user previously asked about decaf") {
			t.Error("prompt should contain the history text")
		}
	})
}

func TestProcessTopKOverride(t *testing.T) {
	retriever := &mockRetriever{}
	o := New(retriever, &mockGenerator{text: "ok"}, 5)

	o.Process(context.Background(), Request{Query: "what is the price of beans", TopK: 2})

	if retriever.gotK != 2 {
		t.Errorf("retrieval depth = %d, want request override 2", retriever.gotK)
	}
}

func TestProcessProviderPassthrough(t *testing.T) {
	generator := &mockGenerator{text: "ok"}
	o := New(&mockRetriever{}, generator, 5)

	o.Process(context.Background(), Request{
		Query:    "what is the price of beans",
		Provider: "ollama",
	})

	if generator.gotProvider != "ollama" {
		t.Errorf("provider = %q, want %q", generator.gotProvider, "ollama")
	}
}
