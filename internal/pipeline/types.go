//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package pipeline orchestrates a chat query through safety filtering,
// intent classification, retrieval, prompt routing, and generation.
package pipeline

import (
	"github.com/coffeehaus/brew-rag-server/internal/extract"
	"github.com/coffeehaus/brew-rag-server/internal/intent"
)

// Turn is a single prior message in the conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one chat query to process.
type Request struct {
	Query string `json:"query"`

	// History holds prior turns, oldest first. May be empty.
	History []Turn `json:"history,omitempty"`

	// Provider selects the generation backend. Empty means the
	// configured default.
	Provider string `json:"provider,omitempty"`

	// TopK overrides the configured retrieval depth when positive.
	TopK int `json:"top_k,omitempty"`
}

// Decisions records which optional context stages ran for a query.
type Decisions struct {
	UsedHistory        bool `json:"used_history"`
	UsedProductContext bool `json:"used_product_context"`
}

// Result is the composed outcome of a query.
type Result struct {
	Text      string            `json:"text"`
	Intent    intent.Intent     `json:"intent"`
	Agent     string            `json:"agent"`
	Sources   []string          `json:"sources,omitempty"`
	Products  []extract.Product `json:"products,omitempty"`
	Decisions Decisions         `json:"decisions"`

	// Error carries the underlying failure description when the
	// query ended in the error intent. Text still holds a
	// user-facing apology in that case.
	Error string `json:"error,omitempty"`
}
