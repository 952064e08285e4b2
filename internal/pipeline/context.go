//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import "context"

// HistorySource summarizes prior conversation turns into a context
// block for the prompt.
type HistorySource interface {
	Context(ctx context.Context, history []Turn) (string, error)
}

// ProductResolver resolves product references in a query ("that one",
// "the second option") into a product context block.
type ProductResolver interface {
	Resolve(ctx context.Context, query string, history []Turn) (string, error)
}

// EmptyHistorySource always contributes no history context. This is
// the default until a summarization strategy lands.
type EmptyHistorySource struct{}

func (EmptyHistorySource) Context(context.Context, []Turn) (string, error) {
	return "", nil
}

// EmptyProductResolver always contributes no product context.
type EmptyProductResolver struct{}

func (EmptyProductResolver) Resolve(context.Context, string, []Turn) (string, error) {
	return "", nil
}

var (
	_ HistorySource   = EmptyHistorySource{}
	_ ProductResolver = EmptyProductResolver{}
)
