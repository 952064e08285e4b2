//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package retrieval fetches knowledge passages for a query and ranks
// them lexically.
package retrieval

import (
	"context"
	"fmt"
)

// Retriever returns up to k passages relevant to the query, best first.
// An empty result is a valid outcome, not an error.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// CandidateSource supplies a bounded pool of candidate passages for a
// query. The catalog store implements this over Postgres full-text
// search.
type CandidateSource interface {
	Candidates(ctx context.Context, query string, limit int) ([]string, error)
}

// CatalogRetriever retrieves menu knowledge in two stages: a broad
// candidate fetch from the database, then a BM25 re-rank of the pool
// against the query.
type CatalogRetriever struct {
	source         CandidateSource
	ranker         *lexicalRanker
	candidateLimit int
}

// NewCatalogRetriever creates a retriever over the given source.
// candidateLimit caps the size of the re-ranking pool.
func NewCatalogRetriever(source CandidateSource, candidateLimit int) *CatalogRetriever {
	return &CatalogRetriever{
		source:         source,
		ranker:         newLexicalRanker(),
		candidateLimit: candidateLimit,
	}
}

// Retrieve implements Retriever.
func (r *CatalogRetriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}

	candidates, err := r.source.Candidates(ctx, query, r.candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	return r.ranker.rank(query, candidates, k), nil
}

var _ Retriever = (*CatalogRetriever)(nil)
