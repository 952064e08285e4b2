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
	"log/slog"
	"strings"

	"github.com/coffeehaus/brew-rag-server/internal/extract"
	"github.com/coffeehaus/brew-rag-server/internal/intent"
	"github.com/coffeehaus/brew-rag-server/internal/prompt"
	"github.com/coffeehaus/brew-rag-server/internal/retrieval"
	"github.com/coffeehaus/brew-rag-server/internal/safety"
)

// Generator dispatches a rendered prompt to a generation backend.
// The provider registry satisfies this.
type Generator interface {
	Generate(ctx context.Context, providerID, prompt string) (string, error)
}

// Orchestrator runs the full chat pipeline for one query at a time.
// It is stateless and safe for concurrent use.
type Orchestrator struct {
	retriever retrieval.Retriever
	generator Generator
	history   HistorySource
	products  ProductResolver
	topK      int
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithHistorySource replaces the default empty history source.
func WithHistorySource(hs HistorySource) Option {
	return func(o *Orchestrator) {
		o.history = hs
	}
}

// WithProductResolver replaces the default empty product resolver.
func WithProductResolver(pr ProductResolver) Option {
	return func(o *Orchestrator) {
		o.products = pr
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New creates an Orchestrator. topK is the default retrieval depth
// when a request does not specify one.
func New(retriever retrieval.Retriever, generator Generator, topK int, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		retriever: retriever,
		generator: generator,
		history:   EmptyHistorySource{},
		products:  EmptyProductResolver{},
		topK:      topK,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Process runs one query through the pipeline and always produces a
// composed result. Failures in optional stages degrade the result
// instead of aborting it; only a generation failure turns the whole
// query into an error result.
func (o *Orchestrator) Process(ctx context.Context, req Request) *Result {
	query := strings.TrimSpace(req.Query)

	if !safety.IsAllowed(query) {
		o.logger.Warn("query blocked by safety filter")
		return blockedResult()
	}

	in := intent.Classify(query)
	decisions := Decisions{
		UsedHistory:        intent.ShouldUseHistory(query, in),
		UsedProductContext: intent.ShouldResolveProduct(query, in),
	}

	k := req.TopK
	if k <= 0 {
		k = o.topK
	}

	sources, err := o.retriever.Retrieve(ctx, query, k)
	if err != nil {
		// Retrieval failure is non-fatal: answer from the
		// prompt alone.
		o.logger.Warn("retrieval failed, continuing without passages", "error", err)
		sources = nil
	}

	var historyText string
	if decisions.UsedHistory {
		historyText, err = o.history.Context(ctx, req.History)
		if err != nil {
			o.logger.Warn("history context failed, continuing without it", "error", err)
			historyText = ""
		}
	}

	var productText string
	if decisions.UsedProductContext {
		productText, err = o.products.Resolve(ctx, query, req.History)
		if err != nil {
			o.logger.Warn("product resolution failed, continuing without it", "error", err)
			productText = ""
		}
	}

	contextBlock := prompt.AssembleContext(sources, historyText, productText)

	rendered, err := prompt.Render(in, contextBlock, query)
	if err != nil {
		o.logger.Error("prompt rendering failed", "intent", in, "error", err)
		return errorResult(decisions, sources, err)
	}

	text, err := o.generator.Generate(ctx, req.Provider, rendered)
	if err != nil {
		o.logger.Error("generation failed", "intent", in, "provider", req.Provider, "error", err)
		return errorResult(decisions, sources, err)
	}

	result := &Result{
		Text:      text,
		Intent:    in,
		Agent:     AgentLabel(in),
		Sources:   sources,
		Decisions: decisions,
	}

	// Product mentions are only surfaced for sales answers, where
	// the prompt instructs the model to use the structured format.
	if in == intent.Sales {
		result.Products = extract.Products(text)
	}

	o.logger.Info("query processed",
		"intent", in,
		"sources", len(sources),
		"products", len(result.Products))

	return result
}
