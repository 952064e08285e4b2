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
	"github.com/coffeehaus/brew-rag-server/internal/intent"
	"github.com/coffeehaus/brew-rag-server/internal/safety"
)

// ErrorApology is the user-facing text returned when generation fails.
const ErrorApology = "I apologize, but I encountered an error while processing your request."

// agentLabels maps each intent to the persona presented to the user.
var agentLabels = map[intent.Intent]string{
	intent.Sales:   "Sales Specialist",
	intent.Refund:  "Customer Service Agent",
	intent.Support: "Support Agent",
	intent.General: "Coffee Assistant",
	intent.Blocked: "Safety Filter",
	intent.Error:   "Error Handler",
}

// AgentLabel returns the persona label for an intent.
func AgentLabel(in intent.Intent) string {
	if label, ok := agentLabels[in]; ok {
		return label
	}
	return "Assistant"
}

// blockedResult composes the refusal for a query that failed the
// safety filter. The provider is never invoked for these.
func blockedResult() *Result {
	return &Result{
		Text:   safety.RefusalMessage,
		Intent: intent.Blocked,
		Agent:  AgentLabel(intent.Blocked),
	}
}

// errorResult composes the apology for a query whose generation
// failed. The underlying cause is preserved alongside the text.
func errorResult(decisions Decisions, sources []string, cause error) *Result {
	return &Result{
		Text:      ErrorApology,
		Intent:    intent.Error,
		Agent:     AgentLabel(intent.Error),
		Sources:   sources,
		Decisions: decisions,
		Error:     cause.Error(),
	}
}
