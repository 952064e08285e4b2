//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Portions copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package prompt assembles generation context and renders per-intent
// prompt templates.
package prompt

import "strings"

// Section headers in the assembled context block.
const (
	retrievedHeader = "Retrieved Information:"
	historyHeader   = "Previous Conversation:"
	productHeader   = "Product Information:"
)

// AssembleContext merges retrieved passages, optional history text, and
// optional product text into one context block.
//
// Section order is fixed: retrieved, history, product. Retrieval
// evidence comes first so it dominates model attention over
// conversational filler. Sections with empty content are omitted
// entirely rather than emitted with a bare header.
func AssembleContext(passages []string, historyText, productText string) string {
	var parts []string

	if len(passages) > 0 {
		parts = append(parts, retrievedHeader)
		parts = append(parts, passages...)
	}

	if historyText != "" {
		parts = append(parts, "\n"+historyHeader, historyText)
	}

	if productText != "" {
		parts = append(parts, "\n"+productHeader, productText)
	}

	return strings.Join(parts, "\n")
}
