//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Portions copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package intent classifies user queries and decides what auxiliary
// context the response pipeline should gather for them.
package intent

import "strings"

// Intent is the classified purpose of a user query. It selects the
// behavior profile and prompt template used to answer.
type Intent string

const (
	Sales   Intent = "sales"
	Refund  Intent = "refund"
	Support Intent = "support"
	General Intent = "general"

	// Blocked and Error are terminal pipeline outcomes; the classifier
	// never returns them.
	Blocked Intent = "blocked"
	Error   Intent = "error"
)

// Classify assigns exactly one intent to a query.
//
// The keyword tables are tested in strict priority order: sales, then
// refund, then support. The first table with any substring match wins,
// so a query containing both a sales and a refund keyword classifies as
// sales. Queries matching nothing default to General.
//
// Classification is pure: the same query always yields the same intent.
func Classify(query string) Intent {
	q := strings.ToLower(query)

	if containsAny(q, salesKeywords) {
		return Sales
	}
	if containsAny(q, refundKeywords) {
		return Refund
	}
	if containsAny(q, supportKeywords) {
		return Support
	}
	return General
}

// containsAny reports whether text contains any of the given substrings.
// Matching is plain substring containment; callers lower-case first.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
