//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package safety rejects disallowed queries before any retrieval or
// generation happens.
package safety

import "strings"

// RefusalMessage is returned verbatim to the user when a query is
// blocked. It never embeds any part of the query.
const RefusalMessage = "I cannot provide information on harmful or dangerous topics."

// bannedTerms blocks queries about violence, self-harm, and weapons.
// A single exact substring hit is sufficient; there is no scoring.
var bannedTerms = []string{
	"kill", "murder", "harm", "die", "bomb", "weapon", "stab", "suicide",
}

// IsAllowed reports whether a query may proceed through the pipeline.
// Matching is case-insensitive substring containment against the fixed
// banned-term table, so the check is deterministic.
func IsAllowed(query string) bool {
	q := strings.ToLower(query)
	for _, term := range bannedTerms {
		if strings.Contains(q, term) {
			return false
		}
	}
	return true
}
