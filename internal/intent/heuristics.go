//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Portions copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package intent

import "strings"

// shortQueryTokens is the token count at or below which a query is
// assumed to lean on earlier conversation for its meaning.
const shortQueryTokens = 3

// ShouldUseHistory decides whether conversation history should be
// resolved and included in the generation context.
//
// True when the query is short (<= shortQueryTokens whitespace tokens),
// contains a continuation keyword, or the intent is Refund (refund
// queries are almost always follow-ups to an earlier exchange).
//
// The predicate is advisory: it is evaluated for every query and
// surfaced in the result even when the history source returns nothing.
func ShouldUseHistory(query string, in Intent) bool {
	if len(strings.Fields(query)) <= shortQueryTokens {
		return true
	}

	q := strings.ToLower(query)
	if containsAny(q, historyKeywords) {
		return true
	}

	return in == Refund
}

// ShouldResolveProduct decides whether a prior-product reference should
// be resolved and included in the generation context.
//
// Sales queries trigger on either deictic or possessive-order phrases;
// refund queries trigger on possessive-order phrases only. Deictic and
// comparison words trigger regardless of intent.
//
// Like ShouldUseHistory this is an advisory flag, not a hard gate.
func ShouldResolveProduct(query string, in Intent) bool {
	q := strings.ToLower(query)

	if in == Sales {
		if containsAny(q, productContextKeywords) || containsAny(q, productReferenceKeywords) {
			return true
		}
	}

	if in == Refund && containsAny(q, productReferenceKeywords) {
		return true
	}

	return containsAny(q, productContextKeywords)
}
