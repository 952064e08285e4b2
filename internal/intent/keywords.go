//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Portions copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package intent

// Keyword tables used by classification and the context heuristics.
// These are data, not logic: classifiers and heuristics iterate them in
// order and never special-case individual entries, so the tables can be
// extended or localized without touching control flow.

// salesKeywords mark queries about buying, pricing, and the catalog.
// Sales has the highest classification priority.
var salesKeywords = []string{
	"buy", "purchase", "price", "cost", "order", "product", "coffee", "beans",
	"available", "stock", "catalog", "shop", "store", "wholesale", "retail",
	"discount", "offer", "promo", "new", "recommendation", "suggest",
}

// refundKeywords mark queries about returns, exchanges, and complaints.
var refundKeywords = []string{
	"refund", "return", "exchange", "cancel", "money back", "replacement",
	"damaged", "defective", "wrong", "mistake", "complaint", "issue",
}

// supportKeywords mark general assistance queries.
var supportKeywords = []string{
	"help", "support", "contact", "hours", "location", "store", "delivery",
	"shipping", "payment", "account", "login", "register",
}

// historyKeywords suggest the query continues an earlier conversation.
var historyKeywords = []string{
	"continue", "also", "and", "what about", "how about",
	"yes", "no", "okay", "sure", "thanks", "thank you",
	"previous", "earlier", "before", "last time",
	"again", "still", "more", "else", "other",
}

// productContextKeywords are deictic or comparison words that point at a
// product without naming it.
var productContextKeywords = []string{
	"this", "that", "it", "the one", "same", "different", "another",
	"previous", "last", "earlier", "mentioned", "discussed",
	"compare", "vs", "versus", "difference between",
	"similar", "like that", "alternative",
}

// productReferenceKeywords are possessive or order-bound phrases that
// reference a specific prior purchase or mention.
var productReferenceKeywords = []string{
	"this product", "that coffee", "the beans", "same order",
	"my order", "my coffee", "my purchase", "what i bought",
}
