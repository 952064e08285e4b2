//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{
			name:  "buy keyword",
			query: "I want to buy a latte",
			want:  Sales,
		},
		{
			name:  "recommendation keyword",
			query: "any recommendation for an espresso blend?",
			want:  Sales,
		},
		{
			name:  "price keyword",
			query: "what is the price of a cold brew?",
			want:  Sales,
		},
		{
			name:  "refund keyword",
			query: "I'd like a refund please",
			want:  Refund,
		},
		{
			name:  "money back phrase",
			query: "can I get my money back",
			want:  Refund,
		},
		{
			name:  "help keyword",
			query: "I need help with the app",
			want:  Support,
		},
		{
			name:  "opening hours",
			query: "what are your hours",
			want:  Support,
		},
		{
			name:  "no keyword falls back to general",
			query: "tell me a fun fact about lattes",
			want:  General,
		},
		{
			name:  "empty query",
			query: "",
			want:  General,
		},
		{
			name:  "sales wins over refund on tie",
			query: "I want to buy a replacement",
			want:  Sales,
		},
		{
			name:  "refund wins over support on tie",
			query: "I want a refund, please contact me",
			want:  Refund,
		},
		{
			name:  "case insensitive",
			query: "WHAT IS THE PRICE OF A MOCHA",
			want:  Sales,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.query)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	query := "I want to buy a replacement"
	first := Classify(query)
	for i := 0; i < 10; i++ {
		if got := Classify(query); got != first {
			t.Fatalf("Classify(%q) changed between calls: %q then %q", query, first, got)
		}
	}
}
