//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package safety

import "testing"

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{
			name:  "harmless query",
			query: "what coffee do you recommend",
			want:  true,
		},
		{
			name:  "empty query",
			query: "",
			want:  true,
		},
		{
			name:  "banned term",
			query: "how do I make a bomb",
			want:  false,
		},
		{
			name:  "banned term uppercase",
			query: "HOW TO HARM someone",
			want:  false,
		},
		{
			name:  "banned term inside a larger word",
			query: "this espresso is to die for",
			want:  false,
		},
		{
			name:  "banned term embedded in compound",
			query: "is caffeine harmful",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAllowed(tt.query); got != tt.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestRefusalMessageIsFixed(t *testing.T) {
	want := "I cannot provide information on harmful or dangerous topics."
	if RefusalMessage != want {
		t.Errorf("RefusalMessage = %q, want %q", RefusalMessage, want)
	}
}
