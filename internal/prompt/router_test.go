//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package prompt

import (
	"strings"
	"testing"

	"github.com/coffeehaus/brew-rag-server/internal/intent"
)

func TestRender(t *testing.T) {
	answerable := []intent.Intent{
		intent.Sales, intent.Refund, intent.Support, intent.General,
	}

	for _, in := range answerable {
		t.Run(string(in), func(t *testing.T) {
			got, err := Render(in, "CONTEXT-BLOCK", "QUERY-TEXT")
			if err != nil {
				t.Fatalf("Render(%q) returned error: %v", in, err)
			}
			if !strings.Contains(got, "CONTEXT-BLOCK") {
				t.Errorf("rendered prompt for %q does not contain context", in)
			}
			if !strings.Contains(got, "QUERY-TEXT") {
				t.Errorf("rendered prompt for %q does not contain query", in)
			}
			if strings.Contains(got, "{context}") || strings.Contains(got, "{query}") {
				t.Errorf("rendered prompt for %q has unreplaced placeholders", in)
			}
		})
	}
}

func TestRenderTemplatesDiffer(t *testing.T) {
	sales, err := Render(intent.Sales, "ctx", "q")
	if err != nil {
		t.Fatal(err)
	}
	general, err := Render(intent.General, "ctx", "q")
	if err != nil {
		t.Fatal(err)
	}
	if sales == general {
		t.Error("sales and general templates rendered identically")
	}
}

func TestRenderUnhandledIntent(t *testing.T) {
	for _, in := range []intent.Intent{intent.Blocked, intent.Error, "unknown"} {
		if _, err := Render(in, "ctx", "q"); err == nil {
			t.Errorf("Render(%q) should fail, no template exists", in)
		}
	}
}
