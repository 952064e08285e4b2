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
	"fmt"
	"strings"

	"github.com/coffeehaus/brew-rag-server/internal/intent"
)

// Render selects the template for the given intent and substitutes the
// assembled context and query into it.
//
// Substitution is literal substring insertion, no escaping: template
// text is trusted static content, and the context/query are handed to a
// generation backend rather than interpreted. Only the four answerable
// intents have templates; anything else is an error.
func Render(in intent.Intent, contextBlock, query string) (string, error) {
	tmpl, ok := templates[in]
	if !ok {
		return "", fmt.Errorf("no prompt template for intent %q", in)
	}

	rendered := strings.ReplaceAll(tmpl, "{context}", contextBlock)
	rendered = strings.ReplaceAll(rendered, "{query}", query)
	return rendered, nil
}
