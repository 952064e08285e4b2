//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Portions copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package retrieval

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// BM25 parameters. K1 controls term frequency saturation, B controls
// document length normalization.
const (
	defaultK1 = 1.2
	defaultB  = 0.75
)

// stopWords are dropped during tokenization. Menu queries are short and
// conversational, so filler words carry no ranking signal.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "for": true, "from": true,
	"has": true, "he": true, "in": true, "is": true, "it": true,
	"its": true, "of": true, "on": true, "or": true, "that": true,
	"the": true, "to": true, "was": true, "were": true, "will": true,
	"with": true, "this": true, "but": true, "they": true, "have": true,
	"had": true, "what": true, "when": true, "where": true, "who": true,
	"which": true, "why": true, "how": true, "do": true, "does": true,
	"can": true, "could": true, "would": true, "should": true,
	"i": true, "you": true, "we": true, "me": true, "my": true,
	"your": true, "our": true, "please": true, "want": true,
}

// tokenize lowercases text and splits it on non-alphanumeric runes,
// dropping stop words and single-character tokens.
func tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := current.String()
		current.Reset()
		if len(token) < 2 || stopWords[token] {
			return
		}
		tokens = append(tokens, token)
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// termFrequencies counts occurrences of each token in text.
func termFrequencies(tokens []string) map[string]int {
	freqs := make(map[string]int, len(tokens))
	for _, token := range tokens {
		freqs[token]++
	}
	return freqs
}

// lexicalRanker scores candidate passages against a query with BM25
// over the candidate set itself. Corpus statistics come from the
// candidates, which is adequate for re-ranking a bounded pool.
type lexicalRanker struct {
	k1 float64
	b  float64
}

func newLexicalRanker() *lexicalRanker {
	return &lexicalRanker{k1: defaultK1, b: defaultB}
}

// idf is the Lucene variant, which stays non-negative for terms that
// appear in most candidates.
func (lr *lexicalRanker) idf(docCount, docFreq int) float64 {
	if docCount == 0 || docFreq == 0 {
		return 0
	}
	n := float64(docCount)
	df := float64(docFreq)
	return math.Log(1 + (n-df+0.5)/(df+0.5))
}

type scoredPassage struct {
	index int
	score float64
}

// rank orders candidate passages by BM25 relevance to the query and
// returns up to k of them, best first. Candidates that share no terms
// with the query keep their fetch order behind the scored ones.
func (lr *lexicalRanker) rank(query string, candidates []string, k int) []string {
	if len(candidates) == 0 || k <= 0 {
		return nil
	}

	queryTerms := termFrequencies(tokenize(query))

	docTokens := make([][]string, len(candidates))
	docFreqs := make(map[string]int)
	var totalLen int
	for i, candidate := range candidates {
		docTokens[i] = tokenize(candidate)
		totalLen += len(docTokens[i])
		for term := range termFrequencies(docTokens[i]) {
			docFreqs[term]++
		}
	}

	avgDL := float64(totalLen) / float64(len(candidates))
	if avgDL == 0 {
		avgDL = 1
	}

	scored := make([]scoredPassage, len(candidates))
	for i, tokens := range docTokens {
		freqs := termFrequencies(tokens)
		var score float64
		for term := range queryTerms {
			tf := freqs[term]
			df := docFreqs[term]
			if tf == 0 || df == 0 {
				continue
			}
			idf := lr.idf(len(candidates), df)
			lengthNorm := 1 - lr.b + lr.b*(float64(len(tokens))/avgDL)
			tfScore := (float64(tf) * (lr.k1 + 1)) / (float64(tf) + lr.k1*lengthNorm)
			score += idf * tfScore
		}
		scored[i] = scoredPassage{index: i, score: score}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	if k > len(scored) {
		k = len(scored)
	}
	ranked := make([]string, 0, k)
	for _, sp := range scored[:k] {
		ranked = append(ranked, candidates[sp.index])
	}
	return ranked
}
