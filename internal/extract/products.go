//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Portions copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package extract parses structured product mentions out of generated
// text.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Path templates for links derived from a product id.
const (
	buyLinkPrefix   = "/product/"
	imagePathPrefix = "/images/product_"
	imagePathSuffix = ".jpg"
)

// productPattern matches the inline marker format the sales template
// requires: **<name>** (ID: <id>) - $<price>. Name is any run of
// non-asterisk characters, id any run of non-parenthesis characters,
// price digits with an optional decimal point.
var productPattern = regexp.MustCompile(`\*\*([^*]+)\*\*\s*\(ID:\s*([^)]+)\)\s*-\s*\$([0-9.]+)`)

// Product is a catalog item mentioned in generated text. BuyLink and
// ImageURL are derived from the id, never parsed from the text.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	BuyLink  string          `json:"buy_link"`
	ImageURL string          `json:"image_url"`
}

// Products scans generated text for product markers and returns one
// entity per match, in order of appearance.
//
// Extraction is purely textual: output that deviates from the marker
// format yields zero entities, which downstream treats as a degraded
// result rather than a failure. Repeated mentions of the same id are
// not deduplicated; each textual match yields its own entity.
func Products(text string) []Product {
	matches := productPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	products := make([]Product, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		id := strings.TrimSpace(m[2])

		price, err := decimal.NewFromString(strings.TrimSpace(m[3]))
		if err != nil {
			// A malformed price (e.g. "4..5") fails this mention only.
			continue
		}

		products = append(products, Product{
			ID:       id,
			Name:     name,
			Price:    price,
			BuyLink:  buyLinkPrefix + id,
			ImageURL: imagePathPrefix + id + imagePathSuffix,
		})
	}

	return products
}
