// Package catalog filters and orders the product listing.
//
// The core is the pure function Apply; Engine adds the render step that
// hides every product card and reveals the matching ones in order.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Record is one product as seen by the listing widget.
type Record struct {
	Ref        string // display element reference (product slug)
	Name       string
	Category   string
	PriceCents int64
	Rating     float64
	IsNew      bool
}

// PriceBucket is the value of the price dropdown.
type PriceBucket string

const (
	PriceAny     PriceBucket = ""
	PriceUpTo25  PriceBucket = "0-25"
	Price25To50  PriceBucket = "25-50"
	Price50To100 PriceBucket = "50-100"
	PriceOver100 PriceBucket = "100+"
)

const dollarInCents int64 = 100

// Contains reports whether a price falls in the bucket. Unknown buckets match
// everything, same as an unset dropdown.
func (b PriceBucket) Contains(cents int64) bool {
	switch b {
	case PriceUpTo25:
		return cents <= 25*dollarInCents
	case Price25To50:
		return cents > 25*dollarInCents && cents <= 50*dollarInCents
	case Price50To100:
		return cents > 50*dollarInCents && cents <= 100*dollarInCents
	case PriceOver100:
		return cents > 100*dollarInCents
	default:
		return true
	}
}

// PriceBuckets lists the selectable buckets in dropdown order.
func PriceBuckets() []PriceBucket {
	return []PriceBucket{PriceUpTo25, Price25To50, Price50To100, PriceOver100}
}

// SortKey is the value of the sort dropdown.
type SortKey string

const (
	SortNone      SortKey = ""
	SortRating    SortKey = "rating"
	SortPriceLow  SortKey = "price_low"
	SortPriceHigh SortKey = "price_high"
	SortNew       SortKey = "new"
)

func SortKeys() []SortKey {
	return []SortKey{SortRating, SortPriceLow, SortPriceHigh, SortNew}
}

// Criteria is recomputed from the widgets on every filter event.
type Criteria struct {
	Search   string      `json:"search"`
	Category string      `json:"category,omitempty"`
	Price    PriceBucket `json:"price,omitempty"`
	Sort     SortKey     `json:"sort,omitempty"`
}

// Casers keep state, so each call gets its own.
func fold(s string) string { return cases.Fold().String(s) }

// Matches is the conjunction of the search, category and price conditions.
func (c Criteria) Matches(r Record) bool {
	return c.matches(fold(c.Search), r)
}

func (c Criteria) matches(foldedSearch string, r Record) bool {
	if foldedSearch != "" && !strings.Contains(fold(r.Name), foldedSearch) {
		return false
	}
	if c.Category != "" && r.Category != c.Category {
		return false
	}
	return c.Price.Contains(r.PriceCents)
}
