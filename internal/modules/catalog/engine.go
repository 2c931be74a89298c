package catalog

import (
	"cmp"
	"slices"
)

// Apply returns the records matching c, ordered by c.Sort. Ties keep their
// input order. The input slice is not modified.
func Apply(c Criteria, records []Record) []Record {
	search := fold(c.Search)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.matches(search, r) {
			out = append(out, r)
		}
	}
	if less := comparator(c.Sort); less != nil {
		slices.SortStableFunc(out, less)
	}
	return out
}

func comparator(k SortKey) func(a, b Record) int {
	switch k {
	case SortRating:
		return func(a, b Record) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortPriceLow:
		return func(a, b Record) int { return cmp.Compare(a.PriceCents, b.PriceCents) }
	case SortPriceHigh:
		return func(a, b Record) int { return cmp.Compare(b.PriceCents, a.PriceCents) }
	case SortNew:
		return func(a, b Record) int { return cmp.Compare(newFlag(b), newFlag(a)) }
	default:
		return nil
	}
}

func newFlag(r Record) int {
	if r.IsNew {
		return 1
	}
	return 0
}

// CriteriaSource supplies the current widget state.
type CriteriaSource interface {
	Criteria() Criteria
}

// Display shows or hides the element of one record.
type Display interface {
	Hide(ref string)
	Show(ref string)
}

// Engine binds a fixed record list to a display.
type Engine struct {
	records []Record
	display Display
}

func NewEngine(records []Record, display Display) *Engine {
	return &Engine{records: slices.Clone(records), display: display}
}

// ApplyFilters reads the criteria, hides every element, then reveals the
// matching ones in sorted order. Calling it twice with the same criteria
// leaves the display unchanged.
func (e *Engine) ApplyFilters(src CriteriaSource) []Record {
	visible := Apply(src.Criteria(), e.records)
	for _, r := range e.records {
		e.display.Hide(r.Ref)
	}
	for _, r := range visible {
		e.display.Show(r.Ref)
	}
	return visible
}

// Records returns the bound records in document order.
func (e *Engine) Records() []Record { return slices.Clone(e.records) }

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0)
	for _, r := range records {
		if r.Category == "" {
			continue
		}
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}
