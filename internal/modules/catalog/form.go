package catalog

import (
	"net/url"
	"strings"
)

// Form holds the raw values of the filter widgets.
type Form struct {
	Search   string
	Category string
	Price    string
	Sort     string
}

// FormFromQuery reads the widgets from a listing URL (q, category, price, sort).
func FormFromQuery(q url.Values) Form {
	return Form{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Price:    q.Get("price"),
		Sort:     q.Get("sort"),
	}
}

// Criteria implements CriteriaSource. Values are read as-is; unrecognised
// price or sort values behave like unset ones.
func (f Form) Criteria() Criteria {
	return Criteria{
		Search:   f.Search,
		Category: f.Category,
		Price:    PriceBucket(strings.TrimSpace(f.Price)),
		Sort:     SortKey(strings.TrimSpace(f.Sort)),
	}
}

// SubmitHeaderSearch copies the header search box into the main search field.
func (f *Form) SubmitHeaderSearch(text string) {
	f.Search = text
}

// Query encodes the non-empty widgets back into listing URL parameters.
func (f Form) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("q", f.Search)
	set("category", f.Category)
	set("price", f.Price)
	set("sort", f.Sort)
	return q
}
