package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refs(rs []Record) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Ref)
	}
	return out
}

func sampleRecords() []Record {
	return []Record{
		{Ref: "shoe", Name: "Shoe", Category: "x", PriceCents: 2000, Rating: 4.1},
		{Ref: "shirt", Name: "Shirt", Category: "x", PriceCents: 1500, Rating: 4.8, IsNew: true},
		{Ref: "hat", Name: "Hat", Category: "x", PriceCents: 500, Rating: 3.9},
	}
}

func TestApplySearchBucketSortScenario(t *testing.T) {
	c := Criteria{Search: "sh", Price: PriceUpTo25, Sort: SortPriceLow}
	got := Apply(c, sampleRecords())
	assert.Equal(t, []string{"shirt", "shoe"}, refs(got))
}

func TestApplyIsConjunctive(t *testing.T) {
	records := []Record{
		{Ref: "serum-face", Name: "Glow Serum", Category: "face", PriceCents: 4000},
		{Ref: "serum-body", Name: "Glow Serum", Category: "body", PriceCents: 4000},
		{Ref: "cream-face", Name: "Night Cream", Category: "face", PriceCents: 4000},
		{Ref: "serum-cheap", Name: "Glow Serum Mini", Category: "face", PriceCents: 1200},
	}
	c := Criteria{Search: "serum", Category: "face", Price: Price25To50}
	assert.Equal(t, []string{"serum-face"}, refs(Apply(c, records)))
}

func TestApplySearchIsCaseInsensitiveAndEmptyMatchesAll(t *testing.T) {
	records := sampleRecords()
	assert.Equal(t, []string{"shoe", "shirt"}, refs(Apply(Criteria{Search: "SH"}, records)))
	assert.Equal(t, []string{"shoe", "shirt", "hat"}, refs(Apply(Criteria{}, records)))

	accented := []Record{{Ref: "eclat", Name: "ÉCLAT Serum"}}
	assert.Len(t, Apply(Criteria{Search: "éclat"}, accented), 1)
}

func TestPriceBucketBoundaries(t *testing.T) {
	tests := []struct {
		bucket PriceBucket
		cents  int64
		want   bool
	}{
		{PriceUpTo25, 2500, true},
		{PriceUpTo25, 2501, false},
		{Price25To50, 2500, false},
		{Price25To50, 2501, true},
		{Price25To50, 5000, true},
		{Price50To100, 5000, false},
		{Price50To100, 10000, true},
		{PriceOver100, 10000, false},
		{PriceOver100, 10001, true},
		{PriceAny, 999999, true},
		{PriceBucket("bogus"), 1, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.bucket.Contains(tt.cents), "%q %d", tt.bucket, tt.cents)
	}
}

func TestApplySortKeys(t *testing.T) {
	records := []Record{
		{Ref: "a", Name: "a", PriceCents: 3000, Rating: 4.0},
		{Ref: "b", Name: "b", PriceCents: 1000, Rating: 4.5, IsNew: true},
		{Ref: "c", Name: "c", PriceCents: 2000, Rating: 3.0},
		{Ref: "d", Name: "d", PriceCents: 2000, Rating: 4.5, IsNew: true},
	}
	tests := []struct {
		sort SortKey
		want []string
	}{
		{SortRating, []string{"b", "d", "a", "c"}},
		{SortPriceLow, []string{"b", "c", "d", "a"}},
		{SortPriceHigh, []string{"a", "c", "d", "b"}},
		{SortNew, []string{"b", "d", "a", "c"}},
		{SortNone, []string{"a", "b", "c", "d"}},
		{SortKey("popularity"), []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			assert.Equal(t, tt.want, refs(Apply(Criteria{Sort: tt.sort}, records)))
		})
	}
}

func TestApplySortIsStableOnTies(t *testing.T) {
	records := []Record{
		{Ref: "A", Name: "A", PriceCents: 1000},
		{Ref: "B", Name: "B", PriceCents: 1000},
	}
	assert.Equal(t, []string{"A", "B"}, refs(Apply(Criteria{Sort: SortPriceLow}, records)))
	assert.Equal(t, []string{"A", "B"}, refs(Apply(Criteria{Sort: SortNew}, records)))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	_ = Apply(Criteria{Sort: SortPriceLow}, records)
	assert.Equal(t, []string{"shoe", "shirt", "hat"}, refs(records))
}

func TestEngineApplyFiltersRendersSubsetInOrder(t *testing.T) {
	listing := NewListing()
	e := NewEngine(sampleRecords(), listing)

	form := Form{Search: "sh", Price: "0-25", Sort: "price_low"}
	visible := e.ApplyFilters(form)

	assert.Equal(t, []string{"shirt", "shoe"}, refs(visible))
	assert.Equal(t, []string{"shirt", "shoe"}, listing.Visible())
	assert.True(t, listing.Hidden("hat"))
	assert.False(t, listing.Hidden("shoe"))
}

func TestEngineApplyFiltersIsIdempotent(t *testing.T) {
	listing := NewListing()
	e := NewEngine(sampleRecords(), listing)
	form := Form{Sort: "rating"}

	first := e.ApplyFilters(form)
	firstVisible := listing.Visible()
	second := e.ApplyFilters(form)

	assert.Equal(t, first, second)
	assert.Equal(t, firstVisible, listing.Visible())
	assert.Equal(t, []string{"shirt", "shoe", "hat"}, listing.Visible())
}

func TestEngineApplyFiltersHidesPreviouslyVisible(t *testing.T) {
	listing := NewListing()
	e := NewEngine(sampleRecords(), listing)

	e.ApplyFilters(Form{})
	require.Len(t, listing.Visible(), 3)

	e.ApplyFilters(Form{Search: "hat"})
	assert.Equal(t, []string{"hat"}, listing.Visible())
	assert.True(t, listing.Hidden("shoe"))
	assert.True(t, listing.Hidden("shirt"))
}

type recordingDisplay struct{ calls []string }

func (d *recordingDisplay) Hide(ref string) { d.calls = append(d.calls, "hide:"+ref) }
func (d *recordingDisplay) Show(ref string) { d.calls = append(d.calls, "show:"+ref) }

func TestEngineHidesEverythingBeforeRevealing(t *testing.T) {
	d := &recordingDisplay{}
	NewEngine(sampleRecords(), d).ApplyFilters(Form{Sort: "price_high"})
	assert.Equal(t, []string{
		"hide:shoe", "hide:shirt", "hide:hat",
		"show:shoe", "show:shirt", "show:hat",
	}, d.calls)
}

func TestFormHeaderSearchAndQuery(t *testing.T) {
	f := FormFromQuery(url.Values{"category": {"face"}, "sort": {"new"}})
	f.SubmitHeaderSearch("oil")

	assert.Equal(t, Criteria{Search: "oil", Category: "face", Sort: SortNew}, f.Criteria())
	assert.Equal(t, "category=face&q=oil&sort=new", f.Query().Encode())
}

func TestCategories(t *testing.T) {
	records := []Record{{Category: "face"}, {Category: ""}, {Category: "body"}, {Category: "face"}}
	assert.Equal(t, []string{"face", "body"}, Categories(records))
}
