package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

var catalog = []Candidate{
	{Name: "Smartphone X", Description: "flagship", CategoryName: "Electronics", CategoryID: 1, Price: 450, Ratings: []int{5, 4}},
	{Name: "Desk Lamp", Description: "LED lamp with phone charger", CategoryName: "Home", CategoryID: 2, Price: 80, Ratings: []int{2, 5}},
	{Name: "Headset", Description: "wired", CategoryName: "Phones & Audio", CategoryID: 3, Price: 120, Ratings: []int{3, 4}},
	{Name: "Chair", Description: "oak", CategoryName: "Home", CategoryID: 2, Price: 600},
}

func TestBuild_EmptyQueryMatchesEverything(t *testing.T) {
	p := Build(ProductQuery{})

	assert.True(t, p.Empty())
	for _, c := range catalog {
		assert.True(t, p.Matches(c), c.Name)
	}
}

func TestBuild_OmitsInvalidClauses(t *testing.T) {
	p := Build(ProductQuery{
		SearchTerm: "   ",
		Ratings:    "x|0|9",
		MinPrice:   "cheap",
		MaxPrice:   "",
		CategoryID: "abc",
	})

	assert.Empty(t, p)
}

func TestBuild_SearchTerm(t *testing.T) {
	p := Build(ProductQuery{SearchTerm: "PHONE"})
	require.Len(t, p, 1)

	c, ok := p.Clause(KindSearchTerm)
	require.True(t, ok)
	assert.Equal(t, "PHONE", c.Term)

	// name, description and category name all count
	assert.True(t, p.Matches(catalog[0]))
	assert.True(t, p.Matches(catalog[1]))
	assert.True(t, p.Matches(catalog[2]))
	assert.False(t, p.Matches(catalog[3]))
}

func TestBuild_RatingIsExistential(t *testing.T) {
	p := Build(ProductQuery{Ratings: "1|2"})
	c, ok := p.Clause(KindRating)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, c.Ratings)

	assert.True(t, p.Matches(Candidate{Ratings: []int{2, 5}}))
	assert.False(t, p.Matches(Candidate{Ratings: []int{3, 4}}))
	assert.False(t, p.Matches(Candidate{}))
}

func TestParseRatings(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, ParseRatings("3|1|2|3"))
	assert.Equal(t, []int{4}, ParseRatings(" 4 |abc|6|"))
	assert.Empty(t, ParseRatings(""))
}

func TestBuild_PriceRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		wantMin  *float64
		wantMax  *float64
	}{
		{name: "min only", min: "100", wantMin: ptr(100)},
		{name: "max only", max: "500", wantMax: ptr(500)},
		{name: "both", min: "100", max: "500", wantMin: ptr(100), wantMax: ptr(500)},
		{name: "invalid min keeps max", min: "abc", max: "500", wantMax: ptr(500)},
		{name: "zero is a valid bound", min: "0", wantMin: ptr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(ProductQuery{MinPrice: tt.min, MaxPrice: tt.max})
			c, ok := p.Clause(KindPriceRange)
			require.True(t, ok)
			assert.Equal(t, tt.wantMin, c.Min)
			assert.Equal(t, tt.wantMax, c.Max)
		})
	}

	assert.False(t, Build(ProductQuery{MinPrice: "x", MaxPrice: "y"}).Has(KindPriceRange))
}

func TestPriceRange_ClosedInterval(t *testing.T) {
	p := Build(ProductQuery{MinPrice: "100", MaxPrice: "500"})

	for price := 0.0; price <= 700; price += 25 {
		want := price >= 100 && price <= 500
		assert.Equal(t, want, p.Matches(Candidate{Price: price}), "price %v", price)
	}
}

func TestBuild_Category(t *testing.T) {
	p := Build(ProductQuery{CategoryID: "2"})
	c, ok := p.Clause(KindCategory)
	require.True(t, ok)
	assert.Equal(t, uint(2), c.CategoryID)

	assert.False(t, p.Matches(catalog[0]))
	assert.True(t, p.Matches(catalog[1]))

	for _, v := range []string{"0", "-1", "1.5", "abc", ""} {
		assert.False(t, Build(ProductQuery{CategoryID: v}).Has(KindCategory), v)
	}

	// eine unbekannte, große ID filtert trotzdem und trifft nichts
	big := Build(ProductQuery{CategoryID: "3000000000"})
	c, ok = big.Clause(KindCategory)
	require.True(t, ok)
	assert.Equal(t, uint(3000000000), c.CategoryID)
	for _, p := range catalog {
		assert.False(t, big.Matches(p), p.Name)
	}
}

func TestBuild_SearchWithPriceScenario(t *testing.T) {
	q := ProductQuery{SearchTerm: "phone", MinPrice: "100", MaxPrice: "500", Sort: "low_price", Page: "2", Limit: "10"}

	p := Build(q)
	require.Len(t, p, 2)
	assert.True(t, p.Has(KindSearchTerm))
	assert.True(t, p.Has(KindPriceRange))
	assert.Equal(t, Ordering{Column: ColumnPrice}, ResolveSort(ParseSortMode(q.Sort)))
	assert.Equal(t, Pagination{Take: 10, Skip: 10}, Paginate(q.Page, q.Limit))

	assert.True(t, p.Matches(catalog[0]))  // 450, name
	assert.False(t, p.Matches(catalog[1])) // 80, out of range
	assert.True(t, p.Matches(catalog[2]))  // 120, category name
	assert.False(t, p.Matches(catalog[3]))
}

func TestBuild_RatingWithInvalidCategoryScenario(t *testing.T) {
	p := Build(ProductQuery{Ratings: "1|2|3", CategoryID: "abc"})

	require.Len(t, p, 1)
	c, ok := p.Clause(KindRating)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, c.Ratings)
}

func TestPredicate_String(t *testing.T) {
	a := Build(ProductQuery{SearchTerm: "Phone", MinPrice: "10", CategoryID: "3", Ratings: "5|4"})
	b := Predicate{a[3], a[2], a[1], a[0]}

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, `category=3&price=10..&rating=4|5&search="phone"`, a.String())
	assert.Equal(t, "", Build(ProductQuery{}).String())
}
