package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ProductQuery sind die rohen Parameter der Produktsuche aus dem Query-String.
type ProductQuery struct {
	SearchTerm string `form:"searchTerm"`
	Ratings    string `form:"ratings"`
	MinPrice   string `form:"minPrice"`
	MaxPrice   string `form:"maxPrice"`
	CategoryID string `form:"categoryId"`
	Sort       string `form:"sort"`
	Page       string `form:"page"`
	Limit      string `form:"limit"`
}

// Kind unterscheidet die Varianten einer Teilbedingung.
type Kind int

const (
	KindSearchTerm Kind = iota + 1
	KindRating
	KindPriceRange
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindSearchTerm:
		return "search"
	case KindRating:
		return "rating"
	case KindPriceRange:
		return "price"
	case KindCategory:
		return "category"
	}
	return "unknown"
}

// Clause ist eine einzelne Teilbedingung. Welche Felder gesetzt sind,
// hängt von Kind ab.
type Clause struct {
	Kind Kind

	Term       string   // KindSearchTerm
	Ratings    []int    // KindRating, sortiert und ohne Duplikate
	Min, Max   *float64 // KindPriceRange, mindestens eine Grenze gesetzt
	CategoryID uint     // KindCategory
}

// Predicate ist die UND-Verknüpfung seiner Teilbedingungen. Ein leeres
// Predicate trifft auf alle Produkte zu.
type Predicate []Clause

// Candidate ist die Sicht auf ein Produkt, gegen die Matches prüft.
type Candidate struct {
	Name         string
	Description  string
	CategoryName string
	CategoryID   uint
	Price        float64
	Ratings      []int
}

// Build setzt aus den vorhandenen Parametern das Predicate zusammen.
// Fehlende oder ungültige Parameter erzeugen keine Teilbedingung.
func Build(q ProductQuery) Predicate {
	var p Predicate

	if term := strings.TrimSpace(q.SearchTerm); term != "" {
		p = append(p, Clause{Kind: KindSearchTerm, Term: term})
	}

	if ratings := ParseRatings(q.Ratings); len(ratings) > 0 {
		p = append(p, Clause{Kind: KindRating, Ratings: ratings})
	}

	minPrice, hasMin := ToNumber(q.MinPrice)
	maxPrice, hasMax := ToNumber(q.MaxPrice)
	if hasMin || hasMax {
		c := Clause{Kind: KindPriceRange}
		if hasMin {
			c.Min = &minPrice
		}
		if hasMax {
			c.Max = &maxPrice
		}
		p = append(p, c)
	}

	if id, ok := ToPositiveInt(q.CategoryID); ok {
		p = append(p, Clause{Kind: KindCategory, CategoryID: uint(id)})
	}

	return p
}

// ParseRatings liest eine durch "|" getrennte Liste von Sternen (1..5).
// Unbrauchbare Einträge werden verworfen.
func ParseRatings(s string) []int {
	var ratings []int
	for _, part := range strings.Split(s, "|") {
		n, ok := ToPositiveInt(part)
		if !ok || n > 5 || slices.Contains(ratings, n) {
			continue
		}
		ratings = append(ratings, n)
	}
	slices.Sort(ratings)
	return ratings
}

// Empty meldet, ob das Predicate keine Einschränkung enthält.
func (p Predicate) Empty() bool {
	return len(p) == 0
}

// Has meldet, ob eine Teilbedingung der Art k enthalten ist.
func (p Predicate) Has(k Kind) bool {
	_, ok := p.Clause(k)
	return ok
}

// Clause liefert die Teilbedingung der Art k.
func (p Predicate) Clause(k Kind) (Clause, bool) {
	for _, c := range p {
		if c.Kind == k {
			return c, true
		}
	}
	return Clause{}, false
}

// Matches wertet das Predicate für ein Produkt im Speicher aus.
func (p Predicate) Matches(c Candidate) bool {
	for _, clause := range p {
		if !clause.Matches(c) {
			return false
		}
	}
	return true
}

// Matches wertet eine einzelne Teilbedingung aus.
func (c Clause) Matches(p Candidate) bool {
	switch c.Kind {
	case KindSearchTerm:
		term := strings.ToLower(c.Term)
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.CategoryName), term)
	case KindRating:
		for _, r := range p.Ratings {
			if slices.Contains(c.Ratings, r) {
				return true
			}
		}
		return false
	case KindPriceRange:
		if c.Min != nil && p.Price < *c.Min {
			return false
		}
		if c.Max != nil && p.Price > *c.Max {
			return false
		}
		return true
	case KindCategory:
		return p.CategoryID == c.CategoryID
	}
	return false
}

// String liefert eine stabile Darstellung, z.B. für Logs und Cache-Keys.
func (p Predicate) String() string {
	parts := make([]string, 0, len(p))
	for _, c := range p {
		parts = append(parts, c.String())
	}
	slices.Sort(parts)
	return strings.Join(parts, "&")
}

func (c Clause) String() string {
	switch c.Kind {
	case KindSearchTerm:
		return "search=" + strconv.Quote(strings.ToLower(c.Term))
	case KindRating:
		rs := make([]string, len(c.Ratings))
		for i, r := range c.Ratings {
			rs[i] = strconv.Itoa(r)
		}
		return "rating=" + strings.Join(rs, "|")
	case KindPriceRange:
		return fmt.Sprintf("price=%s..%s", bound(c.Min), bound(c.Max))
	case KindCategory:
		return fmt.Sprintf("category=%d", c.CategoryID)
	}
	return c.Kind.String()
}

func bound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
