package query

import "strings"

// SortMode ist die Sortierung der Produktliste, wie sie im Query-String steht.
type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
	SortLowPrice  SortMode = "low_price"
	SortHighPrice SortMode = "high_price"
)

const (
	ColumnCreatedAt = "created_at"
	ColumnPrice     = "price"
)

// Ordering ist eine konkrete Sortierregel auf einer Produktspalte.
type Ordering struct {
	Column string
	Desc   bool
}

// ParseSortMode normalisiert den Parameter; Unbekanntes wird zu SortNewest.
func ParseSortMode(s string) SortMode {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SortOldest, SortLowPrice, SortHighPrice:
		return m
	}
	return SortNewest
}

// ResolveSort bildet jeden Modus auf eine Sortierregel ab.
func ResolveSort(mode SortMode) Ordering {
	switch mode {
	case SortLowPrice:
		return Ordering{Column: ColumnPrice}
	case SortHighPrice:
		return Ordering{Column: ColumnPrice, Desc: true}
	case SortOldest:
		return Ordering{Column: ColumnCreatedAt}
	default:
		return Ordering{Column: ColumnCreatedAt, Desc: true}
	}
}
