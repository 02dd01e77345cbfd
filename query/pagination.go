package query

import "math"

// DefaultPageSize gilt, wenn kein gültiges limit übergeben wurde.
const DefaultPageSize = 12

// MaxSkip begrenzt den Offset, damit (page-1)*limit nicht überläuft.
const MaxSkip = math.MaxInt32

// Pagination enthält Limit (Take) und Offset (Skip) für eine Seite.
type Pagination struct {
	Take int
	Skip int
}

// Paginate berechnet Take/Skip aus page und limit. Ungültige Werte werden
// wie fehlende behandelt; zu große Seiten landen hinter dem letzten Treffer.
func Paginate(page, limit string) Pagination {
	take := DefaultPageSize
	if n, ok := ToPositiveInt(limit); ok {
		take = n
	}
	current := 1
	if n, ok := ToPositiveInt(page); ok {
		current = n
	}
	skip := MaxSkip
	if current-1 <= MaxSkip/take {
		skip = (current - 1) * take
	}
	return Pagination{Take: take, Skip: skip}
}
