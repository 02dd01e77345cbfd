package query

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber wandelt einen Query-Parameter in eine endliche Zahl um.
// Leere oder ungültige Eingaben gelten als "nicht angegeben".
func ToNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ToPositiveInt akzeptiert nur ganze Zahlen größer 0, die in einen int64
// passen.
func ToPositiveInt(s string) (int, bool) {
	n, ok := ToNumber(s)
	// float64(math.MaxInt64) ist bereits 2^63 und damit zu groß.
	if !ok || n < 1 || n >= math.MaxInt64 || n != math.Trunc(n) {
		return 0, false
	}
	return int(n), true
}
