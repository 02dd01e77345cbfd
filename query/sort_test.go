package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortLowPrice, ParseSortMode("low_price"))
	assert.Equal(t, SortHighPrice, ParseSortMode("HIGH_PRICE"))
	assert.Equal(t, SortOldest, ParseSortMode(" oldest "))
	assert.Equal(t, SortNewest, ParseSortMode("newest"))
	assert.Equal(t, SortNewest, ParseSortMode(""))
	assert.Equal(t, SortNewest, ParseSortMode("cheapest"))
}

func TestResolveSort(t *testing.T) {
	tests := []struct {
		mode SortMode
		want Ordering
	}{
		{mode: SortLowPrice, want: Ordering{Column: ColumnPrice}},
		{mode: SortHighPrice, want: Ordering{Column: ColumnPrice, Desc: true}},
		{mode: SortOldest, want: Ordering{Column: ColumnCreatedAt}},
		{mode: SortNewest, want: Ordering{Column: ColumnCreatedAt, Desc: true}},
		{mode: "", want: Ordering{Column: ColumnCreatedAt, Desc: true}},
		{mode: "random", want: Ordering{Column: ColumnCreatedAt, Desc: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSort(tt.mode))
		})
	}
}
