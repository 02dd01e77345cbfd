package query

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate_Defaults(t *testing.T) {
	assert.Equal(t, Pagination{Take: DefaultPageSize, Skip: 0}, Paginate("", ""))
}

func TestPaginate_InvalidValuesBehaveLikeAbsent(t *testing.T) {
	absent := Paginate("", "")
	for _, v := range []string{"0", "-1", "-100", "abc", "1.5", "NaN", " "} {
		t.Run(v, func(t *testing.T) {
			assert.Equal(t, absent, Paginate(v, v))
			assert.Equal(t, Paginate("", "5"), Paginate(v, "5"))
			assert.Equal(t, Paginate("3", ""), Paginate("3", v))
		})
	}
}

func TestPaginate_Skip(t *testing.T) {
	for page := 1; page <= 20; page++ {
		for _, limit := range []int{1, 5, 12, 50} {
			p := Paginate(strconv.Itoa(page), strconv.Itoa(limit))
			assert.Equal(t, limit, p.Take)
			assert.Equal(t, (page-1)*limit, p.Skip)
		}
	}
	assert.Equal(t, 0, Paginate("1", "30").Skip)
}

func TestPaginate_Scenario(t *testing.T) {
	assert.Equal(t, Pagination{Take: 10, Skip: 10}, Paginate("2", "10"))
}

func TestPaginate_LargeValuesAreClamped(t *testing.T) {
	p := Paginate("3000000000", "10")
	assert.Equal(t, 10, p.Take)
	assert.Equal(t, MaxSkip, p.Skip)

	p = Paginate("9000000000000000000", "9000000000000000000")
	assert.Equal(t, 9000000000000000000, p.Take)
	assert.Equal(t, MaxSkip, p.Skip)

	p = Paginate("1", "3000000000")
	assert.Equal(t, 3000000000, p.Take)
	assert.Equal(t, 0, p.Skip)

	assert.Equal(t, Pagination{Take: 1, Skip: MaxSkip - 1}, Paginate("2147483647", "1"))
}
