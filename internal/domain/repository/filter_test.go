package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	p := NewPage(0, 0)
	assert.Equal(t, Page{Page: 1, Limit: 20}, p)
	assert.Equal(t, 0, p.Offset())

	p = NewPage(2, 10)
	assert.Equal(t, 10, p.Offset())

	p = NewPage(3, 1000)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestNewPage_OffsetSinDesborde(t *testing.T) {
	cases := []struct {
		name  string
		page  int
		limit int
	}{
		{"page enorme limit por defecto", 1 << 62, 0},
		{"page enorme limit maximo", 1 << 62, 1000},
		{"page maxint limit 1", math.MaxInt, 1},
		{"page maxint limit 20", math.MaxInt, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPage(tc.page, tc.limit)
			assert.GreaterOrEqual(t, p.Offset(), 0)
			assert.LessOrEqual(t, p.Page, math.MaxInt/p.Limit)
		})
	}
}
