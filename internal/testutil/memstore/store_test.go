package memstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

func TestProductList_SegundaPagina(t *testing.T) {
	s := New()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 25; i++ {
		id := fmt.Sprintf("p%02d", i)
		s.Products[id] = entity.Product{ID: id, Name: fmt.Sprintf("Product %02d", i), IsActive: true, CreatedAt: created}
	}

	page := dto.PageRequest{Page: 2, Limit: 10}.Normalize()
	items, total, err := s.ProductRepo().List(context.Background(), repository.ProductFilter{}, page)
	require.NoError(t, err)

	assert.Equal(t, 25, total)
	require.Len(t, items, 10)
	for i, p := range items {
		assert.Equal(t, fmt.Sprintf("Product %02d", i+11), p.Name)
	}

	resp := dto.NewPageResponse(items, total, page)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, 25, resp.Total)
}

func TestPaginate_Bordes(t *testing.T) {
	rows := make([]int, 25)
	for i := range rows {
		rows[i] = i + 1
	}
	tests := []struct {
		name string
		page repository.Page
		want []int
	}{
		{"ultima pagina parcial", repository.NewPage(3, 10), []int{21, 22, 23, 24, 25}},
		{"fuera de rango", repository.NewPage(4, 10), []int{}},
		{"page enorme", repository.NewPage(1<<62, 10), []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(rows, tt.page))
		})
	}
}
