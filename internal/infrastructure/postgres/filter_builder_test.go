package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterBuilder_Renumera(t *testing.T) {
	var b filterBuilder
	b.Add("p.is_active = TRUE").
		Add("(p.name ILIKE ? OR p.description ILIKE ?)", "%mouse%", "%mouse%").
		AddIf(false, "p.category_id = ?", "c1").
		AddIf(true, "p.price >= ?", 10)

	assert.Equal(t, " WHERE p.is_active = TRUE AND (p.name ILIKE $1 OR p.description ILIKE $2) AND p.price >= $3", b.Where())
	assert.Equal(t, []any{"%mouse%", "%mouse%", 10}, b.Args())

	page, args := b.Page(20, 40)
	assert.Equal(t, " LIMIT $4 OFFSET $5", page)
	assert.Equal(t, []any{"%mouse%", "%mouse%", 10, 20, 40}, args)
	assert.Len(t, b.Args(), 3, "Page no modifica los args del filtro")
}

func TestFilterBuilder_Vacio(t *testing.T) {
	var b filterBuilder
	assert.Equal(t, "", b.Where())
	assert.Nil(t, b.Args())

	page, args := b.Page(10, 0)
	assert.Equal(t, " LIMIT $1 OFFSET $2", page)
	assert.Equal(t, []any{10, 0}, args)
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}
