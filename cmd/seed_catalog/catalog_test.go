package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseCatalog_UTF8Coma(t *testing.T) {
	data := []byte("\xef\xbb\xbfsku,name,price,stock_quantity,category\nMUG-1,Taza,12.50,5,Cocina\n,,\nTEA-1,Té verde,3,,Bebidas\n")
	rows, err := parseCatalog(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "MUG-1", rows[0].SKU)
	assert.Equal(t, "12.5", rows[0].Price.String())
	assert.Equal(t, 5, rows[0].StockQuantity)
	assert.Equal(t, "Cocina", rows[0].Category)
	assert.Equal(t, "Té verde", rows[1].Name)
	assert.Equal(t, 0, rows[1].StockQuantity)
	assert.Equal(t, 4, rows[1].Line)
}

func TestParseCatalog_Windows1252PuntoYComa(t *testing.T) {
	src := "name;price;min_stock_level\nCafé molido;7,90;2\n"
	data, err := charmap.Windows1252.NewEncoder().Bytes([]byte(src))
	require.NoError(t, err)

	rows, err := parseCatalog(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café molido", rows[0].Name)
	assert.Equal(t, "7.9", rows[0].Price.String())
	assert.Equal(t, 2, rows[0].MinStockLevel)
}

func TestParseCatalog_Errores(t *testing.T) {
	cases := map[string]string{
		"sin columna price": "name\nTaza\n",
		"precio invalido":   "name,price\nTaza,abc\n",
		"precio negativo":   "name,price\nTaza,-1\n",
		"stock negativo":    "name,price,stock_quantity\nTaza,1,-3\n",
		"name vacio":        "name,price\n,1\n",
	}
	for name, src := range cases {
		_, err := parseCatalog([]byte(src))
		assert.Error(t, err, name)
	}
}
