package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// row producto leído del CSV.
type row struct {
	Line          int
	SKU           string
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	MinStockLevel int
	Category      string
}

var requiredColumns = []string{"name", "price"}

// decode devuelve el contenido en UTF-8. Las exportaciones de Excel en español suelen
// venir en Windows-1252; si el archivo ya es UTF-8 válido se deja igual.
func decode(data []byte) (io.Reader, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return bytes.NewReader(data), nil
	}
	return transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder()), nil
}

// separator ';' si la cabecera lo usa (configuración regional es), si no ','.
func separator(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

// parseCatalog lee el CSV con cabecera. Columnas: sku, name, description, price,
// stock_quantity, min_stock_level, category (solo name y price son obligatorias).
func parseCatalog(data []byte) ([]row, error) {
	r, err := decode(data)
	if err != nil {
		return nil, err
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decodificar: %w", err)
	}
	firstLine, _, _ := strings.Cut(string(text), "\n")

	cr := csv.NewReader(bytes.NewReader(text))
	cr.Comma = separator(firstLine)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}
	get := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if strings.TrimSpace(strings.Join(rec, "")) == "" {
			continue
		}
		rw := row{
			Line:        line,
			SKU:         get(rec, "sku"),
			Name:        get(rec, "name"),
			Description: get(rec, "description"),
			Category:    get(rec, "category"),
		}
		if rw.Name == "" {
			return nil, fmt.Errorf("línea %d: name vacío", line)
		}
		// "12,50" de Excel es-CO
		price := strings.ReplaceAll(get(rec, "price"), ",", ".")
		if rw.Price, err = decimal.NewFromString(price); err != nil || rw.Price.IsNegative() {
			return nil, fmt.Errorf("línea %d: price inválido %q", line, get(rec, "price"))
		}
		if rw.StockQuantity, err = atoiDefault(get(rec, "stock_quantity")); err != nil {
			return nil, fmt.Errorf("línea %d: stock_quantity: %w", line, err)
		}
		if rw.MinStockLevel, err = atoiDefault(get(rec, "min_stock_level")); err != nil {
			return nil, fmt.Errorf("línea %d: min_stock_level: %w", line, err)
		}
		rows = append(rows, rw)
	}
}

func atoiDefault(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negativo: %d", n)
	}
	return n, nil
}
