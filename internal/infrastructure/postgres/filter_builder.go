package postgres

import (
	"fmt"
	"strings"
)

// filterBuilder arma cláusulas WHERE parametrizadas. Las condiciones se escriben con '?'
// y se renumeran como $1..$n en el orden de llegada; los valores nunca se interpolan.
type filterBuilder struct {
	conds []string
	args  []any
}

// Add agrega una condición con tantos '?' como args.
func (b *filterBuilder) Add(cond string, args ...any) *filterBuilder {
	var sb strings.Builder
	i := 0
	for _, r := range cond {
		if r == '?' && i < len(args) {
			b.args = append(b.args, args[i])
			fmt.Fprintf(&sb, "$%d", len(b.args))
			i++
			continue
		}
		sb.WriteRune(r)
	}
	b.conds = append(b.conds, sb.String())
	return b
}

// AddIf agrega la condición solo si ok.
func (b *filterBuilder) AddIf(ok bool, cond string, args ...any) *filterBuilder {
	if ok {
		b.Add(cond, args...)
	}
	return b
}

// Where "WHERE a AND b" o "" si no hay condiciones.
func (b *filterBuilder) Where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args valores en el orden de los placeholders.
func (b *filterBuilder) Args() []any {
	return b.args
}

// Page agrega LIMIT/OFFSET como placeholders y devuelve el fragmento con los args completos.
func (b *filterBuilder) Page(limit, offset int) (string, []any) {
	args := append(append([]any(nil), b.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

// likePattern patrón ILIKE con comodines escapados.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
