package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/engage-api/internal/domain"
)

// validate instancia compartida; reporta los campos por su nombre JSON.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FieldError error de validación de un campo.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError cuerpo con campos inválidos; se responde 400 con los campos en details.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "Validation failed: " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// bindJSON parsea el cuerpo y lo valida. Cuerpo vacío equivale a {}.
func bindJSON(c *fiber.Ctx, out any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(out); err != nil {
			return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
		}
	}
	return validateStruct(out)
}

// bindQuery parsea la query string sobre out (tags `query`).
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fmt.Errorf("%w: invalid query parameters", domain.ErrInvalidInput)
	}
	return nil
}

// paramUUID lee un id de la ruta. Un id mal formado no puede existir: ErrNotFound
// antes de llegar a la columna uuid.
func paramUUID(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid %s %q", domain.ErrNotFound, name, raw)
	}
	return id.String(), nil
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fieldPath(fe), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// fieldPath "CreateOrderRequest.items[0].quantity" → "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
