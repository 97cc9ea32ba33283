package ai

import (
	"context"
	"strings"

	"github.com/jhoicas/engage-api/internal/application/ports"
)

var (
	_ ports.Responder = (*Router)(nil)
	_ ports.Responder = Placeholder{}
)

const (
	providerPlaceholder = "placeholder"
	placeholderMessage  = "AI response placeholder"
	placeholderScore    = 0.95
)

// Placeholder respuesta fija cuando no hay proveedor configurado.
type Placeholder struct{}

func (Placeholder) Respond(_ context.Context, in ports.ResponderRequest) (*ports.ResponderReply, error) {
	return &ports.ResponderReply{
		Message:    placeholderMessage,
		Confidence: placeholderScore,
		Provider:   providerPlaceholder,
		Model:      in.Model,
	}, nil
}

// Router elige el Responder según el prefijo del modelo del agente:
// "claude*" → Anthropic, "gemini*" → Gemini. Sin coincidencia usa el primero configurado
// y, si no hay ninguno, el placeholder.
type Router struct {
	anthropic ports.Responder
	gemini    ports.Responder
	fallback  ports.Responder
}

// NewRouter los proveedores nil se consideran no configurados.
func NewRouter(anthropic, gemini ports.Responder) *Router {
	r := &Router{anthropic: anthropic, gemini: gemini, fallback: Placeholder{}}
	switch {
	case anthropic != nil:
		r.fallback = anthropic
	case gemini != nil:
		r.fallback = gemini
	}
	return r
}

func (r *Router) Respond(ctx context.Context, in ports.ResponderRequest) (*ports.ResponderReply, error) {
	return r.pick(in.Model).Respond(ctx, in)
}

func (r *Router) pick(model string) ports.Responder {
	m := strings.ToLower(model)
	switch {
	case strings.HasPrefix(m, "claude") && r.anthropic != nil:
		return r.anthropic
	case strings.HasPrefix(m, "gemini") && r.gemini != nil:
		return r.gemini
	case strings.HasPrefix(m, "claude"), strings.HasPrefix(m, "gemini"):
		// El agente pide un proveedor sin clave: mejor placeholder que otro proveedor.
		return Placeholder{}
	}
	return r.fallback
}
