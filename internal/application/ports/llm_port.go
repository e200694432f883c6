package ports

import (
	"context"
	"errors"
)

// ErrNoAPIKey lo devuelven los adaptadores cuando no hay credenciales configuradas.
var ErrNoAPIKey = errors.New("AI: API key no configurada")

// Prompt solicitud al modelo. ImageBase64 es opcional (sin prefijo data:).
type Prompt struct {
	System      string
	Text        string
	ImageBase64 string
	MIME        string
	// JSON pide al proveedor una respuesta en JSON puro cuando lo soporta.
	JSON bool
}

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type LLMService interface {
	// Generate devuelve el texto crudo producido por el modelo.
	Generate(ctx context.Context, p Prompt) (string, error)
}
