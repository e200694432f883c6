package ai

import (
	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/pkg/config"
)

// NewFromConfig elige el adaptador según AI_PROVIDER. Sin API key el adaptador
// devuelve ports.ErrNoAPIKey y los casos de uso caen a sus valores por defecto.
func NewFromConfig(cfg config.AIConfig) ports.LLMService {
	if cfg.Provider == "anthropic" {
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
	return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
}
