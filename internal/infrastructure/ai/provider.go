package ai

import (
	"github.com/litethinking/gestion-api/internal/application/ports"
	"github.com/litethinking/gestion-api/pkg/config"
)

// NewFromConfig selecciona el adaptador según AI_PROVIDER. El default es
// OpenAI; cualquier valor desconocido cae ahí también.
func NewFromConfig(cfg config.AIConfig) ports.LLMService {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	default:
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
}
