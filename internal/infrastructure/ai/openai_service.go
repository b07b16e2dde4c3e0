package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/litethinking/gestion-api/internal/application/ports"
	"github.com/litethinking/gestion-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que OpenAIService implementa LLMService.
var _ ports.LLMService = (*OpenAIService)(nil)

// systemPrompt delimita el rol del asistente del sistema de gestión.
const systemPrompt = `Eres el asistente del sistema de gestión de empresas, productos e inventarios.
Ayudas a los usuarios con preguntas sobre el manejo de su catálogo, movimientos de stock, reservas y reportes.
Responde en el idioma del usuario, de forma concisa y práctica.`

// OpenAIService adaptador que implementa LLMService con la API de chat de
// OpenAI.
type OpenAIService struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIService construye el adaptador. model suele ser "gpt-4o-mini".
// Si apiKey está vacío, las llamadas devuelven un error descriptivo en lugar
// de panic.
func NewOpenAIService(apiKey, model string) *OpenAIService {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIService{
		client:    openai.NewClient(apiKey),
		model:     model,
		maxTokens: 1024,
	}
}

// Complete envía el historial completo y devuelve la respuesta del asistente.
func (s *OpenAIService) Complete(ctx context.Context, history []ports.ChatTurn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == entity.MessageRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Content,
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("AI: OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("AI: OpenAI devolvió respuesta vacía")
	}
	return resp.Choices[0].Message.Content, nil
}
