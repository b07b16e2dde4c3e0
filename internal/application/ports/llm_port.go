package ports

import "context"

// ChatTurn un turno del historial enviado al modelo.
type ChatTurn struct {
	Role    string // "user" | "assistant"
	Content string
}

// LLMService define el puerto de salida hacia el proveedor de IA del chatbot.
// Cualquier adaptador (OpenAI, Anthropic, mock) debe implementar esta interfaz.
// La aplicación solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// Complete recibe el historial completo de la conversación (en orden
	// cronológico, terminando con el último mensaje del usuario) y devuelve
	// la respuesta del asistente. El contexto debe llevar timeout para no
	// bloquear el request en llamadas externas.
	Complete(ctx context.Context, history []ChatTurn) (string, error)
}
