package dto

import "time"

// StartConversationRequest body para crear una conversación. Message es
// opcional: si viene, se persiste como primer mensaje y se invoca al modelo.
type StartConversationRequest struct {
	Message string `json:"message" validate:"omitempty,min=1,max=5000"`
}

// SendMessageRequest body para enviar un mensaje a una conversación.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// MessageResponse salida de un mensaje.
type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationResponse salida de una conversación.
type ConversationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConversationDetailResponse conversación con su historial ordenado.
type ConversationDetailResponse struct {
	ConversationResponse
	Messages []MessageResponse `json:"messages"`
}

// ConversationListResponse lista paginada de conversaciones.
type ConversationListResponse struct {
	Items []ConversationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// ChatExchangeResponse resultado de un turno: el mensaje del usuario y la
// respuesta del asistente, ambos ya persistidos. Al crear una conversación
// sin mensaje inicial ambos vienen nulos.
type ChatExchangeResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	UserMessage  *MessageResponse     `json:"user_message,omitempty"`
	Assistant    *MessageResponse     `json:"assistant_message,omitempty"`
}
