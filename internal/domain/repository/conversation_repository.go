package repository

import "github.com/litethinking/gestion-api/internal/domain/entity"

// ConversationRepository define el puerto del agregado conversación+mensajes.
// Los mensajes son inmutables: solo Create y listados ordenados por fecha.
type ConversationRepository interface {
	Create(conv *entity.Conversation) error
	GetByID(id string) (*entity.Conversation, error)
	Update(conv *entity.Conversation) error
	ListByUser(userID string, limit, offset int) ([]*entity.Conversation, error)
	ListAll(limit, offset int) ([]*entity.Conversation, error)

	CreateMessage(msg *entity.Message) error
	// ListMessages devuelve los mensajes en orden cronológico ascendente.
	ListMessages(conversationID string) ([]*entity.Message, error)
}
