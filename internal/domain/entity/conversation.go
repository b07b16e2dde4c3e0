package entity

import "time"

// Roles de mensaje del chatbot.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Límites del chatbot (mismos valores que el esquema de la DB).
const (
	MaxMessageLength = 5000
	MaxTitleLength   = 200
	titlePrefixLen   = 50
)

// Conversation agrupa los mensajes de un usuario con el chatbot.
// El título se genera del primer mensaje del usuario; archivar = Active=false.
type Conversation struct {
	ID        string
	UserID    string
	Title     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TitleFromContent deriva el título automático: primeros 50 caracteres
// del primer mensaje del usuario.
func TitleFromContent(content string) string {
	runes := []rune(content)
	if len(runes) > titlePrefixLen {
		return string(runes[:titlePrefixLen])
	}
	return content
}

// Message es un turno de la conversación. Inmutable después de creado;
// el orden dentro de la conversación es por CreatedAt.
type Message struct {
	ID             string
	ConversationID string
	Role           string // user, assistant
	Content        string
	CreatedAt      time.Time
}
