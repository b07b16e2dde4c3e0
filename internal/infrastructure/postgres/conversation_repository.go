package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
	"github.com/litethinking/gestion-api/internal/domain/repository"
)

var _ repository.ConversationRepository = (*ConversationRepo)(nil)

// ConversationRepo implementación del puerto ConversationRepository sobre
// PostgreSQL. Los mensajes solo se insertan y se leen.
type ConversationRepo struct {
	pool *pgxpool.Pool
}

// NewConversationRepository construye el adaptador de conversaciones.
func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

const conversationColumns = `id, user_id, title, active, created_at, updated_at`

// Create persiste una nueva conversación.
func (r *ConversationRepo) Create(conv *entity.Conversation) error {
	query := `
		INSERT INTO conversations (` + conversationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		conv.ID, conv.UserID, conv.Title, conv.Active, conv.CreatedAt, conv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

// GetByID obtiene una conversación por ID.
func (r *ConversationRepo) GetByID(id string) (*entity.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`
	var c entity.Conversation
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.UserID, &c.Title, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &c, nil
}

// Update actualiza título, estado y fecha de una conversación.
func (r *ConversationRepo) Update(conv *entity.Conversation) error {
	query := `
		UPDATE conversations SET title = $2, active = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query,
		conv.ID, conv.Title, conv.Active, conv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update conversation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser lista conversaciones de un usuario, de la más reciente a la
// más antigua.
func (r *ConversationRepo) ListByUser(userID string, limit, offset int) ([]*entity.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations WHERE user_id = $3
		ORDER BY updated_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset, userID)
}

// ListAll lista todas las conversaciones (uso administrativo).
func (r *ConversationRepo) ListAll(limit, offset int) ([]*entity.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations ORDER BY updated_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *ConversationRepo) list(query string, limit, offset int, extra ...any) ([]*entity.Conversation, error) {
	args := append([]any{limit, offset}, extra...)
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Conversation
	for rows.Next() {
		var c entity.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CreateMessage inserta un mensaje. Nunca hay UPDATE ni DELETE sobre
// messages.
func (r *ConversationRepo) CreateMessage(msg *entity.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListMessages devuelve los mensajes de una conversación en orden
// cronológico ascendente.
func (r *ConversationRepo) ListMessages(conversationID string) ([]*entity.Message, error) {
	query := `
		SELECT id, conversation_id, role, content, created_at
		FROM messages WHERE conversation_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(context.Background(), query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
