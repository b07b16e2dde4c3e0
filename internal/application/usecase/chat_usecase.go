package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/litethinking/gestion-api/internal/application/auth"
	"github.com/litethinking/gestion-api/internal/application/dto"
	"github.com/litethinking/gestion-api/internal/application/ports"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
	"github.com/litethinking/gestion-api/internal/domain/repository"
)

// llmTimeout tope para la llamada al proveedor de IA.
const llmTimeout = 60 * time.Second

// ChatUseCase conversaciones con el chatbot. Cada turno persiste el mensaje
// del usuario, invoca al modelo con el historial completo y persiste la
// respuesta. Los mensajes nunca se editan ni se borran.
type ChatUseCase struct {
	convRepo repository.ConversationRepository
	llm      ports.LLMService
}

// NewChatUseCase construye el caso de uso del chatbot.
func NewChatUseCase(convRepo repository.ConversationRepository, llm ports.LLMService) *ChatUseCase {
	return &ChatUseCase{convRepo: convRepo, llm: llm}
}

// Start crea una conversación. Si viene un mensaje inicial, además ejecuta
// el primer turno y el título se deriva de ese mensaje.
func (uc *ChatUseCase) Start(ctx context.Context, actor auth.Actor, in dto.StartConversationRequest) (*dto.ChatExchangeResponse, error) {
	content := strings.TrimSpace(in.Message)
	if len([]rune(content)) > entity.MaxMessageLength {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	conv := &entity.Conversation{
		ID:        uuid.New().String(),
		UserID:    actor.UserID,
		Title:     "Nueva conversación",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if content != "" {
		conv.Title = entity.TitleFromContent(content)
	}
	if err := uc.convRepo.Create(conv); err != nil {
		return nil, err
	}

	res := &dto.ChatExchangeResponse{Conversation: *toConversationResponse(conv)}
	if content == "" {
		return res, nil
	}
	return uc.exchange(ctx, conv, content)
}

// SendMessage ejecuta un turno en una conversación existente. Solo el dueño
// puede escribir; una conversación archivada no acepta mensajes.
func (uc *ChatUseCase) SendMessage(ctx context.Context, actor auth.Actor, conversationID string, in dto.SendMessageRequest) (*dto.ChatExchangeResponse, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" || len([]rune(content)) > entity.MaxMessageLength {
		return nil, domain.ErrInvalidInput
	}

	conv, err := uc.ownedConversation(actor, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Active {
		return nil, domain.ErrConflict
	}

	// Si es el primer mensaje, el título se deriva de él
	history, err := uc.convRepo.ListMessages(conv.ID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 && conv.Title == "Nueva conversación" {
		conv.Title = entity.TitleFromContent(content)
		conv.UpdatedAt = time.Now()
		if err := uc.convRepo.Update(conv); err != nil {
			return nil, err
		}
	}

	return uc.exchange(ctx, conv, content)
}

// exchange persiste el mensaje del usuario, llama al modelo con el
// historial completo y persiste la respuesta del asistente. Si el modelo
// falla, el mensaje del usuario ya quedó en el historial.
func (uc *ChatUseCase) exchange(ctx context.Context, conv *entity.Conversation, content string) (*dto.ChatExchangeResponse, error) {
	userMsg := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Role:           entity.MessageRoleUser,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := uc.convRepo.CreateMessage(userMsg); err != nil {
		return nil, err
	}

	history, err := uc.convRepo.ListMessages(conv.ID)
	if err != nil {
		return nil, err
	}
	turns := make([]ports.ChatTurn, 0, len(history))
	for _, m := range history {
		turns = append(turns, ports.ChatTurn{Role: m.Role, Content: m.Content})
	}

	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()
	reply, err := uc.llm.Complete(llmCtx, turns)
	if err != nil {
		// El mensaje del usuario ya quedó persistido; solo falla la respuesta.
		return nil, fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}

	assistantMsg := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Role:           entity.MessageRoleAssistant,
		Content:        reply,
		CreatedAt:      time.Now(),
	}
	if err := uc.convRepo.CreateMessage(assistantMsg); err != nil {
		return nil, err
	}

	conv.UpdatedAt = assistantMsg.CreatedAt
	if err := uc.convRepo.Update(conv); err != nil {
		return nil, err
	}

	return &dto.ChatExchangeResponse{
		Conversation: *toConversationResponse(conv),
		UserMessage:  toMessageResponse(userMsg),
		Assistant:    toMessageResponse(assistantMsg),
	}, nil
}

// GetByID devuelve la conversación con su historial completo en orden
// cronológico. Los administradores pueden leer cualquier conversación.
func (uc *ChatUseCase) GetByID(actor auth.Actor, conversationID string) (*dto.ConversationDetailResponse, error) {
	conv, err := uc.convRepo.GetByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	if conv.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	messages, err := uc.convRepo.ListMessages(conv.ID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, *toMessageResponse(m))
	}
	return &dto.ConversationDetailResponse{
		ConversationResponse: *toConversationResponse(conv),
		Messages:             items,
	}, nil
}

// List lista las conversaciones del actor; un administrador con all=true
// lista las de todos los usuarios.
func (uc *ChatUseCase) List(actor auth.Actor, page dto.PageRequest, all bool) (*dto.ConversationListResponse, error) {
	page.DefaultPage()

	var (
		convs []*entity.Conversation
		err   error
	)
	if all {
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		convs, err = uc.convRepo.ListAll(page.Limit, page.Offset)
	} else {
		convs, err = uc.convRepo.ListByUser(actor.UserID, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.ConversationResponse, 0, len(convs))
	for _, c := range convs {
		items = append(items, *toConversationResponse(c))
	}
	return &dto.ConversationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Archive marca la conversación como inactiva. El historial se conserva.
func (uc *ChatUseCase) Archive(actor auth.Actor, conversationID string) error {
	conv, err := uc.ownedConversation(actor, conversationID)
	if err != nil {
		return err
	}
	conv.Active = false
	conv.UpdatedAt = time.Now()
	return uc.convRepo.Update(conv)
}

func (uc *ChatUseCase) ownedConversation(actor auth.Actor, conversationID string) (*entity.Conversation, error) {
	conv, err := uc.convRepo.GetByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	if conv.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return conv, nil
}

func toConversationResponse(c *entity.Conversation) *dto.ConversationResponse {
	return &dto.ConversationResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}
