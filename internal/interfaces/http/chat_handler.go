package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/litethinking/gestion-api/internal/application/dto"
	"github.com/litethinking/gestion-api/internal/application/usecase"
)

// ChatHandler expone las conversaciones con el asistente.
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Start godoc
// @Summary      Iniciar una conversación
// @Description  Crea la conversación; si trae mensaje inicial también devuelve la respuesta del asistente.
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartConversationRequest  true  "mensaje inicial (opcional)"
// @Success      201   {object}  dto.ChatExchangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/chat/conversations [post]
func (h *ChatHandler) Start(c *fiber.Ctx) error {
	var in dto.StartConversationRequest
	if !parseBody(c, &in) {
		return nil
	}
	res, err := h.uc.Start(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// SendMessage godoc
// @Summary      Enviar un mensaje a una conversación
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la conversación"
// @Param        body  body  dto.SendMessageRequest  true  "contenido del mensaje"
// @Success      200   {object}  dto.ChatExchangeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/chat/conversations/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if !parseBody(c, &in) {
		return nil
	}
	res, err := h.uc.SendMessage(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Get godoc
// @Summary      Consultar una conversación con sus mensajes
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la conversación"
// @Success      200  {object}  dto.ConversationDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/chat/conversations/{id} [get]
func (h *ChatHandler) Get(c *fiber.Ctx) error {
	res, err := h.uc.GetByID(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// List godoc
// @Summary      Listar las conversaciones propias
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int   false  "máximo de filas (1-100)"
// @Param        offset  query  int   false  "desplazamiento"
// @Param        all     query  bool  false  "todas las conversaciones (solo admins)"
// @Success      200  {object}  dto.ConversationListResponse
// @Router       /api/chat/conversations [get]
func (h *ChatHandler) List(c *fiber.Ctx) error {
	res, err := h.uc.List(GetActor(c), pageFromQuery(c), c.QueryBool("all"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Archive godoc
// @Summary      Archivar una conversación
// @Tags         chat
// @Security     Bearer
// @Param        id  path  string  true  "ID de la conversación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/chat/conversations/{id} [delete]
func (h *ChatHandler) Archive(c *fiber.Ctx) error {
	if err := h.uc.Archive(GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
