package controller

import (
	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/pkg/serverutils"
	"persona-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
	sessionService      service.ISessionService
}

func NewConversationController(
	conversationService service.IConversationService,
	sessionService service.ISessionService,
) IConversationController {
	return &conversationController{
		conversationService: conversationService,
		sessionService:      sessionService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversations")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
}

func (c *conversationController) List(ctx *fiber.Ctx) error {
	res, err := c.conversationService.ListConversations(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *conversationController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation ID")
	}

	conversation, err := c.conversationService.GetConversation(ctx.Context(), currentUserId(ctx), id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}

	messages := make([]dto.MessageDTO, 0, len(conversation.Messages))
	for _, m := range conversation.Messages {
		messages = append(messages, dto.MessageDTO{
			Id:      m.Id,
			Role:    m.Role,
			Content: m.Content,
			Tool:    m.Persona,
			Files:   m.Files,
		})
	}

	res := dto.ConversationDetailResponse{
		Id:       conversation.Id,
		Title:    conversation.Title,
		Persona:  conversation.Persona,
		Messages: messages,
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *conversationController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation ID")
	}
	userId := currentUserId(ctx)

	if err := c.conversationService.DeleteConversation(ctx.Context(), userId, id); err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}

	// Deleting the open conversation resets the live session to new.
	c.sessionService.ResetIfCurrent(userId, id)

	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation deleted", nil))
}
