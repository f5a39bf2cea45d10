package controller

import (
	"io"
	"mime/multipart"

	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/pkg/serverutils"
	"persona-chat-be/internal/service"
	"persona-chat-be/pkg/extract"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	GetState(ctx *fiber.Ctx) error
	SelectPersona(ctx *fiber.Ctx) error
	AttachFiles(ctx *fiber.Ctx) error
	RemoveAttachment(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	SwitchConversation(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetState)
	h.Post("/persona", c.SelectPersona)
	h.Post("/attachments", c.AttachFiles)
	h.Delete("/attachments/:index", c.RemoveAttachment)
	h.Post("/message", c.SendMessage)
	h.Post("/switch", c.SwitchConversation)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *sessionController) GetState(ctx *fiber.Ctx) error {
	res, err := c.sessionService.GetState(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *sessionController) SelectPersona(ctx *fiber.Ctx) error {
	var req dto.SelectPersonaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.sessionService.SelectPersona(ctx.Context(), currentUserId(ctx), req.PersonaId)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Persona selected", res))
}

// readMultipartFiles converts uploaded files into extraction inputs.
func readMultipartFiles(files []*multipart.FileHeader) ([]extract.Input, error) {
	inputs := make([]extract.Input, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, extract.Input{
			Name: fh.Filename,
			Type: fh.Header.Get("Content-Type"),
			Data: data,
		})
	}
	return inputs, nil
}

func (c *sessionController) AttachFiles(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Multipart form required")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "No files provided"))
	}

	inputs, err := readMultipartFiles(files)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded files")
	}

	res, err := c.sessionService.AttachFiles(ctx.Context(), currentUserId(ctx), inputs)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Files attached", res))
}

func (c *sessionController) RemoveAttachment(ctx *fiber.Ctx) error {
	index, err := ctx.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attachment index")
	}

	res, err := c.sessionService.RemoveAttachment(ctx.Context(), currentUserId(ctx), index)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Attachment removed", res))
}

func (c *sessionController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.sessionService.SendMessage(ctx.Context(), currentUserId(ctx), req.Text)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

type switchConversationRequest struct {
	ConversationId *uuid.UUID `json:"conversation_id"`
}

func (c *sessionController) SwitchConversation(ctx *fiber.Ctx) error {
	var req switchConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.sessionService.SwitchConversation(ctx.Context(), currentUserId(ctx), req.ConversationId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation switched", res))
}
