package controller

import (
	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/pkg/serverutils"
	"persona-chat-be/internal/service"
	"persona-chat-be/pkg/extract"

	"github.com/gofiber/fiber/v2"
)

type IToolController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
}

type toolController struct {
	toolService service.IToolService
}

func NewToolController(toolService service.IToolService) IToolController {
	return &toolController{
		toolService: toolService,
	}
}

func (c *toolController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tools")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
}

func (c *toolController) List(ctx *fiber.Ctx) error {
	personas, err := c.toolService.ListPersonas(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}

	res := make([]dto.ToolResponse, 0, len(personas))
	for _, p := range personas {
		res = append(res, dto.ToolResponse{
			Id:              p.Id,
			Name:            p.Name,
			Prompt:          p.Prompt,
			LogoURL:         p.LogoURL,
			IsCustom:        p.IsCustom,
			IsAddToolMarker: p.IsAddToolMarker,
			TrainingDocs:    len(p.TrainingDocs),
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

// Create accepts a multipart form: name, prompt, logo_url fields plus
// optional training documents under "files". Documents are extracted
// once here and persisted as descriptors, not raw bytes.
func (c *toolController) Create(ctx *fiber.Ctx) error {
	req := dto.CreateToolRequest{
		Name:    ctx.FormValue("name"),
		Prompt:  ctx.FormValue("prompt"),
		LogoURL: ctx.FormValue("logo_url"),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var trainingDocs []extract.FileDescriptor
	if form, err := ctx.MultipartForm(); err == nil {
		if files := form.File["files"]; len(files) > 0 {
			inputs, err := readMultipartFiles(files)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded files")
			}
			trainingDocs = extract.ProcessAll(ctx.Context(), inputs)
		}
	}

	tool, err := c.toolService.CreateTool(ctx.Context(), currentUserId(ctx), &req, trainingDocs)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Tool created", tool))
}
