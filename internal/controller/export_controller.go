package controller

import (
	"bytes"
	"fmt"
	"time"

	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/pkg/serverutils"
	"persona-chat-be/pkg/pdfgen"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	ExportPdf(ctx *fiber.Ctx) error
}

type exportController struct{}

func NewExportController() IExportController {
	return &exportController{}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/export")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/pdf", c.ExportPdf)
}

func (c *exportController) ExportPdf(ctx *fiber.Ctx) error {
	var req dto.ExportPdfRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	filename := req.Filename
	if filename == "" {
		filename = "document_" + time.Now().Format("2006-01-02") + ".pdf"
	}

	var buf bytes.Buffer
	if err := pdfgen.Generate(&buf, req.Content, req.Title); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Send(buf.Bytes())
}
