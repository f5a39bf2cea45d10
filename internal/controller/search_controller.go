package controller

import (
	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/pkg/serverutils"
	"persona-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{
		searchService: searchService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Search)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.searchService.Search(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}
