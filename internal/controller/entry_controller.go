package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/dto"
	"reflecta-be/internal/pkg/serverutils"
	"reflecta-be/internal/service"
)

type IEntryController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Append(ctx *fiber.Ctx) error
}

type entryController struct {
	entryService service.IEntryService
}

func NewEntryController(entryService service.IEntryService) IEntryController {
	return &entryController{
		entryService: entryService,
	}
}

func (c *entryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/entry/v1")
	h.Get("", c.List)
	h.Post("", c.Append)
}

func (c *entryController) List(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Query("sessionId"))
	if err != nil {
		return apperror.InvalidInput("sessionId")
	}

	res, err := c.entryService.List(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Entries loaded", res))
}

func (c *entryController) Append(ctx *fiber.Ctx) error {
	var req dto.AppendEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidInput("request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.entryService.Append(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Entry stored", res))
}
