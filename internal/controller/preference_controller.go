package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/dto"
	"reflecta-be/internal/pkg/serverutils"
	"reflecta-be/internal/service"
)

type IPreferenceController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type preferenceController struct {
	preferenceService service.IPreferenceService
}

func NewPreferenceController(preferenceService service.IPreferenceService) IPreferenceController {
	return &preferenceController{
		preferenceService: preferenceService,
	}
}

func (c *preferenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/preference/v1")
	h.Get("", c.Get)
	h.Put("", c.Update)
	h.Post("reset", c.Reset)
}

func (c *preferenceController) Get(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Query("userId"))
	if err != nil {
		return apperror.InvalidInput("userId")
	}

	res, err := c.preferenceService.Get(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Preferences loaded", res))
}

func (c *preferenceController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdatePreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidInput("request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.preferenceService.Update(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Preferences updated", nil))
}

func (c *preferenceController) Reset(ctx *fiber.Ctx) error {
	var req dto.ResetPreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidInput("request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.preferenceService.Reset(ctx.Context(), req.UserId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Preferences reset", nil))
}
