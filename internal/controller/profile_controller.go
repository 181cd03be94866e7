package controller

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/pkg/serverutils"
	"reflecta-be/internal/service"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
}

func NewProfileController(profileService service.IProfileService) IProfileController {
	return &profileController{
		profileService: profileService,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Get(":name", c.Show)
}

func (c *profileController) Show(ctx *fiber.Ctx) error {
	raw := ctx.Params("name")
	if raw == "" {
		return apperror.InvalidInput("profile name")
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		return apperror.InvalidInput("profile name")
	}

	res, err := c.profileService.GetConfig(ctx.Context(), name)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile config", res))
}
