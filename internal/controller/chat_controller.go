package controller

import (
	"github.com/gofiber/fiber/v2"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/dto"
	"reflecta-be/internal/pkg/serverutils"
	"reflecta-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Load(ctx *fiber.Ctx) error
	Respond(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("load", c.Load)
	h.Post("respond", c.Respond)
}

func (c *chatController) Load(ctx *fiber.Ctx) error {
	var req dto.LoadChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidInput("request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Load(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history loaded", res))
}

func (c *chatController) Respond(ctx *fiber.Ctx) error {
	var req dto.RespondRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidInput("request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Respond(ctx.Context(), req.SessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Reply generated", res))
}
