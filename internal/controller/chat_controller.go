package controller

import (
	"tajwid-pintar-be/internal/dto"
	"tajwid-pintar-be/internal/pkg/serverutils"
	"tajwid-pintar-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	SendTurn(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

// Chat is public; sessions are identified by their unguessable id.
func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("sessions", c.CreateSession)
	h.Get("sessions/:id", c.GetHistory)
	h.Post("sessions/:id/turns", c.SendTurn)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateSession(ctx.Context())
	if err != nil {
		return httpError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetHistory(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return httpError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

// SendTurn accepts multipart fields text, image and audio. Image and audio
// are mutually exclusive.
func (c *chatController) SendTurn(ctx *fiber.Ctx) error {
	image, err := formMedia(ctx, "image")
	if err != nil {
		return err
	}
	audio, err := formMedia(ctx, "audio")
	if err != nil {
		return err
	}

	req := dto.SendTurnRequest{
		Text:  ctx.FormValue("text"),
		Image: image,
		Audio: audio,
	}

	res, err := c.chatService.SendTurn(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return httpError(err)
	}

	// A failed completion is still a turn: the apology is rendered and the
	// client may resend.
	message := "Success send turn"
	if res.Failed {
		message = "Completion failed"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
