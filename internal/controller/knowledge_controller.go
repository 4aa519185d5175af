package controller

import (
	"strconv"

	"tajwid-pintar-be/internal/dto"
	"tajwid-pintar-be/internal/pkg/serverutils"
	"tajwid-pintar-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router, admin fiber.Handler)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Categories(ctx *fiber.Ctx) error
	GetAudio(ctx *fiber.Ctx) error
	PutAudio(ctx *fiber.Ctx) error
	DeleteAudio(ctx *fiber.Ctx) error
	Transcribe(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{
		knowledgeService: knowledgeService,
	}
}

// Categories and clip playback are public, everything else needs an admin
// token.
func (c *knowledgeController) RegisterRoutes(r fiber.Router, admin fiber.Handler) {
	h := r.Group("/knowledge/v1")
	h.Get("categories", c.Categories)
	h.Post("transcribe", admin, c.Transcribe)
	h.Get(":id/audio", c.GetAudio)
	h.Put(":id/audio", admin, c.PutAudio)
	h.Delete(":id/audio", admin, c.DeleteAudio)
	h.Get("", admin, c.List)
	h.Post("", admin, c.Create)
	h.Get(":id", admin, c.Show)
	h.Put(":id", admin, c.Update)
	h.Delete(":id", admin, c.Delete)
}

func recordID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid knowledge id")
	}
	return id, nil
}

func (c *knowledgeController) List(ctx *fiber.Ctx) error {
	var req dto.ListKnowledgeRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.List(ctx.Context(), &req)
	if err != nil {
		return httpError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list knowledge", res))
}

func (c *knowledgeController) Show(ctx *fiber.Ctx) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}

	res, err := c.knowledgeService.Show(ctx.Context(), id)
	if err != nil {
		return httpError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show knowledge", res))
}

func (c *knowledgeController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateKnowledgeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.Create(ctx.Context(), &req)
	if err != nil {
		return httpError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create knowledge", res))
}

func (c *knowledgeController) Update(ctx *fiber.Ctx) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateKnowledgeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.Update(ctx.Context(), id, &req)
	if err != nil {
		return httpError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update knowledge", res))
}

func (c *knowledgeController) Delete(ctx *fiber.Ctx) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}

	if err := c.knowledgeService.Delete(ctx.Context(), id); err != nil {
		return httpError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete knowledge", nil))
}

func (c *knowledgeController) Categories(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get categories", c.knowledgeService.Categories()))
}

func (c *knowledgeController) GetAudio(ctx *fiber.Ctx) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}

	clip, err := c.knowledgeService.GetAudio(ctx.Context(), id)
	if err != nil {
		return httpError(err)
	}

	ctx.Set(fiber.HeaderContentType, clip.MimeType)
	ctx.Set(fiber.HeaderContentLength, strconv.Itoa(len(clip.Data)))
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	return ctx.Send(clip.Data)
}

// PutAudio takes the clip as multipart field "audio".
func (c *knowledgeController) PutAudio(ctx *fiber.Ctx) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}

	clip, err := formMedia(ctx, "audio")
	if err != nil {
		return err
	}
	if clip == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Audio file is required")
	}

	if err := c.knowledgeService.PutAudio(ctx.Context(), id, *clip); err != nil {
		return httpError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Audio saved", nil))
}

func (c *knowledgeController) DeleteAudio(ctx *fiber.Ctx) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}

	if err := c.knowledgeService.DeleteAudio(ctx.Context(), id); err != nil {
		return httpError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Audio deleted", nil))
}

// Transcribe takes a photographed page as multipart field "image".
func (c *knowledgeController) Transcribe(ctx *fiber.Ctx) error {
	image, err := formMedia(ctx, "image")
	if err != nil {
		return err
	}
	if image == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Image file is required")
	}

	res, err := c.knowledgeService.Transcribe(ctx.Context(), *image)
	if err != nil {
		return httpError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success transcribe image", res))
}
