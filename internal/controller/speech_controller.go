package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISpeechController interface {
	RegisterRoutes(r fiber.Router)
	ListVoices(ctx *fiber.Ctx) error
	ListLanguages(ctx *fiber.Ctx) error
	Synthesize(ctx *fiber.Ctx) error
	GetAudio(ctx *fiber.Ctx) error
	DeleteAudio(ctx *fiber.Ctx) error
}

type speechController struct {
	service service.ISpeechService
	auth    fiber.Handler
}

func NewSpeechController(service service.ISpeechService, auth fiber.Handler) ISpeechController {
	return &speechController{service: service, auth: auth}
}

func (c *speechController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/speech/v1")
	h.Use(c.auth)
	h.Get("voices", c.ListVoices)
	h.Get("languages", c.ListLanguages)
	h.Post("synthesize", c.Synthesize)
	h.Get("audio/:filename", c.GetAudio)
	h.Delete("audio/:filename", c.DeleteAudio)
}

func (c *speechController) ListVoices(ctx *fiber.Ctx) error {
	res, err := c.service.ListVoices(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list voices", res))
}

func (c *speechController) ListLanguages(ctx *fiber.Ctx) error {
	res, err := c.service.ListLanguages(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list languages", res))
}

func (c *speechController) Synthesize(ctx *fiber.Ctx) error {
	var req dto.SynthesizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Synthesize(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success synthesize speech", res))
}

func (c *speechController) GetAudio(ctx *fiber.Ctx) error {
	path, err := c.service.GetAudioPath(ctx.Params("filename"))
	if err != nil {
		return err
	}

	return ctx.SendFile(path)
}

func (c *speechController) DeleteAudio(ctx *fiber.Ctx) error {
	if err := c.service.DeleteAudio(ctx.Params("filename")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete audio", nil))
}
