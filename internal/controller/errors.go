package controller

import (
	"errors"

	"tajwid-pintar-be/internal/constant"
	"tajwid-pintar-be/internal/service"
	"tajwid-pintar-be/pkg/auth"
	"tajwid-pintar-be/pkg/llm"
	"tajwid-pintar-be/pkg/media"
	"tajwid-pintar-be/pkg/prompt"

	"github.com/gofiber/fiber/v2"
)

// httpError maps service errors onto fiber errors for ErrorHandlerMiddleware.
// Anything unknown is passed through and ends up as a 500.
func httpError(err error) error {
	var encErr *media.EncodingError
	var completionErr *llm.CompletionServiceError
	switch {
	case errors.As(err, &encErr):
		return fiber.NewError(fiber.StatusUnprocessableEntity, constant.ChatEncodingReplyV1)
	case errors.Is(err, prompt.ErrEmptyInput),
		errors.Is(err, prompt.ErrConflictingMedia),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, auth.ErrEmptyKey):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrKnowledgeNotFound),
		errors.Is(err, service.ErrAudioNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTurnInProgress):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.As(err, &completionErr):
		return fiber.NewError(fiber.StatusBadGateway, "Completion service unavailable")
	}
	return err
}
