package controller

import (
	"errors"
	"fmt"
	"io"

	"tajwid-pintar-be/pkg/media"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// formMedia reads an optional multipart file field. A missing field yields
// nil without error.
func formMedia(ctx *fiber.Ctx, field string) (*media.Payload, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid %s upload", field))
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &media.Payload{
		Bytes:    data,
		MimeType: header.Header.Get("Content-Type"),
		Name:     header.Filename,
	}, nil
}
