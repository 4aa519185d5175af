package controller

import (
	"errors"
	"strconv"
	"time"

	"tajwid-pintar-be/internal/dto"
	"tajwid-pintar-be/internal/pkg/serverutils"
	"tajwid-pintar-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ClientSessionHeader identifies a browser session for the login lockout.
// Clients without it are keyed by IP.
const ClientSessionHeader = "X-Client-Session"

type IAdminAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	LockoutStatus(ctx *fiber.Ctx) error
}

type adminAuthController struct {
	adminAuthService service.IAdminAuthService
}

func NewAdminAuthController(adminAuthService service.IAdminAuthService) IAdminAuthController {
	return &adminAuthController{
		adminAuthService: adminAuthService,
	}
}

func (c *adminAuthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Post("login", c.Login)
	h.Get("lockout", c.LockoutStatus)
}

func clientKey(ctx *fiber.Ctx) string {
	if key := ctx.Get(ClientSessionHeader); key != "" {
		return "session:" + key
	}
	return "ip:" + ctx.IP()
}

func (c *adminAuthController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminAuthService.Login(ctx.Context(), clientKey(ctx), &req)
	if err != nil {
		var rejected *service.LoginRejectedError
		if errors.As(err, &rejected) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.BaseResponse[dto.LockoutStatusResponse]{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid credentials",
				Data:    dto.LockoutStatusResponse{RemainingAttempts: rejected.RemainingAttempts},
			})
		}

		var locked *service.LockedOutError
		if errors.As(err, &locked) {
			seconds := int((locked.RetryAfter + time.Second - 1) / time.Second)
			ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
			return ctx.Status(fiber.StatusTooManyRequests).JSON(serverutils.BaseResponse[dto.LockoutStatusResponse]{
				Code:    fiber.StatusTooManyRequests,
				Message: "Too many failed attempts",
				Data:    dto.LockoutStatusResponse{Locked: true, RetryAfterSeconds: seconds},
			})
		}

		return httpError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Login success", res))
}

func (c *adminAuthController) LockoutStatus(ctx *fiber.Ctx) error {
	res, err := c.adminAuthService.LockoutStatus(ctx.Context(), clientKey(ctx))
	if err != nil {
		return httpError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get lockout status", res))
}
