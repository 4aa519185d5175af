package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("unit-test-secret")

func signed(t *testing.T, secret []byte, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return s
}

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/admin", NewJwtMiddleware(testSecret, RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", c.Locals("user_id")))
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", 401},
		{"not bearer", "Basic abc", 401},
		{"garbage token", "Bearer abc.def.ghi", 401},
		{"wrong secret", "Bearer " + signed(t, []byte("other"), jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin", "exp": exp}), 401},
		{"expired", "Bearer " + signed(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(-time.Minute).Unix()}), 401},
		{"other algorithm", "Bearer " + signed(t, testSecret, jwt.SigningMethodHS512, jwt.MapClaims{"role": "admin", "exp": exp}), 401},
		{"wrong role", "Bearer " + signed(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "user", "exp": exp}), 403},
		{"admin", "Bearer " + signed(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "admin", "role": "admin", "exp": exp}), 200},
	}

	app := protectedApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

type createRecordRequest struct {
	Title    string `json:"title" validate:"required,max=10"`
	Category string `json:"category" validate:"required"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(createRecordRequest{Title: "Mad", Category: "Hukum Mad"}))

	err := ValidateRequest(createRecordRequest{Title: "a title that is too long"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "must be at most 10 characters", vErr.Fields["Title"])
	assert.Equal(t, "is required", vErr.Fields["Category"])
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/validation", func(c *fiber.Ctx) error {
		return ValidateRequest(createRecordRequest{})
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "record not found")
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return errors.New("pq: connection refused")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/validation", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/internal", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out BaseResponse[any]
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Internal server error", out.Message)
	assert.NotContains(t, string(body), "pq:")
}
