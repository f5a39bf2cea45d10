package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"persona-chat-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func signTestToken(t *testing.T, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func newExportTestApp() *fiber.App {
	app := fiber.New()
	NewExportController().RegisterRoutes(app.Group("/api"))
	return app
}

func TestExportPdfRequiresAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newExportTestApp()

	req := httptest.NewRequest("POST", "/api/export/pdf", bytes.NewBufferString(`{"content":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExportPdf(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newExportTestApp()

	body, _ := json.Marshal(dto.ExportPdfRequest{
		Content:  "First paragraph.\n\nSecond paragraph.",
		Title:    "Exported Chat",
		Filename: "chat.pdf",
	})
	req := httptest.NewRequest("POST", "/api/export/pdf", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "test-secret"))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="chat.pdf"`)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "response should be a PDF document")
}

func TestExportPdfMissingContent(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newExportTestApp()

	req := httptest.NewRequest("POST", "/api/export/pdf", bytes.NewBufferString(`{"title":"no body"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "test-secret"))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
