package handler

import (
	"context"
	"time"

	"github.com/drivefetch/drivefetch/internal/app/model"
	"github.com/drivefetch/drivefetch/internal/app/repository"
	"github.com/drivefetch/drivefetch/internal/app/service"
	"github.com/drivefetch/drivefetch/internal/http/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// APIDeps groups dependencies required by API handlers.
type APIDeps struct {
	Logger      *zap.Logger
	Converter   *service.Converter
	Notifier    *service.Notifier
	Theme       *service.ThemeService
	Conversions repository.ConversionRepository
	ListLimit   int
}

// APIHandler implements the converter API endpoints.
type APIHandler struct {
	logger      *zap.Logger
	converter   *service.Converter
	notifier    *service.Notifier
	theme       *service.ThemeService
	conversions repository.ConversionRepository
	listLimit   int
}

// NewAPIHandler creates an API handler with the provided dependencies.
func NewAPIHandler(deps APIDeps) *APIHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		logger:      logger,
		converter:   deps.Converter,
		notifier:    deps.Notifier,
		theme:       deps.Theme,
		conversions: deps.Conversions,
		listLimit:   deps.ListLimit,
	}
}

// Register wires API routes onto the provided router.
func (h *APIHandler) Register(router fiber.Router) {
	api := router.Group("/api")
	{
		api.Post("/convert", h.Convert)
		api.Post("/copy", h.Copy)
		api.Get("/status", h.Status)
		api.Get("/theme", h.GetTheme)
		api.Put("/theme", h.SetTheme)
		api.Get("/conversions", h.ListConversions)
	}
}

// ConvertRequest represents the request body for a generation attempt.
type ConvertRequest struct {
	Link string `json:"link"`
}

// ConvertResponse represents the outcome of a generation attempt.
type ConvertResponse struct {
	OutputLink  string       `json:"output_link"`
	CopyEnabled bool         `json:"copy_enabled"`
	Status      model.Status `json:"status"`
}

// Convert handles POST /api/convert
func (h *APIHandler) Convert(c *fiber.Ctx) error {
	var req ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	res := h.converter.Generate(ctx, middleware.SessionID(c), req.Link)

	return c.JSON(ConvertResponse{
		OutputLink:  res.OutputLink,
		CopyEnabled: res.CopyEnabled,
		Status:      res.Status,
	})
}

// CopyRequest reports the browser-side clipboard outcome.
type CopyRequest struct {
	Succeeded bool `json:"succeeded"`
}

// Copy handles POST /api/copy
func (h *APIHandler) Copy(c *fiber.Ctx) error {
	var req CopyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	status := h.converter.Copy(middleware.SessionID(c), req.Succeeded)

	return c.JSON(fiber.Map{
		"status": status,
	})
}

// Status handles GET /api/status
func (h *APIHandler) Status(c *fiber.Ctx) error {
	status, dismissing := h.notifier.Status(middleware.SessionID(c))
	return c.JSON(fiber.Map{
		"status":     status,
		"dismissing": dismissing,
	})
}

// ThemeResponse represents the persisted theme preference.
type ThemeResponse struct {
	Dark bool `json:"dark"`
}

// GetTheme handles GET /api/theme
func (h *APIHandler) GetTheme(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	return c.JSON(ThemeResponse{
		Dark: h.theme.Dark(ctx, middleware.SessionID(c)),
	})
}

// SetTheme handles PUT /api/theme
func (h *APIHandler) SetTheme(c *fiber.Ctx) error {
	var req ThemeResponse
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	sessionID := middleware.SessionID(c)
	if err := h.theme.SetDark(ctx, sessionID, req.Dark); err != nil {
		h.logger.Error("failed to save theme", zap.Error(err), zap.String("session_id", sessionID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save theme",
		})
	}

	return c.JSON(ThemeResponse{Dark: req.Dark})
}

// ConversionResponse represents one history entry.
type ConversionResponse struct {
	ID        string    `json:"id"`
	FileID    string    `json:"file_id"`
	OutputURL string    `json:"output_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ListConversions handles GET /api/conversions
func (h *APIHandler) ListConversions(c *fiber.Ctx) error {
	if h.conversions == nil {
		return c.JSON(fiber.Map{"conversions": []ConversionResponse{}, "count": 0})
	}

	limit := h.listLimit
	if parsed := c.QueryInt("limit"); parsed > 0 && parsed <= 100 {
		limit = parsed
	}

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	convs, err := h.conversions.ListRecent(ctx, limit)
	if err != nil {
		h.logger.Error("failed to list conversions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list conversions",
		})
	}

	response := make([]ConversionResponse, len(convs))
	for i, conv := range convs {
		response[i] = ConversionResponse{
			ID:        conv.ID,
			FileID:    conv.FileID,
			OutputURL: conv.OutputURL,
			CreatedAt: conv.CreatedAt,
		}
	}

	return c.JSON(fiber.Map{
		"conversions": response,
		"count":       len(response),
	})
}
