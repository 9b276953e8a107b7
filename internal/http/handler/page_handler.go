package handler

import (
	"context"
	"time"

	"github.com/drivefetch/drivefetch/internal/app/service"
	"github.com/drivefetch/drivefetch/internal/http/middleware"
	"github.com/drivefetch/drivefetch/internal/http/view"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PageDeps groups dependencies required by the page handlers.
type PageDeps struct {
	Logger        *zap.Logger
	Converter     *service.Converter
	Theme         *service.ThemeService
	Postgres      *pgxpool.Pool
	DisplayWindow time.Duration
	FadeDelay     time.Duration
}

// PageHandler serves the converter page and the health endpoint.
type PageHandler struct {
	logger        *zap.Logger
	converter     *service.Converter
	theme         *service.ThemeService
	postgres      *pgxpool.Pool
	displayWindow time.Duration
	fadeDelay     time.Duration
}

// NewPageHandler creates a page handler with the provided dependencies.
func NewPageHandler(deps PageDeps) *PageHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{
		logger:        logger,
		converter:     deps.Converter,
		theme:         deps.Theme,
		postgres:      deps.Postgres,
		displayWindow: deps.DisplayWindow,
		fadeDelay:     deps.FadeDelay,
	}
}

// Register wires page routes onto the provided router.
func (h *PageHandler) Register(router fiber.Router) {
	router.Get("/", h.Page)
	router.Get("/health", h.Health)
}

// Page handles GET / and renders the converter UI with the saved theme applied.
func (h *PageHandler) Page(c *fiber.Ctx) error {
	sessionID := middleware.SessionID(c)

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	html, err := view.RenderConverterPage(view.ConverterPageData{
		Dark:            h.theme.Dark(ctx, sessionID),
		OutputLink:      h.converter.Output(sessionID),
		DisplayWindowMS: h.displayWindow.Milliseconds(),
		FadeDelayMS:     h.fadeDelay.Milliseconds(),
	})
	if err != nil {
		h.logger.Error("failed to render converter page", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render page",
		})
	}

	return c.
		Type("html", "utf-8").
		SendString(html)
}

// Health reports service status, including database reachability.
func (h *PageHandler) Health(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}

	dbStatus := "ok"
	if h.postgres != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.postgres.Ping(pingCtx); err != nil {
			dbStatus = "unreachable"
		}
	}

	return c.JSON(fiber.Map{
		"service":  "DriveFetch",
		"status":   "ok",
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
