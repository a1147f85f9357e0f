package lookup

import (
	"net/url"
	"strings"

	"id-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for identifier lookups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the lookup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/lookup")
	group.Get("/stats", h.HandleStats)
	group.Get("/:identifier", h.HandleClassify)
	group.Post("/", h.HandleBatch)
}

// BatchRequest is the body of POST /lookup.
type BatchRequest struct {
	Identifiers []string `json:"identifiers"`
}

// HandleClassify classifies the identifier in the path.
func (h *Handler) HandleClassify(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := url.PathUnescape(c.Params("identifier"))
	if err != nil || strings.TrimSpace(id) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid identifier"})
	}

	resp, err := h.service.Classify(c.UserContext(), id)
	if err != nil {
		l.Warn("Lookup aborted", zap.String("identifier", id), zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}

	l.Debug("Identifier classified",
		zap.String("identifier", resp.Identifier),
		zap.String("namespace", resp.Namespace),
		zap.String("source", resp.Source),
	)
	return c.JSON(resp)
}

// HandleBatch classifies a list of identifiers.
func (h *Handler) HandleBatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body", "details": err.Error()})
	}
	if len(req.Identifiers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "identifiers must not be empty"})
	}
	if len(req.Identifiers) > MaxBatch {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "too many identifiers",
			"max":   MaxBatch,
		})
	}

	l.Info("Classifying batch", zap.Int("identifiers", len(req.Identifiers)))
	results, err := h.service.ClassifyBatch(c.UserContext(), req.Identifiers)
	if err != nil {
		l.Warn("Batch aborted", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"results": results})
}

// HandleStats reports the shared resolver state.
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats())
}
