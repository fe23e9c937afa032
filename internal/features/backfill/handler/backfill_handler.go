package handler

import (
	"errors"
	"net/http"

	"shipment-sync/internal/core/logger"
	"shipment-sync/internal/features/backfill/domain"
	"shipment-sync/internal/features/backfill/ports"
	"shipment-sync/internal/features/backfill/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BackfillHandler handles HTTP requests that trigger a backfill run.
type BackfillHandler struct {
	runner ports.Runner
}

// NewBackfillHandler creates a new instance of BackfillHandler.
func NewBackfillHandler(r ports.Runner) *BackfillHandler {
	return &BackfillHandler{
		runner: r,
	}
}

// BackfillToday replays today's shipped orders.
// @Summary Backfill today's shipments
// @Description Pages through BasitKargo orders created in the window and applies tracking to each. The body is optional.
// @Tags Backfill
// @Accept json
// @Produce json
// @Param key query string true "Webhook key"
// @Param request body domain.Request false "Overrides"
// @Success 200 {object} domain.Report
// @Failure 400 {object} ErrorResponse
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {object} ErrorResponse
// @Router /backfill-today [post]
func (h *BackfillHandler) BackfillToday(c *fiber.Ctx) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	var req domain.Request
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "Invalid request body",
				RayID:   rayID,
			})
		}
	}

	report, err := h.runner.Run(c.UserContext(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}

		fields := []zap.Field{zap.String("ray_id", rayID), zap.Error(err)}
		if report != nil {
			fields = append(fields, zap.String("run_id", report.RunID), zap.Int("done", report.DoneCount))
		}
		logger.Get().Error("Backfill failed", fields...)

		return c.Status(status).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(report)
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}
