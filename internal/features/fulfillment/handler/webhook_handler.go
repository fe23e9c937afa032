package handler

import (
	"net/http"
	"strings"

	"shipment-sync/internal/core/logger"
	"shipment-sync/internal/core/metrics"
	"shipment-sync/internal/features/fulfillment/domain"
	"shipment-sync/internal/features/fulfillment/ports"
	shipments "shipment-sync/internal/features/shipments/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Route labels used in logs and metrics.
const (
	RouteWebhook = "webhook"
	RouteManual  = "manual"
)

// WebhookHandler handles shipment events from BasitKargo and operators.
type WebhookHandler struct {
	processor ports.EventProcessor
}

// NewWebhookHandler creates a new instance of WebhookHandler.
func NewWebhookHandler(p ports.EventProcessor) *WebhookHandler {
	return &WebhookHandler{
		processor: p,
	}
}

// ManualShipRequest is the simplified payload accepted by the manual routes.
// Every field is optional; id triggers a BasitKargo lookup, the others are used as is.
type ManualShipRequest struct {
	ID             string `json:"id,omitempty"`
	OrderName      string `json:"orderName,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
	TrackingURL    string `json:"trackingUrl,omitempty"`
}

func (r ManualShipRequest) document() shipments.Document {
	doc := shipments.Document{}
	set := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			doc[key] = v
		}
	}
	set("id", r.ID)
	set("orderName", r.OrderName)
	set("trackingNumber", r.TrackingNumber)
	set("carrier", r.Carrier)
	set("trackingUrl", r.TrackingURL)
	return doc
}

// BasitKargoWebhook handles a provider status notification.
// @Summary BasitKargo webhook
// @Description Applies the shipment's tracking number to the matching Shopify order. Responds in plain text.
// @Tags Webhook
// @Accept json
// @Produce plain
// @Param key query string true "Webhook key"
// @Param event body object true "BasitKargo event"
// @Success 200 {string} string "Outcome message"
// @Failure 400 {string} string "Handled failure"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Upstream failure"
// @Router /basitkargo-webhook [post]
func (h *WebhookHandler) BasitKargoWebhook(c *fiber.Ctx) error {
	raw, err := shipments.ParseDocument(c.Body())
	if err != nil {
		return c.Status(http.StatusBadRequest).SendString("Invalid JSON payload: " + err.Error())
	}
	return h.process(c, RouteWebhook, shipments.NewShipmentEvent(raw))
}

// ManualShip replays a shipment by hand with the status forced to SHIPPED.
// @Summary Manual shipment replay
// @Description Operator route. Accepts a simplified payload and always treats it as SHIPPED.
// @Tags Webhook
// @Accept json
// @Produce plain
// @Param key query string true "Webhook key"
// @Param request body ManualShipRequest true "Manual payload"
// @Success 200 {string} string "Outcome message"
// @Failure 400 {string} string "Handled failure"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Upstream failure"
// @Router /manual-ship [post]
// @Router /manual-bk [post]
func (h *WebhookHandler) ManualShip(c *fiber.Ctx) error {
	var req ManualShipRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).SendString("Invalid request body")
		}
	}
	ev := shipments.NewShipmentEvent(req.document()).WithStatus(shipments.StatusShipped)
	return h.process(c, RouteManual, ev)
}

func (h *WebhookHandler) process(c *fiber.Ctx, route string, ev shipments.ShipmentEvent) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	outcome, err := h.processor.Process(c.UserContext(), ev)
	if err != nil {
		metrics.Outcomes.WithLabelValues(route, "ERROR").Inc()
		logger.Get().Error("Failed to process shipment event",
			zap.String("route", route),
			zap.String("remote_order_id", ev.RemoteOrderID),
			zap.String("ray_id", rayID),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).SendString(err.Error())
	}

	metrics.Outcomes.WithLabelValues(route, string(outcome.State)).Inc()
	logger.Get().Info("Shipment event processed",
		zap.String("route", route),
		zap.String("state", string(outcome.State)),
		zap.String("ray_id", rayID),
	)

	return c.Status(statusFor(outcome)).SendString(outcome.Message)
}

func statusFor(o domain.Outcome) int {
	if o.OK {
		return http.StatusOK
	}
	return http.StatusBadRequest
}
