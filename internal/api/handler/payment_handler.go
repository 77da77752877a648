package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorship-api/internal/metrics"
	"github.com/mentorhub/mentorship-api/internal/core/domain"
	"github.com/mentorhub/mentorship-api/internal/core/ports"
)

// PaymentHandler exposes the payment surface for bookings: order creation,
// client-initiated verification, and the gateway webhook.
type PaymentHandler struct {
	service ports.BookingService
	logger  zerolog.Logger
}

func NewPaymentHandler(service ports.BookingService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, logger: logger}
}

type createOrderRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
}

type createOrderResponse struct {
	OrderID          string  `json:"order_id"`
	PaymentSessionID string  `json:"payment_session_id,omitempty"`
	PaymentURL       string  `json:"payment_url,omitempty"`
	OrderAmount      float64 `json:"order_amount"`
	OrderCurrency    string  `json:"order_currency"`
}

type verifyRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	OrderID   string `json:"order_id"`
}

type verifyResponse struct {
	PaymentStatus string `json:"payment_status"`
	BookingStatus string `json:"booking_status"`
	Verified      bool   `json:"verified"`
}

type webhookResponse struct {
	Success       bool   `json:"success"`
	BookingID     string `json:"booking_id,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

// CreateOrder opens a gateway order for the caller's pending booking.
//
// @Summary      Create a payment order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Booking to pay for"
// @Success      201   {object}  createOrderResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/payments/orders [post]
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.CreateOrder(c.Request().Context(), req.BookingID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createOrderResponse{
		OrderID:          result.OrderID,
		PaymentSessionID: result.PaymentSessionID,
		PaymentURL:       result.PaymentURL,
		OrderAmount:      result.OrderAmount,
		OrderCurrency:    result.OrderCurrency,
	})
}

// Verify polls the gateway for the order's status and applies the paid
// transition when observed. A gateway outage degrades to reporting the last
// persisted state with verified=false.
//
// @Summary      Verify a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      verifyRequest  true  "Booking and optional order id"
// @Success      200   {object}  verifyResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/payments/verify [post]
func (h *PaymentHandler) Verify(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Verify(c.Request().Context(), ports.VerifyInput{
		BookingID: req.BookingID,
		OrderID:   req.OrderID,
		CallerID:  userID,
		IsAdmin:   ctxRole(c) == domain.RoleAdmin,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, verifyResponse{
		PaymentStatus: string(result.PaymentStatus),
		BookingStatus: string(result.BookingStatus),
		Verified:      result.Verified,
	})
}

// Webhook receives asynchronous gateway notifications. It is unauthenticated
// and always acknowledges with 200 unless the payload is structurally
// invalid, so the gateway does not retry business-logic no-ops.
//
// @Summary      Payment gateway webhook
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  webhookResponse
// @Failure      400  {object}  map[string]string
// @Router       /v1/payments/webhook [post]
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable payload")
	}

	start := time.Now()
	result, err := h.service.HandleWebhook(c.Request().Context(), payload)
	if err != nil {
		metrics.WebhookProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		if errors.Is(err, domain.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		// Persistence failures get a 5xx so the gateway retries later.
		return err
	}
	outcome := string(result.PaymentStatus)
	if outcome == "" {
		outcome = "none"
	}
	metrics.WebhookProcessingDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if !result.Applied {
		h.logger.Info().
			Str("booking_id", result.BookingID).
			Str("subscription_id", result.SubscriptionID).
			Msg("webhook acknowledged as no-op")
	}

	return c.JSON(http.StatusOK, webhookResponse{
		Success:       true,
		BookingID:     result.BookingID,
		PaymentStatus: string(result.PaymentStatus),
	})
}
