package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"quickthumb/internal/errors"
	"quickthumb/internal/middleware"
	"quickthumb/internal/service"
)

// BillingHandler handles checkout and payment-webhook endpoints.
type BillingHandler struct {
	billingService service.BillingService
}

// NewBillingHandler creates a new billing handler.
func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// CheckoutRequest represents a credit purchase intent.
type CheckoutRequest struct {
	PackID string `json:"pack_id" validate:"required"`
}

// CheckoutResponse carries the redirect URL for the purchase.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// CreateCheckout godoc
// @Summary Start a credit pack purchase
// @Tags billing
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Pack selection"
// @Success 200 {object} CheckoutResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /create-checkout-session [post]
func (h *BillingHandler) CreateCheckout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	url, err := h.billingService.CreateCheckout(c.Request().Context(), middleware.CurrentUser(c), req.PackID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, CheckoutResponse{URL: url})
}

// Webhook godoc
// @Summary Payment processor callback
// @Tags billing
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /webhook [post]
func (h *BillingHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrWebhookPayload)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if err := h.billingService.ProcessWebhook(c.Request().Context(), payload, signature); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}
