package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eduadmin/enroll/internal/app/models/dto"
	"github.com/eduadmin/enroll/internal/app/services"
	"github.com/eduadmin/enroll/internal/middleware"
)

// PaymentController handles checkout endpoints
type PaymentController struct {
	paymentService *services.PaymentService
	logger         zerolog.Logger
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService *services.PaymentService, logger zerolog.Logger) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         logger,
	}
}

// CreateCheckout starts a hosted checkout for a course
// @Summary Start a checkout
// @Description Records a pending payment and returns the hosted checkout URL the client should redirect to.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Checkout details"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 502 {object} dto.ErrorResponse "Checkout provider unavailable"
// @Router /payments/checkout [post]
func (c *PaymentController) CreateCheckout(ctx *gin.Context) {
	var req dto.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.paymentService.CreateCheckout(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// CompleteCheckout marks the payment behind a checkout session as paid
// @Summary Complete a checkout
// @Description Called after the provider redirects back with the checkout session identifier.
// @Tags payments
// @Produce json
// @Param sessionId path string true "Checkout session ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Router /payments/checkout/{sessionId}/complete [post]
func (c *PaymentController) CompleteCheckout(ctx *gin.Context) {
	if err := c.paymentService.CompleteCheckout(ctx.Request.Context(), ctx.Param("sessionId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Payment completed"})
}
