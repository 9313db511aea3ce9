package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eduadmin/enroll/internal/app/models/dto"
	"github.com/eduadmin/enroll/internal/app/services"
	"github.com/eduadmin/enroll/internal/app/sessions"
	"github.com/eduadmin/enroll/internal/middleware"
)

// VerificationController handles the phone verification sub-flow endpoints
type VerificationController struct {
	onboardingService   *services.OnboardingService
	verificationService *services.VerificationService
	logger              zerolog.Logger
}

// NewVerificationController creates a new VerificationController
func NewVerificationController(
	onboardingService *services.OnboardingService,
	verificationService *services.VerificationService,
	logger zerolog.Logger,
) *VerificationController {
	return &VerificationController{
		onboardingService:   onboardingService,
		verificationService: verificationService,
		logger:              logger,
	}
}

func (c *VerificationController) session(ctx *gin.Context) (*sessions.Session, bool) {
	sess, err := c.onboardingService.Get(ctx.Param("sessionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return sess, true
}

// SendCode sends a verification code to a phone number
// @Summary Send a verification code
// @Description Normalizes the submitted number, texts a one-time code to it and moves the sub-flow to the code entry state.
// @Tags verification
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.SendCodeRequest true "Phone number"
// @Success 200 {object} dto.VerificationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid phone number"
// @Failure 429 {object} dto.ErrorResponse "Resend too soon"
// @Failure 502 {object} dto.ErrorResponse "SMS delivery failed"
// @Router /onboarding/{sessionId}/verification/send [post]
func (c *VerificationController) SendCode(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	var req dto.SendCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	phone, err := c.verificationService.SubmitPhone(ctx.Request.Context(), sess, req.Phone)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.VerificationResponse{
		State: string(sess.Flow),
		Phone: phone,
	})
}

// ConfirmCode confirms the one-time code
// @Summary Confirm a verification code
// @Description Checks the submitted code against the outstanding challenge. On success the wizard accepts the number as verified.
// @Tags verification
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.ConfirmCodeRequest true "One-time code"
// @Success 200 {object} dto.VerificationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid OTP"
// @Failure 410 {object} dto.ErrorResponse "OTP has expired"
// @Router /onboarding/{sessionId}/verification/confirm [post]
func (c *VerificationController) ConfirmCode(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	var req dto.ConfirmCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	phone, err := c.verificationService.ConfirmCode(ctx.Request.Context(), sess, req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.VerificationResponse{
		State: string(sess.Flow),
		Phone: phone,
	})
}

// Back abandons the outstanding code and returns to number entry
// @Summary Go back to phone entry
// @Tags verification
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.VerificationResponse
// @Failure 409 {object} dto.ErrorResponse "No code outstanding"
// @Router /onboarding/{sessionId}/verification/back [post]
func (c *VerificationController) Back(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	if err := c.verificationService.Back(ctx.Request.Context(), sess); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.VerificationResponse{State: string(sess.Flow)})
}

// Cancel closes the verification sub-flow without verifying
// @Summary Cancel verification
// @Tags verification
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.VerificationResponse
// @Failure 409 {object} dto.ErrorResponse "Already verified"
// @Router /onboarding/{sessionId}/verification [delete]
func (c *VerificationController) Cancel(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	if err := c.verificationService.Cancel(ctx.Request.Context(), sess); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.VerificationResponse{State: string(sess.Flow)})
}
