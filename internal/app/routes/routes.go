package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduadmin/enroll/internal/app/controllers"
	"github.com/eduadmin/enroll/internal/pkg/metrics"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	onboardingController *controllers.OnboardingController,
	verificationController *controllers.VerificationController,
	paymentController *controllers.PaymentController,
) {
	// Operational endpoints live outside the API version group.
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/catalog", onboardingController.Catalog)

	// --- Registration wizard routes ---
	onboarding := v1.Group("/onboarding")
	{
		onboarding.POST("", onboardingController.Start)
		onboarding.GET("/:sessionId", onboardingController.Get)
		onboarding.DELETE("/:sessionId", onboardingController.Abandon)

		onboarding.PUT("/:sessionId/student", onboardingController.UpdateStudentInfo)
		onboarding.PUT("/:sessionId/academic", onboardingController.UpdateAcademicInfo)
		onboarding.PUT("/:sessionId/parent", onboardingController.UpdateParentInfo)

		onboarding.POST("/:sessionId/next", onboardingController.Next)
		onboarding.POST("/:sessionId/previous", onboardingController.Previous)
		onboarding.POST("/:sessionId/submit", onboardingController.Submit)

		// Phone verification sub-flow, scoped to a session.
		onboarding.POST("/:sessionId/verification/send", verificationController.SendCode)
		onboarding.POST("/:sessionId/verification/confirm", verificationController.ConfirmCode)
		onboarding.POST("/:sessionId/verification/back", verificationController.Back)
		onboarding.DELETE("/:sessionId/verification", verificationController.Cancel)
	}

	// --- Payment routes ---
	payments := v1.Group("/payments")
	{
		payments.POST("/checkout", paymentController.CreateCheckout)
		payments.POST("/checkout/:sessionId/complete", paymentController.CompleteCheckout)
	}
}
