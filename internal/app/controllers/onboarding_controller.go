// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eduadmin/enroll/internal/app/models"
	"github.com/eduadmin/enroll/internal/app/models/dto"
	"github.com/eduadmin/enroll/internal/app/services"
	"github.com/eduadmin/enroll/internal/app/sessions"
	"github.com/eduadmin/enroll/internal/app/wizard"
	"github.com/eduadmin/enroll/internal/middleware"
	"github.com/eduadmin/enroll/internal/pkg/apperrors"
	"github.com/eduadmin/enroll/internal/pkg/validation"
)

// OnboardingController handles the registration wizard endpoints
type OnboardingController struct {
	onboardingService *services.OnboardingService
	logger            zerolog.Logger
}

// NewOnboardingController creates a new OnboardingController
func NewOnboardingController(onboardingService *services.OnboardingService, logger zerolog.Logger) *OnboardingController {
	return &OnboardingController{
		onboardingService: onboardingService,
		logger:            logger,
	}
}

// sessionResponse renders a session for the client under its lock.
func sessionResponse(sess *sessions.Session) dto.SessionResponse {
	var resp dto.SessionResponse
	_ = sess.WithLock(func(sess *sessions.Session) error {
		w := sess.Wizard
		resp = dto.SessionResponse{
			SessionID:     sess.ID,
			Step:          int(w.Step),
			Status:        string(w.Status),
			StepComplete:  wizard.StepComplete(w, w.Step),
			PhoneVerified: w.PhoneVerified,
			Draft: dto.DraftResponse{
				StudentName:   w.Draft.StudentName,
				StudentEmail:  w.Draft.StudentEmail,
				Grade:         w.Draft.Grade,
				SchoolName:    w.Draft.SchoolName,
				City:          w.Draft.City,
				Zipcode:       w.Draft.Zipcode,
				Subjects:      w.Draft.Subjects,
				OtherSubjects: w.Draft.OtherSubjects,
				ParentName:    w.Draft.ParentName,
				ParentEmail:   w.Draft.ParentEmail,
				ParentPhone:   w.Draft.ParentPhone,
			},
		}
		return nil
	})
	return resp
}

// rejectBadEmail returns true when a non-empty email fails validation.
// Empty emails pass here; completeness is enforced when advancing.
func rejectBadEmail(ctx *gin.Context, email string) bool {
	if email == "" {
		return false
	}
	if msg := validation.EmailValidationMessage(email); msg != "" {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrInvalidEmail, msg))
		return true
	}
	return false
}

// session resolves the :sessionId path parameter.
func (c *OnboardingController) session(ctx *gin.Context) (*sessions.Session, bool) {
	sess, err := c.onboardingService.Get(ctx.Param("sessionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return sess, true
}

// Start opens a new wizard session
// @Summary Start a registration
// @Description Opens a new three-step registration wizard session with an empty draft.
// @Tags onboarding
// @Produce json
// @Success 201 {object} dto.SessionResponse
// @Router /onboarding [post]
func (c *OnboardingController) Start(ctx *gin.Context) {
	sess := c.onboardingService.Start()
	ctx.JSON(http.StatusCreated, sessionResponse(sess))
}

// Get returns the current wizard state
// @Summary Get a registration session
// @Tags onboarding
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /onboarding/{sessionId} [get]
func (c *OnboardingController) Get(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, sessionResponse(sess))
}

// Abandon discards a session and its draft
// @Summary Abandon a registration
// @Tags onboarding
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /onboarding/{sessionId} [delete]
func (c *OnboardingController) Abandon(ctx *gin.Context) {
	if err := c.onboardingService.Abandon(ctx.Param("sessionId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Registration abandoned"})
}

// UpdateStudentInfo saves the first step's fields
// @Summary Save student info
// @Description Saves the student's name, email and password into the draft. Partial input is accepted; completeness is checked when advancing.
// @Tags onboarding
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.StudentInfoRequest true "Student fields"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} dto.ErrorResponse "Not the active step"
// @Router /onboarding/{sessionId}/student [put]
func (c *OnboardingController) UpdateStudentInfo(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	var req dto.StudentInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	if rejectBadEmail(ctx, req.Email) {
		return
	}

	if err := c.onboardingService.UpdateStudentInfo(sess, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessionResponse(sess))
}

// UpdateAcademicInfo saves the second step's fields
// @Summary Save academic info
// @Tags onboarding
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.AcademicInfoRequest true "Academic fields"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} dto.ErrorResponse "Not the active step"
// @Router /onboarding/{sessionId}/academic [put]
func (c *OnboardingController) UpdateAcademicInfo(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	var req dto.AcademicInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.onboardingService.UpdateAcademicInfo(sess, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessionResponse(sess))
}

// UpdateParentInfo saves the third step's fields
// @Summary Save parent info
// @Tags onboarding
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.ParentInfoRequest true "Parent fields"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} dto.ErrorResponse "Not the active step"
// @Router /onboarding/{sessionId}/parent [put]
func (c *OnboardingController) UpdateParentInfo(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	var req dto.ParentInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	if rejectBadEmail(ctx, req.Email) {
		return
	}

	if err := c.onboardingService.UpdateParentInfo(sess, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessionResponse(sess))
}

// Next advances the wizard one step
// @Summary Advance to the next step
// @Description Moves forward when the active step's fields are complete and valid.
// @Tags onboarding
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Current step incomplete"
// @Router /onboarding/{sessionId}/next [post]
func (c *OnboardingController) Next(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	if err := c.onboardingService.Next(sess); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessionResponse(sess))
}

// Previous moves the wizard back one step
// @Summary Return to the previous step
// @Description Moves back without discarding any entered data.
// @Tags onboarding
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} dto.ErrorResponse "Already on the first step"
// @Router /onboarding/{sessionId}/previous [post]
func (c *OnboardingController) Previous(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	if err := c.onboardingService.Previous(sess); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessionResponse(sess))
}

// Submit finalizes the registration
// @Summary Submit the registration
// @Description Creates the account, student and parent records from the completed draft and returns an access token.
// @Tags onboarding
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 201 {object} dto.RegistrationResultResponse
// @Failure 400 {object} dto.ErrorResponse "Draft incomplete"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /onboarding/{sessionId}/submit [post]
func (c *OnboardingController) Submit(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	result, err := c.onboardingService.Submit(ctx.Request.Context(), sess)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// Catalog lists the offered grades and subjects
// @Summary Get the enrollment catalog
// @Tags onboarding
// @Produce json
// @Success 200 {object} dto.CatalogResponse
// @Router /catalog [get]
func (c *OnboardingController) Catalog(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.CatalogResponse{
		Grades:   models.Grades,
		Subjects: models.SubjectCatalog,
	})
}
