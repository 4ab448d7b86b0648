package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/middleware"
	"github.com/kofiasare/pasco/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	attemptService service.AttemptService
	gradingService service.GradingService
	reviewService  service.ReviewService
}

func NewQuizController(as service.AttemptService, gs service.GradingService, rs service.ReviewService) *QuizController {
	return &QuizController{attemptService: as, gradingService: gs, reviewService: rs}
}

// CreateAttempt godoc
// @Summary Start a new quiz attempt
// @Description Samples random questions for the chosen subject or paper and opens a timed attempt. Correct answers are never included in the response.
// @Tags Quiz Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt body dto.AttemptCreateDTO true "Scope (subject_id or paper_id), question count and duration"
// @Success 201 {object} dto.AttemptCreateResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid scope or not enough questions"
// @Failure 404 {object} dto.ErrorResponse "Subject or paper not found"
// @Router /quiz/attempts [post]
func (c *QuizController) CreateAttempt(ctx *gin.Context) {
	var req dto.AttemptCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	userID := middleware.UserID(ctx)
	attempt, err := c.attemptService.CreateAttempt(userID, req)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID.String()).Msg("CreateAttempt: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, attempt)
}

// SubmitAttempt godoc
// @Summary Submit answers for an attempt
// @Description Grades every sampled question deterministically. Omitted questions count as wrong. An attempt can only be submitted once.
// @Tags Quiz Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attempt ID"
// @Param submission body dto.AttemptSubmitDTO true "Selected option per question"
// @Success 200 {object} dto.AttemptSubmitResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Already submitted, expired, or invalid option"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{id}/submit [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	attemptID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid attempt ID format"})
		return
	}

	var req dto.AttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	userID := middleware.UserID(ctx)
	result, err := c.gradingService.Submit(attemptID, userID, req.Answers)
	if err != nil {
		log.Warn().Err(err).Str("attemptID", attemptID.String()).Msg("SubmitAttempt: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListMyAttempts godoc
// @Summary List the caller's quiz attempts
// @Description Returns summaries of every attempt the authenticated user has started, newest first.
// @Tags Quiz Attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /attempts/mine [get]
func (c *QuizController) ListMyAttempts(ctx *gin.Context) {
	userID := middleware.UserID(ctx)
	attempts, err := c.reviewService.ListAttempts(userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("ListMyAttempts: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: "Failed to retrieve attempts", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetAttempt godoc
// @Summary Get a single attempt summary
// @Tags Quiz Attempts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{id} [get]
func (c *QuizController) GetAttempt(ctx *gin.Context) {
	attemptID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid attempt ID format"})
		return
	}

	attempt, err := c.attemptService.GetAttempt(attemptID)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	if attempt.UserID != middleware.UserID(ctx) {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: apperr.ErrForbidden.Error()})
		return
	}
	summary, err := c.attemptService.GetAttemptSummary(attemptID)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// ReviewAttempt godoc
// @Summary Review a completed attempt
// @Description Full question-by-question review including correct answers, the user's selections and explanations. Only available to the attempt owner.
// @Tags Quiz Attempts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptReviewDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{id}/review [get]
func (c *QuizController) ReviewAttempt(ctx *gin.Context) {
	attemptID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid attempt ID format"})
		return
	}

	review, err := c.reviewService.ReviewAttempt(attemptID, middleware.UserID(ctx))
	if err != nil {
		log.Warn().Err(err).Str("attemptID", attemptID.String()).Msg("ReviewAttempt: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, review)
}
