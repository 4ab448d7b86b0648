package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(qs service.QuestionService) *QuestionController {
	return &QuestionController{questionService: qs}
}

// CreateQuestion godoc
// @Summary (Admin) Create a question
// @Description Creates a question with its options and topic links. Exactly one option must be marked correct.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question body dto.QuestionCreateDTO true "Question with options and optional topic ids"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid options or topics"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.CreateQuestion(req)
	if err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuestion: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Description Replaces the question's fields, options and topic links.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param question body dto.QuestionUpdateDTO true "Updated question"
// @Success 200 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}

	var req dto.QuestionUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.UpdateQuestion(id, req)
	if err != nil {
		log.Warn().Err(err).Str("questionID", id.String()).Msg("Admin UpdateQuestion: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// GetQuestion godoc
// @Summary (Admin) Get a question with options and topics
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} dto.AdminQuestionDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}
	question, err := c.questionService.GetQuestion(id)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// ListQuestions godoc
// @Summary (Admin) List all questions
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AdminQuestionDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	questions, err := c.questionService.ListQuestions()
	if err != nil {
		log.Error().Err(err).Msg("Admin ListQuestions: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: "Failed to retrieve questions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}
	if err := c.questionService.DeleteQuestion(id); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}
