package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/service"
	"github.com/rs/zerolog/log"
)

// CatalogController handles the admin write side of the catalog hierarchy
// (exam levels, subjects, topics, papers).
type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(cs service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: cs}
}

// CreateExamLevel godoc
// @Summary (Admin) Create an exam level
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam_level body dto.ExamLevelCreateDTO true "Code and name"
// @Success 201 {object} model.ExamLevel
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Code already exists"
// @Router /admin/exam-levels [post]
func (c *CatalogController) CreateExamLevel(ctx *gin.Context) {
	var req dto.ExamLevelCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	level, err := c.catalogService.CreateExamLevel(req)
	if err != nil {
		log.Warn().Err(err).Str("code", req.Code).Msg("Admin CreateExamLevel: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, level)
}

// UpdateExamLevel godoc
// @Summary (Admin) Update an exam level
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam level ID"
// @Param exam_level body dto.ExamLevelCreateDTO true "Code and name"
// @Success 200 {object} model.ExamLevel
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exam-levels/{id} [put]
func (c *CatalogController) UpdateExamLevel(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam level ID format"})
		return
	}
	var req dto.ExamLevelCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	level, err := c.catalogService.UpdateExamLevel(id, req)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, level)
}

// DeleteExamLevel godoc
// @Summary (Admin) Delete an exam level
// @Tags Admin - Catalog
// @Security BearerAuth
// @Param id path int true "Exam level ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exam-levels/{id} [delete]
func (c *CatalogController) DeleteExamLevel(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam level ID format"})
		return
	}
	if err := c.catalogService.DeleteExamLevel(id); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateSubject godoc
// @Summary (Admin) Create a subject under an exam level
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subject body dto.SubjectCreateDTO true "Exam level, code and name"
// @Success 201 {object} model.Subject
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Exam level not found"
// @Router /admin/subjects [post]
func (c *CatalogController) CreateSubject(ctx *gin.Context) {
	var req dto.SubjectCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	subject, err := c.catalogService.CreateSubject(req)
	if err != nil {
		log.Warn().Err(err).Str("code", req.Code).Msg("Admin CreateSubject: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, subject)
}

// UpdateSubject godoc
// @Summary (Admin) Update a subject
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param subject body dto.SubjectCreateDTO true "Exam level, code and name"
// @Success 200 {object} model.Subject
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/subjects/{id} [put]
func (c *CatalogController) UpdateSubject(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid subject ID format"})
		return
	}
	var req dto.SubjectCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	subject, err := c.catalogService.UpdateSubject(id, req)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, subject)
}

// DeleteSubject godoc
// @Summary (Admin) Delete a subject
// @Tags Admin - Catalog
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/subjects/{id} [delete]
func (c *CatalogController) DeleteSubject(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid subject ID format"})
		return
	}
	if err := c.catalogService.DeleteSubject(id); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateTopic godoc
// @Summary (Admin) Create a topic within a subject
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param topic body dto.TopicCreateDTO true "Subject, name and optional code"
// @Success 201 {object} model.Topic
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /admin/topics [post]
func (c *CatalogController) CreateTopic(ctx *gin.Context) {
	var req dto.TopicCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	topic, err := c.catalogService.CreateTopic(req)
	if err != nil {
		log.Warn().Err(err).Str("name", req.Name).Msg("Admin CreateTopic: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, topic)
}

// UpdateTopic godoc
// @Summary (Admin) Update a topic
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param topic body dto.TopicCreateDTO true "Subject, name and optional code"
// @Success 200 {object} model.Topic
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/topics/{id} [put]
func (c *CatalogController) UpdateTopic(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid topic ID format"})
		return
	}
	var req dto.TopicCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	topic, err := c.catalogService.UpdateTopic(id, req)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, topic)
}

// DeleteTopic godoc
// @Summary (Admin) Delete a topic
// @Tags Admin - Catalog
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/topics/{id} [delete]
func (c *CatalogController) DeleteTopic(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid topic ID format"})
		return
	}
	if err := c.catalogService.DeleteTopic(id); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreatePaper godoc
// @Summary (Admin) Create a paper for a subject
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param paper body dto.PaperCreateDTO true "Subject, year and paper number"
// @Success 201 {object} model.Paper
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /admin/papers [post]
func (c *CatalogController) CreatePaper(ctx *gin.Context) {
	var req dto.PaperCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	paper, err := c.catalogService.CreatePaper(req)
	if err != nil {
		log.Warn().Err(err).Int("year", req.Year).Msg("Admin CreatePaper: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, paper)
}

// UpdatePaper godoc
// @Summary (Admin) Update a paper
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Param paper body dto.PaperCreateDTO true "Subject, year and paper number"
// @Success 200 {object} model.Paper
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/papers/{id} [put]
func (c *CatalogController) UpdatePaper(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid paper ID format"})
		return
	}
	var req dto.PaperCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	paper, err := c.catalogService.UpdatePaper(id, req)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// DeletePaper godoc
// @Summary (Admin) Delete a paper
// @Tags Admin - Catalog
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/papers/{id} [delete]
func (c *CatalogController) DeletePaper(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid paper ID format"})
		return
	}
	if err := c.catalogService.DeletePaper(id); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(val), nil
}
