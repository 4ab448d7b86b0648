package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/service"
	"github.com/rs/zerolog/log"
)

// CatalogController serves the public read side of the catalog so clients can
// build the exam level / subject / paper pickers before starting a quiz.
type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(cs service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: cs}
}

// ListExamLevels godoc
// @Summary List exam levels
// @Tags Catalog
// @Produce json
// @Success 200 {array} model.ExamLevel
// @Failure 500 {object} dto.ErrorResponse
// @Router /catalog/exam-levels [get]
func (c *CatalogController) ListExamLevels(ctx *gin.Context) {
	levels, err := c.catalogService.ListExamLevels()
	if err != nil {
		log.Error().Err(err).Msg("ListExamLevels: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: "Failed to retrieve exam levels", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, levels)
}

// GetExamLevel godoc
// @Summary Get one exam level with its subjects
// @Tags Catalog
// @Produce json
// @Param id path int true "Exam level ID"
// @Success 200 {object} model.ExamLevel
// @Failure 404 {object} dto.ErrorResponse
// @Router /catalog/exam-levels/{id} [get]
func (c *CatalogController) GetExamLevel(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam level ID format"})
		return
	}
	level, err := c.catalogService.GetExamLevel(id)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, level)
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Catalog
// @Produce json
// @Success 200 {array} model.Subject
// @Failure 500 {object} dto.ErrorResponse
// @Router /catalog/subjects [get]
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.catalogService.ListSubjects()
	if err != nil {
		log.Error().Err(err).Msg("ListSubjects: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: "Failed to retrieve subjects", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, subjects)
}

// GetSubject godoc
// @Summary Get one subject
// @Tags Catalog
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} model.Subject
// @Failure 404 {object} dto.ErrorResponse
// @Router /catalog/subjects/{id} [get]
func (c *CatalogController) GetSubject(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid subject ID format"})
		return
	}
	subject, err := c.catalogService.GetSubject(id)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, subject)
}

// ListPapers godoc
// @Summary List papers
// @Tags Catalog
// @Produce json
// @Success 200 {array} model.Paper
// @Failure 500 {object} dto.ErrorResponse
// @Router /catalog/papers [get]
func (c *CatalogController) ListPapers(ctx *gin.Context) {
	papers, err := c.catalogService.ListPapers()
	if err != nil {
		log.Error().Err(err).Msg("ListPapers: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: "Failed to retrieve papers", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, papers)
}

// GetPaper godoc
// @Summary Get one paper
// @Tags Catalog
// @Produce json
// @Param id path int true "Paper ID"
// @Success 200 {object} model.Paper
// @Failure 404 {object} dto.ErrorResponse
// @Router /catalog/papers/{id} [get]
func (c *CatalogController) GetPaper(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid paper ID format"})
		return
	}
	paper, err := c.catalogService.GetPaper(id)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(val), nil
}
