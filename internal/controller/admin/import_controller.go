package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/middleware"
	"github.com/kofiasare/pasco/internal/service"
	"github.com/rs/zerolog/log"
)

type ImportController struct {
	importService service.ImportService
}

func NewImportController(is service.ImportService) *ImportController {
	return &ImportController{importService: is}
}

// ImportQuestions godoc
// @Summary (Admin) Bulk import questions from CSV
// @Description Uploads a CSV of questions. Rows are processed independently: bad rows are reported, the rest are imported. Pass ?preview=true to validate without writing anything.
// @Tags Admin - Imports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param preview query bool false "Validate only, import nothing"
// @Success 200 {object} dto.ImportReportDTO
// @Failure 400 {object} dto.ErrorResponse "Missing file or malformed CSV"
// @Router /admin/imports/questions [post]
func (c *ImportController) ImportQuestions(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "A CSV file is required under the 'file' form field"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read uploaded file", Details: []string{err.Error()}})
		return
	}
	defer file.Close()

	preview := ctx.Query("preview") == "true"
	var report *dto.ImportReportDTO
	if preview {
		report, err = c.importService.PreviewImport(file, fileHeader.Filename)
	} else {
		userID := middleware.UserID(ctx)
		report, err = c.importService.ImportQuestions(file, fileHeader.Filename, &userID)
	}
	if err != nil {
		log.Warn().Err(err).Str("filename", fileHeader.Filename).Bool("preview", preview).Msg("Admin ImportQuestions: Service error")
		ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, report)
}
