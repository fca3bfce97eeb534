package controller

import (
	"fmt"
	"net/http"
	"schoolscan_backend/internal/dataset"
	"schoolscan_backend/internal/service"
	"schoolscan_backend/internal/util"
	"schoolscan_backend/pkg/monitoring"
	"time"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	GroupGuard
	ExportService *service.ExportService
}

func NewExportController(exportService *service.ExportService, guard GroupGuard) *ExportController {
	return &ExportController{GroupGuard: guard, ExportService: exportService}
}

// writeCSV sends a document as a dated attachment download.
func writeCSV(ctx *gin.Context, collection, doc string) {
	filename := fmt.Sprintf("%s-%s.csv", collection, time.Now().Format(util.DateFormat))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	monitoring.ExportCounter.WithLabelValues(collection).Inc()
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(doc))
}

// @Summary Export a group's peer evaluations as CSV
// @Tags exports
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string
// @Router /groups/{id}/exports/evaluations [get]
func (c *ExportController) Evaluations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groupID := util.MustParseUint(ctx.Param("id"))
	if !c.mentorOwns(ctx.Request.Context(), claims, groupID) {
		util.Forbidden(ctx)
		return
	}

	var filter dataset.Filter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	doc, err := c.ExportService.EvaluationsCSV(ctx.Request.Context(), groupID, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	writeCSV(ctx, "evaluations", doc)
}

// @Summary Export a group's attendance as CSV
// @Tags exports
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string
// @Router /groups/{id}/exports/attendance [get]
func (c *ExportController) Attendance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groupID := util.MustParseUint(ctx.Param("id"))
	if !c.mentorOwns(ctx.Request.Context(), claims, groupID) {
		util.Forbidden(ctx)
		return
	}

	var filter dataset.Filter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	doc, err := c.ExportService.AttendanceCSV(ctx.Request.Context(), groupID, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	writeCSV(ctx, "attendance", doc)
}

// @Summary Export a scan window's competency scores as CSV
// @Tags exports
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string
// @Router /competency-windows/{id}/export [get]
func (c *ExportController) Competencies(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	doc, err := c.ExportService.CompetencyCSV(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	writeCSV(ctx, "competencies", doc)
}
