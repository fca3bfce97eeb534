package controller

import (
	"schoolscan_backend/internal/dataset"
	"schoolscan_backend/internal/service"
	"schoolscan_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type AttendanceController struct {
	GroupGuard
	AttendanceService *service.AttendanceService
}

func NewAttendanceController(attendanceService *service.AttendanceService, guard GroupGuard) *AttendanceController {
	return &AttendanceController{GroupGuard: guard, AttendanceService: attendanceService}
}

// mayRecordFor reports whether the caller mentors the group of every student
// being recorded.
func (c *AttendanceController) mayRecordFor(ctx *gin.Context, claims *util.Claims, inputs []service.AttendanceInput) bool {
	for _, in := range inputs {
		group, ok := c.studentGroup(ctx.Request.Context(), in.StudentID)
		if !ok || !c.mentorOwns(ctx.Request.Context(), claims, group) {
			return false
		}
	}
	return true
}

// @Summary Record a single attendance event
// @Tags attendance
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /attendance [post]
func (c *AttendanceController) Record(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.AttendanceInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.mayRecordFor(ctx, claims, []service.AttendanceInput{input}) {
		util.Forbidden(ctx)
		return
	}

	event, err := c.AttendanceService.Record(ctx.Request.Context(), claims.UserID, input)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, event)
}

// @Summary Record attendance for a whole block at once
// @Tags attendance
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /attendance/bulk [post]
func (c *AttendanceController) BulkRecord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req struct {
		Events []service.AttendanceInput `json:"events" binding:"required,min=1,dive"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.mayRecordFor(ctx, claims, req.Events) {
		util.Forbidden(ctx)
		return
	}

	created, err := c.AttendanceService.BulkRecord(ctx.Request.Context(), claims.UserID, req.Events)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, gin.H{"created": created})
}

// @Summary Attendance history for the authenticated student
// @Tags attendance
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "status filter"
// @Param category query string false "block filter"
// @Param from query string false "date lower bound (YYYY-MM-DD)"
// @Param to query string false "date upper bound (YYYY-MM-DD)"
// @Success 200 {object} util.Response
// @Router /attendance [get]
func (c *AttendanceController) ListOwn(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var filter dataset.Filter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	events, err := c.AttendanceService.ListForStudent(ctx.Request.Context(), claims.UserID, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.NewListResponse(events, len(events)))
}

// @Summary Attendance of a group on one day
// @Tags attendance
// @Produce json
// @Security ApiKeyAuth
// @Param date query string true "day (YYYY-MM-DD)"
// @Success 200 {object} util.Response
// @Router /groups/{id}/attendance [get]
func (c *AttendanceController) GroupDay(ctx *gin.Context) {
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

	date, err := util.ParseDate(ctx.Query("date"))
	if err != nil {
		util.BadRequest(ctx, "date: "+err.Error())
		return
	}

	events, err := c.AttendanceService.ListForGroupDay(ctx.Request.Context(), groupID, date)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.NewListResponse(events, len(events)))
}

// summaryRange reads from/to query params, defaulting to the last 30 days.
func summaryRange(ctx *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from, to := now.AddDate(0, 0, -30), now
	if s := ctx.Query("from"); s != "" {
		parsed, err := util.ParseDate(s)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}
	if s := ctx.Query("to"); s != "" {
		parsed, err := util.ParseDate(s)
		if err != nil {
			return from, to, err
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}

// @Summary Attendance rate for the authenticated student
// @Tags attendance
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /attendance/summary [get]
func (c *AttendanceController) OwnSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	from, to, err := summaryRange(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.AttendanceService.SummaryForStudent(ctx.Request.Context(), claims.UserID, from, to)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// @Summary Attendance rate for a group
// @Tags attendance
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /groups/{id}/attendance/summary [get]
func (c *AttendanceController) GroupSummary(ctx *gin.Context) {
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

	from, to, err := summaryRange(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.AttendanceService.SummaryForGroup(ctx.Request.Context(), groupID, from, to)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
