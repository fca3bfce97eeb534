package controller

import (
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/service"
	"schoolscan_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type CompetencyController struct {
	GroupGuard
	CompetencyService *service.CompetencyService
	DashboardService  *service.DashboardService
}

func NewCompetencyController(
	competencyService *service.CompetencyService,
	dashboardService *service.DashboardService,
	guard GroupGuard,
) *CompetencyController {
	return &CompetencyController{
		GroupGuard:        guard,
		CompetencyService: competencyService,
		DashboardService:  dashboardService,
	}
}

type windowRequest struct {
	ClassGroup uint   `json:"classGroupId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
}

// @Summary Open a competency scan window for a group
// @Tags competencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /competency-windows [post]
func (c *CompetencyController) CreateWindow(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req windowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !c.mentorOwns(ctx.Request.Context(), claims, req.ClassGroup) {
		util.Forbidden(ctx)
		return
	}

	start, err := util.ParseDate(req.StartDate)
	if err != nil {
		util.BadRequest(ctx, "startDate: "+err.Error())
		return
	}
	end, err := util.ParseDate(req.EndDate)
	if err != nil {
		util.BadRequest(ctx, "endDate: "+err.Error())
		return
	}

	window := &model.CompetencyWindow{
		ClassGroupID: req.ClassGroup,
		Name:         req.Name,
		StartDate:    start,
		EndDate:      end,
	}
	if err := c.CompetencyService.CreateWindow(ctx.Request.Context(), window); err != nil {
		if err == util.ErrWindowOverlap {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, window)
}

// @Summary List scan windows for a group
// @Tags competencies
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /groups/{id}/competency-windows [get]
func (c *CompetencyController) ListWindows(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groupID := util.MustParseUint(ctx.Param("id"))
	if !c.memberOrMentor(ctx.Request.Context(), claims, groupID) {
		util.Forbidden(ctx)
		return
	}

	windows, err := c.CompetencyService.ListWindows(ctx.Request.Context(), groupID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.NewListResponse(windows, len(windows)))
}

// @Summary Close a scan window
// @Tags competencies
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /competency-windows/{id}/close [post]
func (c *CompetencyController) CloseWindow(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	windowID := util.MustParseUint(ctx.Param("id"))
	window, err := c.CompetencyService.Window(ctx.Request.Context(), windowID)
	if err != nil {
		if err == util.ErrWindowNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if !c.mentorOwns(ctx.Request.Context(), claims, window.ClassGroupID) {
		util.Forbidden(ctx)
		return
	}

	if err := c.CompetencyService.CloseWindow(ctx.Request.Context(), windowID); err != nil {
		if err == util.ErrWindowNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"closed": true})
}

type submitScoresRequest struct {
	StudentID uint                 `json:"studentId"`
	Kind      model.ScoreKind      `json:"kind" binding:"omitempty,oneof=self peer teacher external"`
	Scores    []service.ScoreInput `json:"scores" binding:"required,min=1"`
}

// @Summary Submit competency scores in a window
// @Tags competencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /competency-windows/{id}/scores [post]
func (c *CompetencyController) SubmitScores(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitScoresRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// students score themselves; teachers score a named student
	studentID := req.StudentID
	kind := req.Kind
	if claims.Role == model.Student {
		studentID = claims.UserID
		kind = model.ScoreSelf
	} else {
		if studentID == 0 {
			util.BadRequest(ctx, "studentId is required")
			return
		}
		if kind == "" || kind == model.ScoreSelf {
			kind = model.ScoreTeacher
		}
	}

	windowID := util.MustParseUint(ctx.Param("id"))
	window, err := c.CompetencyService.Window(ctx.Request.Context(), windowID)
	if err != nil {
		if err == util.ErrWindowNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if !c.memberOrMentor(ctx.Request.Context(), claims, window.ClassGroupID) {
		util.Forbidden(ctx)
		return
	}
	if studentGroup, ok := c.studentGroup(ctx.Request.Context(), studentID); !ok || studentGroup != window.ClassGroupID {
		util.BadRequest(ctx, "student is not a member of the window's group")
		return
	}

	err = c.CompetencyService.SubmitScores(ctx.Request.Context(), windowID, studentID, claims.UserID, kind, req.Scores, time.Now())
	if err != nil {
		switch err {
		case util.ErrWindowNotFound:
			util.NotFound(ctx)
		case util.ErrWindowNotOpen, util.ErrScoreOutOfRange:
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"windowId": windowID, "studentId": studentID, "kind": kind})
}

// @Summary Category breakdown for a student in a window
// @Tags competencies
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /competency-windows/{id}/scores [get]
func (c *CompetencyController) WindowScores(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID := claims.UserID
	if claims.Role != model.Student {
		studentID = util.MustParseUint(ctx.Query("studentId"))
		if studentID == 0 {
			util.BadRequest(ctx, "studentId is required")
			return
		}
	}

	windowID := util.MustParseUint(ctx.Param("id"))
	window, err := c.CompetencyService.Window(ctx.Request.Context(), windowID)
	if err != nil {
		if err == util.ErrWindowNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if !c.memberOrMentor(ctx.Request.Context(), claims, window.ClassGroupID) {
		util.Forbidden(ctx)
		return
	}

	breakdown, err := c.CompetencyService.StudentWindowScores(ctx.Request.Context(), windowID, studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.NewListResponse(breakdown, len(breakdown)))
}

// @Summary Competency trend line for the authenticated student
// @Tags competencies
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /competencies/trend [get]
func (c *CompetencyController) OwnTrend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groupID, err := c.callerGroup(ctx.Request.Context(), claims)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	trend, err := c.CompetencyService.StudentTrend(ctx.Request.Context(), groupID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, trend)
}
