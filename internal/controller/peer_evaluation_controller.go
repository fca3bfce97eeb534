package controller

import (
	"net/http"
	"schoolscan_backend/internal/dataset"
	"schoolscan_backend/internal/service"
	"schoolscan_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PeerEvaluationController struct {
	GroupGuard
	EvaluationService *service.PeerEvaluationService
	ProjectService    *service.ProjectService
	DashboardService  *service.DashboardService
}

func NewPeerEvaluationController(
	evaluationService *service.PeerEvaluationService,
	projectService *service.ProjectService,
	dashboardService *service.DashboardService,
	guard GroupGuard,
) *PeerEvaluationController {
	return &PeerEvaluationController{
		GroupGuard:        guard,
		EvaluationService: evaluationService,
		ProjectService:    projectService,
		DashboardService:  dashboardService,
	}
}

// @Summary Submit an OMZA peer evaluation
// @Tags evaluations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /projects/{id}/evaluations [post]
func (c *PeerEvaluationController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.EvaluationInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	project, err := c.ProjectService.Get(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if !c.memberOrMentor(ctx.Request.Context(), claims, project.ClassGroupID) {
		util.Forbidden(ctx)
		return
	}
	if subjectGroup, ok := c.studentGroup(ctx.Request.Context(), input.SubjectID); !ok || subjectGroup != project.ClassGroupID {
		util.BadRequest(ctx, "subject is not a member of the project's group")
		return
	}

	eval, err := c.EvaluationService.Submit(ctx.Request.Context(), project.ID, claims.UserID, input)
	if err != nil {
		switch err {
		case util.ErrSelfEvaluation, util.ErrRawScoreOutOfRange:
			util.BadRequest(ctx, err.Error())
		case util.ErrAlreadySubmitted:
			util.Error(ctx, http.StatusConflict, err.Error())
		case util.ErrProjectNotFound:
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	// the teacher dashboard aggregates peer scores, so drop its cache
	c.DashboardService.InvalidateTeacherDashboard(ctx.Request.Context(), project.ClassGroupID)

	util.Created(ctx, eval)
}

// @Summary List submitted evaluations for a project
// @Tags evaluations
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "text search"
// @Param status query string false "status filter"
// @Success 200 {object} util.Response
// @Router /projects/{id}/evaluations [get]
func (c *PeerEvaluationController) ListForProject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	project, err := c.ProjectService.Get(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if !c.memberOrMentor(ctx.Request.Context(), claims, project.ClassGroupID) {
		util.Forbidden(ctx)
		return
	}

	var filter dataset.Filter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rows, err := c.EvaluationService.ListForProject(ctx.Request.Context(), project.ID, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.NewListResponse(rows, len(rows)))
}

// @Summary List submitted evaluations across a group
// @Tags evaluations
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /groups/{id}/evaluations [get]
func (c *PeerEvaluationController) ListForGroup(ctx *gin.Context) {
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

	rows, err := c.EvaluationService.ListForGroup(ctx.Request.Context(), groupID, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.NewListResponse(rows, len(rows)))
}

// @Summary OMZA summary for the authenticated student
// @Tags evaluations
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /evaluations/summary [get]
func (c *PeerEvaluationController) OwnSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.EvaluationService.SummaryForSubject(ctx.Request.Context(), claims.UserID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
