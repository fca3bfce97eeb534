package controller

import (
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/service"
	"schoolscan_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssessmentController struct {
	GroupGuard
	AssessmentService *service.AssessmentService
	ProjectService    *service.ProjectService
}

func NewAssessmentController(
	assessmentService *service.AssessmentService,
	projectService *service.ProjectService,
	guard GroupGuard,
) *AssessmentController {
	return &AssessmentController{
		GroupGuard:        guard,
		AssessmentService: assessmentService,
		ProjectService:    projectService,
	}
}

// @Summary Record a rubric-based project assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /projects/{id}/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.AssessmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// self-assessments carry the caller's id; external ones only a name
	var assessorID *uint
	switch input.Kind {
	case model.AssessmentSelf:
		if claims.Role == model.Student && input.StudentID != claims.UserID {
			util.Forbidden(ctx)
			return
		}
		assessorID = &claims.UserID
	case model.AssessmentTeacher:
		if claims.Role == model.Student {
			util.Forbidden(ctx)
			return
		}
		assessorID = &claims.UserID
	case model.AssessmentExternal:
		if input.AssessorName == "" {
			util.BadRequest(ctx, "assessorName is required for external assessments")
			return
		}
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

	assessment, err := c.AssessmentService.Create(ctx.Request.Context(), project.ID, assessorID, input)
	if err != nil {
		switch err {
		case util.ErrUnknownCriterion, util.ErrLevelOutOfRange:
			util.BadRequest(ctx, err.Error())
		case gorm.ErrRecordNotFound:
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, assessment)
}

// @Summary List assessments of a project
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /projects/{id}/assessments [get]
func (c *AssessmentController) ListByProject(ctx *gin.Context) {
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

	assessments, err := c.AssessmentService.ListByProject(ctx.Request.Context(), project.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.NewListResponse(assessments, len(assessments)))
}

// @Summary Assessment overview for a student
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /students/{id}/assessments/overview [get]
func (c *AssessmentController) StudentOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID := util.MustParseUint(ctx.Param("id"))
	if claims.Role == model.Student && studentID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	overview, err := c.AssessmentService.OverviewForStudent(ctx.Request.Context(), studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}
