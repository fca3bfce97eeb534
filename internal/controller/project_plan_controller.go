package controller

import (
	"net/http"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/service"
	"schoolscan_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectPlanController struct {
	GroupGuard
	PlanService    *service.ProjectPlanService
	ProjectService *service.ProjectService
}

func NewProjectPlanController(
	planService *service.ProjectPlanService,
	projectService *service.ProjectService,
	guard GroupGuard,
) *ProjectPlanController {
	return &ProjectPlanController{
		GroupGuard:     guard,
		PlanService:    planService,
		ProjectService: projectService,
	}
}

// @Summary Submit a project plan
// @Tags plans
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /projects/{id}/plan [post]
func (c *ProjectPlanController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.PlanInput
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

	plan, err := c.PlanService.Submit(ctx.Request.Context(), project.ID, claims.UserID, input)
	if err != nil {
		if err == util.ErrPlanExists {
			util.Error(ctx, http.StatusConflict, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, plan)
}

// @Summary Attach a document to a plan
// @Tags plans
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "plan document"
// @Success 200 {object} util.Response
// @Router /plans/{id}/file [post]
func (c *ProjectPlanController) AttachFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	planID := util.MustParseUint(ctx.Param("id"))
	contentType := fileHeader.Header.Get("Content-Type")
	plan, err := c.PlanService.AttachFile(ctx.Request.Context(), planID, claims.UserID, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		switch err {
		case util.ErrPlanNotFound:
			util.NotFound(ctx)
		case util.ErrPermissionDenied:
			util.Forbidden(ctx)
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, plan)
}

// @Summary Get own plan for a project
// @Tags plans
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /projects/{id}/plan [get]
func (c *ProjectPlanController) GetOwn(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	projectID := util.MustParseUint(ctx.Param("id"))
	plan, err := c.PlanService.GetForStudent(ctx.Request.Context(), projectID, claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound || err == util.ErrPlanNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, plan)
}

// @Summary Review a submitted plan
// @Tags plans
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /plans/{id}/review [put]
func (c *ProjectPlanController) Review(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	if claims.Role == model.Student {
		util.Forbidden(ctx)
		return
	}

	var input service.ReviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	planID := util.MustParseUint(ctx.Param("id"))
	existing, err := c.PlanService.Get(ctx.Request.Context(), planID)
	if err != nil {
		if err == util.ErrPlanNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	project, err := c.ProjectService.Get(ctx.Request.Context(), existing.ProjectID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !c.mentorOwns(ctx.Request.Context(), claims, project.ClassGroupID) {
		util.Forbidden(ctx)
		return
	}

	plan, err := c.PlanService.Review(ctx.Request.Context(), planID, claims.UserID, input)
	if err != nil {
		switch err {
		case util.ErrPlanNotFound:
			util.NotFound(ctx)
		case util.ErrPlanAlreadyReviewed:
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, plan)
}

// @Summary Plans awaiting review in a group
// @Tags plans
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /groups/{id}/plans/awaiting [get]
func (c *ProjectPlanController) AwaitingReview(ctx *gin.Context) {
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

	plans, err := c.PlanService.AwaitingReview(ctx.Request.Context(), groupID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.NewListResponse(plans, len(plans)))
}
