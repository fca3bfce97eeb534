package controller

import (
	"net/http"
	"schoolscan_backend/internal/dataset"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/service"
	"schoolscan_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectController struct {
	GroupGuard
	ProjectService *service.ProjectService
}

func NewProjectController(projectService *service.ProjectService, guard GroupGuard) *ProjectController {
	return &ProjectController{GroupGuard: guard, ProjectService: projectService}
}

// @Summary List projects of the caller's group
// @Tags projects
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "text search"
// @Param status query string false "status filter"
// @Param from query string false "start date lower bound (YYYY-MM-DD)"
// @Param to query string false "start date upper bound (YYYY-MM-DD)"
// @Success 200 {object} util.Response
// @Router /projects [get]
func (c *ProjectController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groupID, err := c.resolveGroup(ctx, claims)
	if err != nil {
		return
	}

	var filter dataset.Filter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	projects, err := c.ProjectService.List(ctx.Request.Context(), groupID, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.NewListResponse(projects, len(projects)))
}

// resolveGroup picks the group from the query for teachers, or from the
// caller's own membership for students. Writes the error response itself.
func (c *ProjectController) resolveGroup(ctx *gin.Context, claims *util.Claims) (uint, error) {
	if claims.Role == model.Student {
		groupID, err := c.callerGroup(ctx.Request.Context(), claims)
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return 0, err
		}
		return groupID, nil
	}

	groupID := util.MustParseUint(ctx.Query("groupId"))
	if groupID == 0 {
		util.BadRequest(ctx, "groupId is required")
		return 0, gorm.ErrRecordNotFound
	}
	if !c.mentorOwns(ctx.Request.Context(), claims, groupID) {
		util.Forbidden(ctx)
		return 0, util.ErrPermissionDenied
	}
	return groupID, nil
}

// @Summary Get one project
// @Tags projects
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /projects/{id} [get]
func (c *ProjectController) Get(ctx *gin.Context) {
	project, err := c.ProjectService.Get(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, project)
}

type projectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ClientName  string `json:"clientName"`
	ClassGroup  uint   `json:"classGroupId" binding:"required"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
}

// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /projects [post]
func (c *ProjectController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req projectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !c.mentorOwns(ctx.Request.Context(), claims, req.ClassGroup) {
		util.Forbidden(ctx)
		return
	}

	project, err := projectFromRequest(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ProjectService.Create(ctx.Request.Context(), project); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, project)
}

func projectFromRequest(req projectRequest) (*model.Project, error) {
	start, err := util.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := util.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	return &model.Project{
		Title:        req.Title,
		Description:  req.Description,
		ClientName:   req.ClientName,
		ClassGroupID: req.ClassGroup,
		StartDate:    start,
		EndDate:      end,
		Status:       model.ProjectActive,
	}, nil
}

// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /projects/{id} [put]
func (c *ProjectController) Update(ctx *gin.Context) {
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
	if !c.mentorOwns(ctx.Request.Context(), claims, project.ClassGroupID) {
		util.Forbidden(ctx)
		return
	}

	var req struct {
		Title       string              `json:"title"`
		Description string              `json:"description"`
		ClientName  string              `json:"clientName"`
		Status      model.ProjectStatus `json:"status" binding:"omitempty,oneof=draft active completed archived"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Title != "" {
		project.Title = req.Title
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.ClientName != "" {
		project.ClientName = req.ClientName
	}
	if req.Status != "" {
		project.Status = req.Status
	}

	if err := c.ProjectService.Update(ctx.Request.Context(), project); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, project)
}

// @Summary Delete a project
// @Tags projects
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /projects/{id} [delete]
func (c *ProjectController) Delete(ctx *gin.Context) {
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
	if !c.mentorOwns(ctx.Request.Context(), claims, project.ClassGroupID) {
		util.Forbidden(ctx)
		return
	}

	if err := c.ProjectService.Delete(ctx.Request.Context(), project.ID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Error(ctx, http.StatusOK, "project deleted")
}
