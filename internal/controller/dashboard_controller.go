package controller

import (
	"schoolscan_backend/internal/service"
	"schoolscan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	GroupGuard
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService, guard GroupGuard) *DashboardController {
	return &DashboardController{GroupGuard: guard, DashboardService: dashboardService}
}

// @Summary Student dashboard
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /dashboard/student [get]
func (c *DashboardController) Student(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.StudentDashboard(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}

// @Summary Teacher dashboard for a group
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /dashboard/teacher/{groupId} [get]
func (c *DashboardController) Teacher(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groupID := util.MustParseUint(ctx.Param("groupId"))
	if !c.mentorOwns(ctx.Request.Context(), claims, groupID) {
		util.Forbidden(ctx)
		return
	}

	dashboard, err := c.DashboardService.TeacherDashboard(ctx.Request.Context(), groupID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}
