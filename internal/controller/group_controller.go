package controller

import (
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GroupController struct {
	GroupGuard
}

func NewGroupController(guard GroupGuard) *GroupController {
	return &GroupController{GroupGuard: guard}
}

// @Summary List the caller's class groups
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /groups [get]
func (c *GroupController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var (
		groups []model.ClassGroup
		err    error
	)
	if claims.Role == model.Admin {
		groups, err = c.GroupRepo.FindAll(ctx.Request.Context())
	} else {
		groups, err = c.GroupRepo.FindByMentor(ctx.Request.Context(), claims.UserID)
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewListResponse(groups, len(groups)))
}

// @Summary List the students of a class group
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /groups/{id}/students [get]
func (c *GroupController) Students(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	groupID := util.MustParseUint(ctx.Param("id"))

	if !c.mentorOwns(ctx.Request.Context(), claims, groupID) {
		util.Forbidden(ctx)
		return
	}

	students, err := c.UserRepo.FindByGroup(ctx.Request.Context(), groupID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewListResponse(students, len(students)))
}
