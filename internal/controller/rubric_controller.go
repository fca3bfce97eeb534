package controller

import (
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/service"
	"schoolscan_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RubricController struct {
	RubricService *service.RubricService
}

func NewRubricController(rubricService *service.RubricService) *RubricController {
	return &RubricController{RubricService: rubricService}
}

// @Summary List rubrics
// @Tags rubrics
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /rubrics [get]
func (c *RubricController) List(ctx *gin.Context) {
	rubrics, err := c.RubricService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewListResponse(rubrics, len(rubrics)))
}

// @Summary Get a rubric with criteria and levels
// @Tags rubrics
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /rubrics/{id} [get]
func (c *RubricController) Get(ctx *gin.Context) {
	rubric, err := c.RubricService.Get(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rubric)
}

// @Summary Create a rubric
// @Tags rubrics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /rubrics [post]
func (c *RubricController) Create(ctx *gin.Context) {
	var rubric model.Rubric
	if err := ctx.ShouldBindJSON(&rubric); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.RubricService.Create(ctx.Request.Context(), &rubric); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, rubric)
}

// @Summary Update a rubric
// @Tags rubrics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /rubrics/{id} [put]
func (c *RubricController) Update(ctx *gin.Context) {
	rubric, err := c.RubricService.Get(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Name != "" {
		rubric.Name = req.Name
	}
	if req.Description != "" {
		rubric.Description = req.Description
	}

	if err := c.RubricService.Update(ctx.Request.Context(), rubric); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rubric)
}

// @Summary Delete a rubric
// @Tags rubrics
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /rubrics/{id} [delete]
func (c *RubricController) Delete(ctx *gin.Context) {
	if err := c.RubricService.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
