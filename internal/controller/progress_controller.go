package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Catalog godoc
// @Summary 职业目录
// @Description 返回分组及各分组下的岗位名
// @Tags 进度
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/progress/catalog [get]
func (c *ProgressController) Catalog(ctx *gin.Context) {
	groups := c.ProgressService.Groups()
	out := make(map[string][]string, len(groups))
	for _, g := range groups {
		out[g] = c.ProgressService.Roles(g)
	}
	util.Success(ctx, out)
}

// RoleProgress godoc
// @Summary 岗位进度视图
// @Description 指定岗位的里程碑完成状态、进度百分比与已获徽章
// @Tags 进度
// @Produce  json
// @Security BearerAuth
// @Param   role query string true "岗位名"
// @Success 200 {object} util.Response{data=service.RoleProgress}
// @Failure 404 {object} util.Response "岗位不存在"
// @Router /api/progress [get]
func (c *ProgressController) RoleProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	role := ctx.Query("role")
	if role == "" {
		util.BadRequest(ctx, "role is required")
		return
	}

	progress, err := c.ProgressService.RoleProgress(ctx.Request.Context(), claims.UserID, role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// ToggleRequest 里程碑勾选请求
// swagger:model ToggleRequest
type ToggleRequest struct {
	Role string `json:"role" binding:"required"`
	Task string `json:"task" binding:"required"`
}

// Toggle godoc
// @Summary 勾选/取消里程碑
// @Description 只更新Redis工作副本，显式保存前不写MySQL
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ToggleRequest true "岗位与里程碑"
// @Success 200 {object} util.Response{data=service.RoleProgress}
// @Failure 404 {object} util.Response "岗位或里程碑不存在"
// @Router /api/progress/toggle [post]
func (c *ProgressController) Toggle(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ToggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.Toggle(ctx.Request.Context(), claims.UserID, req.Role, req.Task)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Save godoc
// @Summary 保存进度
// @Description 工作副本整体覆盖远端文档，最后写入者胜出
// @Tags 进度
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Router /api/progress/save [post]
func (c *ProgressController) Save(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.Save(ctx.Request.Context(), claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
