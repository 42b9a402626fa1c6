package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recService}
}

// Generate godoc
// @Summary 生成职业推荐
// @Description 基于当前画像生成职业路径/技能差距/学习路线图，覆盖旧结果
// @Tags 推荐
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Recommendation}
// @Failure 400 {object} util.Response "画像为空"
// @Failure 502 {object} util.Response "AI生成失败"
// @Router /api/recommendations [post]
func (c *RecommendationController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rec, err := c.RecommendationService.Generate(ctx.Request.Context(), claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// Get godoc
// @Summary 获取职业推荐
// @Tags 推荐
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Recommendation}
// @Failure 400 {object} util.Response "尚无推荐"
// @Router /api/recommendations [get]
func (c *RecommendationController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rec, err := c.RecommendationService.Get(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// RegenerateRoadmapRequest 备选路线图请求；字段为空时取已保存推荐的首条路径
// swagger:model RegenerateRoadmapRequest
type RegenerateRoadmapRequest struct {
	CareerPath string `json:"careerPath"`
	SkillGaps  string `json:"skillGaps"`
}

// RegenerateRoadmap godoc
// @Summary 重新生成学习路线图
// @Description 生成备选路线图并替换已保存的路线图，职业路径与技能差距不变
// @Tags 推荐
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body RegenerateRoadmapRequest true "目标路径与技能差距"
// @Success 200 {object} util.Response{data=model.Recommendation}
// @Failure 502 {object} util.Response "AI生成失败"
// @Router /api/recommendations/roadmap [post]
func (c *RecommendationController) RegenerateRoadmap(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RegenerateRoadmapRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rec, err := c.RecommendationService.RegenerateRoadmap(ctx.Request.Context(), claims.UserID, req.CareerPath, req.SkillGaps)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// Flowchart godoc
// @Summary 路线图流程图
// @Description 把当前路线图渲染为Mermaid文本，不落库
// @Tags 推荐
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 502 {object} util.Response "AI生成失败"
// @Router /api/recommendations/flowchart [get]
func (c *RecommendationController) Flowchart(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	flowchart, err := c.RecommendationService.Flowchart(ctx.Request.Context(), claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"flowchart": flowchart})
}

// Jobs godoc
// @Summary 相关岗位列表
// @Description 按职业路径生成虚构岗位；careerPath为空时取推荐首条
// @Tags 推荐
// @Produce  json
// @Security BearerAuth
// @Param   careerPath query string false "职业路径"
// @Success 200 {object} util.Response{data=object}
// @Failure 502 {object} util.Response "AI生成失败"
// @Router /api/recommendations/jobs [get]
func (c *RecommendationController) Jobs(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	jobs, err := c.RecommendationService.FindJobs(ctx.Request.Context(), claims.UserID, ctx.Query("careerPath"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"jobListings": jobs})
}
