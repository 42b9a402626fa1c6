package controller

import (
	"career_compass_backend/internal/ai"
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// StartSession godoc
// @Summary 开始测评会话
// @Description 有未完成会话则返回该会话，否则新建
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.PsychometricSession}
// @Router /api/assessment/sessions [post]
func (c *AssessmentController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.AssessmentService.StartSession(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// GetSession godoc
// @Summary 查询测评会话
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话ID"
// @Success 200 {object} util.Response{data=model.PsychometricSession}
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/assessment/sessions/{id} [get]
func (c *AssessmentController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.AssessmentService.GetSession(claims.UserID, ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// SelectSegmentRequest 人群选择
// swagger:model SelectSegmentRequest
type SelectSegmentRequest struct {
	Segment string `json:"segment" binding:"required,oneof=kid school-student college-student professional"`
}

// SelectSegment godoc
// @Summary 选择用户人群
// @Tags 测评
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话ID"
// @Param   body body SelectSegmentRequest true "人群"
// @Success 200 {object} util.Response{data=model.PsychometricSession}
// @Failure 409 {object} util.Response "状态不允许"
// @Router /api/assessment/sessions/{id}/segment [post]
func (c *AssessmentController) SelectSegment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SelectSegmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.AssessmentService.SelectSegment(claims.UserID, ctx.Param("id"), model.UserSegment(req.Segment))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// SubmitDetails godoc
// @Summary 提交人群补充信息并生成试卷
// @Description 校验人群必填字段后调用AI出题，失败时回到collecting-details
// @Tags 测评
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话ID"
// @Param   body body ai.SegmentDetails true "补充信息"
// @Success 200 {object} util.Response{data=model.PsychometricSession}
// @Failure 400 {object} util.Response "缺少必填字段"
// @Failure 502 {object} util.Response "AI出题失败"
// @Router /api/assessment/sessions/{id}/details [post]
func (c *AssessmentController) SubmitDetails(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ai.SegmentDetails
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.AssessmentService.SubmitDetails(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// SubmitAnswersRequest 作答提交
// swagger:model SubmitAnswersRequest
type SubmitAnswersRequest struct {
	Answers []ai.TestAnswer `json:"answers" binding:"required"`
}

// SubmitAnswers godoc
// @Summary 提交全部作答
// @Tags 测评
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话ID"
// @Param   body body SubmitAnswersRequest true "作答列表，须与题目一一对应"
// @Success 200 {object} util.Response{data=model.PsychometricSession}
// @Failure 400 {object} util.Response "作答不完整"
// @Router /api/assessment/sessions/{id}/answers [post]
func (c *AssessmentController) SubmitAnswers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.AssessmentService.SubmitAnswers(claims.UserID, ctx.Param("id"), req.Answers)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// SubmitReflectionRequest 自述段落
// swagger:model SubmitReflectionRequest
type SubmitReflectionRequest struct {
	Reflection string `json:"reflection" binding:"required"`
}

// SubmitReflection godoc
// @Summary 提交自述并生成报告
// @Description 50-300词自述，触发AI评估；失败时回到collecting-reflection且数据保留
// @Tags 测评
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话ID"
// @Param   body body SubmitReflectionRequest true "自述段落"
// @Success 200 {object} util.Response{data=model.PsychometricSession}
// @Failure 400 {object} util.Response "字数不符"
// @Failure 502 {object} util.Response "AI评估失败"
// @Router /api/assessment/sessions/{id}/reflection [post]
func (c *AssessmentController) SubmitReflection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitReflectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.AssessmentService.SubmitReflection(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.Reflection)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// GetResult godoc
// @Summary 获取测评报告
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.PsychometricResult}
// @Failure 404 {object} util.Response "报告不存在"
// @Router /api/assessment/result [get]
func (c *AssessmentController) GetResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.AssessmentService.GetResult(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
