package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxResumeSize 上传大小上限 10MB
const maxResumeSize = 10 << 20

type ResumeController struct {
	ResumeService *service.ResumeService
}

func NewResumeController(resumeService *service.ResumeService) *ResumeController {
	return &ResumeController{ResumeService: resumeService}
}

// Upload godoc
// @Summary 上传简历
// @Description 接收PDF简历，抽取文本并做简历分类，通过后存入用户画像
// @Tags 简历
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "PDF简历文件"
// @Success 200 {object} util.Response "画像与首轮职业推荐"
// @Failure 400 {object} util.Response "文件类型错误"
// @Failure 422 {object} util.Response "无法抽取文本或不是简历"
// @Failure 502 {object} util.Response "AI服务暂不可用"
// @Router /api/resume [post]
func (c *ResumeController) Upload(ctx *gin.Context) {
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
	if fileHeader.Size > maxResumeSize {
		util.BadRequest(ctx, "file exceeds the 10MB limit")
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		util.BadRequest(ctx, util.ErrInvalidFileType.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	assessment, recommendation, err := c.ResumeService.ProcessUpload(ctx.Request.Context(), claims.UserID, fileHeader.Filename, data)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"assessment":     assessment,
		"recommendation": recommendation,
	})
}

// ProfileFormRequest 技能/兴趣表单
// swagger:model ProfileFormRequest
type ProfileFormRequest struct {
	Skills    string `json:"skills" binding:"required"`
	Interests string `json:"interests" binding:"required"`
}

// SaveProfile godoc
// @Summary 提交技能与兴趣
// @Description 逗号分隔的技能/兴趣列表，与简历共用一份画像
// @Tags 简历
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ProfileFormRequest true "技能与兴趣"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/resume/profile [post]
func (c *ResumeController) SaveProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ProfileFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.ResumeService.SaveProfile(claims.UserID, req.Skills, req.Interests)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

// GetAssessment godoc
// @Summary 获取用户画像
// @Tags 简历
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response "画像不存在"
// @Router /api/resume [get]
func (c *ResumeController) GetAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assessment, err := c.ResumeService.GetAssessment(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}
