package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxAvatarSize 头像大小上限 5MB
const maxAvatarSize = 5 << 20

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// UpdateProfileRequest 个人资料更新请求
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Birthdate string `json:"birthdate"`
	Location  string `json:"location"`
}

// GetProfile godoc
// @Summary 获取个人资料
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetByID(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body UpdateProfileRequest true "资料字段，留空的字段不更新"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req.Name, req.Avatar, req.Birthdate, req.Location)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "图片文件(jpg/png/gif/webp)"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "文件类型或大小错误"
// @Router /api/profile/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
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
	if fileHeader.Size > maxAvatarSize {
		util.BadRequest(ctx, "file exceeds the 5MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		util.BadRequest(ctx, "unsupported image type")
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

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	user, err := c.UserService.UploadAvatar(ctx.Request.Context(), claims.UserID, fileHeader.Filename, contentType, data)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
