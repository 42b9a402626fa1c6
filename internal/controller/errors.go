package controller

import (
	"career_compass_backend/internal/ai"
	"career_compass_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// handleServiceError 业务错误到HTTP状态码的统一映射：
// 输入类错误400，内容不合格422，AI服务商失败502，其余500
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidFileType):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrEmptyExtraction), errors.Is(err, util.ErrNotAResume):
		util.UnprocessableEntity(ctx, err.Error())
	case errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrRoleNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNoRecommendation):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrWrongState):
		util.Error(ctx, 409, err.Error())
	case errors.Is(err, ai.ErrEmptyOutput),
		errors.Is(err, ai.ErrBlocked),
		errors.Is(err, ai.ErrToolRounds),
		errors.Is(err, ai.ErrProvider):
		util.BadGateway(ctx, "the AI service could not complete the request, please try again")
	default:
		util.LogInternalError(ctx, err)
	}
}
