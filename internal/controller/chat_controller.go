package controller

import (
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// ChatRequest 导航/TechMitra消息
// swagger:model ChatRequest
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Persona string `json:"persona" binding:"omitempty,oneof=navigator tech-mitra"`
}

// Chat godoc
// @Summary 站内助手对话
// @Description persona 为 navigator 或 tech-mitra，默认 navigator
// @Tags 助手
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ChatRequest true "消息与人格"
// @Success 200 {object} util.Response{data=object}
// @Failure 502 {object} util.Response "AI回复失败"
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.ChatService.Chat(ctx.Request.Context(), claims.UserID, req.Persona, req.Message)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"response": response})
}

// AbroadChatRequest 出国咨询消息
// swagger:model AbroadChatRequest
type AbroadChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// AbroadChat godoc
// @Summary 出国咨询对话
// @Description 多轮对话，历史保存在服务端并随会话过期
// @Tags 助手
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body AbroadChatRequest true "消息"
// @Success 200 {object} util.Response{data=object}
// @Failure 502 {object} util.Response "AI回复失败"
// @Router /api/chat/abroad [post]
func (c *ChatController) AbroadChat(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AbroadChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.ChatService.AbroadChat(ctx.Request.Context(), claims.UserID, req.Message)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"response": response})
}

// Transcript godoc
// @Summary 会话记录
// @Tags 助手
// @Produce  json
// @Security BearerAuth
// @Param   assistant path string true "助手标识" Enums(navigator, tech-mitra, abroad)
// @Success 200 {object} util.Response{data=object}
// @Router /api/chat/{assistant}/transcript [get]
func (c *ChatController) Transcript(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	transcript, err := c.ChatService.Transcript(ctx.Request.Context(), claims.UserID, ctx.Param("assistant"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"transcript": transcript})
}

// Reset godoc
// @Summary 清空会话记录
// @Tags 助手
// @Produce  json
// @Security BearerAuth
// @Param   assistant path string true "助手标识" Enums(navigator, tech-mitra, abroad)
// @Success 200 {object} util.Response
// @Router /api/chat/{assistant}/transcript [delete]
func (c *ChatController) Reset(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ChatService.Reset(ctx.Request.Context(), claims.UserID, ctx.Param("assistant")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
