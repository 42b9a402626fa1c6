package app

import (
	"career_compass_backend/docs"
	"career_compass_backend/internal/config"
	"career_compass_backend/internal/middleware"
	"career_compass_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)
		authGroup.GET("/profile", c.user.GetProfile)
		authGroup.PUT("/profile", c.user.UpdateProfile)
		authGroup.POST("/profile/avatar", c.user.UploadAvatar)

		// 简历与画像
		authGroup.POST("/resume", c.resume.Upload)
		authGroup.GET("/resume", c.resume.GetAssessment)
		authGroup.POST("/resume/profile", c.resume.SaveProfile)

		// 职业推荐
		authGroup.POST("/recommendations", c.recommendation.Generate)
		authGroup.GET("/recommendations", c.recommendation.Get)
		authGroup.POST("/recommendations/roadmap", c.recommendation.RegenerateRoadmap)
		authGroup.GET("/recommendations/flowchart", c.recommendation.Flowchart)
		authGroup.GET("/recommendations/jobs", c.recommendation.Jobs)

		// 心理测评向导
		assessment := authGroup.Group("/assessment")
		{
			assessment.POST("/sessions", c.assessment.StartSession)
			assessment.GET("/sessions/:id", c.assessment.GetSession)
			assessment.POST("/sessions/:id/segment", c.assessment.SelectSegment)
			assessment.POST("/sessions/:id/details", c.assessment.SubmitDetails)
			assessment.POST("/sessions/:id/answers", c.assessment.SubmitAnswers)
			assessment.POST("/sessions/:id/reflection", c.assessment.SubmitReflection)
			assessment.GET("/result", c.assessment.GetResult)
		}

		// 里程碑进度
		progress := authGroup.Group("/progress")
		{
			progress.GET("/catalog", c.progress.Catalog)
			progress.GET("", c.progress.RoleProgress)
			progress.POST("/toggle", c.progress.Toggle)
			progress.POST("/save", c.progress.Save)
		}

		// 会话助手
		chat := authGroup.Group("/chat")
		{
			chat.POST("", c.chat.Chat)
			chat.POST("/abroad", c.chat.AbroadChat)
			chat.GET("/:assistant/transcript", c.chat.Transcript)
			chat.DELETE("/:assistant/transcript", c.chat.Reset)
		}
	}
}
