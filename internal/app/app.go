package app

import (
	"career_compass_backend/internal/ai"
	"career_compass_backend/internal/catalog"
	"career_compass_backend/internal/config"
	"career_compass_backend/internal/controller"
	"career_compass_backend/internal/repository"
	"career_compass_backend/internal/service"
	"career_compass_backend/pkg/database"
	"career_compass_backend/pkg/logger"
	"career_compass_backend/pkg/monitoring"
	"career_compass_backend/pkg/security"
	"career_compass_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	AI              *ai.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user           *repository.UserRepository
	assessment     *repository.AssessmentRepository
	recommendation *repository.RecommendationRepository
	psychometric   *repository.PsychometricRepository
	progress       *repository.ProgressRepository
	chat           *repository.ChatRepository
}

type services struct {
	auth           *service.AuthService
	user           *service.UserService
	storage        *service.StorageService
	resume         *service.ResumeService
	recommendation *service.RecommendationService
	assessment     *service.AssessmentService
	progress       *service.ProgressService
	chat           *service.ChatService
}

type controllers struct {
	auth           *controller.AuthController
	user           *controller.UserController
	resume         *controller.ResumeController
	recommendation *controller.RecommendationController
	assessment     *controller.AssessmentController
	progress       *controller.ProgressController
	chat           *controller.ChatController
	health         *controller.HealthController
}

// RegisterConfigCallback 配置热加载回调入口
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 分发新配置到各回调
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		assessment:     repository.NewAssessmentRepository(db),
		recommendation: repository.NewRecommendationRepository(db),
		psychometric:   repository.NewPsychometricRepository(db),
		progress:       repository.NewProgressRepository(db, rdb),
		chat:           repository.NewChatRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, cat catalog.Catalog, aiClient *ai.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.resume = service.NewResumeService(repos.assessment, repos.recommendation, aiClient, s.storage)
	s.recommendation = service.NewRecommendationService(aiClient, repos.recommendation, repos.assessment)
	s.assessment = service.NewAssessmentService(aiClient, repos.psychometric)
	s.progress = service.NewProgressService(cat, repos.progress)
	s.chat = service.NewChatService(aiClient, repos.chat, repos.recommendation, repos.assessment, repos.psychometric)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth, s.user),
		user:           controller.NewUserController(s.user),
		resume:         controller.NewResumeController(s.resume),
		recommendation: controller.NewRecommendationController(s.recommendation),
		assessment:     controller.NewAssessmentController(s.assessment),
		progress:       controller.NewProgressController(s.progress),
		chat:           controller.NewChatController(s.chat),
		health:         controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	cat, err := catalog.Load()
	if err != nil {
		logger.Log.Fatal("Failed to load careers catalog", zap.Error(err))
	}

	aiClient, err := ai.NewClient(context.Background(), cfg.AI)
	if err != nil {
		logger.Log.Fatal("Failed to initialize AI client", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		AI:     aiClient,
	}

	// AI参数支持热加载
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		aiClient.ApplyConfig(newCfg.AI)
		logger.Log.Info("AI配置已热加载",
			zap.String("model", newCfg.AI.Model),
			zap.Int("timeoutSeconds", newCfg.AI.TimeoutSeconds),
		)
	})

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg, cat, aiClient)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("career-compass", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
