package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neu4g_backend/internal/config"
	"neu4g_backend/internal/controller"
	"neu4g_backend/internal/repository"
	"neu4g_backend/internal/service"
	"neu4g_backend/internal/util"
	"neu4g_backend/pkg/configwatcher"
	"neu4g_backend/pkg/database"
	"neu4g_backend/pkg/logger"
	"neu4g_backend/pkg/monitoring"
	"neu4g_backend/pkg/security"
	"neu4g_backend/pkg/tracing"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Neo4j           neo4j.DriverWithContext
	Firestore       *firestore.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	skillGraph *repository.SkillGraphRepository
	activity   *repository.ActivityRepository
}

type services struct {
	knowledgeGraph *service.KnowledgeGraphService
	lvi            *service.LVIService
	skill          *service.SkillService
	graphRAG       *service.GraphRAGService
}

type controllers struct {
	dashboard *controller.DashboardController
	skill     *controller.SkillController
	graphRAG  *controller.GraphRAGController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(driver neo4j.DriverWithContext, fs *firestore.Client, cfg *config.Config) *repositories {
	return &repositories{
		skillGraph: repository.NewSkillGraphRepository(driver, cfg.Neo4j.Database),
		activity:   repository.NewActivityRepository(fs),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	var generator service.SkillGenerator
	if g, err := service.NewOpenAIGenerator(cfg.AI); err == nil {
		generator = g
	} else {
		logger.Log.Warn("AI 生成器未配置，图谱生成接口不可用", zap.Error(err))
	}

	return &services{
		knowledgeGraph: service.NewKnowledgeGraphService(repos.skillGraph),
		lvi:            service.NewLVIService(repos.activity),
		skill:          service.NewSkillService(repos.skillGraph, generator),
		graphRAG:       service.NewGraphRAGService(repos.skillGraph, generator),
	}
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		dashboard: controller.NewDashboardController(s.knowledgeGraph, s.lvi),
		skill:     controller.NewSkillController(s.skill),
		graphRAG:  controller.NewGraphRAGController(s.graphRAG),
		health:    controller.NewHealthController(repos.skillGraph, repos.activity),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 每周快照任务：每小时检查一次，周六 23 点固化当前周
func (a *App) startBackgroundTasks(s *services) {
	if !a.Config.Snapshot.Enabled {
		return
	}

	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			now := time.Now()
			if now.Weekday() != time.Saturday || now.Hour() != 23 {
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			snap, err := s.lvi.CaptureWeeklySnapshot(ctx, util.DefaultUserID)
			cancel()
			if err != nil {
				logger.Log.Error("weekly snapshot error", zap.Error(err))
				continue
			}
			logger.Log.Info("weekly snapshot captured",
				zap.Int("week", snap.WeekNumber),
				zap.Int("score", snap.Score))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	// 两套存储都按可缺省处理，未配置的接口在调用时返回配置错误
	driver, err := database.InitNeo4j(&cfg.Neo4j)
	if err != nil {
		logger.Log.Warn("Neo4j not available", zap.Error(err))
	}

	fs, err := database.InitFirestore(context.Background(), &cfg.Firestore)
	if err != nil {
		logger.Log.Warn("Firestore not available", zap.Error(err))
	}

	app := &App{
		Config:    cfg,
		Neo4j:     driver,
		Firestore: fs,
	}

	repos := app.initRepositories(driver, fs, cfg)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, repos)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("neu4g-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	app.startBackgroundTasks(services)

	// 配置热更新：变更时替换配置并通知已注册的回调
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		app.Config = newCfg
		for _, callback := range app.configCallbacks {
			callback(newCfg)
		}
		logger.Log.Info("config reloaded")
	})

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
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

	// 释放存储连接
	if a.Neo4j != nil {
		if err := a.Neo4j.Close(ctx); err != nil {
			logger.Log.Error("neo4j close error", zap.Error(err))
		}
	}
	if a.Firestore != nil {
		if err := a.Firestore.Close(); err != nil {
			logger.Log.Error("firestore close error", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
