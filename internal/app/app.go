package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"escape_room_backend/internal/config"
	"escape_room_backend/internal/controller"
	"escape_room_backend/internal/repository"
	"escape_room_backend/internal/service"
	"escape_room_backend/pkg/database"
	"escape_room_backend/pkg/logger"
	"escape_room_backend/pkg/monitoring"
	"escape_room_backend/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	Progress repository.ProgressRepository
}

type services struct {
	workbook *service.WorkbookService
	game     *service.GameService
}

type controllers struct {
	health   *controller.HealthController
	game     *controller.GameController
	workbook *controller.WorkbookController
	admin    *controller.AdminController
}

func (a *App) initProgressStore(cfg *config.Config) (repository.ProgressRepository, error) {
	switch cfg.State.Store {
	case "mysql":
		db, err := database.InitDB(&cfg.Database)
		if err != nil {
			return nil, err
		}
		return repository.NewGormProgressRepository(db), nil
	case "memory":
		return repository.NewMemoryProgressRepository(), nil
	default:
		return repository.NewFileProgressRepository(cfg.State.Path), nil
	}
}

func (a *App) initServices(cfg *config.Config, progress repository.ProgressRepository) *services {
	s := &services{}
	s.workbook = service.NewWorkbookService()
	s.game = service.NewGameService(progress, s.workbook, cfg.Lockout.DefaultSeconds)

	// A local workbook is the usual on-site setup; without one the admin
	// uploads the rooms once the service is up.
	if cfg.Workbook.Path != "" {
		if err := s.workbook.LoadFile(cfg.Workbook.Path); err != nil {
			logger.Log.Warn("no local workbook loaded, waiting for upload",
				zap.String("path", cfg.Workbook.Path), zap.Error(err))
		}
	}

	return s
}

func (a *App) initControllers(s *services, progress repository.ProgressRepository) *controllers {
	return &controllers{
		health:   controller.NewHealthController(s.workbook),
		game:     controller.NewGameController(s.game, s.workbook),
		workbook: controller.NewWorkbookController(s.workbook),
		admin:    controller.NewAdminController(progress),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg.Server.Mode, cfg.Server.LogDir)
	logger.Log.Info("logger initialized")

	app := &App{Config: cfg}

	progress, err := app.initProgressStore(cfg)
	if err != nil {
		return nil, err
	}
	app.Progress = progress

	services := app.initServices(cfg, progress)
	controllers := app.initControllers(services, progress)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app, nil
}

func ginMode(mode string) string {
	if mode == "debug" {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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
