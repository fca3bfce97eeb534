package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"schoolscan_backend/internal/config"
	"schoolscan_backend/internal/controller"
	"schoolscan_backend/internal/repository"
	"schoolscan_backend/internal/service"
	"schoolscan_backend/internal/util"
	"schoolscan_backend/pkg/configwatcher"
	"schoolscan_backend/pkg/database"
	"schoolscan_backend/pkg/logger"
	"schoolscan_backend/pkg/monitoring"
	"schoolscan_backend/pkg/security"
	"schoolscan_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Watcher  *configwatcher.Watcher
	services *services
	stop     chan struct{}
}

type repositories struct {
	user        *repository.UserRepository
	group       *repository.GroupRepository
	project     *repository.ProjectRepository
	evaluation  *repository.PeerEvaluationRepository
	competency  *repository.CompetencyRepository
	rubric      *repository.RubricRepository
	assessment  *repository.AssessmentRepository
	attendance  *repository.AttendanceRepository
	projectPlan *repository.ProjectPlanRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	storage     *service.StorageService
	project     *service.ProjectService
	evaluation  *service.PeerEvaluationService
	competency  *service.CompetencyService
	assessment  *service.AssessmentService
	attendance  *service.AttendanceService
	projectPlan *service.ProjectPlanService
	dashboard   *service.DashboardService
	export      *service.ExportService
	rubric      *service.RubricService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	project     *controller.ProjectController
	evaluation  *controller.PeerEvaluationController
	competency  *controller.CompetencyController
	assessment  *controller.AssessmentController
	attendance  *controller.AttendanceController
	projectPlan *controller.ProjectPlanController
	dashboard   *controller.DashboardController
	group       *controller.GroupController
	rubric      *controller.RubricController
	export      *controller.ExportController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		group:       repository.NewGroupRepository(db),
		project:     repository.NewProjectRepository(db),
		evaluation:  repository.NewPeerEvaluationRepository(db),
		competency:  repository.NewCompetencyRepository(db),
		rubric:      repository.NewRubricRepository(db),
		assessment:  repository.NewAssessmentRepository(db),
		attendance:  repository.NewAttendanceRepository(db),
		projectPlan: repository.NewProjectPlanRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.group)
	s.project = service.NewProjectService(repos.project)
	s.evaluation = service.NewPeerEvaluationService(repos.evaluation, repos.project)
	s.competency = service.NewCompetencyService(repos.competency, repos.user)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.rubric)
	s.attendance = service.NewAttendanceService(repos.attendance)
	s.projectPlan = service.NewProjectPlanService(repos.projectPlan, s.storage)
	s.rubric = service.NewRubricService(repos.rubric)

	s.dashboard = service.NewDashboardService(
		repos.user,
		repos.group,
		repos.evaluation,
		repos.competency,
		repos.projectPlan,
		s.evaluation,
		s.competency,
		s.attendance,
		s.projectPlan,
		rdb,
		cfg,
	)

	s.export = service.NewExportService(s.evaluation, s.attendance, repos.competency, repos.user)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	guard := controller.NewGroupGuard(repos.user, repos.group)
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user),
		user:        controller.NewUserController(s.user),
		project:     controller.NewProjectController(s.project, guard),
		evaluation:  controller.NewPeerEvaluationController(s.evaluation, s.project, s.dashboard, guard),
		competency:  controller.NewCompetencyController(s.competency, s.dashboard, guard),
		assessment:  controller.NewAssessmentController(s.assessment, s.project, guard),
		attendance:  controller.NewAttendanceController(s.attendance, guard),
		projectPlan: controller.NewProjectPlanController(s.projectPlan, s.project, guard),
		dashboard:   controller.NewDashboardController(s.dashboard, guard),
		group:       controller.NewGroupController(guard),
		rubric:      controller.NewRubricController(s.rubric),
		export:      controller.NewExportController(s.export, guard),
		health:      controller.NewHealthController(db, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks sweeps expired scan windows closed once a minute. The
// goroutine exits when the app's stop channel closes during shutdown.
func (a *App) startBackgroundTasks(s *services) {
	a.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				closed, err := s.competency.CloseExpiredWindows(time.Now())
				if err != nil {
					logger.Log.Error("window sweep failed", zap.Error(err))
					continue
				}
				if closed > 0 {
					logger.Log.Info("closed expired scan windows", zap.Int64("count", closed))
				}
			case <-a.stop:
				return
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	if cfg.Database.AutoMigrate || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	// a --migrate-only run stops here: no redis, routes or background work
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// the dashboard cache degrades to direct reads without redis
		logger.Log.Warn("redis unavailable, dashboard caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("schoolscan", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)
	app.watchConfig(cfg)

	return app
}

// watchConfig hot-reloads the settings that are safe to change at runtime.
func (a *App) watchConfig(cfg *config.Config) {
	a.Watcher = configwatcher.New()
	a.Watcher.Subscribe(func(newCfg *config.Config) {
		cfg.Dashboard = newCfg.Dashboard
		cfg.CORS = newCfg.CORS
		logger.Log.Info("configuration reloaded",
			zap.Int("dashboard_cache_ttl", newCfg.Dashboard.CacheTTLSeconds))
	})
	go a.Watcher.Watch("configs/config.yaml")
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

	if a.stop != nil {
		close(a.stop)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
