package app

import (
	"schoolscan_backend/docs"
	"schoolscan_backend/internal/config"
	"schoolscan_backend/internal/middleware"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = cfg.Server.BasePath
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group(cfg.Server.BasePath)
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group(cfg.Server.BasePath)
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

// Routes available to every authenticated user; students operate on their own
// data throughout.
func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)

	rg.GET("/dashboard/student", c.dashboard.Student)

	rg.GET("/projects", c.project.List)
	rg.GET("/projects/:id", c.project.Get)

	rg.GET("/projects/:id/evaluations", c.evaluation.ListForProject)
	rg.POST("/projects/:id/evaluations", c.evaluation.Submit)
	rg.GET("/evaluations/summary", c.evaluation.OwnSummary)

	rg.GET("/groups/:id/competency-windows", c.competency.ListWindows)
	rg.POST("/competency-windows/:id/scores", c.competency.SubmitScores)
	rg.GET("/competency-windows/:id/scores", c.competency.WindowScores)
	rg.GET("/competencies/trend", c.competency.OwnTrend)

	rg.GET("/projects/:id/assessments", c.assessment.ListByProject)
	rg.POST("/projects/:id/assessments", c.assessment.Create)
	rg.GET("/students/:id/assessments/overview", c.assessment.StudentOverview)

	rg.GET("/attendance", c.attendance.ListOwn)
	rg.GET("/attendance/summary", c.attendance.OwnSummary)

	rg.GET("/projects/:id/plan", c.projectPlan.GetOwn)
	rg.POST("/projects/:id/plan", c.projectPlan.Submit)
	rg.POST("/plans/:id/file", c.projectPlan.AttachFile)

	rg.GET("/rubrics", c.rubric.List)
	rg.GET("/rubrics/:id", c.rubric.Get)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		teacher.GET("/dashboard/teacher/:groupId", c.dashboard.Teacher)

		teacher.GET("/groups", c.group.List)
		teacher.GET("/groups/:id/students", c.group.Students)

		teacher.POST("/projects", c.project.Create)
		teacher.PUT("/projects/:id", c.project.Update)
		teacher.DELETE("/projects/:id", c.project.Delete)

		teacher.GET("/groups/:id/evaluations", c.evaluation.ListForGroup)

		teacher.POST("/competency-windows", c.competency.CreateWindow)
		teacher.POST("/competency-windows/:id/close", c.competency.CloseWindow)

		teacher.POST("/attendance", c.attendance.Record)
		teacher.POST("/attendance/bulk", c.attendance.BulkRecord)
		teacher.GET("/groups/:id/attendance", c.attendance.GroupDay)
		teacher.GET("/groups/:id/attendance/summary", c.attendance.GroupSummary)

		teacher.PUT("/plans/:id/review", c.projectPlan.Review)
		teacher.GET("/groups/:id/plans/awaiting", c.projectPlan.AwaitingReview)

		teacher.POST("/rubrics", c.rubric.Create)
		teacher.PUT("/rubrics/:id", c.rubric.Update)
		teacher.DELETE("/rubrics/:id", c.rubric.Delete)

		teacher.GET("/groups/:id/exports/evaluations", c.export.Evaluations)
		teacher.GET("/groups/:id/exports/attendance", c.export.Attendance)
		teacher.GET("/competency-windows/:id/export", c.export.Competencies)
	}
}
