package app

import (
	"github.com/AtizaD/school-assessment-system-sub006/docs"
	"github.com/AtizaD/school-assessment-system-sub006/internal/config"
	"github.com/AtizaD/school-assessment-system-sub006/internal/middleware"
	"github.com/AtizaD/school-assessment-system-sub006/internal/model"
	"github.com/AtizaD/school-assessment-system-sub006/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.Health)

	// Public routes
	router.POST("/api/register", c.auth.Register)
	router.POST("/api/login", c.auth.Login)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)
		authGroup.GET("/csrf-token", c.auth.CSRFToken)
		authGroup.POST("/time/sync", c.attempt.SyncClock)

		a.registerStudentRoutes(authGroup, c, s)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers, s *services) {
	student := group.Group("")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/student/assessments", c.assessment.ListForStudent)
		student.GET("/assessments/:id/attempt", c.attempt.Get)
		student.GET("/assessments/:id/attempt/time", c.attempt.CheckTime)
		student.GET("/assessments/:id/result", c.attempt.Result)

		// State-changing attempt routes also require the anti-forgery token.
		mutating := student.Group("")
		mutating.Use(middleware.CSRFMiddleware(s.csrf))
		{
			mutating.POST("/assessments/:id/attempt/start", c.attempt.Start)
			mutating.POST("/assessments/:id/answers", c.attempt.SaveAnswer)
			mutating.POST("/assessments/:id/submit", c.attempt.Submit)
			mutating.POST("/assessments/:id/auto-submit", c.attempt.AutoSubmit)
		}
	}
}

func (a *App) registerTeacherRoutes(group *gin.RouterGroup, c *controllers) {
	teacher := group.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/classes", c.class.Create)
		teacher.GET("/classes", c.class.List)
		teacher.GET("/classes/:id", c.class.Get)
		teacher.POST("/classes/:id/students", c.class.Enroll)
		teacher.GET("/classes/:id/students", c.class.Students)
		teacher.DELETE("/classes/:id/students/:studentId", c.class.Unenroll)

		teacher.POST("/assessments", c.assessment.Create)
		teacher.GET("/assessments", c.assessment.List)
		teacher.GET("/assessments/:id", c.assessment.Get)
		teacher.PUT("/assessments/:id", c.assessment.Update)
		teacher.POST("/assessments/:id/publish", c.assessment.Publish)

		teacher.GET("/students", c.class.AllStudents)

		teacher.POST("/assessments/:id/questions", c.assessment.AddQuestion)
		teacher.GET("/assessments/:id/questions", c.assessment.ListQuestions)
		teacher.PUT("/assessments/:id/questions/:questionId", c.assessment.UpdateQuestion)
		teacher.DELETE("/assessments/:id/questions/:questionId", c.assessment.DeleteQuestion)

		teacher.POST("/assessments/:id/resets", c.assessment.ResetStudent)
		teacher.GET("/assessments/:id/results", c.assessment.ListResults)
		teacher.GET("/assessments/:id/results/:studentId/answers", c.assessment.StudentAnswers)
		teacher.POST("/assessments/:id/results/:studentId/regrade", c.assessment.Regrade)
	}
}
