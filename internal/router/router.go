package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/registry/internal/config"
	"github.com/stemsi/registry/internal/handler"
	"github.com/stemsi/registry/internal/middleware"
	"github.com/stemsi/registry/internal/response"
	"github.com/stemsi/registry/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Class   *handler.ClassHandler
	Student *handler.StudentHandler
	Teacher *handler.TeacherHandler
	Parent  *handler.ParentHandler
	Events  *handler.EventsHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// Reads are public; writes and the event stream need an admin token when
// an admin credential is configured.
func SetupRouter(
	authService *service.AuthService,
	limiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", middleware.CacheControl(0), func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(limiter.Middleware(), middleware.CacheControl(0))

	// ─── 1. Auth ───────────────────────────────────────────────────────
	auth := api.Group("/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireAdminJWT(authService), handlers.Auth.Me)
	}

	requireAdmin := middleware.RequireAdminJWT(authService)

	// ─── 2. Classes ────────────────────────────────────────────────────
	classes := api.Group("/classes")
	{
		classes.GET("", handlers.Class.ListClasses)
		classes.GET("/:id", handlers.Class.GetClass)
		classes.GET("/:id/teacher", handlers.Class.GetClassTeacher)
		classes.GET("/:id/students", handlers.Class.GetClassStudents)
		classes.POST("", requireAdmin, handlers.Class.CreateClass)
		classes.PUT("/:id", requireAdmin, handlers.Class.UpdateClass)
		classes.DELETE("/:id", requireAdmin, handlers.Class.DeleteClass)
	}

	// ─── 3. Students ───────────────────────────────────────────────────
	students := api.Group("/students")
	{
		students.GET("", handlers.Student.ListStudents)
		students.GET("/:id", handlers.Student.GetStudent)
		students.GET("/:id/class", handlers.Student.GetStudentClass)
		students.GET("/:id/parents", handlers.Student.GetStudentParents)
		students.POST("", requireAdmin, handlers.Student.CreateStudent)
		students.PUT("/:id", requireAdmin, handlers.Student.UpdateStudent)
		students.DELETE("/:id", requireAdmin, handlers.Student.DeleteStudent)
	}

	// ─── 4. Teachers ───────────────────────────────────────────────────
	teachers := api.Group("/teachers")
	{
		teachers.GET("", handlers.Teacher.ListTeachers)
		teachers.GET("/:id", handlers.Teacher.GetTeacher)
		teachers.GET("/:id/classes", handlers.Teacher.GetTeacherClasses)
		teachers.POST("", requireAdmin, handlers.Teacher.CreateTeacher)
		teachers.PUT("/:id", requireAdmin, handlers.Teacher.UpdateTeacher)
		teachers.DELETE("/:id", requireAdmin, handlers.Teacher.DeleteTeacher)
	}

	// ─── 5. Parents ────────────────────────────────────────────────────
	parents := api.Group("/parents")
	{
		parents.GET("", handlers.Parent.ListParents)
		parents.GET("/:id", handlers.Parent.GetParent)
		parents.GET("/:id/students", handlers.Parent.GetParentStudents)
		parents.POST("", requireAdmin, handlers.Parent.CreateParent)
		parents.PUT("/:id", requireAdmin, handlers.Parent.UpdateParent)
		parents.DELETE("/:id", requireAdmin, handlers.Parent.DeleteParent)
	}

	// ─── 6. WebSocket (token in query) ─────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdminWSAuth(authService))
	{
		ws.GET("/events", handlers.Events.Stream)
	}

	return router
}
