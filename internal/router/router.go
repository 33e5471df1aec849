package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/middleware"
)

// NewRouter wires the REST surface. User creation and signin are public;
// everything else sits behind the bearer-auth middleware. allowedOrigins
// comes from the startup config.
func NewRouter(h *handlers.Handler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middleware.AuthMiddleware(h.Guard)

	r.GET("/health", handlers.HealthCheck)

	auth := r.Group("/auth")
	{
		auth.POST("/signin", h.Signin)
		auth.GET("/me", authRequired, h.Me)
	}

	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("/:id", authRequired, h.GetUser)
		users.PATCH("/:id", authRequired, h.UpdateUser)
		users.DELETE("/:id", authRequired, h.DeleteUser)
	}

	tasks := r.Group("/tasks", authRequired)
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.GET("/:id", h.GetTask)
		tasks.PATCH("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}

	projects := r.Group("/projects", authRequired)
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.GET("/:id", h.GetProject)
		projects.PATCH("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)

		projects.GET("/:id/tasks", h.GetProjectTasks)
		projects.GET("/:id/users", h.GetProjectMembers)
		projects.PATCH("/:id/users", h.AddProjectMember)
	}

	return r
}
