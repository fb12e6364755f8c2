package routes

import (
	"ClassFeed/controllers"
	"ClassFeed/middlewares"
	"ClassFeed/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries what the protected routes need from main.
type Options struct {
	JWTSecret   []byte
	RateLimiter *middlewares.RateLimiter
}

func RegisterRoutes(r *gin.Engine, opts Options) {
	// Public routes
	r.GET("/healthz", controllers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.Use(middlewares.AuthMiddleware(opts.JWTSecret))

	limited := []gin.HandlerFunc{}
	if opts.RateLimiter != nil {
		limited = append(limited, opts.RateLimiter.Middleware())
	}

	// Realtime channel of a class
	v1.GET("/ws/:class", controllers.ServeWs)

	messages := v1.Group("/messages")
	{
		messages.GET("/vis/:class/:duration", controllers.GetVisualisation)
		messages.POST("/create", append(limited, controllers.CreateMessage)...)
		messages.GET("/:class/:start/:end", controllers.GetSegmentMessages)
		messages.GET("/:class/:start/:end/:summary", controllers.GetSegmentMessages)
	}

	message := v1.Group("/message")
	{
		message.POST("/like", append(limited, controllers.LikeMessage)...)
		message.GET("/:id", controllers.GetMessage)
	}

	v1.GET("/user/messages/:class", controllers.GetOwnMessages)

	teacher := v1.Group("/teacher")
	teacher.Use(middlewares.RequireRole(models.RoleTeacher, models.RoleAdmin))
	{
		teacher.GET("/messages/:class", controllers.GetTeacherMessages)
	}

	admin := v1.Group("/admin")
	admin.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/messages/:class", controllers.GetAdminMessages)
	}
}
