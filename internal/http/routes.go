package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/s84/movie-catalog/internal/log"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()

	// final 500 fallback: the cause stays in the log, never in the response
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.L().Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
	}))
	r.Use(RequestID())
	r.Use(Metrics())

	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/auth")
	{
		rl := RateLimit(h.Redis, h.RateLimitPerMin)
		auth.POST("/register", rl, h.Register)
		auth.POST("/login", rl, h.Login)
	}

	movies := r.Group("/movies")
	{
		movies.GET("", h.ListMovies)
		movies.GET("/:id", h.GetMovie)

		authed := movies.Group("", AuthRequired(h.JWTSecret))
		{
			authed.POST("/:id/comments", h.AddComment)
			authed.GET("/:id/comments", h.ListComments)
			authed.DELETE("/:id/comments/:commentId", h.DeleteComment)

			admin := authed.Group("", AdminOnly())
			{
				admin.POST("", h.CreateMovie)
				admin.PUT("/:id", h.UpdateMovie)
				admin.DELETE("/:id", h.DeleteMovie)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found."})
	})

	return r
}
