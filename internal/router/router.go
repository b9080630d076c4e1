package router

import (
	"time"

	"github.com/bloghub-dev/bloghub/internal/handlers"
	"github.com/bloghub-dev/bloghub/internal/metrics"
	"github.com/bloghub-dev/bloghub/internal/middleware"
	"github.com/bloghub-dev/bloghub/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

func New(database *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.BodyLimit(types.MaxBodyBytes))

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	r.Use(middleware.MetricsMiddleware(collector))
	r.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	userHandler := handlers.NewUserHandler(database)
	postHandler := handlers.NewPostHandler(database)
	commentHandler := handlers.NewCommentHandler(database)

	requireAuth := middleware.AuthMiddleware(database)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("/current-user", requireAuth, userHandler.CurrentUser)
		}

		posts := api.Group("/post")
		{
			posts.GET("/getposts", postHandler.List)
			posts.GET("/getpost/:postId", postHandler.Get)
			posts.POST("/addpost", requireAuth, postHandler.Create)
			posts.PUT("/updatepost/:id", requireAuth, postHandler.Update)
			posts.DELETE("/deletepost/:id", requireAuth, postHandler.Delete)
		}

		comments := api.Group("/comment")
		{
			comments.GET("/comments/:postId", commentHandler.ListByPost)
			comments.GET("/readsinglecomm/:commentId", commentHandler.Get)
			comments.POST("/addcomment/:postId", requireAuth, commentHandler.Create)
			comments.PUT("/updatecomment/:commentId", requireAuth, commentHandler.Update)
			comments.DELETE("/deletecomment/:commentId", requireAuth, commentHandler.Delete)
		}
	}

	return r
}
