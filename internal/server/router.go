package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/learnai/learnai-backend/internal/handlers"
	"github.com/learnai/learnai-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware        *middleware.AuthMiddleware
	AuthHandler           *handlers.AuthHandler
	UserHandler           *handlers.UserHandler
	CourseHandler         *handlers.CourseHandler
	LessonHandler         *handlers.LessonHandler
	QuizHandler           *handlers.QuizHandler
	RecommendationHandler *handlers.RecommendationHandler
	FeedbackHandler       *handlers.FeedbackHandler
	ReadingHandler        *handlers.ReadingHandler
	ChatHandler           *handlers.ChatHandler
	StatsHandler          *handlers.StatsHandler
	SearchHandler         *handlers.SearchHandler
	AllowedOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/logout", cfg.AuthHandler.Logout)

		protected.GET("/user", cfg.UserHandler.GetMe)
		protected.PUT("/user", cfg.UserHandler.UpdateMe)

		protected.GET("/courses", cfg.CourseHandler.List)
		protected.GET("/courses/:course_id", cfg.CourseHandler.Detail)
		protected.POST("/courses/:course_id/enroll", cfg.CourseHandler.Enroll)
		protected.GET("/enrollments", cfg.CourseHandler.Enrollments)

		protected.GET("/courses/:course_id/lessons/:lesson_id", cfg.LessonHandler.View)
		protected.POST("/courses/:course_id/lessons/:lesson_id/complete", cfg.LessonHandler.Complete)

		protected.POST("/quizzes/:quiz_id/submit", cfg.QuizHandler.Submit)

		protected.GET("/recommendations", cfg.RecommendationHandler.List)
		protected.POST("/recommendations/refresh", cfg.RecommendationHandler.Refresh)
		protected.POST("/recommendations/:recommendation_id/viewed", cfg.RecommendationHandler.MarkViewed)

		protected.GET("/feedback", cfg.FeedbackHandler.List)
		protected.POST("/feedback/:feedback_id/dismiss", cfg.FeedbackHandler.Dismiss)

		protected.GET("/courses/:course_id/reader", cfg.ReadingHandler.Open)
		protected.POST("/reading/progress", cfg.ReadingHandler.SaveProgress)
		protected.GET("/reading/stats", cfg.ReadingHandler.Stats)

		protected.POST("/chat", cfg.ChatHandler.Ask)
		protected.GET("/chat/history", cfg.ChatHandler.History)

		protected.GET("/stats", cfg.StatsHandler.Stats)
		protected.GET("/progress", cfg.StatsHandler.Progress)
		protected.GET("/dashboard", cfg.StatsHandler.Dashboard)

		protected.POST("/search", cfg.SearchHandler.Search)
	}

	return router
}
