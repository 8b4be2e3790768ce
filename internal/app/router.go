package app

import (
	"github.com/gin-gonic/gin"

	"github.com/learnai/learnai-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:        m.Auth,
		AuthHandler:           h.Auth,
		UserHandler:           h.User,
		CourseHandler:         h.Course,
		LessonHandler:         h.Lesson,
		QuizHandler:           h.Quiz,
		RecommendationHandler: h.Recommendation,
		FeedbackHandler:       h.Feedback,
		ReadingHandler:        h.Reading,
		ChatHandler:           h.Chat,
		StatsHandler:          h.Stats,
		SearchHandler:         h.Search,
		AllowedOrigins:        cfg.AllowedOrigins,
	})
}
