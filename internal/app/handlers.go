package app

import (
	"github.com/learnai/learnai-backend/internal/handlers"
	"github.com/learnai/learnai-backend/internal/platform/logger"
)

type Handlers struct {
	Auth           *handlers.AuthHandler
	User           *handlers.UserHandler
	Course         *handlers.CourseHandler
	Lesson         *handlers.LessonHandler
	Quiz           *handlers.QuizHandler
	Recommendation *handlers.RecommendationHandler
	Feedback       *handlers.FeedbackHandler
	Reading        *handlers.ReadingHandler
	Chat           *handlers.ChatHandler
	Stats          *handlers.StatsHandler
	Search         *handlers.SearchHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:           handlers.NewAuthHandler(s.Auth),
		User:           handlers.NewUserHandler(s.User),
		Course:         handlers.NewCourseHandler(s.Course),
		Lesson:         handlers.NewLessonHandler(s.Lesson),
		Quiz:           handlers.NewQuizHandler(s.Quiz),
		Recommendation: handlers.NewRecommendationHandler(s.Recommendation, s.Behavior, s.Reading),
		Feedback:       handlers.NewFeedbackHandler(s.Feedback),
		Reading:        handlers.NewReadingHandler(s.Reading),
		Chat:           handlers.NewChatHandler(s.Chat),
		Stats:          handlers.NewStatsHandler(s.Stats),
		Search:         handlers.NewSearchHandler(s.Searcher),
	}
}
