package app

import (
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	User           services.UserService
	Activity       services.ActivityService
	Course         services.CourseService
	Lesson         services.LessonService
	Quiz           services.QuizService
	Reading        services.ReadingService
	Chat           services.ChatService
	Stats          services.StatsService
	Behavior       services.BehaviorService
	Feedback       services.FeedbackService
	Recommendation services.RecommendationService
	Searcher       services.ResourceSearcher
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")

	searcher := services.NewHTTPResourceSearcher(log)
	cache := services.NewRecommendationCache(log)
	activity := services.NewActivityService(db, log, r.Activity)

	return Services{
		Auth:     services.NewAuthService(db, log, r.User, r.UserToken, activity, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:     services.NewUserService(db, log, r.User),
		Activity: activity,
		Course:   services.NewCourseService(db, log, r.Course, r.Lesson, r.Enrollment, r.PDFProgress, activity),
		Lesson:   services.NewLessonService(db, log, r.Course, r.Lesson, r.Quiz, r.QuizAttempt, r.Enrollment, activity),
		Quiz:     services.NewQuizService(db, log, r.Quiz, r.QuizAttempt, activity),
		Reading:  services.NewReadingService(db, log, r.Course, r.Enrollment, r.PDFProgress, r.ReadingSession),
		Chat:     services.NewChatService(db, log, r.Course, r.Enrollment, r.ChatMessage),
		Stats:    services.NewStatsService(db, log, r.Enrollment, r.QuizAttempt, r.Activity, r.PDFProgress),
		Behavior: services.NewBehaviorService(db, log, r.User, r.Activity, r.QuizAttempt, r.Enrollment),
		Feedback: services.NewFeedbackService(db, log, r.Feedback, r.Enrollment, r.QuizAttempt, r.Activity),
		Recommendation: services.NewRecommendationService(
			db, log, r.User, r.Course, r.Enrollment, r.Recommendation, searcher, cache),
		Searcher: searcher,
	}
}
