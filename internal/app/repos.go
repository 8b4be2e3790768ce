package app

import (
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/repos"
)

type Repos struct {
	User           repos.UserRepo
	UserToken      repos.UserTokenRepo
	Course         repos.CourseRepo
	Lesson         repos.LessonRepo
	Quiz           repos.QuizRepo
	QuizAttempt    repos.QuizAttemptRepo
	Enrollment     repos.EnrollmentRepo
	Activity       repos.ActivityRepo
	Recommendation repos.RecommendationRepo
	Feedback       repos.FeedbackRepo
	PDFProgress    repos.PDFProgressRepo
	ReadingSession repos.ReadingSessionRepo
	ChatMessage    repos.ChatMessageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		UserToken:      repos.NewUserTokenRepo(db, log),
		Course:         repos.NewCourseRepo(db, log),
		Lesson:         repos.NewLessonRepo(db, log),
		Quiz:           repos.NewQuizRepo(db, log),
		QuizAttempt:    repos.NewQuizAttemptRepo(db, log),
		Enrollment:     repos.NewEnrollmentRepo(db, log),
		Activity:       repos.NewActivityRepo(db, log),
		Recommendation: repos.NewRecommendationRepo(db, log),
		Feedback:       repos.NewFeedbackRepo(db, log),
		PDFProgress:    repos.NewPDFProgressRepo(db, log),
		ReadingSession: repos.NewReadingSessionRepo(db, log),
		ChatMessage:    repos.NewChatMessageRepo(db, log),
	}
}
