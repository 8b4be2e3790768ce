package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/apierr"
	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/repos"
	"github.com/learnai/learnai-backend/internal/types"
)

// QuizResult is the graded outcome of a submission. Explanation is
// only revealed after an attempt.
type QuizResult struct {
	Correct     bool    `json:"correct"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

type QuizService interface {
	SubmitQuiz(ctx context.Context, userID, quizID uuid.UUID, selectedAnswer int) (*QuizResult, error)
}

type quizService struct {
	db       *gorm.DB
	log      *logger.Logger
	quizzes  repos.QuizRepo
	attempts repos.QuizAttemptRepo
	activity ActivityService
}

func NewQuizService(
	db *gorm.DB,
	baseLog *logger.Logger,
	quizzes repos.QuizRepo,
	attempts repos.QuizAttemptRepo,
	activity ActivityService,
) QuizService {
	return &quizService{
		db:       db,
		log:      baseLog.With("service", "QuizService"),
		quizzes:  quizzes,
		attempts: attempts,
		activity: activity,
	}
}

// SubmitQuiz grades all-or-nothing: 100 for the correct option, 0
// otherwise. Every submission creates a new attempt row.
func (s *quizService) SubmitQuiz(ctx context.Context, userID, quizID uuid.UUID, selectedAnswer int) (*QuizResult, error) {
	quiz, err := s.quizzes.GetByID(ctx, nil, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "quiz_not_found", err)
		}
		return nil, fmt.Errorf("load quiz: %w", err)
	}

	options := decodeStringList(quiz.Options)
	if selectedAnswer < 0 || (len(options) > 0 && selectedAnswer >= len(options)) {
		return nil, apierr.New(http.StatusBadRequest, "invalid_answer",
			fmt.Errorf("answer index %d out of range", selectedAnswer))
	}

	isCorrect := selectedAnswer == quiz.CorrectAnswer
	score := 0.0
	if isCorrect {
		score = 100.0
	}

	attempt := &types.QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		SelectedAnswer: selectedAnswer,
		IsCorrect:      isCorrect,
		Score:          score,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.attempts.Create(ctx, tx, attempt); err != nil {
			return fmt.Errorf("create attempt: %w", err)
		}
		return s.activity.Log(ctx, tx, userID, types.ActivityQuizCompleted, map[string]any{
			"quiz_id":   quizID.String(),
			"lesson_id": quiz.LessonID.String(),
			"score":     score,
			"correct":   isCorrect,
		})
	})
	if err != nil {
		return nil, err
	}

	return &QuizResult{
		Correct:     isCorrect,
		Score:       score,
		Explanation: quiz.Explanation,
	}, nil
}
