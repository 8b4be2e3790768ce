package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/apierr"
	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/repos"
	"github.com/learnai/learnai-backend/internal/types"
)

// LessonView is a lesson with its quizzes and the caller's latest
// attempt per quiz.
type LessonView struct {
	Lesson   *types.Lesson                 `json:"lesson"`
	Course   *types.Course                 `json:"course"`
	Quizzes  []*types.Quiz                 `json:"quizzes"`
	Attempts map[string]*types.QuizAttempt `json:"attempts"`
}

type LessonService interface {
	ViewLesson(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*LessonView, error)
	CompleteLesson(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*types.Enrollment, error)
}

type lessonService struct {
	db          *gorm.DB
	log         *logger.Logger
	courses     repos.CourseRepo
	lessons     repos.LessonRepo
	quizzes     repos.QuizRepo
	attempts    repos.QuizAttemptRepo
	enrollments repos.EnrollmentRepo
	activity    ActivityService
}

func NewLessonService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courses repos.CourseRepo,
	lessons repos.LessonRepo,
	quizzes repos.QuizRepo,
	attempts repos.QuizAttemptRepo,
	enrollments repos.EnrollmentRepo,
	activity ActivityService,
) LessonService {
	return &lessonService{
		db:          db,
		log:         baseLog.With("service", "LessonService"),
		courses:     courses,
		lessons:     lessons,
		quizzes:     quizzes,
		attempts:    attempts,
		enrollments: enrollments,
		activity:    activity,
	}
}

func (s *lessonService) loadLesson(ctx context.Context, courseID, lessonID uuid.UUID) (*types.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, nil, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "lesson_not_found", err)
		}
		return nil, fmt.Errorf("load lesson: %w", err)
	}
	if lesson.CourseID != courseID {
		return nil, apierr.New(http.StatusNotFound, "lesson_not_found", errors.New("lesson not in course"))
	}
	return lesson, nil
}

func (s *lessonService) requireEnrollment(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	enrollment, err := s.enrollments.GetByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusForbidden, "not_enrolled", errors.New("enrollment required"))
		}
		return nil, fmt.Errorf("load enrollment: %w", err)
	}
	return enrollment, nil
}

// ViewLesson returns the lesson content and records a content_viewed
// activity carrying the lesson's content type, which feeds the
// behavior analyzer's preference distribution.
func (s *lessonService) ViewLesson(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*LessonView, error) {
	lesson, err := s.loadLesson(ctx, courseID, lessonID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}

	quizzes, err := s.quizzes.ListByLessonID(ctx, nil, lessonID)
	if err != nil {
		return nil, fmt.Errorf("load quizzes: %w", err)
	}

	attempts, err := s.attempts.ListByUserSince(ctx, nil, userID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}
	latestByQuiz := make(map[string]*types.QuizAttempt)
	for _, a := range attempts {
		latestByQuiz[a.QuizID.String()] = a
	}
	attemptsForLesson := make(map[string]*types.QuizAttempt)
	for _, q := range quizzes {
		if a, ok := latestByQuiz[q.ID.String()]; ok {
			attemptsForLesson[q.ID.String()] = a
		}
	}

	_ = s.activity.Log(ctx, nil, userID, types.ActivityContentViewed, map[string]any{
		"course_id":    courseID.String(),
		"lesson_id":    lessonID.String(),
		"content_type": lesson.ContentType,
	})

	return &LessonView{
		Lesson:   lesson,
		Course:   course,
		Quizzes:  quizzes,
		Attempts: attemptsForLesson,
	}, nil
}

// CompleteLesson advances the enrollment counters and marks the
// course completed once every lesson is done.
func (s *lessonService) CompleteLesson(ctx context.Context, userID, courseID, lessonID uuid.UUID) (*types.Enrollment, error) {
	lesson, err := s.loadLesson(ctx, courseID, lessonID)
	if err != nil {
		return nil, err
	}
	enrollment, err := s.requireEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}

	if lesson.Order > enrollment.CurrentLesson {
		enrollment.CurrentLesson = lesson.Order
	}
	enrollment.LessonsCompleted++
	if course.LessonsCount > 0 {
		enrollment.ProgressPercentage = float64(enrollment.LessonsCompleted) / float64(course.LessonsCount) * 100
	}
	if course.LessonsCount > 0 && enrollment.LessonsCompleted >= course.LessonsCount {
		now := time.Now().UTC()
		enrollment.IsCompleted = true
		enrollment.CompletedAt = &now
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.enrollments.Update(ctx, tx, enrollment); err != nil {
			return fmt.Errorf("update enrollment: %w", err)
		}
		return s.activity.Log(ctx, tx, userID, types.ActivityLessonCompleted, map[string]any{
			"course_id":    courseID.String(),
			"lesson_id":    lessonID.String(),
			"content_type": lesson.ContentType,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("lesson completed",
		"user_id", userID, "lesson_id", lessonID, "progress", enrollment.ProgressPercentage)
	return enrollment, nil
}
