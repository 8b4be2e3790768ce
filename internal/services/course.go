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

// CourseDetail combines a course with the caller's enrollment state
// and reading position.
type CourseDetail struct {
	Course     *types.Course             `json:"course"`
	Lessons    []*types.Lesson           `json:"lessons"`
	IsEnrolled bool                      `json:"is_enrolled"`
	Enrollment *types.Enrollment         `json:"enrollment,omitempty"`
	Progress   *types.PDFReadingProgress `json:"progress,omitempty"`
}

type CourseService interface {
	ListCourses(ctx context.Context) ([]*types.Course, error)
	GetCourseDetail(ctx context.Context, userID, courseID uuid.UUID) (*CourseDetail, error)
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error)
	ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error)
}

type courseService struct {
	db          *gorm.DB
	log         *logger.Logger
	courses     repos.CourseRepo
	lessons     repos.LessonRepo
	enrollments repos.EnrollmentRepo
	progress    repos.PDFProgressRepo
	activity    ActivityService
}

func NewCourseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courses repos.CourseRepo,
	lessons repos.LessonRepo,
	enrollments repos.EnrollmentRepo,
	progress repos.PDFProgressRepo,
	activity ActivityService,
) CourseService {
	return &courseService{
		db:          db,
		log:         baseLog.With("service", "CourseService"),
		courses:     courses,
		lessons:     lessons,
		enrollments: enrollments,
		progress:    progress,
		activity:    activity,
	}
}

func (s *courseService) ListCourses(ctx context.Context) ([]*types.Course, error) {
	courses, err := s.courses.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) GetCourseDetail(ctx context.Context, userID, courseID uuid.UUID) (*CourseDetail, error) {
	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "course_not_found", err)
		}
		return nil, fmt.Errorf("load course: %w", err)
	}

	lessons, err := s.lessons.ListByCourseID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load lessons: %w", err)
	}

	detail := &CourseDetail{Course: course, Lessons: lessons}

	enrollment, err := s.enrollments.GetByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load enrollment: %w", err)
	}
	if enrollment != nil {
		detail.IsEnrolled = true
		detail.Enrollment = enrollment

		progress, err := s.progress.GetByUserAndCourse(ctx, nil, userID, courseID)
		if err != nil {
			return nil, fmt.Errorf("load reading progress: %w", err)
		}
		detail.Progress = progress
	}
	return detail, nil
}

func (s *courseService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "course_not_found", err)
		}
		return nil, fmt.Errorf("load course: %w", err)
	}

	existing, err := s.enrollments.GetByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}
	if existing != nil {
		return nil, apierr.New(http.StatusConflict, "already_enrolled", errors.New("already enrolled in course"))
	}

	enrollment := &types.Enrollment{UserID: userID, CourseID: courseID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.enrollments.Create(ctx, tx, enrollment); err != nil {
			return fmt.Errorf("create enrollment: %w", err)
		}
		if err := s.courses.IncrementEnrolledCount(ctx, tx, courseID); err != nil {
			return fmt.Errorf("increment enrolled count: %w", err)
		}
		return s.activity.Log(ctx, tx, userID, types.ActivityCourseEnrolled, map[string]any{
			"course_id":    courseID.String(),
			"course_title": course.Title,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user enrolled", "user_id", userID, "course_id", courseID)
	return enrollment, nil
}

func (s *courseService) ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}
