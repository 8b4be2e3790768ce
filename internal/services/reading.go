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

// ReadingStats summarizes reading habits across all sessions: speed
// in pages per minute and the clock hour the user most often reads.
type ReadingStats struct {
	TotalPagesRead     int     `json:"total_pages_read"`
	ReadingSpeed       float64 `json:"reading_speed"`
	AvgPagesPerSession float64 `json:"avg_pages_per_session"`
	PreferredTime      string  `json:"preferred_time"`
}

type ReadingService interface {
	OpenReader(ctx context.Context, userID, courseID uuid.UUID) (*types.PDFReadingProgress, error)
	SaveProgress(ctx context.Context, userID, courseID uuid.UUID, page int) (*types.PDFReadingProgress, error)
	Stats(ctx context.Context, userID uuid.UUID) (*ReadingStats, error)
}

type readingService struct {
	db          *gorm.DB
	log         *logger.Logger
	courses     repos.CourseRepo
	enrollments repos.EnrollmentRepo
	progress    repos.PDFProgressRepo
	sessions    repos.ReadingSessionRepo
}

func NewReadingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courses repos.CourseRepo,
	enrollments repos.EnrollmentRepo,
	progress repos.PDFProgressRepo,
	sessions repos.ReadingSessionRepo,
) ReadingService {
	return &readingService{
		db:          db,
		log:         baseLog.With("service", "ReadingService"),
		courses:     courses,
		enrollments: enrollments,
		progress:    progress,
		sessions:    sessions,
	}
}

func (s *readingService) requireEnrollment(ctx context.Context, userID, courseID uuid.UUID) error {
	if _, err := s.enrollments.GetByUserAndCourse(ctx, nil, userID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.New(http.StatusForbidden, "not_enrolled", errors.New("enrollment required"))
		}
		return fmt.Errorf("load enrollment: %w", err)
	}
	return nil
}

// OpenReader returns the saved position, creating a page-1 row on
// first open.
func (s *readingService) OpenReader(ctx context.Context, userID, courseID uuid.UUID) (*types.PDFReadingProgress, error) {
	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return nil, err
	}
	progress, err := s.progress.GetOrCreate(ctx, nil, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("open reading progress: %w", err)
	}
	return progress, nil
}

// SaveProgress clamps the page into [1, total_pages] and records a
// reading session for any forward movement.
func (s *readingService) SaveProgress(ctx context.Context, userID, courseID uuid.UUID, page int) (*types.PDFReadingProgress, error) {
	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "course_not_found", err)
		}
		return nil, fmt.Errorf("load course: %w", err)
	}
	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return nil, err
	}

	totalPages := course.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var progress *types.PDFReadingProgress
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err = s.progress.GetOrCreate(ctx, tx, userID, courseID)
		if err != nil {
			return fmt.Errorf("load reading progress: %w", err)
		}

		pagesDiff := page - progress.LastPageRead
		progress.LastPageRead = page
		if err := s.progress.Update(ctx, tx, progress); err != nil {
			return fmt.Errorf("save reading progress: %w", err)
		}

		if pagesDiff > 0 {
			session := &types.ReadingSession{
				UserID:          userID,
				CourseID:        courseID,
				PagesRead:       pagesDiff,
				DurationMinutes: 1.0,
			}
			if _, err := s.sessions.Create(ctx, tx, session); err != nil {
				return fmt.Errorf("record reading session: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *readingService) Stats(ctx context.Context, userID uuid.UUID) (*ReadingStats, error) {
	sessions, err := s.sessions.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list reading sessions: %w", err)
	}

	stats := &ReadingStats{PreferredTime: "Not enough data"}
	if len(sessions) == 0 {
		return stats, nil
	}

	var totalMinutes float64
	hourCounts := make(map[int]int)
	for _, sess := range sessions {
		stats.TotalPagesRead += sess.PagesRead
		totalMinutes += sess.DurationMinutes
		hourCounts[sess.StartedAt.Hour()]++
	}

	if totalMinutes > 0 {
		stats.ReadingSpeed = round1(float64(stats.TotalPagesRead) / totalMinutes)
	}
	stats.AvgPagesPerSession = round1(float64(stats.TotalPagesRead) / float64(len(sessions)))

	preferredHour, best := -1, 0
	for hour, count := range hourCounts {
		if count > best || (count == best && (preferredHour == -1 || hour < preferredHour)) {
			preferredHour, best = hour, count
		}
	}
	if preferredHour >= 0 {
		stats.PreferredTime = fmt.Sprintf("%d:00", preferredHour)
	}
	return stats, nil
}
