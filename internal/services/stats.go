package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/repos"
	"github.com/learnai/learnai-backend/internal/types"
)

// UserStats is the aggregate snapshot served by the stats endpoint.
type UserStats struct {
	CoursesEnrolled    int       `json:"courses_enrolled"`
	LessonsCompleted   int       `json:"lessons_completed"`
	QuizzesTaken       int64     `json:"quizzes_taken"`
	QuizAverage        float64   `json:"quiz_average"`
	// Named for the payload key; counts learning_time activities.
	TotalLearningHours int64 `json:"total_learning_hours"`
	LastUpdated        time.Time `json:"last_updated"`
}

// DashboardEntry is one enrolled course with its reading position.
type DashboardEntry struct {
	Enrollment  *types.Enrollment `json:"enrollment"`
	Course      *types.Course     `json:"course"`
	LastPage    int               `json:"last_page"`
	TotalPages  int               `json:"total_pages"`
	ProgressPct float64           `json:"progress_pct"`
}

// Dashboard is the landing-page payload.
type Dashboard struct {
	Enrollments      []*DashboardEntry `json:"enrollments"`
	TotalPagesRead   int               `json:"total_pages_read"`
	RecentActivities []*types.Activity `json:"recent_activities"`
}

type StatsService interface {
	UserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error)
	WeeklyProgress(ctx context.Context, userID uuid.UUID) (map[string]int, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}

type statsService struct {
	db          *gorm.DB
	log         *logger.Logger
	enrollments repos.EnrollmentRepo
	attempts    repos.QuizAttemptRepo
	activity    repos.ActivityRepo
	progress    repos.PDFProgressRepo
}

func NewStatsService(
	db *gorm.DB,
	baseLog *logger.Logger,
	enrollments repos.EnrollmentRepo,
	attempts repos.QuizAttemptRepo,
	activity repos.ActivityRepo,
	progress repos.PDFProgressRepo,
) StatsService {
	return &statsService{
		db:          db,
		log:         baseLog.With("service", "StatsService"),
		enrollments: enrollments,
		attempts:    attempts,
		activity:    activity,
		progress:    progress,
	}
}

func (s *statsService) UserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	stats := &UserStats{
		CoursesEnrolled: len(enrollments),
		LastUpdated:     time.Now().UTC(),
	}
	for _, e := range enrollments {
		stats.LessonsCompleted += e.LessonsCompleted
	}

	stats.QuizzesTaken, err = s.attempts.CountByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("count quiz attempts: %w", err)
	}
	if stats.QuizzesTaken > 0 {
		avg, err := s.attempts.AverageScoreByUser(ctx, nil, userID)
		if err != nil {
			return nil, fmt.Errorf("average quiz score: %w", err)
		}
		stats.QuizAverage = round1(avg)
	}

	stats.TotalLearningHours, err = s.activity.CountByUserAndType(ctx, nil, userID, types.ActivityLearningTime)
	if err != nil {
		return nil, fmt.Errorf("count learning time: %w", err)
	}

	return stats, nil
}

// WeeklyProgress counts completed lessons per weekday over the last
// seven days. Every weekday in the window appears, zero included.
func (s *statsService) WeeklyProgress(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	now := time.Now().UTC()
	since := now.Add(-7 * 24 * time.Hour)

	activities, err := s.activity.Query(ctx, nil, userID, types.ActivityLessonCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	daily := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		daily[now.AddDate(0, 0, -i).Format("Mon")] = 0
	}
	for _, a := range activities {
		daily[a.Timestamp.Format("Mon")]++
	}
	return daily, nil
}

func (s *statsService) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	dashboard := &Dashboard{Enrollments: make([]*DashboardEntry, 0, len(enrollments))}
	for _, e := range enrollments {
		entry := &DashboardEntry{Enrollment: e, Course: e.Course, LastPage: 1, TotalPages: 1}
		if e.Course != nil && e.Course.TotalPages > 0 {
			entry.TotalPages = e.Course.TotalPages
		}

		progress, err := s.progress.GetByUserAndCourse(ctx, nil, userID, e.CourseID)
		if err != nil {
			return nil, fmt.Errorf("load reading progress: %w", err)
		}
		if progress != nil {
			entry.LastPage = progress.LastPageRead
			dashboard.TotalPagesRead += progress.LastPageRead
		}
		entry.ProgressPct = round1(float64(entry.LastPage) / float64(entry.TotalPages) * 100)
		dashboard.Enrollments = append(dashboard.Enrollments, entry)
	}

	recent, err := s.activity.Query(ctx, nil, userID, "", time.Now().UTC().AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("load recent activities: %w", err)
	}
	// Query returns oldest first; show the newest ten.
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	dashboard.RecentActivities = recent

	return dashboard, nil
}
