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

// ProgressSnapshot aggregates a user's all-time progress for rule
// evaluation.
type ProgressSnapshot struct {
	CoursesEnrolled    int     `json:"courses_enrolled"`
	CoursesCompleted   int     `json:"courses_completed"`
	LessonsCompleted   int     `json:"lessons_completed"`
	// Named for the payload key; counts learning_time activities.
	TotalLearningHours int64 `json:"total_learning_hours"`
}

// recentQuizSnapshot covers the last seven days of quiz attempts.
// nil means no attempts in the window.
type recentQuizSnapshot struct {
	Average float64
	Scores  []float64
}

// FeedbackService evaluates the feedback rule set against a user's
// current state and persists new feedback rows. Drafts matching any
// row of the same type and title from the last week are suppressed,
// read or not, so repeated views do not pile up duplicates.
type FeedbackService interface {
	GenerateFeedback(ctx context.Context, userID uuid.UUID) ([]*types.Feedback, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Feedback, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Dismiss(ctx context.Context, userID, feedbackID uuid.UUID) error
}

type feedbackService struct {
	db       *gorm.DB
	log      *logger.Logger
	feedback repos.FeedbackRepo
	enrolls  repos.EnrollmentRepo
	attempts repos.QuizAttemptRepo
	activity repos.ActivityRepo
}

const (
	feedbackQuizWindow  = 7 * 24 * time.Hour
	feedbackDedupWindow = 7 * 24 * time.Hour
)

func NewFeedbackService(
	db *gorm.DB,
	baseLog *logger.Logger,
	feedback repos.FeedbackRepo,
	enrolls repos.EnrollmentRepo,
	attempts repos.QuizAttemptRepo,
	activity repos.ActivityRepo,
) FeedbackService {
	return &feedbackService{
		db:       db,
		log:      baseLog.With("service", "FeedbackService"),
		feedback: feedback,
		enrolls:  enrolls,
		attempts: attempts,
		activity: activity,
	}
}

type feedbackDraft struct {
	Type    string
	Title   string
	Message string
}

func (s *feedbackService) GenerateFeedback(ctx context.Context, userID uuid.UUID) ([]*types.Feedback, error) {
	now := time.Now().UTC()

	progress, err := s.progressSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	recentAttempts, err := s.attempts.ListByUserSince(ctx, nil, userID, now.Add(-feedbackQuizWindow))
	if err != nil {
		return nil, fmt.Errorf("load recent attempts: %w", err)
	}
	var quiz *recentQuizSnapshot
	if len(recentAttempts) > 0 {
		snap := recentQuizSnapshot{Scores: make([]float64, 0, len(recentAttempts))}
		var sum float64
		for _, a := range recentAttempts {
			snap.Scores = append(snap.Scores, a.Score)
			sum += a.Score
		}
		snap.Average = sum / float64(len(snap.Scores))
		quiz = &snap
	}

	lastActivity, err := s.activity.LatestByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load last activity: %w", err)
	}

	drafts := evaluateFeedbackRules(progress, quiz, lastActivity, now)

	since := now.Add(-feedbackDedupWindow)
	items := make([]*types.Feedback, 0, len(drafts))
	for _, d := range drafts {
		exists, err := s.feedback.ExistsRecent(ctx, nil, userID, d.Type, d.Title, since)
		if err != nil {
			return nil, fmt.Errorf("check duplicate feedback: %w", err)
		}
		if exists {
			continue
		}
		items = append(items, &types.Feedback{
			UserID:       userID,
			FeedbackType: d.Type,
			Title:        d.Title,
			Message:      d.Message,
		})
	}

	saved := items
	if len(items) > 0 {
		var err error
		saved, err = s.feedback.Create(ctx, nil, items)
		if err != nil {
			return nil, fmt.Errorf("save feedback: %w", err)
		}
	}

	s.log.Info("feedback generated",
		"user_id", userID, "evaluated", len(drafts), "created", len(saved))
	return saved, nil
}

func (s *feedbackService) progressSnapshot(ctx context.Context, userID uuid.UUID) (ProgressSnapshot, error) {
	enrollments, err := s.enrolls.ListByUser(ctx, nil, userID)
	if err != nil {
		return ProgressSnapshot{}, fmt.Errorf("load enrollments: %w", err)
	}

	snap := ProgressSnapshot{CoursesEnrolled: len(enrollments)}
	for _, e := range enrollments {
		snap.LessonsCompleted += e.LessonsCompleted
		if e.IsCompleted {
			snap.CoursesCompleted++
		}
	}

	snap.TotalLearningHours, err = s.activity.CountByUserAndType(ctx, nil, userID, types.ActivityLearningTime)
	if err != nil {
		return ProgressSnapshot{}, fmt.Errorf("count learning time: %w", err)
	}
	return snap, nil
}

// evaluateFeedbackRules runs all rules in fixed order: achievements,
// success, warnings, info.
func evaluateFeedbackRules(progress ProgressSnapshot, quiz *recentQuizSnapshot, lastActivity *types.Activity, now time.Time) []feedbackDraft {
	var drafts []feedbackDraft

	if progress.LessonsCompleted > 0 && progress.LessonsCompleted%10 == 0 {
		drafts = append(drafts, feedbackDraft{
			Type:  types.FeedbackAchievement,
			Title: "Milestone Achieved!",
			Message: fmt.Sprintf(
				"Congratulations! You've completed %d lessons. Keep up the great momentum!",
				progress.LessonsCompleted),
		})
	}

	if progress.CoursesCompleted > 0 {
		drafts = append(drafts, feedbackDraft{
			Type:  types.FeedbackAchievement,
			Title: "Course Completed!",
			Message: fmt.Sprintf(
				"You've completed %d course(s). Excellent dedication to your learning journey!",
				progress.CoursesCompleted),
		})
	}

	if quiz != nil && quiz.Average >= 85 {
		drafts = append(drafts, feedbackDraft{
			Type:  types.FeedbackSuccess,
			Title: "Excellent Performance!",
			Message: fmt.Sprintf(
				"Your recent quiz average of %.1f%% shows exceptional understanding of the material.",
				quiz.Average),
		})
	}

	if quiz != nil && len(quiz.Scores) >= 3 {
		if declined(quiz.Scores) {
			drafts = append(drafts, feedbackDraft{
				Type:    types.FeedbackWarning,
				Title:   "Performance Decline",
				Message: "Your recent quiz scores have dropped. Consider reviewing previous lessons or taking a short break.",
			})
		}
	}

	if lastActivity != nil {
		sinceActivity := now.Sub(lastActivity.Timestamp)
		if days := int(sinceActivity.Hours() / 24); days > 7 {
			drafts = append(drafts, feedbackDraft{
				Type:  types.FeedbackWarning,
				Title: "We Miss You!",
				Message: fmt.Sprintf(
					"It's been %d days since your last activity. Consistent learning helps maintain momentum.",
					days),
			})
		}
	}

	if progress.LessonsCompleted > 20 && progress.CoursesCompleted < 1 {
		drafts = append(drafts, feedbackDraft{
			Type:    types.FeedbackInfo,
			Title:   "Learning Efficiency",
			Message: "You've completed many lessons across different courses. Consider focusing on completing one course to build deeper knowledge.",
		})
	}

	if lastActivity != nil {
		hours := now.Sub(lastActivity.Timestamp).Hours()
		if hours > 3 && hours < 72 {
			drafts = append(drafts, feedbackDraft{
				Type:    types.FeedbackInfo,
				Title:   "Great Progress!",
				Message: "You're maintaining a good learning rhythm. Keep up the consistent effort!",
			})
		}
	}

	return drafts
}

// declined compares first-half and second-half score means with a
// 10-point tolerance.
func declined(scores []float64) bool {
	mid := len(scores) / 2
	if mid == 0 {
		return false
	}
	var firstSum, secondSum float64
	for _, v := range scores[:mid] {
		firstSum += v
	}
	for _, v := range scores[mid:] {
		secondSum += v
	}
	firstAvg := firstSum / float64(mid)
	secondAvg := secondSum / float64(len(scores)-mid)
	return secondAvg < firstAvg-10
}

func (s *feedbackService) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Feedback, error) {
	items, err := s.feedback.ListByUser(ctx, nil, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return items, nil
}

func (s *feedbackService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.feedback.MarkAllRead(ctx, nil, userID); err != nil {
		return fmt.Errorf("mark feedback read: %w", err)
	}
	return nil
}

func (s *feedbackService) Dismiss(ctx context.Context, userID, feedbackID uuid.UUID) error {
	if err := s.feedback.Dismiss(ctx, nil, feedbackID, userID); err != nil {
		return fmt.Errorf("dismiss feedback: %w", err)
	}
	return nil
}
