package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/types"
)

func draftsByType(drafts []feedbackDraft) map[string][]feedbackDraft {
	out := make(map[string][]feedbackDraft)
	for _, d := range drafts {
		out[d.Type] = append(out[d.Type], d)
	}
	return out
}

func TestEvaluateFeedbackRulesQuietState(t *testing.T) {
	now := time.Now().UTC()
	drafts := evaluateFeedbackRules(ProgressSnapshot{}, nil, nil, now)
	if len(drafts) != 0 {
		t.Fatalf("got %d drafts for a fresh user, want none: %v", len(drafts), drafts)
	}
}

func TestEvaluateFeedbackRulesMilestone(t *testing.T) {
	now := time.Now().UTC()

	t.Run("multiple_of_ten", func(t *testing.T) {
		drafts := evaluateFeedbackRules(ProgressSnapshot{LessonsCompleted: 20}, nil, nil, now)
		byType := draftsByType(drafts)
		if len(byType[types.FeedbackAchievement]) != 1 {
			t.Fatalf("achievements=%v, want single milestone", byType[types.FeedbackAchievement])
		}
	})

	t.Run("zero_lessons_no_milestone", func(t *testing.T) {
		drafts := evaluateFeedbackRules(ProgressSnapshot{LessonsCompleted: 0}, nil, nil, now)
		if len(drafts) != 0 {
			t.Fatalf("got drafts %v, want none for zero lessons", drafts)
		}
	})

	t.Run("non_multiple_no_milestone", func(t *testing.T) {
		drafts := evaluateFeedbackRules(ProgressSnapshot{LessonsCompleted: 13}, nil, nil, now)
		if len(drafts) != 0 {
			t.Fatalf("got drafts %v, want none for 13 lessons", drafts)
		}
	})
}

func TestEvaluateFeedbackRulesSuccess(t *testing.T) {
	now := time.Now().UTC()
	quiz := &recentQuizSnapshot{Average: 90, Scores: []float64{85, 95}}
	drafts := evaluateFeedbackRules(ProgressSnapshot{}, quiz, nil, now)
	byType := draftsByType(drafts)
	if len(byType[types.FeedbackSuccess]) != 1 {
		t.Fatalf("success drafts=%v, want one for 90 average", byType[types.FeedbackSuccess])
	}

	quiz = &recentQuizSnapshot{Average: 84.9, Scores: []float64{84.9}}
	drafts = evaluateFeedbackRules(ProgressSnapshot{}, quiz, nil, now)
	if len(drafts) != 0 {
		t.Fatalf("got drafts %v below the 85 threshold, want none", drafts)
	}
}

func TestEvaluateFeedbackRulesDecline(t *testing.T) {
	now := time.Now().UTC()

	t.Run("declining_scores_warn", func(t *testing.T) {
		quiz := &recentQuizSnapshot{Average: 70, Scores: []float64{95, 90, 60, 50}}
		drafts := evaluateFeedbackRules(ProgressSnapshot{}, quiz, nil, now)
		byType := draftsByType(drafts)
		if len(byType[types.FeedbackWarning]) != 1 {
			t.Fatalf("warnings=%v, want performance decline", byType[types.FeedbackWarning])
		}
	})

	t.Run("two_attempts_never_warn", func(t *testing.T) {
		quiz := &recentQuizSnapshot{Average: 50, Scores: []float64{95, 5}}
		drafts := evaluateFeedbackRules(ProgressSnapshot{}, quiz, nil, now)
		byType := draftsByType(drafts)
		if len(byType[types.FeedbackWarning]) != 0 {
			t.Fatalf("warnings=%v, want none below three attempts", byType[types.FeedbackWarning])
		}
	})
}

func TestEvaluateFeedbackRulesInactivity(t *testing.T) {
	now := time.Now().UTC()

	t.Run("over_a_week_warns_with_day_count", func(t *testing.T) {
		last := &types.Activity{Timestamp: now.Add(-9 * 24 * time.Hour)}
		drafts := evaluateFeedbackRules(ProgressSnapshot{}, nil, last, now)
		byType := draftsByType(drafts)
		warnings := byType[types.FeedbackWarning]
		if len(warnings) != 1 {
			t.Fatalf("warnings=%v, want inactivity warning", warnings)
		}
		if warnings[0].Message != "It's been 9 days since your last activity. Consistent learning helps maintain momentum." {
			t.Fatalf("message=%q, want the 9-day wording", warnings[0].Message)
		}
	})

	t.Run("recent_rhythm_gets_info", func(t *testing.T) {
		last := &types.Activity{Timestamp: now.Add(-12 * time.Hour)}
		drafts := evaluateFeedbackRules(ProgressSnapshot{}, nil, last, now)
		byType := draftsByType(drafts)
		if len(byType[types.FeedbackInfo]) != 1 {
			t.Fatalf("info drafts=%v, want consistency nudge inside 3-72h", byType[types.FeedbackInfo])
		}
		if len(byType[types.FeedbackWarning]) != 0 {
			t.Fatalf("warnings=%v, want none for recent activity", byType[types.FeedbackWarning])
		}
	})

	t.Run("very_recent_activity_silent", func(t *testing.T) {
		last := &types.Activity{Timestamp: now.Add(-1 * time.Hour)}
		drafts := evaluateFeedbackRules(ProgressSnapshot{}, nil, last, now)
		if len(drafts) != 0 {
			t.Fatalf("got drafts %v within an hour of activity, want none", drafts)
		}
	})
}

func TestEvaluateFeedbackRulesEfficiency(t *testing.T) {
	now := time.Now().UTC()
	progress := ProgressSnapshot{LessonsCompleted: 25, CoursesCompleted: 0}
	drafts := evaluateFeedbackRules(progress, nil, nil, now)
	byType := draftsByType(drafts)
	if len(byType[types.FeedbackInfo]) != 1 {
		t.Fatalf("info drafts=%v, want learning efficiency tip", byType[types.FeedbackInfo])
	}

	progress.CoursesCompleted = 1
	drafts = evaluateFeedbackRules(progress, nil, nil, now)
	byType = draftsByType(drafts)
	if len(byType[types.FeedbackInfo]) != 0 {
		t.Fatalf("info drafts=%v, want none once a course is completed", byType[types.FeedbackInfo])
	}
}

type fakeFeedbackRepo struct {
	items []*types.Feedback
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.Feedback) ([]*types.Feedback, error) {
	for _, item := range items {
		if item.CreatedAt.IsZero() {
			item.CreatedAt = time.Now().UTC()
		}
	}
	f.items = append(f.items, items...)
	return items, nil
}

func (f *fakeFeedbackRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Feedback, error) {
	var out []*types.Feedback
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeFeedbackRepo) ExistsRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, feedbackType, title string, since time.Time) (bool, error) {
	for _, item := range f.items {
		if item.UserID == userID && item.FeedbackType == feedbackType &&
			item.Title == title && !item.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFeedbackRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	for _, item := range f.items {
		if item.UserID == userID {
			item.IsRead = true
		}
	}
	return nil
}

func (f *fakeFeedbackRepo) Dismiss(ctx context.Context, tx *gorm.DB, feedbackID, userID uuid.UUID) error {
	for _, item := range f.items {
		if item.ID == feedbackID && item.UserID == userID {
			item.IsDismissed = true
		}
	}
	return nil
}

type fakeQuizAttemptRepo struct {
	attempts []*types.QuizAttempt
}

func (f *fakeQuizAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *types.QuizAttempt) (*types.QuizAttempt, error) {
	f.attempts = append(f.attempts, attempt)
	return attempt, nil
}

func (f *fakeQuizAttemptRepo) ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.QuizAttempt, error) {
	var out []*types.QuizAttempt
	for _, a := range f.attempts {
		if a.UserID == userID && a.AttemptedAt.After(since) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeQuizAttemptRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	for _, a := range f.attempts {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeQuizAttemptRepo) AverageScoreByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (float64, error) {
	var sum float64
	var n int
	for _, a := range f.attempts {
		if a.UserID == userID {
			sum += a.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

type fakeActivityRepo struct {
	activities []*types.Activity
}

func (f *fakeActivityRepo) Create(ctx context.Context, tx *gorm.DB, activity *types.Activity) (*types.Activity, error) {
	f.activities = append(f.activities, activity)
	return activity, nil
}

func (f *fakeActivityRepo) Query(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activityType string, since time.Time) ([]*types.Activity, error) {
	var out []*types.Activity
	for _, a := range f.activities {
		if a.UserID != userID {
			continue
		}
		if activityType != "" && a.ActivityType != activityType {
			continue
		}
		if !since.IsZero() && !a.Timestamp.After(since) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeActivityRepo) LatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Activity, error) {
	var latest *types.Activity
	for _, a := range f.activities {
		if a.UserID != userID {
			continue
		}
		if latest == nil || a.Timestamp.After(latest.Timestamp) {
			latest = a
		}
	}
	return latest, nil
}

func (f *fakeActivityRepo) CountByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activityType string) (int64, error) {
	var n int64
	for _, a := range f.activities {
		if a.UserID == userID && a.ActivityType == activityType {
			n++
		}
	}
	return n, nil
}

func newFeedbackFixture(t *testing.T, userID uuid.UUID) (FeedbackService, *fakeFeedbackRepo) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	enrolls := &fakeEnrollmentRepo{enrollments: []*types.Enrollment{
		{UserID: userID, CourseID: uuid.New(), LessonsCompleted: 10},
	}}
	attempts := &fakeQuizAttemptRepo{attempts: []*types.QuizAttempt{
		{UserID: userID, Score: 90, AttemptedAt: time.Now().UTC().Add(-time.Hour)},
	}}
	feedback := &fakeFeedbackRepo{}
	svc := NewFeedbackService(nil, log, feedback, enrolls, attempts, &fakeActivityRepo{})
	return svc, feedback
}

func TestGenerateFeedbackSkipsRecentDuplicates(t *testing.T) {
	userID := uuid.New()
	svc, feedback := newFeedbackFixture(t, userID)
	feedback.items = append(feedback.items, &types.Feedback{
		UserID:       userID,
		FeedbackType: types.FeedbackAchievement,
		Title:        "Milestone Achieved!",
		IsRead:       true,
		CreatedAt:    time.Now().UTC().Add(-24 * time.Hour),
	})

	created, err := svc.GenerateFeedback(context.Background(), userID)
	if err != nil {
		t.Fatalf("GenerateFeedback: %v", err)
	}

	if len(created) != 1 {
		t.Fatalf("created %d rows, want only the quiz success row: %v", len(created), created)
	}
	if created[0].Title != "Excellent Performance!" {
		t.Fatalf("title=%q, want the success row after the milestone is suppressed", created[0].Title)
	}

	created, err = svc.GenerateFeedback(context.Background(), userID)
	if err != nil {
		t.Fatalf("GenerateFeedback second run: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("second run created %d rows, want none: %v", len(created), created)
	}
}

func TestGenerateFeedbackDedupSurvivesMarkAllRead(t *testing.T) {
	userID := uuid.New()
	svc, feedback := newFeedbackFixture(t, userID)
	ctx := context.Background()

	// Replay the feedback view: generate, then mark everything read.
	for i := 0; i < 3; i++ {
		if _, err := svc.GenerateFeedback(ctx, userID); err != nil {
			t.Fatalf("GenerateFeedback run %d: %v", i, err)
		}
		if err := svc.MarkAllRead(ctx, userID); err != nil {
			t.Fatalf("MarkAllRead run %d: %v", i, err)
		}
	}

	milestones := 0
	for _, item := range feedback.items {
		if item.Title == "Milestone Achieved!" {
			milestones++
		}
	}
	if milestones != 1 {
		t.Fatalf("%d milestone rows persisted across repeated views, want 1", milestones)
	}
}

func TestDeclined(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   bool
	}{
		{"too_few", []float64{50}, false},
		{"drop_over_ten", []float64{90, 90, 70, 70}, true},
		{"drop_exactly_ten", []float64{90, 90, 80, 80}, false},
		{"rising", []float64{50, 60, 90, 95}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := declined(tc.scores); got != tc.want {
				t.Fatalf("declined(%v)=%v, want %v", tc.scores, got, tc.want)
			}
		})
	}
}
