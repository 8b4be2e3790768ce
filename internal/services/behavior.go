package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/repos"
	"github.com/learnai/learnai-backend/internal/types"
)

// ContentPreferences summarizes which lesson formats a user has been
// opening, with a percentage distribution over the analysis window.
type ContentPreferences struct {
	MostUsed     string             `json:"most_used"`
	Distribution map[string]float64 `json:"distribution"`
}

// QuizPerformance summarizes recent quiz attempts and whether scores
// are trending up or down across the window.
type QuizPerformance struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	Trend   string  `json:"trend"`
}

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// BehaviorInsights is the result of a full behavior analysis pass.
type BehaviorInsights struct {
	ContentPreferences ContentPreferences `json:"content_preferences"`
	LearningPace       string             `json:"learning_pace"`
	QuizPerformance    QuizPerformance    `json:"quiz_performance"`
	SkillLevel         string             `json:"skill_level"`
}

// BehaviorService derives a user's learning profile from their
// activity history and writes the result back onto the user row.
type BehaviorService interface {
	AnalyzeUser(ctx context.Context, userID uuid.UUID) (*BehaviorInsights, error)
}

type behaviorService struct {
	db       *gorm.DB
	log      *logger.Logger
	users    repos.UserRepo
	activity repos.ActivityRepo
	attempts repos.QuizAttemptRepo
	enrolls  repos.EnrollmentRepo
}

const behaviorWindow = 30 * 24 * time.Hour

// weeksPerWindow converts the 30-day window into weeks for pace math.
const weeksPerWindow = 4.3

func NewBehaviorService(
	db *gorm.DB,
	baseLog *logger.Logger,
	users repos.UserRepo,
	activity repos.ActivityRepo,
	attempts repos.QuizAttemptRepo,
	enrolls repos.EnrollmentRepo,
) BehaviorService {
	return &behaviorService{
		db:       db,
		log:      baseLog.With("service", "BehaviorService"),
		users:    users,
		activity: activity,
		attempts: attempts,
		enrolls:  enrolls,
	}
}

// AnalyzeUser inspects the last 30 days of activity plus all-time
// completion data, updates the stored learning profile, and returns
// the computed insights.
func (s *behaviorService) AnalyzeUser(ctx context.Context, userID uuid.UUID) (*BehaviorInsights, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	since := time.Now().UTC().Add(-behaviorWindow)

	recent, err := s.activity.Query(ctx, nil, userID, "", since)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	attempts, err := s.attempts.ListByUserSince(ctx, nil, userID, since)
	if err != nil {
		return nil, fmt.Errorf("load quiz attempts: %w", err)
	}

	completed, err := s.enrolls.CountCompletedByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("count completed courses: %w", err)
	}
	allTimeAvg, err := s.attempts.AverageScoreByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("average quiz score: %w", err)
	}

	insights := &BehaviorInsights{
		ContentPreferences: analyzeContentPreferences(recent),
		LearningPace:       analyzeLearningPace(recent),
		QuizPerformance:    analyzeQuizPerformance(attempts),
		SkillLevel:         inferSkillLevel(completed, allTimeAvg),
	}

	user.PreferredContentType = insights.ContentPreferences.MostUsed
	user.LearningPace = insights.LearningPace
	user.SkillLevel = insights.SkillLevel
	if err := s.users.Update(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("update learning profile: %w", err)
	}

	s.log.Info("behavior analysis complete",
		"user_id", userID,
		"skill_level", insights.SkillLevel,
		"learning_pace", insights.LearningPace,
		"preferred_content_type", insights.ContentPreferences.MostUsed)

	return insights, nil
}

// analyzeContentPreferences counts the content_type detail across
// activities. Ties on the mode are broken lexicographically so the
// result is stable across runs.
func analyzeContentPreferences(activities []*types.Activity) ContentPreferences {
	usage := make(map[string]int)
	for _, a := range activities {
		if ct := detailString(a.Details, "content_type"); ct != "" {
			usage[ct]++
		}
	}
	if len(usage) == 0 {
		return ContentPreferences{MostUsed: types.ContentVideo, Distribution: map[string]float64{}}
	}

	keys := make([]string, 0, len(usage))
	total := 0
	for k, v := range usage {
		keys = append(keys, k)
		total += v
	}
	sort.Strings(keys)

	mostUsed := keys[0]
	distribution := make(map[string]float64, len(usage))
	for _, k := range keys {
		if usage[k] > usage[mostUsed] {
			mostUsed = k
		}
		distribution[k] = round1(float64(usage[k]) / float64(total) * 100)
	}

	return ContentPreferences{MostUsed: mostUsed, Distribution: distribution}
}

// analyzeLearningPace sums the hours detail of learning_time
// activities and buckets the weekly average.
func analyzeLearningPace(activities []*types.Activity) string {
	var totalHours float64
	for _, a := range activities {
		if a.ActivityType != types.ActivityLearningTime {
			continue
		}
		totalHours += detailFloat(a.Details, "hours")
	}

	avgPerWeek := totalHours / weeksPerWindow
	switch {
	case avgPerWeek >= 10:
		return types.PaceIntensive
	case avgPerWeek >= 5:
		return types.PaceModerate
	default:
		return types.PaceSlow
	}
}

// analyzeQuizPerformance expects attempts in chronological order and
// compares first-half vs second-half means with a 10-point band.
func analyzeQuizPerformance(attempts []*types.QuizAttempt) QuizPerformance {
	if len(attempts) == 0 {
		return QuizPerformance{Average: 0, Count: 0, Trend: TrendStable}
	}

	var sum float64
	for _, a := range attempts {
		sum += a.Score
	}
	average := sum / float64(len(attempts))

	trend := TrendStable
	mid := len(attempts) / 2
	if mid > 0 {
		var firstSum, secondSum float64
		for _, a := range attempts[:mid] {
			firstSum += a.Score
		}
		for _, a := range attempts[mid:] {
			secondSum += a.Score
		}
		firstAvg := firstSum / float64(mid)
		secondAvg := secondSum / float64(len(attempts)-mid)

		if secondAvg > firstAvg+10 {
			trend = TrendImproving
		} else if secondAvg < firstAvg-10 {
			trend = TrendDeclining
		}
	}

	return QuizPerformance{Average: round1(average), Count: len(attempts), Trend: trend}
}

// inferSkillLevel uses all-time completions and quiz average, not the
// 30-day window.
func inferSkillLevel(completedCourses int64, avgQuizScore float64) string {
	switch {
	case completedCourses >= 3 && avgQuizScore >= 85:
		return types.SkillAdvanced
	case completedCourses >= 1 && avgQuizScore >= 70:
		return types.SkillIntermediate
	default:
		return types.SkillBeginner
	}
}

func detailString(raw []byte, key string) string {
	if len(raw) == 0 {
		return ""
	}
	var details map[string]any
	if err := json.Unmarshal(raw, &details); err != nil {
		return ""
	}
	v, _ := details[key].(string)
	return v
}

func detailFloat(raw []byte, key string) float64 {
	if len(raw) == 0 {
		return 0
	}
	var details map[string]any
	if err := json.Unmarshal(raw, &details); err != nil {
		return 0
	}
	v, _ := details[key].(float64)
	return v
}
