package services

import (
	"testing"

	"github.com/learnai/learnai-backend/internal/types"
)

func contentActivity(contentType string) *types.Activity {
	return &types.Activity{
		ActivityType: types.ActivityContentViewed,
		Details:      encodeJSON(map[string]any{"content_type": contentType}),
	}
}

func learningTimeActivity(hours float64) *types.Activity {
	return &types.Activity{
		ActivityType: types.ActivityLearningTime,
		Details:      encodeJSON(map[string]any{"hours": hours}),
	}
}

func TestAnalyzeContentPreferences(t *testing.T) {
	t.Run("empty_defaults_to_video", func(t *testing.T) {
		prefs := analyzeContentPreferences(nil)
		if prefs.MostUsed != types.ContentVideo {
			t.Fatalf("MostUsed=%q, want video", prefs.MostUsed)
		}
		if len(prefs.Distribution) != 0 {
			t.Fatalf("Distribution=%v, want empty", prefs.Distribution)
		}
	})

	t.Run("mode_and_distribution", func(t *testing.T) {
		activities := []*types.Activity{
			contentActivity(types.ContentVideo),
			contentActivity(types.ContentVideo),
			contentActivity(types.ContentVideo),
			contentActivity(types.ContentText),
		}
		prefs := analyzeContentPreferences(activities)
		if prefs.MostUsed != types.ContentVideo {
			t.Fatalf("MostUsed=%q, want video", prefs.MostUsed)
		}
		if got := prefs.Distribution[types.ContentVideo]; got != 75.0 {
			t.Fatalf("video share=%v, want 75.0", got)
		}
		if got := prefs.Distribution[types.ContentText]; got != 25.0 {
			t.Fatalf("text share=%v, want 25.0", got)
		}
	})

	t.Run("tie_breaks_lexicographically", func(t *testing.T) {
		activities := []*types.Activity{
			contentActivity(types.ContentVideo),
			contentActivity(types.ContentText),
		}
		prefs := analyzeContentPreferences(activities)
		if prefs.MostUsed != types.ContentText {
			t.Fatalf("MostUsed=%q, want text on tie", prefs.MostUsed)
		}
	})

	t.Run("activities_without_content_type_ignored", func(t *testing.T) {
		activities := []*types.Activity{
			learningTimeActivity(2),
			contentActivity(types.ContentQuiz),
		}
		prefs := analyzeContentPreferences(activities)
		if prefs.MostUsed != types.ContentQuiz {
			t.Fatalf("MostUsed=%q, want quiz", prefs.MostUsed)
		}
		if got := prefs.Distribution[types.ContentQuiz]; got != 100.0 {
			t.Fatalf("quiz share=%v, want 100.0", got)
		}
	})
}

func TestAnalyzeLearningPace(t *testing.T) {
	cases := []struct {
		name       string
		totalHours float64
		want       string
	}{
		{"no_hours_slow", 0, types.PaceSlow},
		{"under_five_per_week_slow", 20, types.PaceSlow},
		{"moderate_band", 25, types.PaceModerate},
		{"intensive", 45, types.PaceIntensive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var activities []*types.Activity
			if tc.totalHours > 0 {
				activities = append(activities, learningTimeActivity(tc.totalHours))
			}
			if got := analyzeLearningPace(activities); got != tc.want {
				t.Fatalf("analyzeLearningPace(%v hours)=%q, want %q", tc.totalHours, got, tc.want)
			}
		})
	}
}

func attemptsWithScores(scores ...float64) []*types.QuizAttempt {
	out := make([]*types.QuizAttempt, 0, len(scores))
	for _, s := range scores {
		out = append(out, &types.QuizAttempt{Score: s})
	}
	return out
}

func TestAnalyzeQuizPerformance(t *testing.T) {
	t.Run("no_attempts", func(t *testing.T) {
		perf := analyzeQuizPerformance(nil)
		if perf.Count != 0 || perf.Average != 0 || perf.Trend != TrendStable {
			t.Fatalf("got %+v, want zero stable", perf)
		}
	})

	t.Run("single_attempt_stable", func(t *testing.T) {
		perf := analyzeQuizPerformance(attemptsWithScores(80))
		if perf.Trend != TrendStable {
			t.Fatalf("Trend=%q, want stable", perf.Trend)
		}
		if perf.Average != 80.0 {
			t.Fatalf("Average=%v, want 80.0", perf.Average)
		}
	})

	t.Run("improving", func(t *testing.T) {
		perf := analyzeQuizPerformance(attemptsWithScores(50, 60, 90, 95))
		if perf.Trend != TrendImproving {
			t.Fatalf("Trend=%q, want improving", perf.Trend)
		}
	})

	t.Run("declining", func(t *testing.T) {
		perf := analyzeQuizPerformance(attemptsWithScores(95, 90, 60, 50))
		if perf.Trend != TrendDeclining {
			t.Fatalf("Trend=%q, want declining", perf.Trend)
		}
	})

	t.Run("within_band_stable", func(t *testing.T) {
		perf := analyzeQuizPerformance(attemptsWithScores(70, 75, 78, 80))
		if perf.Trend != TrendStable {
			t.Fatalf("Trend=%q, want stable", perf.Trend)
		}
	})

	t.Run("average_rounded_to_one_decimal", func(t *testing.T) {
		perf := analyzeQuizPerformance(attemptsWithScores(100, 0, 0))
		if perf.Average != 33.3 {
			t.Fatalf("Average=%v, want 33.3", perf.Average)
		}
	})
}

func TestInferSkillLevel(t *testing.T) {
	cases := []struct {
		name      string
		completed int64
		avgScore  float64
		want      string
	}{
		{"fresh_user", 0, 0, types.SkillBeginner},
		{"completions_without_scores", 2, 50, types.SkillBeginner},
		{"intermediate", 1, 70, types.SkillIntermediate},
		{"advanced", 3, 85, types.SkillAdvanced},
		{"high_scores_few_completions", 2, 95, types.SkillIntermediate},
		{"many_completions_low_scores", 5, 60, types.SkillBeginner},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := inferSkillLevel(tc.completed, tc.avgScore); got != tc.want {
				t.Fatalf("inferSkillLevel(%d,%v)=%q, want %q", tc.completed, tc.avgScore, got, tc.want)
			}
		})
	}
}
