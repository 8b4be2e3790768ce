package services

import (
	"math"
	"testing"

	"github.com/learnai/learnai-backend/internal/types"
)

func TestDefaultFactorWeightsSumToOne(t *testing.T) {
	if got := DefaultFactorWeights.Sum(); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("Sum()=%v, want 1.0", got)
	}
}

func TestInterestMatchScore(t *testing.T) {
	course := &types.Course{
		Title:    "Data Science with Python",
		Category: "data_science",
		Topics:   encodeJSON([]string{"python", "pandas", "statistics"}),
	}

	cases := []struct {
		name      string
		interests []string
		want      float64
	}{
		{
			name:      "no_interests_neutral",
			interests: nil,
			want:      0.5,
		},
		{
			name:      "all_match",
			interests: []string{"python", "pandas"},
			want:      1.0,
		},
		{
			name:      "half_match",
			interests: []string{"python", "golf"},
			want:      0.5,
		},
		{
			name:      "substring_both_directions",
			interests: []string{"advanced python programming"},
			want:      1.0,
		},
		{
			name:      "category_counts",
			interests: []string{"data_science"},
			want:      1.0,
		},
		{
			name:      "title_word_counts",
			interests: []string{"science"},
			want:      1.0,
		},
		{
			name:      "no_match",
			interests: []string{"cooking", "gardening"},
			want:      0.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := interestMatchScore(tc.interests, course)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("interestMatchScore(%v)=%v, want %v", tc.interests, got, tc.want)
			}
		})
	}
}

func TestSkillLevelMatchScore(t *testing.T) {
	cases := []struct {
		name        string
		userLevel   string
		courseLevel string
		want        float64
	}{
		{"exact_match", types.SkillBeginner, types.SkillBeginner, 1.0},
		{"one_apart", types.SkillBeginner, types.SkillIntermediate, 0.7},
		{"two_apart", types.SkillBeginner, types.SkillAdvanced, 0.4},
		{"advanced_down_one", types.SkillAdvanced, types.SkillIntermediate, 0.7},
		{"unknown_user_defaults_beginner", "", types.SkillBeginner, 1.0},
		{"unknown_course_defaults_intermediate", types.SkillIntermediate, "", 1.0},
		{"both_unknown", "", "", 0.7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := skillLevelMatchScore(tc.userLevel, tc.courseLevel)
			if got != tc.want {
				t.Fatalf("skillLevelMatchScore(%q,%q)=%v, want %v", tc.userLevel, tc.courseLevel, got, tc.want)
			}
		})
	}
}

func TestContentMatchScore(t *testing.T) {
	cases := []struct {
		name         string
		preferred    string
		contentTypes []string
		want         float64
	}{
		{"no_types_neutral", types.ContentVideo, nil, 0.7},
		{"preferred_present", types.ContentText, []string{types.ContentVideo, types.ContentText}, 0.9},
		{"fallback_video", types.ContentVideo, []string{types.ContentText}, 0.9},
		{"fallback_text", types.ContentText, []string{types.ContentVideo}, 0.7},
		{"fallback_interactive", types.ContentInteractive, []string{types.ContentVideo}, 0.85},
		{"fallback_quiz", types.ContentQuiz, []string{types.ContentVideo}, 0.8},
		{"unknown_preference", "podcast", []string{types.ContentVideo}, 0.7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := contentMatchScore(tc.preferred, tc.contentTypes)
			if got != tc.want {
				t.Fatalf("contentMatchScore(%q,%v)=%v, want %v", tc.preferred, tc.contentTypes, got, tc.want)
			}
		})
	}
}

func TestProgressFactorScore(t *testing.T) {
	cases := []struct {
		name        string
		enrollments []*types.Enrollment
		want        float64
	}{
		{
			name:        "no_category_history",
			enrollments: nil,
			want:        0.7,
		},
		{
			name: "in_progress_in_category",
			enrollments: []*types.Enrollment{
				{ProgressPercentage: 40, IsCompleted: false},
			},
			want: 0.9,
		},
		{
			name: "completed_only",
			enrollments: []*types.Enrollment{
				{ProgressPercentage: 100, IsCompleted: true},
			},
			want: 0.8,
		},
		{
			name: "enrolled_but_untouched",
			enrollments: []*types.Enrollment{
				{ProgressPercentage: 0, IsCompleted: false},
			},
			want: 0.8,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := progressFactorScore(tc.enrollments)
			if got != tc.want {
				t.Fatalf("progressFactorScore=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestPopularityFactorScore(t *testing.T) {
	cases := []struct {
		name   string
		course *types.Course
		want   float64
	}{
		{
			name:   "max_rating_and_enrollment",
			course: &types.Course{Rating: 5.0, EnrolledCount: 2000},
			want:   1.0,
		},
		{
			name:   "unrated_uses_prior",
			course: &types.Course{Rating: 0, EnrolledCount: 0},
			want:   0.3,
		},
		{
			name:   "enrollment_capped",
			course: &types.Course{Rating: 5.0, EnrolledCount: 50000},
			want:   1.0,
		},
		{
			name:   "mid_rating",
			course: &types.Course{Rating: 4.0, EnrolledCount: 1000},
			want:   0.68, // 4/5*0.6 + 1000/2000*0.4
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := popularityFactorScore(tc.course)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("popularityFactorScore=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestFactorScoresStayInRange(t *testing.T) {
	course := &types.Course{
		Title:         "Anything",
		Category:      "web_development",
		Rating:        5,
		EnrolledCount: 99999,
		Topics:        encodeJSON([]string{"go", "http"}),
	}
	scores := FactorScores{
		InterestMatch:  interestMatchScore([]string{"go", "http", "grpc"}, course),
		SkillLevel:     skillLevelMatchScore(types.SkillAdvanced, types.SkillBeginner),
		ContentMatch:   contentMatchScore(types.ContentVideo, []string{types.ContentQuiz}),
		ProgressFactor: progressFactorScore(nil),
		Popularity:     popularityFactorScore(course),
	}

	for name, v := range scores.scaled() {
		if v < 0 || v > 100 {
			t.Fatalf("factor %s scaled to %v, want within [0,100]", name, v)
		}
	}
	total := scores.WeightedTotal(DefaultFactorWeights)
	if total < 0 || total > 1 {
		t.Fatalf("WeightedTotal=%v, want within [0,1]", total)
	}
}
