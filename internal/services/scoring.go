package services

import (
	"math"
	"strings"

	"github.com/learnai/learnai-backend/internal/types"
)

// Canonical factor names. These are the exact keys persisted in
// Recommendation.FactorScores.
const (
	FactorInterestMatch  = "interest_match"
	FactorSkillLevel     = "skill_level"
	FactorContentMatch   = "content_match"
	FactorProgressFactor = "progress_factor"
	FactorPopularity     = "popularity"
)

// FactorWeights is deliberately a fixed five-field struct rather than
// a map, so every factor is always computed and weighted.
type FactorWeights struct {
	InterestMatch  float64
	SkillLevel     float64
	ContentMatch   float64
	ProgressFactor float64
	Popularity     float64
}

var DefaultFactorWeights = FactorWeights{
	InterestMatch:  0.30,
	SkillLevel:     0.25,
	ContentMatch:   0.20,
	ProgressFactor: 0.15,
	Popularity:     0.10,
}

func (w FactorWeights) Sum() float64 {
	return w.InterestMatch + w.SkillLevel + w.ContentMatch + w.ProgressFactor + w.Popularity
}

// FactorScores holds the raw [0,1] output of each scoring function.
type FactorScores struct {
	InterestMatch  float64
	SkillLevel     float64
	ContentMatch   float64
	ProgressFactor float64
	Popularity     float64
}

func (s FactorScores) WeightedTotal(w FactorWeights) float64 {
	return s.InterestMatch*w.InterestMatch +
		s.SkillLevel*w.SkillLevel +
		s.ContentMatch*w.ContentMatch +
		s.ProgressFactor*w.ProgressFactor +
		s.Popularity*w.Popularity
}

// scaled returns the factor scores mapped to their canonical names,
// scaled to 0-100 and rounded to two decimals, as persisted.
func (s FactorScores) scaled() map[string]float64 {
	return map[string]float64{
		FactorInterestMatch:  round2(s.InterestMatch * 100),
		FactorSkillLevel:     round2(s.SkillLevel * 100),
		FactorContentMatch:   round2(s.ContentMatch * 100),
		FactorProgressFactor: round2(s.ProgressFactor * 100),
		FactorPopularity:     round2(s.Popularity * 100),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// interestMatchScore measures overlap between the user's interests
// and the course's topics, category and title words. Matching is
// bidirectional substring containment, case-insensitive. Users with
// no interests get a neutral 0.5 so new accounts are not penalized.
func interestMatchScore(interests []string, course *types.Course) float64 {
	if len(interests) == 0 {
		return 0.5
	}

	keywords := decodeStringList(course.Topics)
	keywords = append(keywords, strings.ToLower(course.Category))
	keywords = append(keywords, strings.Fields(strings.ToLower(course.Title))...)

	matches := 0
	for _, interest := range interests {
		interestLower := strings.ToLower(interest)
		for _, keyword := range keywords {
			keywordLower := strings.ToLower(keyword)
			if strings.Contains(interestLower, keywordLower) || strings.Contains(keywordLower, interestLower) {
				matches++
				break
			}
		}
	}

	return math.Min(float64(matches)/float64(len(interests)), 1.0)
}

// skillLevelMatchScore compares user and course levels on the
// beginner/intermediate/advanced ladder. Unknown user level defaults
// to beginner, unknown course level to intermediate.
func skillLevelMatchScore(userLevel, courseLevel string) float64 {
	levelMap := map[string]int{
		types.SkillBeginner:     1,
		types.SkillIntermediate: 2,
		types.SkillAdvanced:     3,
	}

	u, ok := levelMap[userLevel]
	if !ok {
		u = 1
	}
	c, ok := levelMap[courseLevel]
	if !ok {
		c = 2
	}

	diff := u - c
	if diff < 0 {
		diff = -diff
	}

	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	default:
		return 0.4
	}
}

// contentMatchScore scores how well the course's delivery formats fit
// the user's preferred content type.
func contentMatchScore(preferred string, contentTypes []string) float64 {
	if len(contentTypes) == 0 {
		return 0.7
	}

	for _, ct := range contentTypes {
		if ct == preferred {
			return 0.9
		}
	}

	fallback := map[string]float64{
		types.ContentVideo:       0.9,
		types.ContentText:        0.7,
		types.ContentInteractive: 0.85,
		types.ContentQuiz:        0.8,
	}
	if score, ok := fallback[preferred]; ok {
		return score
	}
	return 0.7
}

// progressFactorScore rewards continuing a category with in-progress
// work (0.9), then prior exposure (0.8), then exploration (0.7). It
// never penalizes: every branch scores at least 0.7.
func progressFactorScore(categoryEnrollments []*types.Enrollment) float64 {
	for _, e := range categoryEnrollments {
		if !e.IsCompleted && e.ProgressPercentage > 0 {
			return 0.9
		}
	}
	if len(categoryEnrollments) > 0 {
		return 0.8
	}
	return 0.7
}

// popularityFactorScore blends normalized rating (weighted 0.6, with
// a 0.5 prior for unrated courses) and enrollment volume capped at
// 2000 (weighted 0.4).
func popularityFactorScore(course *types.Course) float64 {
	ratingScore := 0.5
	if course.Rating > 0 {
		ratingScore = course.Rating / 5.0
	}

	enrollmentScore := math.Min(float64(course.EnrolledCount)/2000.0, 1.0)

	return ratingScore*0.6 + enrollmentScore*0.4
}
