package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/repos"
	"github.com/learnai/learnai-backend/internal/types"
)

// RecommendationService scores the un-enrolled catalog against a
// user's learning profile and persists the ranked result.
type RecommendationService interface {
	Generate(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Recommendation, error)
	Refresh(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Recommendation, error)
	RecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Recommendation, error)
	MarkViewed(ctx context.Context, userID, recommendationID uuid.UUID) error
}

type recommendationService struct {
	db       *gorm.DB
	log      *logger.Logger
	users    repos.UserRepo
	courses  repos.CourseRepo
	enrolls  repos.EnrollmentRepo
	recs     repos.RecommendationRepo
	searcher ResourceSearcher
	cache    *RecommendationCache
	weights  FactorWeights
}

const (
	defaultRecommendationLimit = 6
	recentRecommendationWindow = 24 * time.Hour
	maxResourceReasons         = 3
)

func NewRecommendationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	users repos.UserRepo,
	courses repos.CourseRepo,
	enrolls repos.EnrollmentRepo,
	recs repos.RecommendationRepo,
	searcher ResourceSearcher,
	cache *RecommendationCache,
) RecommendationService {
	return &recommendationService{
		db:       db,
		log:      baseLog.With("service", "RecommendationService"),
		users:    users,
		courses:  courses,
		enrolls:  enrolls,
		recs:     recs,
		searcher: searcher,
		cache:    cache,
		weights:  DefaultFactorWeights,
	}
}

// Generate scores every course the user is not enrolled in, persists
// one recommendation row per candidate, and returns the top limit
// ordered by total score (course id breaks ties).
func (s *recommendationService) Generate(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Recommendation, error) {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	enrolledIDs, err := s.enrolls.CourseIDsByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}
	candidates, err := s.courses.ListExcluding(ctx, nil, enrolledIDs)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	enrollments, err := s.enrolls.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load enrollment detail: %w", err)
	}
	byCategory := make(map[string][]*types.Enrollment)
	for _, e := range enrollments {
		if e.Course != nil {
			byCategory[e.Course.Category] = append(byCategory[e.Course.Category], e)
		}
	}

	interests := decodeStringList(user.Interests)

	// Scoring and the external lookups finish before the transaction
	// opens; the resource search can block for seconds per candidate
	// and must not hold a connection with uncommitted writes.
	generated := make([]*types.Recommendation, 0, len(candidates))
	now := time.Now().UTC()
	for _, course := range candidates {
		scores := FactorScores{
			InterestMatch:  interestMatchScore(interests, course),
			SkillLevel:     skillLevelMatchScore(user.SkillLevel, course.Level),
			ContentMatch:   contentMatchScore(user.PreferredContentType, decodeStringList(course.ContentTypes)),
			ProgressFactor: progressFactorScore(byCategory[course.Category]),
			Popularity:     popularityFactorScore(course),
		}

		reasons := buildReasons(course, scores)
		reasons = append(reasons, s.resourceReasons(ctx, course)...)

		generated = append(generated, &types.Recommendation{
			UserID:       userID,
			CourseID:     course.ID,
			Course:       course,
			TotalScore:   round2(scores.WeightedTotal(s.weights) * 100),
			FactorScores: encodeJSON(scores.scaled()),
			Reasons:      encodeJSON(reasons),
			GeneratedAt:  now,
		})
	}

	err = s.inTx(ctx, func(tx *gorm.DB) error {
		for _, rec := range generated {
			if _, err := s.recs.Create(ctx, tx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist recommendations: %w", err)
	}

	sortRecommendations(generated)
	s.cache.Invalidate(ctx, userID)

	s.log.Info("recommendations generated",
		"user_id", userID, "candidates", len(generated), "limit", limit)

	if len(generated) > limit {
		generated = generated[:limit]
	}
	return generated, nil
}

func (s *recommendationService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// Refresh discards the user's stored recommendations and regenerates
// them from the current profile and catalog.
func (s *recommendationService) Refresh(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Recommendation, error) {
	if err := s.recs.DeleteByUserID(ctx, nil, userID); err != nil {
		return nil, fmt.Errorf("clear recommendations: %w", err)
	}
	s.cache.Invalidate(ctx, userID)
	return s.Generate(ctx, userID, limit)
}

// RecentForUser returns recommendations generated within the last 24
// hours, generating a fresh batch when none exist.
func (s *recommendationService) RecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Recommendation, error) {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	var cached []*types.Recommendation
	if s.cache.Get(ctx, userID, &cached) && len(cached) > 0 {
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return cached, nil
	}

	since := time.Now().UTC().Add(-recentRecommendationWindow)
	recent, err := s.recs.ListByUserSince(ctx, nil, userID, since, 0)
	if err != nil {
		return nil, fmt.Errorf("load recent recommendations: %w", err)
	}
	if len(recent) == 0 {
		return s.Generate(ctx, userID, limit)
	}

	s.cache.Set(ctx, userID, recent)
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

func (s *recommendationService) MarkViewed(ctx context.Context, userID, recommendationID uuid.UUID) error {
	if err := s.recs.MarkViewed(ctx, nil, recommendationID, userID); err != nil {
		return fmt.Errorf("mark viewed: %w", err)
	}
	return nil
}

// resourceReasons performs the best-effort external lookup. Any
// failure, including a nil searcher, yields no extra reasons.
func (s *recommendationService) resourceReasons(ctx context.Context, course *types.Course) []string {
	if s.searcher == nil {
		return nil
	}
	query := fmt.Sprintf("%s %s online course tutorial", course.Title, course.Category)
	resources, err := s.searcher.Search(ctx, query, 10)
	if err != nil {
		s.log.Debug("resource lookup skipped", "course_id", course.ID, "error", err)
		return nil
	}
	if len(resources) > maxResourceReasons {
		resources = resources[:maxResourceReasons]
	}
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		out = append(out, fmt.Sprintf("Online resource: %s - %s", r.Title, r.URL))
	}
	return out
}

// buildReasons emits reason lines in factor order, with a generic
// fallback when no factor clears its threshold.
func buildReasons(course *types.Course, scores FactorScores) []string {
	var reasons []string

	if scores.InterestMatch > 0.7 {
		reasons = append(reasons, fmt.Sprintf("Matches your interest in %s", course.Category))
	}
	if scores.SkillLevel == 1.0 {
		reasons = append(reasons, fmt.Sprintf("Perfect for your %s skill level", strings.ToLower(course.Level)))
	} else if scores.SkillLevel > 0.7 {
		reasons = append(reasons, "Suitable for your current skill level")
	}
	if scores.ContentMatch > 0.8 {
		reasons = append(reasons, "Delivered in your preferred format")
	}
	if scores.ProgressFactor > 0.85 {
		reasons = append(reasons, "Continue your progress in this area")
	}
	if scores.Popularity > 0.8 {
		reasons = append(reasons, fmt.Sprintf("Highly rated by %d+ learners", course.EnrolledCount))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Recommended based on your learning profile")
	}
	return reasons
}

func sortRecommendations(recs []*types.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].TotalScore != recs[j].TotalScore {
			return recs[i].TotalScore > recs[j].TotalScore
		}
		return recs[i].CourseID.String() < recs[j].CourseID.String()
	})
}
