package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/types"
)

type RecommendationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rec *types.Recommendation) (*types.Recommendation, error)
	// ListByUserSince returns rows generated at or after since,
	// highest score first with course id as tie-break.
	ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, limit int) ([]*types.Recommendation, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	MarkViewed(ctx context.Context, tx *gorm.DB, recID, userID uuid.UUID) error
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return &recommendationRepo{db: db, log: baseLog.With("repo", "RecommendationRepo")}
}

func (r *recommendationRepo) Create(ctx context.Context, tx *gorm.DB, rec *types.Recommendation) (*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *recommendationRepo) ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, limit int) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID)
	if !since.IsZero() {
		query = query.Where("generated_at >= ?", since)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.Recommendation
	if err := query.Order("total_score DESC, course_id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recommendationRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Recommendation{}).Error
}

func (r *recommendationRepo) MarkViewed(ctx context.Context, tx *gorm.DB, recID, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Recommendation{}).
		Where("id = ? AND user_id = ?", recID, userID).
		Update("is_viewed", true).Error
}
