package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/types"
)

type FeedbackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.Feedback) ([]*types.Feedback, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Feedback, error)
	// ExistsRecent reports whether a row with the same type and title
	// exists within the recency window. Read state is ignored so the
	// feedback view, which marks rows read on display, cannot re-arm
	// the check.
	ExistsRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, feedbackType, title string, since time.Time) (bool, error)
	MarkAllRead(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	Dismiss(ctx context.Context, tx *gorm.DB, feedbackID, userID uuid.UUID) error
}

type feedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	return &feedbackRepo{db: db, log: baseLog.With("repo", "FeedbackRepo")}
}

func (r *feedbackRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.Feedback) ([]*types.Feedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(items) == 0 {
		return []*types.Feedback{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *feedbackRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Feedback, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.Feedback
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *feedbackRepo) ExistsRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, feedbackType, title string, since time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Feedback{}).
		Where("user_id = ? AND feedback_type = ? AND title = ?", userID, feedbackType, title).
		Where("created_at >= ?", since).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *feedbackRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Feedback{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *feedbackRepo) Dismiss(ctx context.Context, tx *gorm.DB, feedbackID, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Feedback{}).
		Where("id = ? AND user_id = ?", feedbackID, userID).
		Update("is_dismissed", true).Error
}
