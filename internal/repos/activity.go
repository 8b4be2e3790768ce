package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/types"
)

// ActivityRepo is the activity log reader/writer. The log is
// append-only: there are no update or delete operations.
type ActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, activity *types.Activity) (*types.Activity, error)
	// Query returns activities ordered by timestamp ascending.
	// activityType filters when non-empty; since filters when non-zero.
	Query(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activityType string, since time.Time) ([]*types.Activity, error)
	LatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Activity, error)
	CountByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activityType string) (int64, error)
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return &activityRepo{db: db, log: baseLog.With("repo", "ActivityRepo")}
}

func (r *activityRepo) Create(ctx context.Context, tx *gorm.DB, activity *types.Activity) (*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(activity).Error; err != nil {
		return nil, err
	}
	return activity, nil
}

func (r *activityRepo) Query(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activityType string, since time.Time) ([]*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if activityType != "" {
		query = query.Where("activity_type = ?", activityType)
	}
	if !since.IsZero() {
		query = query.Where("timestamp >= ?", since)
	}

	var results []*types.Activity
	if err := query.Order("timestamp ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *activityRepo) LatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Activity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var activity types.Activity
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		First(&activity).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepo) CountByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activityType string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Activity{}).
		Where("user_id = ? AND activity_type = ?", userID, activityType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
