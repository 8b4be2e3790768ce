package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/repos"
	"github.com/learnai/learnai-backend/internal/types"
)

// ActivityService appends to the behavior log. Recording is
// best-effort from the caller's point of view: Log returns the error
// but platform flows treat a failed append as non-fatal.
type ActivityService interface {
	Log(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activityType string, details map[string]any) error
	RecentForUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]*types.Activity, error)
}

type activityService struct {
	db       *gorm.DB
	log      *logger.Logger
	activity repos.ActivityRepo
}

func NewActivityService(db *gorm.DB, baseLog *logger.Logger, activity repos.ActivityRepo) ActivityService {
	return &activityService{
		db:       db,
		log:      baseLog.With("service", "ActivityService"),
		activity: activity,
	}
}

func (s *activityService) Log(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activityType string, details map[string]any) error {
	entry := &types.Activity{
		UserID:       userID,
		ActivityType: activityType,
		Details:      encodeJSON(details),
	}
	if _, err := s.activity.Create(ctx, tx, entry); err != nil {
		s.log.Warn("activity append failed",
			"user_id", userID, "activity_type", activityType, "error", err)
		return err
	}
	return nil
}

func (s *activityService) RecentForUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]*types.Activity, error) {
	return s.activity.Query(ctx, nil, userID, "", since)
}
