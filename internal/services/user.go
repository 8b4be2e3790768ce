package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/apierr"
	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/repos"
	"github.com/learnai/learnai-backend/internal/types"
)

// ProfileUpdate carries the learner-editable profile fields. Nil
// pointers leave the stored value untouched.
type ProfileUpdate struct {
	FirstName          *string   `json:"first_name"`
	LastName           *string   `json:"last_name"`
	Interests          *[]string `json:"interests"`
	LearningStyle      *string   `json:"learning_style"`
	SkillLevel         *string   `json:"skill_level"`
	PreferredStudyTime *string   `json:"preferred_study_time"`
}

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "user_not_found", err)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

var validSkillLevels = map[string]bool{
	types.SkillBeginner:     true,
	types.SkillIntermediate: true,
	types.SkillAdvanced:     true,
}

var validLearningStyles = map[string]bool{
	types.StyleVisual:      true,
	types.StyleAuditory:    true,
	types.StyleKinesthetic: true,
	types.StyleReading:     true,
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Interests != nil {
		user.Interests = encodeJSON(*update.Interests)
	}
	if update.LearningStyle != nil {
		if !validLearningStyles[*update.LearningStyle] {
			return nil, apierr.New(http.StatusBadRequest, "invalid_learning_style",
				fmt.Errorf("unknown learning style %q", *update.LearningStyle))
		}
		user.LearningStyle = *update.LearningStyle
	}
	if update.SkillLevel != nil {
		if !validSkillLevels[*update.SkillLevel] {
			return nil, apierr.New(http.StatusBadRequest, "invalid_skill_level",
				fmt.Errorf("unknown skill level %q", *update.SkillLevel))
		}
		user.SkillLevel = *update.SkillLevel
	}
	if update.PreferredStudyTime != nil {
		user.PreferredStudyTime = *update.PreferredStudyTime
	}

	if err := s.userRepo.Update(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info("profile updated", "user_id", userID)
	return user, nil
}
