package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/types"
)

type PDFProgressRepo interface {
	GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.PDFReadingProgress, error)
	// GetOrCreate returns the existing row or creates one at page 1.
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.PDFReadingProgress, error)
	Update(ctx context.Context, tx *gorm.DB, progress *types.PDFReadingProgress) error
}

type pdfProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPDFProgressRepo(db *gorm.DB, baseLog *logger.Logger) PDFProgressRepo {
	return &pdfProgressRepo{db: db, log: baseLog.With("repo", "PDFProgressRepo")}
}

func (r *pdfProgressRepo) GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.PDFReadingProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var progress types.PDFReadingProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *pdfProgressRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.PDFReadingProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	progress := types.PDFReadingProgress{UserID: userID, CourseID: courseID, LastPageRead: 1}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		FirstOrCreate(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *pdfProgressRepo) Update(ctx context.Context, tx *gorm.DB, progress *types.PDFReadingProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(progress).Error
}

type ReadingSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.ReadingSession) (*types.ReadingSession, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ReadingSession, error)
}

type readingSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReadingSessionRepo(db *gorm.DB, baseLog *logger.Logger) ReadingSessionRepo {
	return &readingSessionRepo{db: db, log: baseLog.With("repo", "ReadingSessionRepo")}
}

func (r *readingSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.ReadingSession) (*types.ReadingSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (r *readingSessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ReadingSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ReadingSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
