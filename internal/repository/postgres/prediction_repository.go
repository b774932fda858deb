package postgres

import (
	"context"
	"errors"
	"fmt"

	"diaPredict/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PredictionRepository struct {
	DB *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{
		DB: db,
	}
}

func (r *PredictionRepository) Create(ctx context.Context, prediction *domain.Prediction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if prediction.ID == "" {
		prediction.ID = uuid.NewString()
	}

	if err := r.DB.WithContext(ctx).Create(prediction).Error; err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}

	return nil
}

// FindByOwner returns one page of the user's predictions, newest first,
// together with the total count across all pages.
func (r *PredictionRepository) FindByOwner(ctx context.Context, userID uint, page, limit int) ([]domain.Prediction, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&domain.Prediction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count predictions: %w", err)
	}

	predictions := make([]domain.Prediction, 0)
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&predictions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find predictions: %w", err)
	}

	return predictions, total, nil
}

func (r *PredictionRepository) FindOne(ctx context.Context, id string, userID uint) (domain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Prediction{}, fmt.Errorf("context error: %w", err)
	}

	var prediction domain.Prediction
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&prediction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Prediction{}, domain.ErrPredictionNotFound
		}
		return domain.Prediction{}, fmt.Errorf("failed to find prediction: %w", err)
	}

	return prediction, nil
}

func (r *PredictionRepository) DeleteOne(ctx context.Context, id string, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Prediction{})
	if err := row.Error; err != nil {
		return fmt.Errorf("failed to delete prediction: %w", err)
	}
	if row.RowsAffected == 0 {
		return domain.ErrPredictionNotFound
	}

	return nil
}
