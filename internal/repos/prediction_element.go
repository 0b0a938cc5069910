package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type PredictionElementRepo interface {
	Get(ctx context.Context, tx *gorm.DB, predictionID, elementID uint) (*types.PredictionElement, error)
	Add(ctx context.Context, tx *gorm.DB, assoc *types.PredictionElement) (*types.PredictionElement, error)
	Remove(ctx context.Context, tx *gorm.DB, predictionID, elementID uint) (bool, error)
	RemoveByPrediction(ctx context.Context, tx *gorm.DB, predictionID uint) error
	ListByPrediction(ctx context.Context, tx *gorm.DB, predictionID uint) ([]types.ElementShare, error)
	CountByElement(ctx context.Context, tx *gorm.DB, elementID uint) (int64, error)
}

type predictionElementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPredictionElementRepo(db *gorm.DB, baseLog *logger.Logger) PredictionElementRepo {
	repoLog := baseLog.With("repo", "PredictionElementRepo")
	return &predictionElementRepo{db: db, log: repoLog}
}

func (per *predictionElementRepo) Get(ctx context.Context, tx *gorm.DB, predictionID, elementID uint) (*types.PredictionElement, error) {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}

	var result types.PredictionElement
	if err := transaction.WithContext(ctx).
		Where("prediction_id = ? AND element_id = ?", predictionID, elementID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (per *predictionElementRepo) Add(ctx context.Context, tx *gorm.DB, assoc *types.PredictionElement) (*types.PredictionElement, error) {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}

	if err := transaction.WithContext(ctx).Create(assoc).Error; err != nil {
		return nil, err
	}
	return assoc, nil
}

func (per *predictionElementRepo) Remove(ctx context.Context, tx *gorm.DB, predictionID, elementID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}

	res := transaction.WithContext(ctx).
		Where("prediction_id = ? AND element_id = ?", predictionID, elementID).
		Delete(&types.PredictionElement{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (per *predictionElementRepo) RemoveByPrediction(ctx context.Context, tx *gorm.DB, predictionID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}

	return transaction.WithContext(ctx).
		Where("prediction_id = ?", predictionID).
		Delete(&types.PredictionElement{}).Error
}

func (per *predictionElementRepo) ListByPrediction(ctx context.Context, tx *gorm.DB, predictionID uint) ([]types.ElementShare, error) {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}

	results := []types.ElementShare{}
	if err := transaction.WithContext(ctx).
		Table("prediction_element_association AS pea").
		Select("ce.id AS element_id, ce.name AS element_name, ce.symbol AS element_symbol, ce.atomic_number AS element_atomic_number, pea.percentage AS percentage").
		Joins("JOIN chemical_element ce ON ce.id = pea.element_id").
		Where("pea.prediction_id = ?", predictionID).
		Order("ce.id").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (per *predictionElementRepo) CountByElement(ctx context.Context, tx *gorm.DB, elementID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.PredictionElement{}).
		Where("element_id = ?", elementID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
