package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type PredictionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, prediction *types.Prediction) (*types.Prediction, error)
	GetByID(ctx context.Context, tx *gorm.DB, predictionID uint) (*types.Prediction, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Prediction, error)
	ListByPerson(ctx context.Context, tx *gorm.DB, personID uint) ([]*types.Prediction, error)
	ListByModel(ctx context.Context, tx *gorm.DB, modelID uint) ([]*types.Prediction, error)
	ListByElement(ctx context.Context, tx *gorm.DB, elementID uint) ([]*types.Prediction, error)
	CountByPerson(ctx context.Context, tx *gorm.DB, personID uint) (int64, error)
	CountByModel(ctx context.Context, tx *gorm.DB, modelID uint) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, prediction *types.Prediction) (*types.Prediction, error)
	Delete(ctx context.Context, tx *gorm.DB, predictionID uint) (bool, error)
}

type predictionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPredictionRepo(db *gorm.DB, baseLog *logger.Logger) PredictionRepo {
	repoLog := baseLog.With("repo", "PredictionRepo")
	return &predictionRepo{db: db, log: repoLog}
}

func (pr *predictionRepo) Create(ctx context.Context, tx *gorm.DB, prediction *types.Prediction) (*types.Prediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Create(prediction).Error; err != nil {
		return nil, err
	}
	return prediction, nil
}

func (pr *predictionRepo) GetByID(ctx context.Context, tx *gorm.DB, predictionID uint) (*types.Prediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Prediction
	if err := transaction.WithContext(ctx).
		Where("id = ?", predictionID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *predictionRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Prediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Prediction{}
	if err := transaction.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *predictionRepo) ListByPerson(ctx context.Context, tx *gorm.DB, personID uint) ([]*types.Prediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Prediction{}
	if err := transaction.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *predictionRepo) ListByModel(ctx context.Context, tx *gorm.DB, modelID uint) ([]*types.Prediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Prediction{}
	if err := transaction.WithContext(ctx).
		Where("ml_model_id = ?", modelID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *predictionRepo) ListByElement(ctx context.Context, tx *gorm.DB, elementID uint) ([]*types.Prediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Prediction{}
	if err := transaction.WithContext(ctx).
		Joins("JOIN prediction_element_association pea ON pea.prediction_id = prediction.id").
		Where("pea.element_id = ?", elementID).
		Order("prediction.id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *predictionRepo) CountByPerson(ctx context.Context, tx *gorm.DB, personID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Prediction{}).
		Where("person_id = ?", personID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *predictionRepo) CountByModel(ctx context.Context, tx *gorm.DB, modelID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Prediction{}).
		Where("ml_model_id = ?", modelID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *predictionRepo) Update(ctx context.Context, tx *gorm.DB, prediction *types.Prediction) (*types.Prediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Save(prediction).Error; err != nil {
		return nil, err
	}
	return prediction, nil
}

func (pr *predictionRepo) Delete(ctx context.Context, tx *gorm.DB, predictionID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	res := transaction.WithContext(ctx).Delete(&types.Prediction{}, predictionID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
