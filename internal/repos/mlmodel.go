package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type MLModelRepo interface {
	Create(ctx context.Context, tx *gorm.DB, model *types.MLModel) (*types.MLModel, error)
	GetByID(ctx context.Context, tx *gorm.DB, modelID uint) (*types.MLModel, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.MLModel, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.MLModel, error)
	Update(ctx context.Context, tx *gorm.DB, model *types.MLModel) (*types.MLModel, error)
	Delete(ctx context.Context, tx *gorm.DB, modelID uint) (bool, error)
}

type mlModelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMLModelRepo(db *gorm.DB, baseLog *logger.Logger) MLModelRepo {
	repoLog := baseLog.With("repo", "MLModelRepo")
	return &mlModelRepo{db: db, log: repoLog}
}

func (mr *mlModelRepo) Create(ctx context.Context, tx *gorm.DB, model *types.MLModel) (*types.MLModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model, nil
}

func (mr *mlModelRepo) GetByID(ctx context.Context, tx *gorm.DB, modelID uint) (*types.MLModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var result types.MLModel
	if err := transaction.WithContext(ctx).
		Where("id = ?", modelID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (mr *mlModelRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.MLModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var result types.MLModel
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (mr *mlModelRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.MLModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	results := []*types.MLModel{}
	if err := transaction.WithContext(ctx).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *mlModelRepo) Update(ctx context.Context, tx *gorm.DB, model *types.MLModel) (*types.MLModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).Save(model).Error; err != nil {
		return nil, err
	}
	return model, nil
}

func (mr *mlModelRepo) Delete(ctx context.Context, tx *gorm.DB, modelID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	res := transaction.WithContext(ctx).Delete(&types.MLModel{}, modelID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
