package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type ChemicalElementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, element *types.ChemicalElement) (*types.ChemicalElement, error)
	GetByID(ctx context.Context, tx *gorm.DB, elementID uint) (*types.ChemicalElement, error)
	GetBySymbol(ctx context.Context, tx *gorm.DB, symbol string) (*types.ChemicalElement, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.ChemicalElement, error)
	Delete(ctx context.Context, tx *gorm.DB, elementID uint) (bool, error)
}

type chemicalElementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChemicalElementRepo(db *gorm.DB, baseLog *logger.Logger) ChemicalElementRepo {
	repoLog := baseLog.With("repo", "ChemicalElementRepo")
	return &chemicalElementRepo{db: db, log: repoLog}
}

func (er *chemicalElementRepo) Create(ctx context.Context, tx *gorm.DB, element *types.ChemicalElement) (*types.ChemicalElement, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if err := transaction.WithContext(ctx).Create(element).Error; err != nil {
		return nil, err
	}
	return element, nil
}

func (er *chemicalElementRepo) GetByID(ctx context.Context, tx *gorm.DB, elementID uint) (*types.ChemicalElement, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var result types.ChemicalElement
	if err := transaction.WithContext(ctx).
		Where("id = ?", elementID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (er *chemicalElementRepo) GetBySymbol(ctx context.Context, tx *gorm.DB, symbol string) (*types.ChemicalElement, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var result types.ChemicalElement
	if err := transaction.WithContext(ctx).
		Where("symbol = ?", symbol).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (er *chemicalElementRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.ChemicalElement, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	results := []*types.ChemicalElement{}
	if err := transaction.WithContext(ctx).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *chemicalElementRepo) Delete(ctx context.Context, tx *gorm.DB, elementID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	res := transaction.WithContext(ctx).Delete(&types.ChemicalElement{}, elementID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
