package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type AlloyElementRepo interface {
	Get(ctx context.Context, tx *gorm.DB, alloyID, elementID uint) (*types.AlloyElement, error)
	Add(ctx context.Context, tx *gorm.DB, assoc *types.AlloyElement) (*types.AlloyElement, error)
	Remove(ctx context.Context, tx *gorm.DB, alloyID, elementID uint) (bool, error)
	RemoveByAlloy(ctx context.Context, tx *gorm.DB, alloyID uint) error
	ListByAlloy(ctx context.Context, tx *gorm.DB, alloyID uint) ([]types.ElementShare, error)
	CountByElement(ctx context.Context, tx *gorm.DB, elementID uint) (int64, error)
}

type alloyElementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlloyElementRepo(db *gorm.DB, baseLog *logger.Logger) AlloyElementRepo {
	repoLog := baseLog.With("repo", "AlloyElementRepo")
	return &alloyElementRepo{db: db, log: repoLog}
}

func (aer *alloyElementRepo) Get(ctx context.Context, tx *gorm.DB, alloyID, elementID uint) (*types.AlloyElement, error) {
	transaction := tx
	if transaction == nil {
		transaction = aer.db
	}

	var result types.AlloyElement
	if err := transaction.WithContext(ctx).
		Where("alloy_id = ? AND element_id = ?", alloyID, elementID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (aer *alloyElementRepo) Add(ctx context.Context, tx *gorm.DB, assoc *types.AlloyElement) (*types.AlloyElement, error) {
	transaction := tx
	if transaction == nil {
		transaction = aer.db
	}

	if err := transaction.WithContext(ctx).Create(assoc).Error; err != nil {
		return nil, err
	}
	return assoc, nil
}

func (aer *alloyElementRepo) Remove(ctx context.Context, tx *gorm.DB, alloyID, elementID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = aer.db
	}

	res := transaction.WithContext(ctx).
		Where("alloy_id = ? AND element_id = ?", alloyID, elementID).
		Delete(&types.AlloyElement{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (aer *alloyElementRepo) RemoveByAlloy(ctx context.Context, tx *gorm.DB, alloyID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = aer.db
	}

	return transaction.WithContext(ctx).
		Where("alloy_id = ?", alloyID).
		Delete(&types.AlloyElement{}).Error
}

func (aer *alloyElementRepo) ListByAlloy(ctx context.Context, tx *gorm.DB, alloyID uint) ([]types.ElementShare, error) {
	transaction := tx
	if transaction == nil {
		transaction = aer.db
	}

	results := []types.ElementShare{}
	if err := transaction.WithContext(ctx).
		Table("alloy_element_association AS aea").
		Select("ce.id AS element_id, ce.name AS element_name, ce.symbol AS element_symbol, ce.atomic_number AS element_atomic_number, aea.percentage AS percentage").
		Joins("JOIN chemical_element ce ON ce.id = aea.element_id").
		Where("aea.alloy_id = ?", alloyID).
		Order("ce.id").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (aer *alloyElementRepo) CountByElement(ctx context.Context, tx *gorm.DB, elementID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = aer.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AlloyElement{}).
		Where("element_id = ?", elementID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
