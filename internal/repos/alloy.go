package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type AlloyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, alloy *types.Alloy) (*types.Alloy, error)
	GetByID(ctx context.Context, tx *gorm.DB, alloyID uint) (*types.Alloy, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Alloy, error)
	ListByPatent(ctx context.Context, tx *gorm.DB, patentID uint) ([]*types.Alloy, error)
	SearchByCategory(ctx context.Context, tx *gorm.DB, category string) ([]*types.Alloy, error)
	CountByPatent(ctx context.Context, tx *gorm.DB, patentID uint) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, alloy *types.Alloy) (*types.Alloy, error)
	Delete(ctx context.Context, tx *gorm.DB, alloyID uint) (bool, error)
}

type alloyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlloyRepo(db *gorm.DB, baseLog *logger.Logger) AlloyRepo {
	repoLog := baseLog.With("repo", "AlloyRepo")
	return &alloyRepo{db: db, log: repoLog}
}

func (ar *alloyRepo) Create(ctx context.Context, tx *gorm.DB, alloy *types.Alloy) (*types.Alloy, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(alloy).Error; err != nil {
		return nil, err
	}
	return alloy, nil
}

func (ar *alloyRepo) GetByID(ctx context.Context, tx *gorm.DB, alloyID uint) (*types.Alloy, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Alloy
	if err := transaction.WithContext(ctx).
		Where("id = ?", alloyID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *alloyRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Alloy, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	results := []*types.Alloy{}
	if err := transaction.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *alloyRepo) ListByPatent(ctx context.Context, tx *gorm.DB, patentID uint) ([]*types.Alloy, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	results := []*types.Alloy{}
	if err := transaction.WithContext(ctx).
		Where("patent_id = ?", patentID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *alloyRepo) SearchByCategory(ctx context.Context, tx *gorm.DB, category string) ([]*types.Alloy, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	// LOWER(...) LIKE keeps the case-insensitive match portable between
	// the postgres runtime and the sqlite test database.
	results := []*types.Alloy{}
	if err := transaction.WithContext(ctx).
		Where("LOWER(category) LIKE ?", "%"+strings.ToLower(category)+"%").
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *alloyRepo) CountByPatent(ctx context.Context, tx *gorm.DB, patentID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Alloy{}).
		Where("patent_id = ?", patentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ar *alloyRepo) Update(ctx context.Context, tx *gorm.DB, alloy *types.Alloy) (*types.Alloy, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Save(alloy).Error; err != nil {
		return nil, err
	}
	return alloy, nil
}

func (ar *alloyRepo) Delete(ctx context.Context, tx *gorm.DB, alloyID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	res := transaction.WithContext(ctx).Delete(&types.Alloy{}, alloyID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
