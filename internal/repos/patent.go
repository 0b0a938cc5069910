package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type PatentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, patent *types.Patent) (*types.Patent, error)
	GetByID(ctx context.Context, tx *gorm.DB, patentID uint) (*types.Patent, error)
	GetByName(ctx context.Context, tx *gorm.DB, patentName string) (*types.Patent, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Patent, error)
	Update(ctx context.Context, tx *gorm.DB, patent *types.Patent) (*types.Patent, error)
	Delete(ctx context.Context, tx *gorm.DB, patentID uint) (bool, error)
}

type patentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPatentRepo(db *gorm.DB, baseLog *logger.Logger) PatentRepo {
	repoLog := baseLog.With("repo", "PatentRepo")
	return &patentRepo{db: db, log: repoLog}
}

func (pr *patentRepo) Create(ctx context.Context, tx *gorm.DB, patent *types.Patent) (*types.Patent, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Create(patent).Error; err != nil {
		return nil, err
	}
	return patent, nil
}

func (pr *patentRepo) GetByID(ctx context.Context, tx *gorm.DB, patentID uint) (*types.Patent, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Patent
	if err := transaction.WithContext(ctx).
		Where("id = ?", patentID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *patentRepo) GetByName(ctx context.Context, tx *gorm.DB, patentName string) (*types.Patent, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Patent
	if err := transaction.WithContext(ctx).
		Where("patent_name = ?", patentName).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *patentRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Patent, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Patent{}
	if err := transaction.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *patentRepo) Update(ctx context.Context, tx *gorm.DB, patent *types.Patent) (*types.Patent, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Save(patent).Error; err != nil {
		return nil, err
	}
	return patent, nil
}

func (pr *patentRepo) Delete(ctx context.Context, tx *gorm.DB, patentID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	res := transaction.WithContext(ctx).Delete(&types.Patent{}, patentID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
