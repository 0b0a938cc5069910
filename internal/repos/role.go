package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type RoleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, role *types.Role) (*types.Role, error)
	GetByID(ctx context.Context, tx *gorm.DB, roleID uint) (*types.Role, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Role, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Role, error)
	Update(ctx context.Context, tx *gorm.DB, role *types.Role) (*types.Role, error)
	Delete(ctx context.Context, tx *gorm.DB, roleID uint) (bool, error)
}

type roleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
	repoLog := baseLog.With("repo", "RoleRepo")
	return &roleRepo{db: db, log: repoLog}
}

func (rr *roleRepo) Create(ctx context.Context, tx *gorm.DB, role *types.Role) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (rr *roleRepo) GetByID(ctx context.Context, tx *gorm.DB, roleID uint) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Role
	if err := transaction.WithContext(ctx).
		Where("id = ?", roleID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *roleRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Role
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *roleRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	results := []*types.Role{}
	if err := transaction.WithContext(ctx).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *roleRepo) Update(ctx context.Context, tx *gorm.DB, role *types.Role) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).Save(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (rr *roleRepo) Delete(ctx context.Context, tx *gorm.DB, roleID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	res := transaction.WithContext(ctx).Delete(&types.Role{}, roleID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
