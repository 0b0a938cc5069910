package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type PersonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, person *types.Person) (*types.Person, error)
	GetByID(ctx context.Context, tx *gorm.DB, personID uint) (*types.Person, error)
	GetByLogin(ctx context.Context, tx *gorm.DB, login string) (*types.Person, error)
	LoginExists(ctx context.Context, tx *gorm.DB, login string, excludeID uint) (bool, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Person, error)
	ListByRole(ctx context.Context, tx *gorm.DB, roleID uint) ([]*types.Person, error)
	ListByOrganization(ctx context.Context, tx *gorm.DB, organization string) ([]*types.Person, error)
	CountByRole(ctx context.Context, tx *gorm.DB, roleID uint) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, person *types.Person) (*types.Person, error)
	Delete(ctx context.Context, tx *gorm.DB, personID uint) (bool, error)
}

type personRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonRepo(db *gorm.DB, baseLog *logger.Logger) PersonRepo {
	repoLog := baseLog.With("repo", "PersonRepo")
	return &personRepo{db: db, log: repoLog}
}

func (pr *personRepo) Create(ctx context.Context, tx *gorm.DB, person *types.Person) (*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Create(person).Error; err != nil {
		return nil, err
	}
	return person, nil
}

func (pr *personRepo) GetByID(ctx context.Context, tx *gorm.DB, personID uint) (*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Person
	if err := transaction.WithContext(ctx).
		Where("id = ?", personID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *personRepo) GetByLogin(ctx context.Context, tx *gorm.DB, login string) (*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Person
	if err := transaction.WithContext(ctx).
		Where("login = ?", login).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// LoginExists reports whether another person already holds the login.
// excludeID skips the row being updated so a no-op login change passes.
func (pr *personRepo) LoginExists(ctx context.Context, tx *gorm.DB, login string, excludeID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	q := transaction.WithContext(ctx).
		Model(&types.Person{}).
		Where("login = ?", login)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *personRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Person{}
	if err := transaction.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *personRepo) ListByRole(ctx context.Context, tx *gorm.DB, roleID uint) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Person{}
	if err := transaction.WithContext(ctx).
		Where("role_id = ?", roleID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *personRepo) ListByOrganization(ctx context.Context, tx *gorm.DB, organization string) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Person{}
	if err := transaction.WithContext(ctx).
		Where("organization = ?", organization).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *personRepo) CountByRole(ctx context.Context, tx *gorm.DB, roleID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Person{}).
		Where("role_id = ?", roleID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *personRepo) Update(ctx context.Context, tx *gorm.DB, person *types.Person) (*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Save(person).Error; err != nil {
		return nil, err
	}
	return person, nil
}

func (pr *personRepo) Delete(ctx context.Context, tx *gorm.DB, personID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	res := transaction.WithContext(ctx).Delete(&types.Person{}, personID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
