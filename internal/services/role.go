package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type RoleService interface {
	Create(ctx context.Context, name, description string) (*types.Role, error)
	GetByID(ctx context.Context, roleID uint) (*types.Role, error)
	GetByName(ctx context.Context, name string) (*types.Role, error)
	List(ctx context.Context) ([]*types.Role, error)
	Update(ctx context.Context, roleID uint, patch types.RolePatch) (*types.Role, error)
	Delete(ctx context.Context, roleID uint) error
}

type roleService struct {
	db         *gorm.DB
	log        *logger.Logger
	roleRepo   repos.RoleRepo
	personRepo repos.PersonRepo
}

func NewRoleService(db *gorm.DB, log *logger.Logger, roleRepo repos.RoleRepo, personRepo repos.PersonRepo) RoleService {
	serviceLog := log.With("service", "RoleService")
	return &roleService{
		db:         db,
		log:        serviceLog,
		roleRepo:   roleRepo,
		personRepo: personRepo,
	}
}

// Create returns the existing row when the name is taken, same contract as
// element creation.
func (rs *roleService) Create(ctx context.Context, name, description string) (*types.Role, error) {
	if name == "" || len([]rune(name)) > 20 {
		return nil, types.Validationf("role name must be 1-20 characters, got %q", name)
	}

	existing, err := rs.roleRepo.GetByName(ctx, nil, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := &types.Role{Name: name, Description: description}
	created, err := rs.roleRepo.Create(ctx, nil, role)
	if err != nil {
		if isUniqueViolation(err) {
			winner, getErr := rs.roleRepo.GetByName(ctx, nil, name)
			if getErr == nil {
				return winner, nil
			}
		}
		rs.log.Error("Create role failed", "name", name, "error", err)
		return nil, err
	}
	return created, nil
}

func (rs *roleService) GetByID(ctx context.Context, roleID uint) (*types.Role, error) {
	role, err := rs.roleRepo.GetByID(ctx, nil, roleID)
	if err != nil {
		return nil, translate(err)
	}
	return role, nil
}

func (rs *roleService) GetByName(ctx context.Context, name string) (*types.Role, error) {
	role, err := rs.roleRepo.GetByName(ctx, nil, name)
	if err != nil {
		return nil, translate(err)
	}
	return role, nil
}

func (rs *roleService) List(ctx context.Context) ([]*types.Role, error) {
	return rs.roleRepo.List(ctx, nil)
}

func (rs *roleService) Update(ctx context.Context, roleID uint, patch types.RolePatch) (*types.Role, error) {
	role, err := rs.roleRepo.GetByID(ctx, nil, roleID)
	if err != nil {
		return nil, translate(err)
	}

	if patch.Name != nil && *patch.Name != role.Name {
		if _, err := rs.roleRepo.GetByName(ctx, nil, *patch.Name); err == nil {
			return nil, types.ErrConflict
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		role.Name = *patch.Name
	}
	if patch.Description != nil {
		role.Description = *patch.Description
	}

	updated, err := rs.roleRepo.Update(ctx, nil, role)
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// Delete refuses while persons still hold the role.
func (rs *roleService) Delete(ctx context.Context, roleID uint) error {
	holders, err := rs.personRepo.CountByRole(ctx, nil, roleID)
	if err != nil {
		return err
	}
	if holders > 0 {
		return types.ErrConflict
	}

	found, err := rs.roleRepo.Delete(ctx, nil, roleID)
	if err != nil {
		return translate(err)
	}
	if !found {
		return types.ErrNotFound
	}
	return nil
}
