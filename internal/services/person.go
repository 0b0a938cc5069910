package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type PersonService interface {
	Create(ctx context.Context, firstName, lastName string, roleID uint, organization, login, password string) (*types.Person, error)
	GetByID(ctx context.Context, personID uint) (*types.Person, error)
	GetByLogin(ctx context.Context, login string) (*types.Person, error)
	List(ctx context.Context, skip, limit int) ([]*types.Person, error)
	ListByRole(ctx context.Context, roleID uint) ([]*types.Person, error)
	Update(ctx context.Context, personID uint, patch types.PersonPatch) (*types.Person, error)
	Delete(ctx context.Context, personID uint) error
	GrantRoleToOrganization(ctx context.Context, organization string, roleID uint) (int, error)
}

type personService struct {
	db             *gorm.DB
	log            *logger.Logger
	personRepo     repos.PersonRepo
	roleRepo       repos.RoleRepo
	predictionRepo repos.PredictionRepo
}

func NewPersonService(db *gorm.DB, log *logger.Logger, personRepo repos.PersonRepo, roleRepo repos.RoleRepo, predictionRepo repos.PredictionRepo) PersonService {
	serviceLog := log.With("service", "PersonService")
	return &personService{
		db:             db,
		log:            serviceLog,
		personRepo:     personRepo,
		roleRepo:       roleRepo,
		predictionRepo: predictionRepo,
	}
}

func (ps *personService) Create(ctx context.Context, firstName, lastName string, roleID uint, organization, login, password string) (*types.Person, error) {
	if login == "" || len(login) > 20 {
		return nil, types.Validationf("login must be 1-20 characters, got %q", login)
	}
	if firstName == "" || lastName == "" {
		return nil, types.Validationf("first and last name are required")
	}
	if password == "" {
		return nil, types.Validationf("password is required")
	}

	if _, err := ps.roleRepo.GetByID(ctx, nil, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Validationf("role with id %d not found", roleID)
		}
		return nil, err
	}

	taken, err := ps.personRepo.LoginExists(ctx, nil, login, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, types.ErrConflict
	}

	person := &types.Person{
		FirstName:    firstName,
		LastName:     lastName,
		RoleID:       roleID,
		Organization: organization,
		Login:        login,
		Password:     password,
	}
	created, err := ps.personRepo.Create(ctx, nil, person)
	if err != nil {
		ps.log.Error("Create person failed", "login", login, "error", err)
		return nil, translate(err)
	}
	return created, nil
}

func (ps *personService) GetByID(ctx context.Context, personID uint) (*types.Person, error) {
	person, err := ps.personRepo.GetByID(ctx, nil, personID)
	if err != nil {
		return nil, translate(err)
	}
	return person, nil
}

func (ps *personService) GetByLogin(ctx context.Context, login string) (*types.Person, error) {
	person, err := ps.personRepo.GetByLogin(ctx, nil, login)
	if err != nil {
		return nil, translate(err)
	}
	return person, nil
}

func (ps *personService) List(ctx context.Context, skip, limit int) ([]*types.Person, error) {
	skip, limit = normalizePage(skip, limit)
	return ps.personRepo.List(ctx, nil, skip, limit)
}

func (ps *personService) ListByRole(ctx context.Context, roleID uint) ([]*types.Person, error) {
	return ps.personRepo.ListByRole(ctx, nil, roleID)
}

// Update applies the patch after re-checking only the constraints the patch
// touches: a login change is checked against every other row, while writing
// the login the person already holds is a no-op and passes.
func (ps *personService) Update(ctx context.Context, personID uint, patch types.PersonPatch) (*types.Person, error) {
	person, err := ps.personRepo.GetByID(ctx, nil, personID)
	if err != nil {
		return nil, translate(err)
	}

	if patch.Login != nil && *patch.Login != person.Login {
		if *patch.Login == "" || len(*patch.Login) > 20 {
			return nil, types.Validationf("login must be 1-20 characters, got %q", *patch.Login)
		}
		taken, err := ps.personRepo.LoginExists(ctx, nil, *patch.Login, personID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, types.ErrConflict
		}
		person.Login = *patch.Login
	}
	if patch.RoleID != nil {
		if _, err := ps.roleRepo.GetByID(ctx, nil, *patch.RoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, types.Validationf("role with id %d not found", *patch.RoleID)
			}
			return nil, err
		}
		person.RoleID = *patch.RoleID
	}
	if patch.FirstName != nil {
		person.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		person.LastName = *patch.LastName
	}
	if patch.Organization != nil {
		person.Organization = *patch.Organization
	}
	if patch.Password != nil {
		person.Password = *patch.Password
	}

	updated, err := ps.personRepo.Update(ctx, nil, person)
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// Delete refuses while predictions still reference the person.
func (ps *personService) Delete(ctx context.Context, personID uint) error {
	dependents, err := ps.predictionRepo.CountByPerson(ctx, nil, personID)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return types.ErrConflict
	}

	found, err := ps.personRepo.Delete(ctx, nil, personID)
	if err != nil {
		return translate(err)
	}
	if !found {
		return types.ErrNotFound
	}
	return nil
}

// GrantRoleToOrganization moves every person of an organization onto the
// given role and reports how many rows changed.
func (ps *personService) GrantRoleToOrganization(ctx context.Context, organization string, roleID uint) (int, error) {
	if organization == "" {
		return 0, types.Validationf("organization is required")
	}
	if _, err := ps.roleRepo.GetByID(ctx, nil, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, types.Validationf("role with id %d not found", roleID)
		}
		return 0, err
	}

	updated := 0
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		members, err := ps.personRepo.ListByOrganization(ctx, tx, organization)
		if err != nil {
			return err
		}
		for _, member := range members {
			if member.RoleID == roleID {
				continue
			}
			member.RoleID = roleID
			if _, err := ps.personRepo.Update(ctx, tx, member); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
