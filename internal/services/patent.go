package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type PatentService interface {
	Create(ctx context.Context, authorsName, patentName, description string) (*types.Patent, error)
	GetByID(ctx context.Context, patentID uint) (*types.Patent, error)
	GetByName(ctx context.Context, patentName string) (*types.Patent, error)
	List(ctx context.Context, skip, limit int) ([]*types.Patent, error)
	Update(ctx context.Context, patentID uint, patch types.PatentPatch) (*types.Patent, error)
	Delete(ctx context.Context, patentID uint) error
}

type patentService struct {
	db         *gorm.DB
	log        *logger.Logger
	patentRepo repos.PatentRepo
	alloyRepo  repos.AlloyRepo
}

func NewPatentService(db *gorm.DB, log *logger.Logger, patentRepo repos.PatentRepo, alloyRepo repos.AlloyRepo) PatentService {
	serviceLog := log.With("service", "PatentService")
	return &patentService{
		db:         db,
		log:        serviceLog,
		patentRepo: patentRepo,
		alloyRepo:  alloyRepo,
	}
}

func (ps *patentService) Create(ctx context.Context, authorsName, patentName, description string) (*types.Patent, error) {
	if authorsName == "" || len([]rune(authorsName)) > 100 {
		return nil, types.Validationf("authors name must be 1-100 characters")
	}
	if patentName == "" || len([]rune(patentName)) > 100 {
		return nil, types.Validationf("patent name must be 1-100 characters")
	}

	patent := &types.Patent{
		AuthorsName: authorsName,
		PatentName:  patentName,
		Description: description,
	}
	created, err := ps.patentRepo.Create(ctx, nil, patent)
	if err != nil {
		ps.log.Error("Create patent failed", "patent_name", patentName, "error", err)
		return nil, translate(err)
	}
	return created, nil
}

func (ps *patentService) GetByID(ctx context.Context, patentID uint) (*types.Patent, error) {
	patent, err := ps.patentRepo.GetByID(ctx, nil, patentID)
	if err != nil {
		return nil, translate(err)
	}
	return patent, nil
}

func (ps *patentService) GetByName(ctx context.Context, patentName string) (*types.Patent, error) {
	patent, err := ps.patentRepo.GetByName(ctx, nil, patentName)
	if err != nil {
		return nil, translate(err)
	}
	return patent, nil
}

func (ps *patentService) List(ctx context.Context, skip, limit int) ([]*types.Patent, error) {
	skip, limit = normalizePage(skip, limit)
	return ps.patentRepo.List(ctx, nil, skip, limit)
}

func (ps *patentService) Update(ctx context.Context, patentID uint, patch types.PatentPatch) (*types.Patent, error) {
	patent, err := ps.patentRepo.GetByID(ctx, nil, patentID)
	if err != nil {
		return nil, translate(err)
	}

	if patch.AuthorsName != nil {
		patent.AuthorsName = *patch.AuthorsName
	}
	if patch.PatentName != nil {
		patent.PatentName = *patch.PatentName
	}
	if patch.Description != nil {
		patent.Description = *patch.Description
	}

	updated, err := ps.patentRepo.Update(ctx, nil, patent)
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// Delete refuses while the patent still owns alloys.
func (ps *patentService) Delete(ctx context.Context, patentID uint) error {
	owned, err := ps.alloyRepo.CountByPatent(ctx, nil, patentID)
	if err != nil {
		return err
	}
	if owned > 0 {
		return types.ErrConflict
	}

	found, err := ps.patentRepo.Delete(ctx, nil, patentID)
	if err != nil {
		return translate(err)
	}
	if !found {
		return types.ErrNotFound
	}
	return nil
}
