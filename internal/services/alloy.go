package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type AlloyService interface {
	Create(ctx context.Context, propValue float64, category, rollingType string, patentID uint) (*types.Alloy, error)
	GetByID(ctx context.Context, alloyID uint) (*types.Alloy, error)
	List(ctx context.Context, skip, limit int) ([]*types.Alloy, error)
	ListByPatent(ctx context.Context, patentID uint) ([]*types.Alloy, error)
	SearchByCategory(ctx context.Context, category string) ([]*types.Alloy, error)
	Update(ctx context.Context, alloyID uint, patch types.AlloyPatch) (*types.Alloy, error)
	Delete(ctx context.Context, alloyID uint) error
}

type alloyService struct {
	db            *gorm.DB
	log           *logger.Logger
	alloyRepo     repos.AlloyRepo
	patentRepo    repos.PatentRepo
	alloyElemRepo repos.AlloyElementRepo
}

func NewAlloyService(db *gorm.DB, log *logger.Logger, alloyRepo repos.AlloyRepo, patentRepo repos.PatentRepo, alloyElemRepo repos.AlloyElementRepo) AlloyService {
	serviceLog := log.With("service", "AlloyService")
	return &alloyService{
		db:            db,
		log:           serviceLog,
		alloyRepo:     alloyRepo,
		patentRepo:    patentRepo,
		alloyElemRepo: alloyElemRepo,
	}
}

func (as *alloyService) Create(ctx context.Context, propValue float64, category, rollingType string, patentID uint) (*types.Alloy, error) {
	if _, err := as.patentRepo.GetByID(ctx, nil, patentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Validationf("patent with id %d not found", patentID)
		}
		return nil, err
	}

	alloy := &types.Alloy{
		PropValue:   types.ClampPropValue(propValue),
		Category:    category,
		RollingType: rollingType,
		PatentID:    patentID,
	}
	created, err := as.alloyRepo.Create(ctx, nil, alloy)
	if err != nil {
		as.log.Error("Create alloy failed", "patent_id", patentID, "error", err)
		return nil, translate(err)
	}
	return created, nil
}

func (as *alloyService) GetByID(ctx context.Context, alloyID uint) (*types.Alloy, error) {
	alloy, err := as.alloyRepo.GetByID(ctx, nil, alloyID)
	if err != nil {
		return nil, translate(err)
	}
	return alloy, nil
}

func (as *alloyService) List(ctx context.Context, skip, limit int) ([]*types.Alloy, error) {
	skip, limit = normalizePage(skip, limit)
	return as.alloyRepo.List(ctx, nil, skip, limit)
}

func (as *alloyService) ListByPatent(ctx context.Context, patentID uint) ([]*types.Alloy, error) {
	return as.alloyRepo.ListByPatent(ctx, nil, patentID)
}

func (as *alloyService) SearchByCategory(ctx context.Context, category string) ([]*types.Alloy, error) {
	return as.alloyRepo.SearchByCategory(ctx, nil, category)
}

func (as *alloyService) Update(ctx context.Context, alloyID uint, patch types.AlloyPatch) (*types.Alloy, error) {
	alloy, err := as.alloyRepo.GetByID(ctx, nil, alloyID)
	if err != nil {
		return nil, translate(err)
	}

	if patch.PatentID != nil {
		if _, err := as.patentRepo.GetByID(ctx, nil, *patch.PatentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, types.Validationf("patent with id %d not found", *patch.PatentID)
			}
			return nil, err
		}
		alloy.PatentID = *patch.PatentID
	}
	if patch.PropValue != nil {
		alloy.PropValue = types.ClampPropValue(*patch.PropValue)
	}
	if patch.Category != nil {
		alloy.Category = *patch.Category
	}
	if patch.RollingType != nil {
		alloy.RollingType = *patch.RollingType
	}

	updated, err := as.alloyRepo.Update(ctx, nil, alloy)
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// Delete removes the alloy and its composition rows in one transaction.
func (as *alloyService) Delete(ctx context.Context, alloyID uint) error {
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.alloyElemRepo.RemoveByAlloy(ctx, tx, alloyID); err != nil {
			return err
		}
		found, err := as.alloyRepo.Delete(ctx, tx, alloyID)
		if err != nil {
			return translate(err)
		}
		if !found {
			return types.ErrNotFound
		}
		return nil
	})
}
