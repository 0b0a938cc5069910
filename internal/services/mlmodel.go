package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type MLModelService interface {
	Create(ctx context.Context, name, description string) (*types.MLModel, error)
	GetByID(ctx context.Context, modelID uint) (*types.MLModel, error)
	GetByName(ctx context.Context, name string) (*types.MLModel, error)
	List(ctx context.Context) ([]*types.MLModel, error)
	Update(ctx context.Context, modelID uint, patch types.MLModelPatch) (*types.MLModel, error)
	Delete(ctx context.Context, modelID uint) error
}

type mlModelService struct {
	db             *gorm.DB
	log            *logger.Logger
	modelRepo      repos.MLModelRepo
	predictionRepo repos.PredictionRepo
}

func NewMLModelService(db *gorm.DB, log *logger.Logger, modelRepo repos.MLModelRepo, predictionRepo repos.PredictionRepo) MLModelService {
	serviceLog := log.With("service", "MLModelService")
	return &mlModelService{
		db:             db,
		log:            serviceLog,
		modelRepo:      modelRepo,
		predictionRepo: predictionRepo,
	}
}

// Create returns the existing registry row when the name is taken.
func (ms *mlModelService) Create(ctx context.Context, name, description string) (*types.MLModel, error) {
	if name == "" || len([]rune(name)) > 50 {
		return nil, types.Validationf("model name must be 1-50 characters, got %q", name)
	}

	existing, err := ms.modelRepo.GetByName(ctx, nil, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	model := &types.MLModel{Name: name, Description: description}
	created, err := ms.modelRepo.Create(ctx, nil, model)
	if err != nil {
		if isUniqueViolation(err) {
			winner, getErr := ms.modelRepo.GetByName(ctx, nil, name)
			if getErr == nil {
				return winner, nil
			}
		}
		ms.log.Error("Create model failed", "name", name, "error", err)
		return nil, err
	}
	return created, nil
}

func (ms *mlModelService) GetByID(ctx context.Context, modelID uint) (*types.MLModel, error) {
	model, err := ms.modelRepo.GetByID(ctx, nil, modelID)
	if err != nil {
		return nil, translate(err)
	}
	return model, nil
}

func (ms *mlModelService) GetByName(ctx context.Context, name string) (*types.MLModel, error) {
	model, err := ms.modelRepo.GetByName(ctx, nil, name)
	if err != nil {
		return nil, translate(err)
	}
	return model, nil
}

func (ms *mlModelService) List(ctx context.Context) ([]*types.MLModel, error) {
	return ms.modelRepo.List(ctx, nil)
}

func (ms *mlModelService) Update(ctx context.Context, modelID uint, patch types.MLModelPatch) (*types.MLModel, error) {
	model, err := ms.modelRepo.GetByID(ctx, nil, modelID)
	if err != nil {
		return nil, translate(err)
	}

	if patch.Name != nil && *patch.Name != model.Name {
		if _, err := ms.modelRepo.GetByName(ctx, nil, *patch.Name); err == nil {
			return nil, types.ErrConflict
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		model.Name = *patch.Name
	}
	if patch.Description != nil {
		model.Description = *patch.Description
	}

	updated, err := ms.modelRepo.Update(ctx, nil, model)
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// Delete refuses while predictions still reference the model.
func (ms *mlModelService) Delete(ctx context.Context, modelID uint) error {
	dependents, err := ms.predictionRepo.CountByModel(ctx, nil, modelID)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return types.ErrConflict
	}

	found, err := ms.modelRepo.Delete(ctx, nil, modelID)
	if err != nil {
		return translate(err)
	}
	if !found {
		return types.ErrNotFound
	}
	return nil
}
