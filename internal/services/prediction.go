package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type PredictionService interface {
	Create(ctx context.Context, propValue float64, category string, mlModelID uint, rollingType string, personID uint) (*types.Prediction, error)
	GetByID(ctx context.Context, predictionID uint) (*types.Prediction, error)
	List(ctx context.Context, skip, limit int) ([]*types.Prediction, error)
	ListByPerson(ctx context.Context, personID uint) ([]*types.Prediction, error)
	ListByModel(ctx context.Context, modelID uint) ([]*types.Prediction, error)
	ListByElement(ctx context.Context, elementID uint) ([]*types.Prediction, error)
	Update(ctx context.Context, predictionID uint, patch types.PredictionPatch) (*types.Prediction, error)
	Delete(ctx context.Context, predictionID uint) error
}

type predictionService struct {
	db             *gorm.DB
	log            *logger.Logger
	predictionRepo repos.PredictionRepo
	modelRepo      repos.MLModelRepo
	personRepo     repos.PersonRepo
	predicElemRepo repos.PredictionElementRepo
}

func NewPredictionService(db *gorm.DB, log *logger.Logger, predictionRepo repos.PredictionRepo, modelRepo repos.MLModelRepo, personRepo repos.PersonRepo, predicElemRepo repos.PredictionElementRepo) PredictionService {
	serviceLog := log.With("service", "PredictionService")
	return &predictionService{
		db:             db,
		log:            serviceLog,
		predictionRepo: predictionRepo,
		modelRepo:      modelRepo,
		personRepo:     personRepo,
		predicElemRepo: predicElemRepo,
	}
}

func (ps *predictionService) Create(ctx context.Context, propValue float64, category string, mlModelID uint, rollingType string, personID uint) (*types.Prediction, error) {
	if _, err := ps.modelRepo.GetByID(ctx, nil, mlModelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Validationf("model with id %d not found", mlModelID)
		}
		return nil, err
	}
	if _, err := ps.personRepo.GetByID(ctx, nil, personID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Validationf("person with id %d not found", personID)
		}
		return nil, err
	}

	prediction := &types.Prediction{
		PropValue:   types.ClampPropValue(propValue),
		Category:    category,
		MLModelID:   mlModelID,
		RollingType: rollingType,
		PersonID:    personID,
	}
	created, err := ps.predictionRepo.Create(ctx, nil, prediction)
	if err != nil {
		ps.log.Error("Create prediction failed", "person_id", personID, "error", err)
		return nil, translate(err)
	}
	return created, nil
}

func (ps *predictionService) GetByID(ctx context.Context, predictionID uint) (*types.Prediction, error) {
	prediction, err := ps.predictionRepo.GetByID(ctx, nil, predictionID)
	if err != nil {
		return nil, translate(err)
	}
	return prediction, nil
}

func (ps *predictionService) List(ctx context.Context, skip, limit int) ([]*types.Prediction, error) {
	skip, limit = normalizePage(skip, limit)
	return ps.predictionRepo.List(ctx, nil, skip, limit)
}

func (ps *predictionService) ListByPerson(ctx context.Context, personID uint) ([]*types.Prediction, error) {
	return ps.predictionRepo.ListByPerson(ctx, nil, personID)
}

func (ps *predictionService) ListByModel(ctx context.Context, modelID uint) ([]*types.Prediction, error) {
	return ps.predictionRepo.ListByModel(ctx, nil, modelID)
}

func (ps *predictionService) ListByElement(ctx context.Context, elementID uint) ([]*types.Prediction, error) {
	return ps.predictionRepo.ListByElement(ctx, nil, elementID)
}

func (ps *predictionService) Update(ctx context.Context, predictionID uint, patch types.PredictionPatch) (*types.Prediction, error) {
	prediction, err := ps.predictionRepo.GetByID(ctx, nil, predictionID)
	if err != nil {
		return nil, translate(err)
	}

	if patch.MLModelID != nil {
		if _, err := ps.modelRepo.GetByID(ctx, nil, *patch.MLModelID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, types.Validationf("model with id %d not found", *patch.MLModelID)
			}
			return nil, err
		}
		prediction.MLModelID = *patch.MLModelID
	}
	if patch.PersonID != nil {
		if _, err := ps.personRepo.GetByID(ctx, nil, *patch.PersonID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, types.Validationf("person with id %d not found", *patch.PersonID)
			}
			return nil, err
		}
		prediction.PersonID = *patch.PersonID
	}
	if patch.PropValue != nil {
		prediction.PropValue = types.ClampPropValue(*patch.PropValue)
	}
	if patch.Category != nil {
		prediction.Category = *patch.Category
	}
	if patch.RollingType != nil {
		prediction.RollingType = *patch.RollingType
	}

	updated, err := ps.predictionRepo.Update(ctx, nil, prediction)
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// Delete removes the prediction and its composition rows in one transaction.
func (ps *predictionService) Delete(ctx context.Context, predictionID uint) error {
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.predicElemRepo.RemoveByPrediction(ctx, tx, predictionID); err != nil {
			return err
		}
		found, err := ps.predictionRepo.Delete(ctx, tx, predictionID)
		if err != nil {
			return translate(err)
		}
		if !found {
			return types.ErrNotFound
		}
		return nil
	})
}
