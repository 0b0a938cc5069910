package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

// maxSingleShare caps any one element's contribution, matching the
// numeric(5,3) column: 99.999 is the largest storable percentage.
const maxSingleShare = 99.999

// ElementPercentage is one (element, percentage) pair of a composition
// request. Order is preserved, so a validation failure on the Nth pair is
// deterministic.
type ElementPercentage struct {
	ElementID  uint    `json:"element_id"`
	Percentage float64 `json:"percentage"`
}

type CompositionService interface {
	AddElementToAlloy(ctx context.Context, alloyID, elementID uint, percentage float64) (*types.AlloyElement, error)
	RemoveElementFromAlloy(ctx context.Context, alloyID, elementID uint) error
	ListAlloyElements(ctx context.Context, alloyID uint) ([]types.ElementShare, error)
	CreateAlloyWithElements(ctx context.Context, propValue float64, category, rollingType string, patentID uint, elements []ElementPercentage) (*types.Alloy, error)

	AddElementToPrediction(ctx context.Context, predictionID, elementID uint, percentage float64) (*types.PredictionElement, error)
	RemoveElementFromPrediction(ctx context.Context, predictionID, elementID uint) error
	ListPredictionElements(ctx context.Context, predictionID uint) ([]types.ElementShare, error)
	CreatePredictionWithElements(ctx context.Context, propValue float64, category string, mlModelID uint, rollingType string, personID uint, elements []ElementPercentage) (*types.Prediction, error)
}

type compositionService struct {
	db             *gorm.DB
	log            *logger.Logger
	alloyRepo      repos.AlloyRepo
	predictionRepo repos.PredictionRepo
	elementRepo    repos.ChemicalElementRepo
	patentRepo     repos.PatentRepo
	modelRepo      repos.MLModelRepo
	personRepo     repos.PersonRepo
	alloyElemRepo  repos.AlloyElementRepo
	predicElemRepo repos.PredictionElementRepo
}

func NewCompositionService(
	db *gorm.DB,
	log *logger.Logger,
	alloyRepo repos.AlloyRepo,
	predictionRepo repos.PredictionRepo,
	elementRepo repos.ChemicalElementRepo,
	patentRepo repos.PatentRepo,
	modelRepo repos.MLModelRepo,
	personRepo repos.PersonRepo,
	alloyElemRepo repos.AlloyElementRepo,
	predicElemRepo repos.PredictionElementRepo,
) CompositionService {
	serviceLog := log.With("service", "CompositionService")
	return &compositionService{
		db:             db,
		log:            serviceLog,
		alloyRepo:      alloyRepo,
		predictionRepo: predictionRepo,
		elementRepo:    elementRepo,
		patentRepo:     patentRepo,
		modelRepo:      modelRepo,
		personRepo:     personRepo,
		alloyElemRepo:  alloyElemRepo,
		predicElemRepo: predicElemRepo,
	}
}

// addElementToAlloy runs the ordered checks: alloy exists, element exists,
// percentage in (0, 100], pair not already present. Each failure names the
// check that tripped. The insert happens only after all four pass.
func (cs *compositionService) addElementToAlloy(ctx context.Context, tx *gorm.DB, alloyID, elementID uint, percentage float64) (*types.AlloyElement, error) {
	if _, err := cs.alloyRepo.GetByID(ctx, tx, alloyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Validationf("alloy with id %d not found", alloyID)
		}
		return nil, err
	}
	if _, err := cs.elementRepo.GetByID(ctx, tx, elementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Validationf("element with id %d not found", elementID)
		}
		return nil, err
	}
	if percentage <= 0 || percentage > 100 {
		return nil, types.Validationf("percentage must be between 0 and 100")
	}
	if _, err := cs.alloyElemRepo.Get(ctx, tx, alloyID, elementID); err == nil {
		return nil, types.Validationf("element %d is already added to alloy %d", elementID, alloyID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	assoc := &types.AlloyElement{
		AlloyID:    alloyID,
		ElementID:  elementID,
		Percentage: percentage,
	}
	created, err := cs.alloyElemRepo.Add(ctx, tx, assoc)
	if err != nil {
		if isUniqueViolation(err) {
			// concurrent add won; same outcome as the pre-check
			return nil, types.Validationf("element %d is already added to alloy %d", elementID, alloyID)
		}
		return nil, err
	}
	return created, nil
}

func (cs *compositionService) AddElementToAlloy(ctx context.Context, alloyID, elementID uint, percentage float64) (*types.AlloyElement, error) {
	return cs.addElementToAlloy(ctx, nil, alloyID, elementID, percentage)
}

// RemoveElementFromAlloy checks alloy, element, then the association.
// A missing association is an error, never an idempotent success, even when
// a concurrent deletion won the race between the check and the delete.
func (cs *compositionService) RemoveElementFromAlloy(ctx context.Context, alloyID, elementID uint) error {
	if _, err := cs.alloyRepo.GetByID(ctx, nil, alloyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Validationf("alloy with id %d not found", alloyID)
		}
		return err
	}
	if _, err := cs.elementRepo.GetByID(ctx, nil, elementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Validationf("element with id %d not found", elementID)
		}
		return err
	}
	if _, err := cs.alloyElemRepo.Get(ctx, nil, alloyID, elementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("element %d is not associated with alloy %d: %w", elementID, alloyID, types.ErrNotFound)
		}
		return err
	}

	removed, err := cs.alloyElemRepo.Remove(ctx, nil, alloyID, elementID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("association already deleted: %w", types.ErrNotFound)
	}
	return nil
}

// ListAlloyElements returns flat element-plus-percentage records; an alloy
// with no composition yields an empty slice, not an error. The alloy itself
// must exist.
func (cs *compositionService) ListAlloyElements(ctx context.Context, alloyID uint) ([]types.ElementShare, error) {
	if _, err := cs.alloyRepo.GetByID(ctx, nil, alloyID); err != nil {
		return nil, translate(err)
	}
	return cs.alloyElemRepo.ListByAlloy(ctx, nil, alloyID)
}

// CreateAlloyWithElements creates the alloy and all of its composition rows
// as one unit: the whole aggregate runs in a single transaction and any
// sub-step failure rolls everything back, parent included. Individual
// contributions are capped at 99.999 before validation.
func (cs *compositionService) CreateAlloyWithElements(ctx context.Context, propValue float64, category, rollingType string, patentID uint, elements []ElementPercentage) (*types.Alloy, error) {
	var alloy *types.Alloy
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := cs.patentRepo.GetByID(ctx, tx, patentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.Validationf("patent with id %d not found", patentID)
			}
			return err
		}

		created, err := cs.alloyRepo.Create(ctx, tx, &types.Alloy{
			PropValue:   types.ClampPropValue(propValue),
			Category:    category,
			RollingType: rollingType,
			PatentID:    patentID,
		})
		if err != nil {
			return translate(err)
		}

		for _, ep := range elements {
			pct := ep.Percentage
			if pct > maxSingleShare {
				pct = maxSingleShare
			}
			if _, err := cs.addElementToAlloy(ctx, tx, created.ID, ep.ElementID, pct); err != nil {
				return err
			}
		}
		alloy = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return alloy, nil
}

func (cs *compositionService) addElementToPrediction(ctx context.Context, tx *gorm.DB, predictionID, elementID uint, percentage float64) (*types.PredictionElement, error) {
	if _, err := cs.predictionRepo.GetByID(ctx, tx, predictionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Validationf("prediction with id %d not found", predictionID)
		}
		return nil, err
	}
	if _, err := cs.elementRepo.GetByID(ctx, tx, elementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Validationf("element with id %d not found", elementID)
		}
		return nil, err
	}
	if percentage <= 0 || percentage > 100 {
		return nil, types.Validationf("percentage must be between 0 and 100")
	}
	if _, err := cs.predicElemRepo.Get(ctx, tx, predictionID, elementID); err == nil {
		return nil, types.Validationf("element %d is already added to prediction %d", elementID, predictionID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	assoc := &types.PredictionElement{
		PredictionID: predictionID,
		ElementID:    elementID,
		Percentage:   percentage,
	}
	created, err := cs.predicElemRepo.Add(ctx, tx, assoc)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, types.Validationf("element %d is already added to prediction %d", elementID, predictionID)
		}
		return nil, err
	}
	return created, nil
}

func (cs *compositionService) AddElementToPrediction(ctx context.Context, predictionID, elementID uint, percentage float64) (*types.PredictionElement, error) {
	return cs.addElementToPrediction(ctx, nil, predictionID, elementID, percentage)
}

func (cs *compositionService) RemoveElementFromPrediction(ctx context.Context, predictionID, elementID uint) error {
	if _, err := cs.predictionRepo.GetByID(ctx, nil, predictionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Validationf("prediction with id %d not found", predictionID)
		}
		return err
	}
	if _, err := cs.elementRepo.GetByID(ctx, nil, elementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Validationf("element with id %d not found", elementID)
		}
		return err
	}
	if _, err := cs.predicElemRepo.Get(ctx, nil, predictionID, elementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("element %d is not associated with prediction %d: %w", elementID, predictionID, types.ErrNotFound)
		}
		return err
	}

	removed, err := cs.predicElemRepo.Remove(ctx, nil, predictionID, elementID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("association already deleted: %w", types.ErrNotFound)
	}
	return nil
}

func (cs *compositionService) ListPredictionElements(ctx context.Context, predictionID uint) ([]types.ElementShare, error) {
	if _, err := cs.predictionRepo.GetByID(ctx, nil, predictionID); err != nil {
		return nil, translate(err)
	}
	return cs.predicElemRepo.ListByPrediction(ctx, nil, predictionID)
}

func (cs *compositionService) CreatePredictionWithElements(ctx context.Context, propValue float64, category string, mlModelID uint, rollingType string, personID uint, elements []ElementPercentage) (*types.Prediction, error) {
	var prediction *types.Prediction
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := cs.modelRepo.GetByID(ctx, tx, mlModelID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.Validationf("model with id %d not found", mlModelID)
			}
			return err
		}
		if _, err := cs.personRepo.GetByID(ctx, tx, personID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.Validationf("person with id %d not found", personID)
			}
			return err
		}

		created, err := cs.predictionRepo.Create(ctx, tx, &types.Prediction{
			PropValue:   types.ClampPropValue(propValue),
			Category:    category,
			MLModelID:   mlModelID,
			RollingType: rollingType,
			PersonID:    personID,
		})
		if err != nil {
			return translate(err)
		}

		for _, ep := range elements {
			pct := ep.Percentage
			if pct > maxSingleShare {
				pct = maxSingleShare
			}
			if _, err := cs.addElementToPrediction(ctx, tx, created.ID, ep.ElementID, pct); err != nil {
				return err
			}
		}
		prediction = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prediction, nil
}
