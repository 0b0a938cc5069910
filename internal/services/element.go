package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type ChemicalElementService interface {
	Create(ctx context.Context, name string, atomicNumber int, symbol string) (*types.ChemicalElement, error)
	GetByID(ctx context.Context, elementID uint) (*types.ChemicalElement, error)
	GetBySymbol(ctx context.Context, symbol string) (*types.ChemicalElement, error)
	List(ctx context.Context) ([]*types.ChemicalElement, error)
	Delete(ctx context.Context, elementID uint) error
}

type chemicalElementService struct {
	db             *gorm.DB
	log            *logger.Logger
	elementRepo    repos.ChemicalElementRepo
	alloyElemRepo  repos.AlloyElementRepo
	predicElemRepo repos.PredictionElementRepo
}

func NewChemicalElementService(db *gorm.DB, log *logger.Logger, elementRepo repos.ChemicalElementRepo, alloyElemRepo repos.AlloyElementRepo, predicElemRepo repos.PredictionElementRepo) ChemicalElementService {
	serviceLog := log.With("service", "ChemicalElementService")
	return &chemicalElementService{
		db:             db,
		log:            serviceLog,
		elementRepo:    elementRepo,
		alloyElemRepo:  alloyElemRepo,
		predicElemRepo: predicElemRepo,
	}
}

// Create returns the already-stored row, untouched, when the symbol is
// taken: create("Fe", "IronAgain") after create("Fe", "Iron") hands back the
// original "Iron" row. New rows are validated against the column limits
// before insertion.
func (es *chemicalElementService) Create(ctx context.Context, name string, atomicNumber int, symbol string) (*types.ChemicalElement, error) {
	if symbol == "" || len(symbol) > 2 {
		return nil, types.Validationf("symbol must be 1-2 characters, got %q", symbol)
	}
	if name == "" || len([]rune(name)) > 12 {
		return nil, types.Validationf("element name must be 1-12 characters, got %q", name)
	}
	if atomicNumber <= 0 {
		return nil, types.Validationf("atomic number must be positive, got %d", atomicNumber)
	}

	existing, err := es.elementRepo.GetBySymbol(ctx, nil, symbol)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	element := &types.ChemicalElement{
		Name:         name,
		AtomicNumber: atomicNumber,
		Symbol:       symbol,
	}
	created, err := es.elementRepo.Create(ctx, nil, element)
	if err != nil {
		if isUniqueViolation(err) {
			// lost the duplicate-create race, the winner's row is the answer
			winner, getErr := es.elementRepo.GetBySymbol(ctx, nil, symbol)
			if getErr == nil {
				return winner, nil
			}
		}
		es.log.Error("Create element failed", "symbol", symbol, "error", err)
		return nil, err
	}
	return created, nil
}

func (es *chemicalElementService) GetByID(ctx context.Context, elementID uint) (*types.ChemicalElement, error) {
	element, err := es.elementRepo.GetByID(ctx, nil, elementID)
	if err != nil {
		return nil, translate(err)
	}
	return element, nil
}

func (es *chemicalElementService) GetBySymbol(ctx context.Context, symbol string) (*types.ChemicalElement, error) {
	element, err := es.elementRepo.GetBySymbol(ctx, nil, symbol)
	if err != nil {
		return nil, translate(err)
	}
	return element, nil
}

func (es *chemicalElementService) List(ctx context.Context) ([]*types.ChemicalElement, error) {
	return es.elementRepo.List(ctx, nil)
}

// Delete refuses to remove an element still referenced by an alloy or
// prediction composition, surfacing the dependents as a conflict.
func (es *chemicalElementService) Delete(ctx context.Context, elementID uint) error {
	alloyRefs, err := es.alloyElemRepo.CountByElement(ctx, nil, elementID)
	if err != nil {
		return err
	}
	predictionRefs, err := es.predicElemRepo.CountByElement(ctx, nil, elementID)
	if err != nil {
		return err
	}
	if alloyRefs > 0 || predictionRefs > 0 {
		return types.ErrConflict
	}

	found, err := es.elementRepo.Delete(ctx, nil, elementID)
	if err != nil {
		return translate(err)
	}
	if !found {
		return types.ErrNotFound
	}
	return nil
}
