package app

import (
	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/repos"
)

type Repos struct {
	Element           repos.ChemicalElementRepo
	Patent            repos.PatentRepo
	Alloy             repos.AlloyRepo
	Role              repos.RoleRepo
	Person            repos.PersonRepo
	MLModel           repos.MLModelRepo
	Prediction        repos.PredictionRepo
	AlloyElement      repos.AlloyElementRepo
	PredictionElement repos.PredictionElementRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Element:           repos.NewChemicalElementRepo(db, log),
		Patent:            repos.NewPatentRepo(db, log),
		Alloy:             repos.NewAlloyRepo(db, log),
		Role:              repos.NewRoleRepo(db, log),
		Person:            repos.NewPersonRepo(db, log),
		MLModel:           repos.NewMLModelRepo(db, log),
		Prediction:        repos.NewPredictionRepo(db, log),
		AlloyElement:      repos.NewAlloyElementRepo(db, log),
		PredictionElement: repos.NewPredictionElementRepo(db, log),
	}
}
