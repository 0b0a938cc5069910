package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/services"
)

type Services struct {
	Element     services.ChemicalElementService
	Patent      services.PatentService
	Alloy       services.AlloyService
	Role        services.RoleService
	Person      services.PersonService
	MLModel     services.MLModelService
	Prediction  services.PredictionService
	Composition services.CompositionService
	Inference   services.InferenceService
	Auth        services.AuthService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	inference, err := services.NewInferenceService(log, cfg.MLModelDir)
	if err != nil {
		return Services{}, fmt.Errorf("init inference: %w", err)
	}

	return Services{
		Element:    services.NewChemicalElementService(db, log, r.Element, r.AlloyElement, r.PredictionElement),
		Patent:     services.NewPatentService(db, log, r.Patent, r.Alloy),
		Alloy:      services.NewAlloyService(db, log, r.Alloy, r.Patent, r.AlloyElement),
		Role:       services.NewRoleService(db, log, r.Role, r.Person),
		Person:     services.NewPersonService(db, log, r.Person, r.Role, r.Prediction),
		MLModel:    services.NewMLModelService(db, log, r.MLModel, r.Prediction),
		Prediction: services.NewPredictionService(db, log, r.Prediction, r.MLModel, r.Person, r.PredictionElement),
		Composition: services.NewCompositionService(
			db, log,
			r.Alloy, r.Prediction, r.Element, r.Patent, r.MLModel, r.Person,
			r.AlloyElement, r.PredictionElement,
		),
		Inference: inference,
		Auth:      services.NewAuthService(log, r.Person, r.Role, cfg.JWTSecretKey, cfg.AccessTokenTTL),
	}, nil
}
