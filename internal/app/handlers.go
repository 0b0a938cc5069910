package app

import (
	"github.com/alloyforge/metallurgy-backend/internal/handlers"
	"github.com/alloyforge/metallurgy-backend/internal/logger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Element    *handlers.ElementHandler
	Alloy      *handlers.AlloyHandler
	Prediction *handlers.PredictionHandler
	Patent     *handlers.PatentHandler
	Person     *handlers.PersonHandler
	Role       *handlers.RoleHandler
	MLModel    *handlers.MLModelHandler
	Predict    *handlers.PredictHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(log, s.Auth),
		Element:    handlers.NewElementHandler(log, s.Element),
		Alloy:      handlers.NewAlloyHandler(log, s.Alloy, s.Composition),
		Prediction: handlers.NewPredictionHandler(log, s.Prediction, s.Composition),
		Patent:     handlers.NewPatentHandler(log, s.Patent),
		Person:     handlers.NewPersonHandler(log, s.Person),
		Role:       handlers.NewRoleHandler(log, s.Role),
		MLModel:    handlers.NewMLModelHandler(log, s.MLModel),
		Predict:    handlers.NewPredictHandler(log, s.Inference, s.Element),
	}
}
