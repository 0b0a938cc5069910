package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/services"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type PredictHandler struct {
	log              *logger.Logger
	inferenceService services.InferenceService
	elementService   services.ChemicalElementService
}

func NewPredictHandler(log *logger.Logger, inferenceService services.InferenceService, elementService services.ChemicalElementService) *PredictHandler {
	return &PredictHandler{
		log:              log.With("handler", "PredictHandler"),
		inferenceService: inferenceService,
		elementService:   elementService,
	}
}

type predictRequest struct {
	MLModelID   uint                         `json:"ml_model_id" binding:"required"`
	Category    string                       `json:"category"`
	RollingType string                       `json:"rolling_type"`
	Size        *float64                     `json:"size"`
	Elements    []services.ElementPercentage `json:"elements"`
}

// Predict resolves the composition's element ids to symbols, then runs the
// loaded artifact for the requested model. Bad selectors and malformed
// compositions come back as 422 rather than 400: the request parsed fine,
// the entity it describes is what cannot be processed.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	compositionBySymbol := make(map[string]float64, len(req.Elements))
	for _, share := range req.Elements {
		element, err := h.elementService.GetByID(c.Request.Context(), share.ElementID)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				RespondError(c, http.StatusUnprocessableEntity, "unknown_element", errors.New("composition references an unknown element"))
				return
			}
			RespondServiceError(c, err)
			return
		}
		compositionBySymbol[strings.ToLower(element.Symbol)] = share.Percentage
	}

	value, err := h.inferenceService.Predict(req.MLModelID, req.Category, req.RollingType, req.Size, compositionBySymbol)
	if err != nil {
		if types.IsValidation(err) {
			RespondError(c, http.StatusUnprocessableEntity, "inference_rejected", err)
			return
		}
		h.log.Error("Inference failed", "model_id", req.MLModelID, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"ml_model_id": req.MLModelID,
		"prop_value":  value,
	})
}
