package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/services"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type PredictionHandler struct {
	log                *logger.Logger
	predictionService  services.PredictionService
	compositionService services.CompositionService
}

func NewPredictionHandler(log *logger.Logger, predictionService services.PredictionService, compositionService services.CompositionService) *PredictionHandler {
	return &PredictionHandler{
		log:                log.With("handler", "PredictionHandler"),
		predictionService:  predictionService,
		compositionService: compositionService,
	}
}

type createPredictionRequest struct {
	PropValue   float64 `json:"prop_value"`
	Category    string  `json:"category"`
	MLModelID   uint    `json:"ml_model_id" binding:"required"`
	RollingType string  `json:"rolling_type"`
	PersonID    uint    `json:"person_id" binding:"required"`
}

type createPredictionWithElementsRequest struct {
	PropValue   float64                      `json:"prop_value"`
	Category    string                       `json:"category"`
	MLModelID   uint                         `json:"ml_model_id" binding:"required"`
	RollingType string                       `json:"rolling_type"`
	PersonID    uint                         `json:"person_id" binding:"required"`
	Elements    []services.ElementPercentage `json:"elements"`
}

func (h *PredictionHandler) List(c *gin.Context) {
	skip, limit := pageParams(c)
	predictions, err := h.predictionService.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.log.Error("List predictions failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, predictions)
}

func (h *PredictionHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "prediction_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("prediction id must be an integer"))
		return
	}
	prediction, err := h.predictionService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, prediction)
}

func (h *PredictionHandler) ListByPerson(c *gin.Context) {
	personID, ok := idParam(c, "person_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("person id must be an integer"))
		return
	}
	predictions, err := h.predictionService.ListByPerson(c.Request.Context(), personID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, predictions)
}

func (h *PredictionHandler) ListByModel(c *gin.Context) {
	modelID, ok := idParam(c, "model_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("model id must be an integer"))
		return
	}
	predictions, err := h.predictionService.ListByModel(c.Request.Context(), modelID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, predictions)
}

func (h *PredictionHandler) ListByElement(c *gin.Context) {
	elementID, ok := idParam(c, "element_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("element id must be an integer"))
		return
	}
	predictions, err := h.predictionService.ListByElement(c.Request.Context(), elementID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, predictions)
}

func (h *PredictionHandler) Create(c *gin.Context) {
	var req createPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	prediction, err := h.predictionService.Create(c.Request.Context(), req.PropValue, req.Category, req.MLModelID, req.RollingType, req.PersonID)
	if err != nil {
		h.log.Error("Create prediction failed", "model_id", req.MLModelID, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, prediction)
}

func (h *PredictionHandler) CreateWithElements(c *gin.Context) {
	var req createPredictionWithElementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	prediction, err := h.compositionService.CreatePredictionWithElements(c.Request.Context(), req.PropValue, req.Category, req.MLModelID, req.RollingType, req.PersonID, req.Elements)
	if err != nil {
		h.log.Error("Create prediction with elements failed", "model_id", req.MLModelID, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, prediction)
}

func (h *PredictionHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "prediction_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("prediction id must be an integer"))
		return
	}
	var patch types.PredictionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	prediction, err := h.predictionService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, prediction)
}

func (h *PredictionHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "prediction_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("prediction id must be an integer"))
		return
	}
	if err := h.predictionService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Prediction deleted successfully"})
}

func (h *PredictionHandler) AddElement(c *gin.Context) {
	predictionID, ok := idParam(c, "prediction_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("prediction id must be an integer"))
		return
	}
	elementID, ok := idParam(c, "element_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("element id must be an integer"))
		return
	}
	percentage, err := strconv.ParseFloat(c.Query("percentage"), 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_percentage", errors.New("percentage must be a number"))
		return
	}

	assoc, err := h.compositionService.AddElementToPrediction(c.Request.Context(), predictionID, elementID, percentage)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, assoc)
}

func (h *PredictionHandler) RemoveElement(c *gin.Context) {
	predictionID, ok := idParam(c, "prediction_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("prediction id must be an integer"))
		return
	}
	elementID, ok := idParam(c, "element_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("element id must be an integer"))
		return
	}
	if err := h.compositionService.RemoveElementFromPrediction(c.Request.Context(), predictionID, elementID); err != nil {
		if types.IsValidation(err) || errors.Is(err, types.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PredictionHandler) ListElements(c *gin.Context) {
	predictionID, ok := idParam(c, "prediction_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("prediction id must be an integer"))
		return
	}
	shares, err := h.compositionService.ListPredictionElements(c.Request.Context(), predictionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, shares)
}
