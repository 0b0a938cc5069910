package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/services"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type MLModelHandler struct {
	log          *logger.Logger
	modelService services.MLModelService
}

func NewMLModelHandler(log *logger.Logger, modelService services.MLModelService) *MLModelHandler {
	return &MLModelHandler{
		log:          log.With("handler", "MLModelHandler"),
		modelService: modelService,
	}
}

type createModelRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *MLModelHandler) List(c *gin.Context) {
	models, err := h.modelService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List models failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, models)
}

func (h *MLModelHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "model_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("model id must be an integer"))
		return
	}
	model, err := h.modelService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, model)
}

func (h *MLModelHandler) Create(c *gin.Context) {
	var req createModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	model, err := h.modelService.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.log.Error("Create model failed", "name", req.Name, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, model)
}

func (h *MLModelHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "model_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("model id must be an integer"))
		return
	}
	var patch types.MLModelPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	model, err := h.modelService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, model)
}

func (h *MLModelHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "model_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("model id must be an integer"))
		return
	}
	if err := h.modelService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Model deleted successfully"})
}
