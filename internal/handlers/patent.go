package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/services"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type PatentHandler struct {
	log           *logger.Logger
	patentService services.PatentService
}

func NewPatentHandler(log *logger.Logger, patentService services.PatentService) *PatentHandler {
	return &PatentHandler{
		log:           log.With("handler", "PatentHandler"),
		patentService: patentService,
	}
}

type createPatentRequest struct {
	AuthorsName string `json:"authors_name" binding:"required"`
	PatentName  string `json:"patent_name" binding:"required"`
	Description string `json:"description"`
}

func (h *PatentHandler) List(c *gin.Context) {
	skip, limit := pageParams(c)
	patents, err := h.patentService.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.log.Error("List patents failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, patents)
}

func (h *PatentHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "patent_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("patent id must be an integer"))
		return
	}
	patent, err := h.patentService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, patent)
}

func (h *PatentHandler) GetByName(c *gin.Context) {
	patent, err := h.patentService.GetByName(c.Request.Context(), c.Param("patent_name"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, patent)
}

func (h *PatentHandler) Create(c *gin.Context) {
	var req createPatentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	patent, err := h.patentService.Create(c.Request.Context(), req.AuthorsName, req.PatentName, req.Description)
	if err != nil {
		h.log.Error("Create patent failed", "patent_name", req.PatentName, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, patent)
}

func (h *PatentHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "patent_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("patent id must be an integer"))
		return
	}
	var patch types.PatentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	patent, err := h.patentService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, patent)
}

func (h *PatentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "patent_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("patent id must be an integer"))
		return
	}
	if err := h.patentService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Patent deleted successfully"})
}
