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

type AlloyHandler struct {
	log                *logger.Logger
	alloyService       services.AlloyService
	compositionService services.CompositionService
}

func NewAlloyHandler(log *logger.Logger, alloyService services.AlloyService, compositionService services.CompositionService) *AlloyHandler {
	return &AlloyHandler{
		log:                log.With("handler", "AlloyHandler"),
		alloyService:       alloyService,
		compositionService: compositionService,
	}
}

type createAlloyRequest struct {
	PropValue   float64 `json:"prop_value"`
	Category    string  `json:"category"`
	RollingType string  `json:"rolling_type"`
	PatentID    uint    `json:"patent_id" binding:"required"`
}

type createAlloyWithElementsRequest struct {
	PropValue   float64                      `json:"prop_value"`
	Category    string                       `json:"category"`
	RollingType string                       `json:"rolling_type"`
	PatentID    uint                         `json:"patent_id" binding:"required"`
	Elements    []services.ElementPercentage `json:"elements"`
}

func (h *AlloyHandler) List(c *gin.Context) {
	skip, limit := pageParams(c)
	alloys, err := h.alloyService.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.log.Error("List alloys failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, alloys)
}

func (h *AlloyHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "alloy_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("alloy id must be an integer"))
		return
	}
	alloy, err := h.alloyService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, alloy)
}

func (h *AlloyHandler) ListByPatent(c *gin.Context) {
	patentID, ok := idParam(c, "patent_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("patent id must be an integer"))
		return
	}
	alloys, err := h.alloyService.ListByPatent(c.Request.Context(), patentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, alloys)
}

func (h *AlloyHandler) SearchByCategory(c *gin.Context) {
	alloys, err := h.alloyService.SearchByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, alloys)
}

func (h *AlloyHandler) Create(c *gin.Context) {
	var req createAlloyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	alloy, err := h.alloyService.Create(c.Request.Context(), req.PropValue, req.Category, req.RollingType, req.PatentID)
	if err != nil {
		h.log.Error("Create alloy failed", "patent_id", req.PatentID, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, alloy)
}

func (h *AlloyHandler) CreateWithElements(c *gin.Context) {
	var req createAlloyWithElementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	alloy, err := h.compositionService.CreateAlloyWithElements(c.Request.Context(), req.PropValue, req.Category, req.RollingType, req.PatentID, req.Elements)
	if err != nil {
		h.log.Error("Create alloy with elements failed", "patent_id", req.PatentID, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, alloy)
}

func (h *AlloyHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "alloy_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("alloy id must be an integer"))
		return
	}
	var patch types.AlloyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	alloy, err := h.alloyService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, alloy)
}

func (h *AlloyHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "alloy_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("alloy id must be an integer"))
		return
	}
	if err := h.alloyService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Alloy deleted successfully"})
}

// AddElement takes the percentage as a query parameter, matching the shape
// of the association endpoint the catalog's clients already use.
func (h *AlloyHandler) AddElement(c *gin.Context) {
	alloyID, ok := idParam(c, "alloy_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("alloy id must be an integer"))
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

	assoc, err := h.compositionService.AddElementToAlloy(c.Request.Context(), alloyID, elementID, percentage)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, assoc)
}

func (h *AlloyHandler) RemoveElement(c *gin.Context) {
	alloyID, ok := idParam(c, "alloy_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("alloy id must be an integer"))
		return
	}
	elementID, ok := idParam(c, "element_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("element id must be an integer"))
		return
	}
	if err := h.compositionService.RemoveElementFromAlloy(c.Request.Context(), alloyID, elementID); err != nil {
		// every precondition miss on a removal is a 404 here: the
		// resource being deleted could not be located
		if types.IsValidation(err) || errors.Is(err, types.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AlloyHandler) ListElements(c *gin.Context) {
	alloyID, ok := idParam(c, "alloy_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("alloy id must be an integer"))
		return
	}
	shares, err := h.compositionService.ListAlloyElements(c.Request.Context(), alloyID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, shares)
}
