package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/services"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type ElementHandler struct {
	log            *logger.Logger
	elementService services.ChemicalElementService
}

func NewElementHandler(log *logger.Logger, elementService services.ChemicalElementService) *ElementHandler {
	return &ElementHandler{
		log:            log.With("handler", "ElementHandler"),
		elementService: elementService,
	}
}

type createElementRequest struct {
	Name         string `json:"name" binding:"required"`
	AtomicNumber int    `json:"atomic_number" binding:"required"`
	Symbol       string `json:"symbol" binding:"required"`
}

func (h *ElementHandler) List(c *gin.Context) {
	elements, err := h.elementService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List elements failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, elements)
}

func (h *ElementHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "element_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("element id must be an integer"))
		return
	}
	element, err := h.elementService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, element)
}

func (h *ElementHandler) GetBySymbol(c *gin.Context) {
	element, err := h.elementService.GetBySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, element)
}

// Create answers 409 when the symbol is already registered; the service
// returning the pre-existing row is how that case is detected.
func (h *ElementHandler) Create(c *gin.Context) {
	var req createElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	existing, err := h.elementService.GetBySymbol(c.Request.Context(), req.Symbol)
	if err == nil && existing != nil {
		RespondError(c, http.StatusConflict, "symbol_exists", errors.New("element with symbol '"+req.Symbol+"' already exists"))
		return
	}
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		RespondServiceError(c, err)
		return
	}

	element, err := h.elementService.Create(c.Request.Context(), req.Name, req.AtomicNumber, req.Symbol)
	if err != nil {
		h.log.Error("Create element failed", "symbol", req.Symbol, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{
		"message": "Chemical element created successfully",
		"id":      element.ID,
		"symbol":  element.Symbol,
	})
}

func (h *ElementHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "element_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("element id must be an integer"))
		return
	}
	if err := h.elementService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Element deleted successfully"})
}
