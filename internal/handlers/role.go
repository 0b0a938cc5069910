package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/services"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type RoleHandler struct {
	log         *logger.Logger
	roleService services.RoleService
}

func NewRoleHandler(log *logger.Logger, roleService services.RoleService) *RoleHandler {
	return &RoleHandler{
		log:         log.With("handler", "RoleHandler"),
		roleService: roleService,
	}
}

type createRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List roles failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, roles)
}

func (h *RoleHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "role_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("role id must be an integer"))
		return
	}
	role, err := h.roleService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, role)
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req createRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	role, err := h.roleService.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.log.Error("Create role failed", "name", req.Name, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, role)
}

func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "role_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("role id must be an integer"))
		return
	}
	var patch types.RolePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	role, err := h.roleService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, role)
}

func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "role_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("role id must be an integer"))
		return
	}
	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Role deleted successfully"})
}
