package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/services"
	"github.com/alloyforge/metallurgy-backend/internal/types"
)

type PersonHandler struct {
	log           *logger.Logger
	personService services.PersonService
}

func NewPersonHandler(log *logger.Logger, personService services.PersonService) *PersonHandler {
	return &PersonHandler{
		log:           log.With("handler", "PersonHandler"),
		personService: personService,
	}
}

type createPersonRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	RoleID       uint   `json:"role_id" binding:"required"`
	Organization string `json:"organization"`
	Login        string `json:"login" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

type grantRoleRequest struct {
	Organization string `json:"organization" binding:"required"`
	RoleID       uint   `json:"role_id" binding:"required"`
}

func (h *PersonHandler) List(c *gin.Context) {
	skip, limit := pageParams(c)
	persons, err := h.personService.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.log.Error("List persons failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, persons)
}

func (h *PersonHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c, "person_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("person id must be an integer"))
		return
	}
	person, err := h.personService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, person)
}

func (h *PersonHandler) GetByLogin(c *gin.Context) {
	person, err := h.personService.GetByLogin(c.Request.Context(), c.Param("login"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, person)
}

// GetLoginPassword exposes the stored credential for a login. The model keeps
// the password out of the default JSON shape, so this endpoint names it
// explicitly.
func (h *PersonHandler) GetLoginPassword(c *gin.Context) {
	person, err := h.personService.GetByLogin(c.Request.Context(), c.Param("login"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"login": person.Login, "password": person.Password})
}

func (h *PersonHandler) GetLoginID(c *gin.Context) {
	person, err := h.personService.GetByLogin(c.Request.Context(), c.Param("login"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"login": person.Login, "id": person.ID})
}

func (h *PersonHandler) ListByRole(c *gin.Context) {
	roleID, ok := idParam(c, "role_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("role id must be an integer"))
		return
	}
	persons, err := h.personService.ListByRole(c.Request.Context(), roleID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, persons)
}

func (h *PersonHandler) Create(c *gin.Context) {
	var req createPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	person, err := h.personService.Create(c.Request.Context(), req.FirstName, req.LastName, req.RoleID, req.Organization, req.Login, req.Password)
	if err != nil {
		h.log.Error("Create person failed", "login", req.Login, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, person)
}

func (h *PersonHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "person_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("person id must be an integer"))
		return
	}
	var patch types.PersonPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	person, err := h.personService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, person)
}

func (h *PersonHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "person_id")
	if !ok {
		RespondError(c, http.StatusBadRequest, "bad_id", errors.New("person id must be an integer"))
		return
	}
	if err := h.personService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Person deleted successfully"})
}

// GrantRole assigns a role to every person in an organization in one pass.
func (h *PersonHandler) GrantRole(c *gin.Context) {
	var req grantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	updated, err := h.personService.GrantRoleToOrganization(c.Request.Context(), req.Organization, req.RoleID)
	if err != nil {
		h.log.Error("Grant role failed", "organization", req.Organization, "role_id", req.RoleID, "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"message": "Role granted successfully",
		"updated": updated,
	})
}
