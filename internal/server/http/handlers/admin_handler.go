package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchcraft/stitchcraft/internal/server/http/dto"
)

// AdminHandler exposes platform administration.
type AdminHandler struct {
	facade AdminFacade
}

func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Organizations handles GET /api/v1/admin/organizations.
func (h *AdminHandler) Organizations(c *gin.Context) {
	orgs, err := h.facade.Organizations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		resp = append(resp, dto.NewOrganization(o))
	}
	c.JSON(http.StatusOK, resp)
}

// SetActive handles PATCH /api/v1/admin/users/:id.
func (h *AdminHandler) SetActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.facade.SetUserActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUser(*user))
}
