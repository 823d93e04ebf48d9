package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchcraft/stitchcraft/internal/server/http/dto"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// TeamHandler manages organization workers.
type TeamHandler struct {
	facade TeamFacade
}

// NewTeamHandler constructs TeamHandler.
func NewTeamHandler(facade TeamFacade) *TeamHandler {
	return &TeamHandler{facade: facade}
}

// AddWorker handles POST /api/v1/team/workers.
func (h *TeamHandler) AddWorker(c *gin.Context) {
	var req dto.WorkerRequest
	if !bindJSON(c, &req) {
		return
	}
	member, err := h.facade.AddWorker(c.Request.Context(), usecase.WorkerInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Permissions: req.Permissions,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewMember(*member))
}

// Members handles GET /api/v1/team/members.
func (h *TeamHandler) Members(c *gin.Context) {
	members, err := h.facade.Members(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, dto.NewMember(m))
	}
	c.JSON(http.StatusOK, resp)
}
