package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/server/http/dto"
	"github.com/stitchcraft/stitchcraft/internal/server/http/middleware"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.facade.Register(c.Request.Context(), usecase.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		BusinessName: req.BusinessName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, session.Token)
	c.JSON(http.StatusCreated, newSession(session))
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, session.Token)
	c.JSON(http.StatusOK, newSession(session))
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := usecase.ActorFrom(c.Request.Context())
	if !ok {
		respondError(c, domainErrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, dto.NewActor(actor))
}

func newSession(s *usecase.Session) dto.SessionResponse {
	resp := dto.SessionResponse{User: dto.NewUser(*s.User), Token: s.Token}
	if s.Organization != nil {
		org := dto.NewOrganization(*s.Organization)
		resp.Organization = &org
	}
	return resp
}
