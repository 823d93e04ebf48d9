package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchcraft/stitchcraft/internal/server/http/dto"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// ClientHandler manages clients and their measurements.
type ClientHandler struct {
	facade ClientFacade
}

// NewClientHandler constructs ClientHandler.
func NewClientHandler(facade ClientFacade) *ClientHandler {
	return &ClientHandler{facade: facade}
}

// Create handles POST /api/v1/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := h.facade.CreateClient(c.Request.Context(), clientInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewClient(*client))
}

// List handles GET /api/v1/clients.
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.facade.Clients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewClients(clients))
}

// Get handles GET /api/v1/clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	client, err := h.facade.Client(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewClient(*client))
}

// Update handles PUT /api/v1/clients/:id.
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := h.facade.UpdateClient(c.Request.Context(), id, clientInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewClient(*client))
}

// CreateLogin handles POST /api/v1/clients/:id/login.
func (h *ClientHandler) CreateLogin(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ClientLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.facade.CreateClientLogin(c.Request.Context(), id, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUser(*user))
}

// AddMeasurement handles POST /api/v1/clients/:id/measurements.
func (h *ClientHandler) AddMeasurement(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.MeasurementRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.facade.AddMeasurement(c.Request.Context(), id, usecase.MeasurementInput{
		Label:   req.Label,
		Values:  req.Values,
		TakenAt: req.TakenAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewMeasurement(*m))
}

// Measurements handles GET /api/v1/clients/:id/measurements.
func (h *ClientHandler) Measurements(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := h.facade.Measurements(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.MeasurementResponse, 0, len(items))
	for _, m := range items {
		resp = append(resp, dto.NewMeasurement(m))
	}
	c.JSON(http.StatusOK, resp)
}

func clientInput(req dto.ClientRequest) usecase.ClientInput {
	return usecase.ClientInput{Name: req.Name, Phone: req.Phone, Email: req.Email, Notes: req.Notes}
}
