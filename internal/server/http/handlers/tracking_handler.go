package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitchcraft/stitchcraft/internal/server/http/dto"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// TrackingHandler manages tracking links and serves the public client portal.
type TrackingHandler struct {
	facade TrackingFacade
}

// NewTrackingHandler constructs TrackingHandler.
func NewTrackingHandler(facade TrackingFacade) *TrackingHandler {
	return &TrackingHandler{facade: facade}
}

// Issue handles POST /api/v1/clients/:id/tracking-tokens.
func (h *TrackingHandler) Issue(c *gin.Context) {
	clientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.IssueTokenRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	issued, err := h.facade.IssueTrackingToken(c.Request.Context(), clientID, time.Duration(req.TTLHours)*time.Hour)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewToken(*issued.Token, issued.URL))
}

// List handles GET /api/v1/clients/:id/tracking-tokens.
func (h *TrackingHandler) List(c *gin.Context) {
	clientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	tokens, err := h.facade.TrackingTokens(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.TokenResponse, 0, len(tokens))
	for _, t := range tokens {
		resp = append(resp, dto.NewToken(t, h.facade.TrackingURL(t.Token)))
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate handles DELETE /api/v1/tracking-tokens/:id.
func (h *TrackingHandler) Deactivate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeactivateTrackingToken(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Validate handles GET /api/v1/track/:token/validate. Rejected tokens are a
// normal answer, not an error.
func (h *TrackingHandler) Validate(c *gin.Context) {
	result, err := h.facade.ValidateTrackingToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.TokenValidationResponse{Valid: result.Valid, Error: string(result.Error)}
	if result.Valid {
		client := dto.NewPortalClient(*result.Client)
		tailor := dto.NewTailor(*result.Tailor)
		resp.Client = &client
		resp.Tailor = &tailor
	}
	c.JSON(http.StatusOK, resp)
}

// Portal handles GET /api/v1/track/:token.
func (h *TrackingHandler) Portal(c *gin.Context) {
	portal, err := h.facade.Portal(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PortalResponse{
		Client:   dto.NewPortalClient(*portal.Client),
		Tailor:   dto.NewTailor(*portal.Tailor),
		Orders:   dto.NewOrders(portal.Orders),
		Payments: dto.NewPayments(portal.Payments),
	})
}

// Checkout handles POST /api/v1/track/:token/orders/:orderId/checkout.
func (h *TrackingHandler) Checkout(c *gin.Context) {
	orderID, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	intent, err := h.facade.StartPortalCheckout(c.Request.Context(), c.Param("token"), usecase.CheckoutInput{
		OrderID: orderID,
		Email:   req.Email,
		Amount:  req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCheckout(*intent))
}
