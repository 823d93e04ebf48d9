package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/server/http/dto"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// OrderFacades is what OrderHandler needs: orders plus their payments.
type OrderFacades interface {
	OrderFacade
	PaymentFacade
}

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacades
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacades) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/v1/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.facade.CreateOrder(c.Request.Context(), usecase.OrderInput{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrder(*order))
}

// List handles GET /api/v1/orders?status=.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrders(orders))
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrder(*order))
}

// UpdateStatus handles PATCH /api/v1/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrder(*order))
}

// RecordPayment handles POST /api/v1/orders/:id/payments.
// A replayed reference answers 200 with alreadyRecorded set.
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.facade.RecordPayment(c.Request.Context(), usecase.PaymentInput{
		OrderID:   id,
		Amount:    req.Amount,
		Reference: req.Reference,
		Method:    model.PaymentMethod(req.Method),
		PaidAt:    req.PaidAt,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyRecorded {
		status = http.StatusOK
	}
	c.JSON(status, dto.PaymentResultResponse{
		Payment:         dto.NewPayment(*result.Payment),
		AlreadyRecorded: result.AlreadyRecorded,
	})
}

// Payments handles GET /api/v1/orders/:id/payments.
func (h *OrderHandler) Payments(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	payments, err := h.facade.OrderPayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPayments(payments))
}

// Checkout handles POST /api/v1/orders/:id/checkout.
func (h *OrderHandler) Checkout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	intent, err := h.facade.StartCheckout(c.Request.Context(), usecase.CheckoutInput{OrderID: id, Email: req.Email, Amount: req.Amount})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCheckout(*intent))
}

// ClientOrders handles GET /api/v1/me/orders.
func (h *OrderHandler) ClientOrders(c *gin.Context) {
	orders, err := h.facade.ClientOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrders(orders))
}
