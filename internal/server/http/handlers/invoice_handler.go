package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchcraft/stitchcraft/internal/server/http/dto"
	"github.com/stitchcraft/stitchcraft/internal/usecase"
)

// InvoiceHandler issues and voids invoices.
type InvoiceHandler struct {
	facade InvoiceFacade
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(facade InvoiceFacade) *InvoiceHandler {
	return &InvoiceHandler{facade: facade}
}

// Issue handles POST /api/v1/invoices.
func (h *InvoiceHandler) Issue(c *gin.Context) {
	var req dto.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	invoice, err := h.facade.IssueInvoice(c.Request.Context(), usecase.InvoiceInput{OrderID: req.OrderID, Amount: req.Amount, DueAt: req.DueAt})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewInvoice(*invoice))
}

// List handles GET /api/v1/invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.facade.Invoices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, dto.NewInvoice(inv))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	invoice, err := h.facade.Invoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInvoice(*invoice))
}

// Void handles POST /api/v1/invoices/:id/void.
func (h *InvoiceHandler) Void(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	invoice, err := h.facade.VoidInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInvoice(*invoice))
}
