package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchcraft/stitchcraft/internal/server/http/dto"
)

// SignatureHeader carries the provider's HMAC of the webhook body.
const SignatureHeader = "X-Paystack-Signature"

// PaymentHandler serves organization payments and provider callbacks.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// List handles GET /api/v1/payments.
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.facade.Payments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPayments(payments))
}

// Callback handles GET /api/v1/checkout/callback?reference=, where the
// provider redirects the payer after checkout.
func (h *PaymentHandler) Callback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}
	result, err := h.facade.VerifyCheckout(c.Request.Context(), reference)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.CheckoutStatusResponse{Reference: result.Intent.Reference, Status: string(result.Intent.Status)}
	if result.Payment != nil && result.Payment.Payment != nil {
		p := dto.NewPayment(*result.Payment.Payment)
		resp.Payment = &p
		resp.AlreadyRecorded = result.Payment.AlreadyRecorded
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook handles POST /api/v1/webhooks/paystack. The raw body is needed for
// signature verification, so it is never bound.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortWith(c, http.StatusBadRequest, "unreadable body")
		return
	}

	outcome, err := h.facade.HandlePaystackWebhook(c.Request.Context(), body, c.GetHeader(SignatureHeader))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": outcome})
}

