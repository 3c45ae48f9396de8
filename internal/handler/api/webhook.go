package api

import (
	"net/http"
	"time"

	reqdto "voucher-issuer/internal/handler/dto/request"
	resdto "voucher-issuer/internal/handler/dto/response"
	"voucher-issuer/internal/handler/httperr"
	"voucher-issuer/internal/pkg/errs"
	"voucher-issuer/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// hint for the gateway when a delivery races an unfinished one
const inProgressRetryAfter = 30 * time.Second

type WebhookHandler struct {
	cmds commands.WebhookCommands
}

func NewWebhookHandler(cmds commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{cmds: cmds}
}

// @Summary Payment succeeded webhook
// @Description Issue the discount codes owed for a successful payment. Redeliveries replay the first result.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentWebhookRequest true "Payment gateway event"
// @Success 200 {object} resdto.PaymentWebhookResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/webhooks/payments [post]
func (h *WebhookHandler) PaymentSucceeded(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, httperr.CodeInvalidRequest, "Invalid request", nil)
		return
	}

	result, err := h.cmds.HandlePaymentWebhook(c.Request.Context(), req.ToEvent())
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrInvalidIssuanceRequest):
			httperr.BadRequest(c, err, httperr.CodeInvalidEvent, "Invalid payment event", nil)
		case errs.Is(err, errs.ErrIssuanceInProgress):
			httperr.InProgress(c, err, "Event is still being processed", inProgressRetryAfter)
		default:
			httperr.Internal(c, err, "Failed to process payment event")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromWebhookResult(result))
}
