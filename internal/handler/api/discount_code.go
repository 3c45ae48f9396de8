package api

import (
	"net/http"

	resdto "voucher-issuer/internal/handler/dto/response"
	"voucher-issuer/internal/handler/httperr"
	"voucher-issuer/internal/pkg/errs"
	"voucher-issuer/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DiscountCodeHandler struct {
	q queries.DiscountCodeQueries
}

func NewDiscountCodeHandler(q queries.DiscountCodeQueries) *DiscountCodeHandler {
	return &DiscountCodeHandler{q: q}
}

// @Summary List order discount codes
// @Description List the discount codes issued for an order
// @Tags discount-codes
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {object} resdto.OrderDiscountCodesResponse
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{orderId}/discount-codes [get]
func (h *DiscountCodeHandler) ListByOrder(c *gin.Context) {
	orderID := c.Param("orderId")
	views, err := h.q.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		if errs.Is(err, queries.ErrNoCodesForOrder) {
			httperr.NotFound(c, err, "No discount codes for order")
			return
		}
		httperr.Internal(c, err, "Failed to load discount codes")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDiscountCodeViews(orderID, views))
}
