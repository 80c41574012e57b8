// Order HTTP handlers.
//
//   - POST /api/order   (place an order from the mini-app cart)
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-table-order/internal/domain"
	"github.com/tbourn/go-table-order/internal/services"
)

//
// DTOs
//

// OrderItemRequest is one cart line sent by the mini-app. Name and price are
// taken as sent; the menu is not consulted.
type OrderItemRequest struct {
	ID    uint   `json:"id"    example:"1"`
	Name  string `json:"name"  example:"Palov"`
	Price int64  `json:"price" example:"25000"`
	// Qty defaults to 1 when missing or not positive.
	Qty int `json:"qty" example:"2"`
}

// PlaceOrderRequest is the JSON payload of POST /api/order.
type PlaceOrderRequest struct {
	// Table label from the mini-app URL; blank means unknown.
	Table string             `json:"table" example:"table3"`
	Items []OrderItemRequest `json:"items"`
	// UserID is the Telegram user id when the mini-app knows it.
	UserID userRef `json:"user_id,omitempty" swaggertype:"string" example:"123456789"`
}

// PlaceOrderResponse acknowledges a placed order.
type PlaceOrderResponse struct {
	OK      bool  `json:"ok"       example:"true"`
	OrderID uint  `json:"order_id" example:"42"`
	Total   int64 `json:"total"    example:"30000"`
}

// userRef accepts a user id sent either as a JSON string or a JSON number.
type userRef string

// UnmarshalJSON implements json.Unmarshaler.
func (u *userRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*u = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*u = userRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*u = userRef(n.String())
	return nil
}

// PlaceOrder godoc
// @ID          placeOrder
// @Summary     Place an order
// @Description Persists the mini-app cart as an order, notifies the operator and returns the order id and total. Total = Σ price × qty.
// @Tags        Orders
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.PlaceOrderRequest  true  "Cart contents"
//
// @Success     200  {object} handlers.PlaceOrderResponse
// @Failure     400  {object} handlers.ErrorResponse "Malformed body, empty cart or invalid line"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /order [post]
func (h *Handlers) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	lines := make([]domain.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, domain.OrderLine{ItemID: it.ID, Name: it.Name, Price: it.Price, Qty: it.Qty})
	}

	o, err := h.orderSvc.Place(c.Request.Context(), services.PlaceOrder{
		Table:  req.Table,
		Lines:  lines,
		UserID: string(req.UserID),
		Source: domain.SourceMiniApp,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, PlaceOrderResponse{OK: true, OrderID: o.ID, Total: o.Total})
}
