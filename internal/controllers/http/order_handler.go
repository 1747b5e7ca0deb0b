package http

import (
	"net/http"

	"shop-backend/internal/domain"
	"shop-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err.Error())
		return
	}

	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, services.OrderLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	address := domain.ShippingAddress{
		Address:    req.ShippingAddress.Address,
		City:       req.ShippingAddress.City,
		PostalCode: req.ShippingAddress.PostalCode,
		Country:    req.ShippingAddress.Country,
	}

	_, err := h.orders.CreateOrder(c.Request.Context(), currentUserID(c), lines, req.Total, address, req.PaymentMethod)
	if err != nil {
		h.respondError(c, err)
		return
	}

	success(c, http.StatusCreated, "Order placed successfully")
}

func (h *Handler) MyOrders(c *gin.Context) {
	orders, err := h.orders.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *Handler) PayOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.orders.MarkPaid(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	success(c, http.StatusOK, "Order updated")
}

func (h *Handler) ListAllOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.orders.SetStatus(c.Request.Context(), id, domain.OrderStatus(req.Status)); err != nil {
		h.respondError(c, err)
		return
	}
	success(c, http.StatusOK, "Order updated")
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	success(c, http.StatusOK, "Order deleted successfully")
}
