package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCart(c *gin.Context) {
	items, err := h.carts.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": items})
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.carts.Add(c.Request.Context(), currentUserID(c), req.ProductID, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	success(c, http.StatusOK, "Item added to cart")
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.carts.SetQuantity(c.Request.Context(), currentUserID(c), req.ProductID, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	success(c, http.StatusOK, "Cart item updated")
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	var req CartRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.carts.Remove(c.Request.Context(), currentUserID(c), req.ProductID); err != nil {
		h.respondError(c, err)
		return
	}
	success(c, http.StatusOK, "Item removed from cart")
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), currentUserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	success(c, http.StatusOK, "Cart cleared successfully")
}
