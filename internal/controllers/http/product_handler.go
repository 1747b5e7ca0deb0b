package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"shop-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const productListCacheKey = "products:all"

const productListCacheTTL = 10 * time.Second

func (h *Handler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, productListCacheKey).Result(); err == nil {
			var products []domain.Product
			if err := json.Unmarshal([]byte(b), &products); err == nil {
				c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
				return
			}
		}
	}

	products, err := h.products.List(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(products); err == nil {
			h.rdb.Set(ctx, productListCacheKey, data, productListCacheTTL)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err.Error())
		return
	}

	product := productFromRequest(&req)
	if err := h.products.Create(c.Request.Context(), product); err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidateProductList(c.Request.Context())
	success(c, http.StatusCreated, "Product added successfully")
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err.Error())
		return
	}

	product := productFromRequest(&req)
	product.ID = id
	if err := h.products.Update(c.Request.Context(), product); err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidateProductList(c.Request.Context())
	success(c, http.StatusOK, "Product updated successfully")
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidateProductList(c.Request.Context())
	success(c, http.StatusOK, "Product deleted successfully")
}

func (h *Handler) invalidateProductList(ctx context.Context) {
	if h.rdb != nil {
		h.rdb.Del(ctx, productListCacheKey)
	}
}

func productFromRequest(req *ProductRequest) *domain.Product {
	images := make([]domain.ProductImage, 0, len(req.Images))
	for _, url := range req.Images {
		images = append(images, domain.ProductImage{URL: url})
	}
	return &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      images,
		Category:    req.Category,
		Stock:       req.Stock,
		Rating:      req.Rating,
	}
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		failure(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
