package http

import (
	"errors"
	"net/http"

	"shop-backend/internal/auth"
	"shop-backend/internal/domain"
	"shop-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type Handler struct {
	auth          *services.AuthService
	products      *services.ProductService
	carts         *services.CartService
	orders        *services.OrderService
	payments      *services.PaymentService
	tokens        *auth.TokenManager
	rdb           *redis.Client
	secureCookies bool
}

func NewHandler(
	authSvc *services.AuthService,
	products *services.ProductService,
	carts *services.CartService,
	orders *services.OrderService,
	payments *services.PaymentService,
	tokens *auth.TokenManager,
	rdb *redis.Client,
	secureCookies bool,
) *Handler {
	return &Handler{
		auth:          authSvc,
		products:      products,
		carts:         carts,
		orders:        orders,
		payments:      payments,
		tokens:        tokens,
		rdb:           rdb,
		secureCookies: secureCookies,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", h.RequireAuth, h.Me)

	api.POST("/admin/login", h.AdminLogin)

	product := api.Group("/product")
	product.GET("", h.ListProducts)
	product.GET("/:id", h.GetProduct)
	product.POST("/add", h.RequireAuth, h.RequireAdmin, h.CreateProduct)
	product.PUT("/:id", h.RequireAuth, h.RequireAdmin, h.UpdateProduct)
	product.DELETE("/:id", h.RequireAuth, h.RequireAdmin, h.DeleteProduct)

	cart := api.Group("/cart", h.RequireAuth)
	cart.GET("", h.GetCart)
	cart.POST("", h.AddToCart)
	cart.PUT("/update", h.UpdateCartItem)
	cart.POST("/remove", h.RemoveFromCart)
	cart.DELETE("/clear", h.ClearCart)

	order := api.Group("/order")
	order.POST("", h.RequireAuth, h.CreateOrder)
	order.GET("/myOrders", h.RequireAuth, h.MyOrders)
	order.GET("/order/:id", h.RequireAuth, h.GetOrder)
	order.POST("/pay/:id", h.RequireAuth, h.PayOrder)
	order.GET("", h.RequireAuth, h.RequireAdmin, h.ListAllOrders)
	order.POST("/update/:id", h.RequireAuth, h.RequireAdmin, h.UpdateOrderStatus)
	order.DELETE("/:id", h.RequireAuth, h.RequireAdmin, h.DeleteOrder)

	pay := api.Group("/payment")
	pay.POST("/create-checkout-session", h.RequireAuth, h.CreateCheckoutSession)
	pay.POST("/webhook", h.StripeWebhook)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps service errors onto the response envelope. Anything
// unrecognized becomes a generic 500 so internals never leak.
func (h *Handler) respondError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		failure(c, http.StatusBadRequest, ve.Message)
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrCartItemNotFound),
		errors.Is(err, services.ErrUserNotFound):
		failure(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		failure(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotAdmin):
		failure(c, http.StatusForbidden, "Access forbidden: Admins only")
	case errors.Is(err, services.ErrEmailTaken):
		failure(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrOrderConflict):
		failure(c, http.StatusConflict, err.Error())
	default:
		failure(c, http.StatusInternalServerError, "internal server error")
	}
}

func failure(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func success(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}
