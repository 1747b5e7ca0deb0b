package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shop-backend/internal/auth"
	"shop-backend/internal/domain"
	"shop-backend/internal/infra/payment"
	"shop-backend/internal/mocks"
	"shop-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type handlerFixture struct {
	engine   *gin.Engine
	tokens   *auth.TokenManager
	users    *mocks.MockUserRepository
	products *mocks.MockProductRepository
	carts    *mocks.MockCartRepository
	orders   *mocks.MockOrderRepository
	gateway  *mocks.MockGateway
	pub      *mocks.MockPublisher
}

func newHandlerFixture() *handlerFixture {
	gin.SetMode(gin.TestMode)

	f := &handlerFixture{
		tokens:   auth.NewTokenManager("test-secret", time.Hour),
		users:    new(mocks.MockUserRepository),
		products: new(mocks.MockProductRepository),
		carts:    new(mocks.MockCartRepository),
		orders:   new(mocks.MockOrderRepository),
		gateway:  new(mocks.MockGateway),
		pub:      new(mocks.MockPublisher),
	}

	authSvc := services.NewAuthService(f.users)
	productSvc := services.NewProductService(f.products)
	cartSvc := services.NewCartService(f.carts, f.products)
	orderSvc := services.NewOrderService(f.orders, f.products, f.pub)
	paymentSvc := services.NewPaymentService(f.gateway, orderSvc, cartSvc)

	handler := NewHandler(authSvc, productSvc, cartSvc, orderSvc, paymentSvc, f.tokens, nil, false)

	f.engine = gin.New()
	handler.RegisterRoutes(f.engine)
	return f
}

func (f *handlerFixture) request(t *testing.T, method, path string, body interface{}, userID uint64) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		token, err := f.tokens.Generate(userID)
		assert.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireAuth(t *testing.T) {
	t.Run("no cookie", func(t *testing.T) {
		f := newHandlerFixture()
		w := f.request(t, http.MethodGet, "/api/order/myOrders", nil, 0)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Access Denied", decodeBody(t, w)["message"])
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newHandlerFixture()
		req := httptest.NewRequest(http.MethodGet, "/api/order/myOrders", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "not-a-jwt"})
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid Token", decodeBody(t, w)["message"])
	})

	t.Run("valid cookie passes through", func(t *testing.T) {
		f := newHandlerFixture()
		f.orders.On("FindByUser", uint64(7)).Return([]domain.Order{}, nil)

		w := f.request(t, http.MethodGet, "/api/order/myOrders", nil, 7)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("regular user forbidden", func(t *testing.T) {
		f := newHandlerFixture()
		f.users.On("FindByID", uint64(7)).Return(&domain.User{ID: 7, Role: domain.RoleUser}, nil)

		w := f.request(t, http.MethodGet, "/api/order", nil, 7)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Access forbidden: Admins only", decodeBody(t, w)["message"])
		f.orders.AssertNotCalled(t, "FindAll")
	})

	t.Run("admin allowed", func(t *testing.T) {
		f := newHandlerFixture()
		f.users.On("FindByID", uint64(2)).Return(&domain.User{ID: 2, Role: domain.RoleAdmin}, nil)
		f.orders.On("FindAll").Return([]domain.Order{{ID: 1}, {ID: 2}}, nil)

		w := f.request(t, http.MethodGet, "/api/order", nil, 2)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("login sets the auth cookie", func(t *testing.T) {
		f := newHandlerFixture()
		hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
		assert.NoError(t, err)
		f.users.On("FindByEmail", "jane@example.com").Return(&domain.User{
			ID:       7,
			Email:    "jane@example.com",
			Password: string(hash),
		}, nil)

		w := f.request(t, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "jane@example.com",
			"password": "hunter22",
		}, 0)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, cookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		userID, err := f.tokens.Parse(cookies[0].Value)
		assert.NoError(t, err)
		assert.Equal(t, uint64(7), userID)
	})

	t.Run("bad credentials", func(t *testing.T) {
		f := newHandlerFixture()
		f.users.On("FindByEmail", "jane@example.com").Return(nil, nil)

		w := f.request(t, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "jane@example.com",
			"password": "wrong",
		}, 0)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("duplicate registration", func(t *testing.T) {
		f := newHandlerFixture()
		f.users.On("FindByEmail", "jane@example.com").Return(&domain.User{ID: 7}, nil)

		w := f.request(t, http.MethodPost, "/api/auth/register", gin.H{
			"name":     "Jane",
			"email":    "jane@example.com",
			"password": "hunter22",
		}, 0)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("me returns the stored user", func(t *testing.T) {
		f := newHandlerFixture()
		f.users.On("FindByID", uint64(7)).Return(&domain.User{ID: 7, Name: "Jane"}, nil)

		w := f.request(t, http.MethodGet, "/api/auth/me", nil, 7)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Jane", body["user"].(map[string]interface{})["name"])
	})

	t.Run("logout clears the cookie", func(t *testing.T) {
		f := newHandlerFixture()

		w := f.request(t, http.MethodPost, "/api/auth/logout", nil, 0)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0)
	})
}

func TestOrderEndpoints(t *testing.T) {
	t.Run("get existing order", func(t *testing.T) {
		f := newHandlerFixture()
		f.orders.On("FindByID", uint64(42)).Return(&domain.Order{ID: 42, UserID: 7, Status: domain.StatusPending}, nil)

		w := f.request(t, http.MethodGet, "/api/order/order/42", nil, 7)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(42), body["order"].(map[string]interface{})["id"])
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newHandlerFixture()
		f.orders.On("FindByID", uint64(999)).Return(nil, nil)

		w := f.request(t, http.MethodGet, "/api/order/order/999", nil, 7)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		f := newHandlerFixture()

		w := f.request(t, http.MethodGet, "/api/order/order/abc", nil, 7)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid id", decodeBody(t, w)["message"])
	})

	t.Run("unknown status value rejected", func(t *testing.T) {
		f := newHandlerFixture()
		f.users.On("FindByID", uint64(2)).Return(&domain.User{ID: 2, Role: domain.RoleAdmin}, nil)

		w := f.request(t, http.MethodPost, "/api/order/update/42", gin.H{"status": "teleported"}, 2)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.orders.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("illegal transition rejected", func(t *testing.T) {
		f := newHandlerFixture()
		f.users.On("FindByID", uint64(2)).Return(&domain.User{ID: 2, Role: domain.RoleAdmin}, nil)
		f.orders.On("FindByID", uint64(42)).Return(&domain.Order{ID: 42, Status: domain.StatusDelivered}, nil)

		w := f.request(t, http.MethodPost, "/api/order/update/42", gin.H{"status": "cancelled"}, 2)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStripeWebhookEndpoint(t *testing.T) {
	t.Run("invalid signature fails closed", func(t *testing.T) {
		f := newHandlerFixture()
		f.gateway.On("ParseWebhook", mock.Anything, "bad-sig").Return(nil, payment.ErrInvalidSignature)

		req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", bytes.NewBufferString(`{}`))
		req.Header.Set("Stripe-Signature", "bad-sig")
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Webhook Error")
	})

	t.Run("verified delivery acknowledged", func(t *testing.T) {
		f := newHandlerFixture()
		f.gateway.On("ParseWebhook", mock.Anything, "good-sig").Return(&payment.Event{
			Type:    payment.EventCheckoutCompleted,
			OrderID: "42",
		}, nil)
		f.orders.On("FindByID", uint64(42)).Return(&domain.Order{ID: 42, UserID: 7, Status: domain.StatusPending}, nil)
		f.orders.On("MarkPaid", uint64(42), uint64(0), domain.StatusProcessing).Return(true, nil)
		f.carts.On("DeleteAllForUser", uint64(7)).Return(nil)
		f.pub.On("Publish", mock.Anything, "order.paid", mock.Anything).Return(nil).Maybe()

		req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", bytes.NewBufferString(`{"type":"checkout.session.completed"}`))
		req.Header.Set("Stripe-Signature", "good-sig")
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["received"])
		time.Sleep(50 * time.Millisecond)
		f.orders.AssertExpectations(t)
	})
}

func TestCheckoutSessionEndpoint(t *testing.T) {
	f := newHandlerFixture()
	f.orders.On("FindByID", uint64(42)).Return(&domain.Order{
		ID:     42,
		UserID: 7,
		Items: []domain.OrderItem{
			{ProductID: 1, Name: "Desk Lamp", UnitPrice: 19.99, Quantity: 2},
		},
	}, nil)
	f.gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything, uint64(42)).Return("cs_test_123", nil)

	w := f.request(t, http.MethodPost, "/api/payment/create-checkout-session", gin.H{"orderId": 42}, 7)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cs_test_123", decodeBody(t, w)["sessionId"])
}
