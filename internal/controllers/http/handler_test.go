package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"perfume-shop/internal/domain"
	"perfume-shop/internal/notify"
	"perfume-shop/internal/repository"
	"perfume-shop/internal/services"
)

const testAdminKey = "test-admin-key"

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderService) Update(ctx context.Context, id uint64, upd services.OrderUpdate) (*domain.Order, domain.OrderStatus, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.Order), args.Get(1).(domain.OrderStatus), args.Error(2)
}

func (m *mockOrderService) GetByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderService) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderService) List(ctx context.Context, status string, page, limit int) ([]domain.Order, int64, int, error) {
	args := m.Called(ctx, status, page, limit)
	if args.Get(0) == nil {
		return nil, 0, 0, args.Error(3)
	}
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Get(2).(int), args.Error(3)
}

type mockCatalogService struct{ mock.Mock }

func (m *mockCatalogService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, bool, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Bool(1), args.Error(2)
}

func (m *mockCatalogService) Get(ctx context.Context, id uint64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockCatalogService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockCatalogService) Update(ctx context.Context, id uint64, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, id, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockCatalogService) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCatalogService) Reseed(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) DispatchConfirmation(ctx context.Context, order *domain.Order) notify.Result {
	args := m.Called(ctx, order)
	return args.Get(0).(notify.Result)
}

func (m *mockNotifier) DispatchStatusUpdate(ctx context.Context, order *domain.Order, status domain.OrderStatus) notify.Result {
	args := m.Called(ctx, order, status)
	return args.Get(0).(notify.Result)
}

func (m *mockNotifier) DispatchTest(ctx context.Context, email string) notify.Outcome {
	args := m.Called(ctx, email)
	return args.Get(0).(notify.Outcome)
}

type testEnv struct {
	orders   *mockOrderService
	catalog  *mockCatalogService
	notifier *mockNotifier
	router   *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		orders:   new(mockOrderService),
		catalog:  new(mockCatalogService),
		notifier: new(mockNotifier),
	}
	h := NewHandler(env.orders, env.catalog, env.notifier, HandlerConfig{
		AdminKey:  testAdminKey,
		UploadDir: t.TempDir(),
	}, zap.NewNop())

	env.router = gin.New()
	h.RegisterRoutes(env.router)
	return env
}

func (e *testEnv) do(method, path string, body any, admin bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set(adminKeyHeader, testAdminKey)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func validOrderBody() map[string]any {
	return map[string]any{
		"customer": map[string]any{
			"firstName": "Ayesha",
			"lastName":  "Rahman",
			"phone":     "01712345678",
			"email":     "ayesha@example.com",
		},
		"delivery": map[string]any{
			"address": "House 12, Road 5",
			"city":    "Dhaka",
		},
		"payment": map[string]any{"method": "cod"},
		"items": []map[string]any{
			{"productId": "1", "name": "Midnight Oud", "price": 50, "quantity": 2, "category": "woody"},
			{"productId": "4", "name": "Citrus Veil", "price": 30, "quantity": 1},
		},
		"totals": map[string]any{"subtotal": 130, "deliveryCharge": 0, "total": 130},
	}
}

func TestCreateOrderEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	env.orders.On("Create", mock.Anything, mock.Anything).Return(
		services.NewStoredTestOrder(42, "HM250115042", domain.StatusPending), nil)
	env.notifier.On("DispatchConfirmation", mock.Anything, mock.Anything).Return(notify.Result{
		Email: &notify.Outcome{Success: true},
		SMS:   notify.Outcome{Success: true},
	})

	w := env.do(http.MethodPost, "/api/orders", validOrderBody(), false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp CreateOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Regexp(t, `^HM\d{9}$`, resp.OrderNumber)
	assert.Equal(t, domain.StatusPending, resp.Order.Status)
	require.NotNil(t, resp.Notifications.Email)
	assert.True(t, resp.Notifications.Email.Success)
}

func TestCreateOrderNotificationFailureStill201(t *testing.T) {
	env := newTestEnv(t)

	env.orders.On("Create", mock.Anything, mock.Anything).Return(
		services.NewStoredTestOrder(42, "HM250115042", domain.StatusPending), nil)
	env.notifier.On("DispatchConfirmation", mock.Anything, mock.Anything).Return(notify.Result{
		Email: &notify.Outcome{Success: false, Error: "mail API returned status 500"},
		SMS:   notify.Outcome{Success: false, Error: "SMS gateway returned status 500"},
	})

	w := env.do(http.MethodPost, "/api/orders", validOrderBody(), false)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp CreateOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Notifications.SMS.Success)
	assert.True(t, resp.Success, "notification failures never fail the request")
}

func TestCreateOrderBkashWithoutTransactionID(t *testing.T) {
	env := newTestEnv(t)

	body := validOrderBody()
	body["payment"] = map[string]any{"method": "bkash"}

	w := env.do(http.MethodPost, "/api/orders", body, false)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Transaction ID")
	env.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrderMissingSection(t *testing.T) {
	env := newTestEnv(t)

	body := validOrderBody()
	delete(body, "delivery")

	w := env.do(http.MethodPost, "/api/orders", body, false)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string `json:"error"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Delivery information is required", resp.Error)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "delivery", resp.Details[0].Field)
}

func TestUpdateOrderStatusDispatchesNotification(t *testing.T) {
	env := newTestEnv(t)

	updated := services.NewStoredTestOrder(42, "HM250115042", domain.StatusShipped)
	env.orders.On("Update", mock.Anything, uint64(42), mock.Anything).
		Return(updated, domain.StatusProcessing, nil)
	env.notifier.On("DispatchStatusUpdate", mock.Anything, updated, domain.StatusShipped).
		Return(notify.Result{Email: &notify.Outcome{Success: true}, SMS: notify.Outcome{Success: true}})

	w := env.do(http.MethodPut, "/api/orders/42", map[string]any{"status": "shipped"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Order         *domain.Order  `json:"order"`
		Notifications *notify.Result `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.StatusShipped, resp.Order.Status)
	require.NotNil(t, resp.Notifications)
	assert.True(t, resp.Notifications.Email.Success)
	env.notifier.AssertExpectations(t)
}

func TestUpdateOrderAdminNotesSkipsNotification(t *testing.T) {
	env := newTestEnv(t)

	updated := services.NewStoredTestOrder(42, "HM250115042", domain.StatusConfirmed)
	env.orders.On("Update", mock.Anything, uint64(42), mock.Anything).
		Return(updated, domain.StatusConfirmed, nil)

	w := env.do(http.MethodPut, "/api/orders/42", map[string]any{"adminNotes": "fragile"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	env.notifier.AssertNotCalled(t, "DispatchStatusUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderSameStatusSkipsNotification(t *testing.T) {
	env := newTestEnv(t)

	updated := services.NewStoredTestOrder(42, "HM250115042", domain.StatusShipped)
	env.orders.On("Update", mock.Anything, uint64(42), mock.Anything).
		Return(updated, domain.StatusShipped, nil)

	w := env.do(http.MethodPut, "/api/orders/42", map[string]any{"status": "shipped"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	env.notifier.AssertNotCalled(t, "DispatchStatusUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderRequiresAdminKey(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPut, "/api/orders/42", map[string]any{"status": "shipped"}, false)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	env.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	env.orders.On("Update", mock.Anything, uint64(99), mock.Anything).
		Return(nil, domain.OrderStatus(""), domain.ErrOrderNotFound)

	w := env.do(http.MethodPut, "/api/orders/99", map[string]any{"status": "shipped"}, true)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersPagination(t *testing.T) {
	env := newTestEnv(t)

	page := []domain.Order{
		*services.NewStoredTestOrder(1, "HM250115001", domain.StatusPending),
		*services.NewStoredTestOrder(2, "HM250115002", domain.StatusPending),
	}
	env.orders.On("List", mock.Anything, "all", 1, 2).Return(page, int64(5), 3, nil)

	w := env.do(http.MethodGet, "/api/orders?status=all&page=1&limit=2", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListOrdersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Orders, 2)
	assert.Equal(t, int64(5), resp.TotalOrders)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 1, resp.CurrentPage)
}

func TestGetOrderByNumber(t *testing.T) {
	env := newTestEnv(t)

	env.orders.On("GetByNumber", mock.Anything, "HM250115042").
		Return(services.NewStoredTestOrder(42, "HM250115042", domain.StatusPending), nil)

	w := env.do(http.MethodGet, "/api/orders/number/HM250115042", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, uint64(42), order.ID)
}

func TestGetOrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	env.orders.On("GetByID", mock.Anything, uint64(7)).Return(nil, domain.ErrOrderNotFound)

	w := env.do(http.MethodGet, "/api/orders/7", nil, false)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Order not found")
}

func TestResendConfirmation(t *testing.T) {
	env := newTestEnv(t)

	order := services.NewStoredTestOrder(42, "HM250115042", domain.StatusConfirmed)
	env.orders.On("GetByID", mock.Anything, uint64(42)).Return(order, nil)
	env.notifier.On("DispatchConfirmation", mock.Anything, order).
		Return(notify.Result{SMS: notify.Outcome{Success: true}})

	w := env.do(http.MethodPost, "/api/orders/42/send-confirmation", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"success\":true")
}

func TestDebugOrderReportsGaps(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/debug-order", map[string]any{
		"customer": map[string]any{"firstName": "A"},
		"items":    []any{},
	}, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		DataStructure map[string]string `json:"dataStructure"`
		Issues        []string          `json:"issues"`
		Valid         bool              `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "object", resp.DataStructure["customer"])
	assert.Equal(t, "missing", resp.DataStructure["delivery"])
	assert.Equal(t, "array(0)", resp.DataStructure["items"])
	assert.Contains(t, resp.Issues, "items array is empty")
}

func TestDebugOrderValidPayload(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/debug-order", validOrderBody(), false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Issues []string `json:"issues"`
		Valid  bool     `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Issues)
	assert.True(t, resp.Valid)
}

func TestDebugOrderFlagsTotalsMismatch(t *testing.T) {
	env := newTestEnv(t)

	body := validOrderBody()
	body["totals"] = map[string]any{"subtotal": 130, "deliveryCharge": 0, "total": 999}

	w := env.do(http.MethodPost, "/api/debug-order", body, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Issues []string `json:"issues"`
		Valid  bool     `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	require.Len(t, resp.Issues, 1)
	assert.Contains(t, resp.Issues[0], "does not match")
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)

	env.catalog.On("List", mock.Anything, repository.ProductFilter{Category: "floral"}).
		Return([]domain.Product{{ID: 2, Name: "Rose Mahal", Category: domain.CategoryFloral}}, false, nil)

	w := env.do(http.MethodGet, "/api/products?category=floral", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []domain.Product `json:"products"`
		Source   string           `json:"source"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "database", resp.Source)
}

func TestListProductsFallbackSource(t *testing.T) {
	env := newTestEnv(t)

	env.catalog.On("List", mock.Anything, mock.Anything).
		Return([]domain.Product{}, true, nil)

	w := env.do(http.MethodGet, "/api/products", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"source\":\"fallback\"")
}

func TestBulkInsertProducts(t *testing.T) {
	env := newTestEnv(t)

	env.catalog.On("Reseed", mock.Anything).Return(services.SampleProducts(), nil)

	w := env.do(http.MethodPost, "/api/products/bulk-insert", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"count\":6")
}

func TestProductWritesRequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	for _, req := range []struct{ method, path string }{
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products/1"},
		{http.MethodDelete, "/api/products/1"},
		{http.MethodPost, "/api/products/bulk-insert"},
		{http.MethodPost, "/api/test-email"},
	} {
		w := env.do(req.method, req.path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", req.method, req.path)
	}
}

func TestTestEmail(t *testing.T) {
	env := newTestEnv(t)

	env.notifier.On("DispatchTest", mock.Anything, "check@example.com").
		Return(notify.Outcome{Success: true})

	w := env.do(http.MethodPost, "/api/test-email", map[string]any{"email": "check@example.com"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"success\":true")
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/nope", nil, false)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Route not found")
}
