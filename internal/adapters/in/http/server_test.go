package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminKey      = "admin-key"
	testWebhookSecret = "webhook-secret"
)

// In-memory stand-ins for the persistence and collaborator ports.

type stubRepo struct {
	orders map[string]*order.Order

	getByTrackingCalls int
}

func newStubRepo() *stubRepo {
	return &stubRepo{orders: make(map[string]*order.Order)}
}

func (r *stubRepo) Add(_ context.Context, o *order.Order) error {
	r.orders[o.ID().String()] = o
	return nil
}

func (r *stubRepo) Update(_ context.Context, _ *order.Order) error { return nil }

func (r *stubRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.orders[id.String()]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubRepo) GetByTrackingNumber(_ context.Context, trackingNumber string) (*order.Order, error) {
	r.getByTrackingCalls++
	for _, o := range r.orders {
		if o.Tracking().TrackingNumber() == trackingNumber {
			return o, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubRepo) GetAllDueForAutoProgress(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, nil
}

type stubUoW struct{ repo ports.OrderRepository }

func (u *stubUoW) Begin(_ context.Context) error            { return nil }
func (u *stubUoW) Commit(_ context.Context) error           { return nil }
func (u *stubUoW) Rollback(_ context.Context) error         { return nil }
func (u *stubUoW) OrderRepository() ports.OrderRepository   { return u.repo }

type stubFactory struct{ uow commands.OrderUoW }

func (f *stubFactory) Create() commands.OrderUoW { return f.uow }

type stubCatalog struct{}

func (s *stubCatalog) GetBook(_ context.Context, _ string) (ports.BookSummary, error) {
	return ports.BookSummary{
		Title:  "Stub Book",
		Price:  decimal.NewFromInt(10),
		Format: order.FormatPhysical,
	}, nil
}

type noopNotifier struct{}

func (n *noopNotifier) Notify(_ context.Context, _ ports.Notification) error { return nil }

type noopInvoicer struct{}

func (n *noopInvoicer) RenderInvoice(_ context.Context, _ *order.Order) ([]byte, error) {
	return nil, nil
}

func newTestServer(t *testing.T, repo *stubRepo) *adapter.Server {
	t.Helper()

	factory := &stubFactory{uow: &stubUoW{repo: repo}}
	planner, err := services.NewFulfillmentPlanner(order.DefaultTimings())
	require.NoError(t, err)

	createHandler, err := commands.NewCreateOrderCommandHandler(
		factory, &stubCatalog{}, &noopNotifier{}, &noopInvoicer{}, order.DefaultTimings())
	require.NoError(t, err)

	transitionHandler := commands.NewTransitionOrderStatusCommandHandler(factory, &noopNotifier{}, planner)
	carrierHandler := commands.NewApplyCarrierUpdateCommandHandler(factory, &transitionHandler)

	return adapter.NewServer(
		createHandler,
		transitionHandler,
		carrierHandler,
		queries.GetOrderQueryHandler{},
		queries.GetCustomerOrdersQueryHandler{},
		testAdminKey,
		testWebhookSecret,
	)
}

func doRequest(server *adapter.Server, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	server.RegisterRoutes(e)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrder_Success(t *testing.T) {
	repo := newStubRepo()
	server := newTestServer(t, repo)

	body := `{"items": [{"bookId": "book-1", "quantity": 2, "intent": "purchase"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(adapter.HeaderCustomerID, "customer-1")
	req.Header.Set(adapter.HeaderCustomerEmail, "reader@example.com")

	rec := doRequest(server, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var response adapter.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "customer-1", response.CustomerID)
	assert.Equal(t, "processing", response.Status)
	assert.True(t, response.TotalAmount.Equal(decimal.NewFromInt(20)))
	assert.NotEmpty(t, response.OrderNumber)
	assert.NotEmpty(t, response.Tracking.TrackingNumber)
	require.Len(t, response.Tracking.History, 1)
	assert.Len(t, repo.orders, 1)
}

func TestCreateOrder_MissingCustomerHeaders(t *testing.T) {
	server := newTestServer(t, newStubRepo())

	body := `{"items": [{"bookId": "book-1", "quantity": 1, "intent": "purchase"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(server, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	server := newTestServer(t, newStubRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"items": []}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(adapter.HeaderCustomerID, "customer-1")
	req.Header.Set(adapter.HeaderCustomerEmail, "reader@example.com")

	rec := doRequest(server, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitionOrderStatus_RequiresAdminKey(t *testing.T) {
	server := newTestServer(t, newStubRepo())

	body := `{"status": "shipped"}`
	url := "/api/v1/orders/" + kernel.NewUUID().String() + "/status"

	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := doRequest(server, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(adapter.HeaderAdminKey, "wrong-key")
	rec = doRequest(server, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTransitionOrderStatus_AppliesChange(t *testing.T) {
	repo := newStubRepo()
	server := newTestServer(t, repo)

	aggregate := createOrderViaDomain(t)
	repo.orders[aggregate.ID().String()] = aggregate

	body := `{"status": "shipped", "message": "Left the warehouse"}`
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/orders/"+aggregate.ID().String()+"/status", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(adapter.HeaderAdminKey, testAdminKey)

	rec := doRequest(server, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var response adapter.TransitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Applied)
	assert.Equal(t, "shipped", response.Order.Status)
	assert.Equal(t, "shipped", response.Order.Tracking.Status)
	require.Len(t, response.Order.Tracking.History, 2)
	assert.Contains(t, response.Order.Tracking.History[1].Message, "admin-api")
}

func TestTransitionOrderStatus_InvalidOrderID(t *testing.T) {
	server := newTestServer(t, newStubRepo())

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/orders/not-a-uuid/status", strings.NewReader(`{"status": "shipped"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(adapter.HeaderAdminKey, testAdminKey)

	rec := doRequest(server, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCustomerOrders_ForbidsForeignCustomer(t *testing.T) {
	server := newTestServer(t, newStubRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/customer-1/orders", nil)
	req.Header.Set(adapter.HeaderCustomerID, "customer-2")
	rec := doRequest(server, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/customers/customer-1/orders", nil)
	rec = doRequest(server, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCarrierWebhook_RequiresSecret(t *testing.T) {
	repo := newStubRepo()
	server := newTestServer(t, repo)

	body := `{"trackingNumber": "TRK-ABC123XYZ456", "status": "delivered"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/carrier", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(adapter.HeaderCarrierSecret, "wrong-secret")

	rec := doRequest(server, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The secret check must run before any tracking number lookup.
	assert.Zero(t, repo.getByTrackingCalls)
}

func TestCarrierWebhook_MissingTrackingNumber(t *testing.T) {
	server := newTestServer(t, newStubRepo())

	body := `{"status": "delivered"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/carrier", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(adapter.HeaderCarrierSecret, testWebhookSecret)

	rec := doRequest(server, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCarrierWebhook_AppliesUpdate(t *testing.T) {
	repo := newStubRepo()
	server := newTestServer(t, repo)

	aggregate := createOrderViaDomain(t)
	repo.orders[aggregate.ID().String()] = aggregate

	body := `{"trackingNumber": "` + aggregate.Tracking().TrackingNumber() + `", "status": "delivered"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/carrier", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(adapter.HeaderCarrierSecret, testWebhookSecret)

	rec := doRequest(server, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var response adapter.TransitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Applied)
	assert.Equal(t, "delivered", response.Order.Status)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, newStubRepo())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := doRequest(server, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func createOrderViaDomain(t *testing.T) *order.Order {
	t.Helper()

	item, err := order.NewOrderItem(
		"book-1",
		order.BookSnapshot{Title: "Stub Book", Price: decimal.NewFromInt(10)},
		order.FormatPhysical, 1, order.IntentPurchase, 0,
		time.Now(), order.DefaultTimings().DeliveryLead,
	)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), "customer-1", "reader@example.com",
		[]order.OrderItem{item}, nil, nil, time.Now(), order.DefaultTimings(),
	)
	require.NoError(t, err)
	return aggregate
}
