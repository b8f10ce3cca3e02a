package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllDueForAutoProgress(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalogLookup struct{ mock.Mock }

func (m *MockCatalogLookup) GetBook(ctx context.Context, bookID string) (ports.BookSummary, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(ports.BookSummary), args.Error(1)
}

// MockNotificationDispatcher records notifications and signals arrival on a
// channel, since handlers dispatch them from detached goroutines.
type MockNotificationDispatcher struct {
	mock.Mock
	Sent chan ports.Notification
}

func NewMockNotificationDispatcher() *MockNotificationDispatcher {
	return &MockNotificationDispatcher{Sent: make(chan ports.Notification, 8)}
}

func (m *MockNotificationDispatcher) Notify(ctx context.Context, notification ports.Notification) error {
	args := m.Called(ctx, notification)
	m.Sent <- notification
	return args.Error(0)
}

// MockInvoiceRenderer records render calls, signalled on a channel for the same
// reason as notifications.
type MockInvoiceRenderer struct {
	mock.Mock
	Rendered chan kernel.UUID
}

func NewMockInvoiceRenderer() *MockInvoiceRenderer {
	return &MockInvoiceRenderer{Rendered: make(chan kernel.UUID, 8)}
}

func (m *MockInvoiceRenderer) RenderInvoice(ctx context.Context, aggregate *order.Order) ([]byte, error) {
	args := m.Called(ctx, aggregate)
	m.Rendered <- aggregate.ID()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
