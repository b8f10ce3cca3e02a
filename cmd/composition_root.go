package cmd

import (
	"fulfillment/internal/adapters/out/catalog"
	"fulfillment/internal/adapters/out/invoicing"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	catalogClient ports.CatalogLookup
	notifier      ports.NotificationDispatcher
	invoicer      ports.InvoiceRenderer
}

// NewCompositionRoot builds the object graph from configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	catalogClient, err := catalog.NewClient(config.CatalogServiceURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	notifier, err := notify.NewDispatcher(config.NotificationServiceURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	invoicer, err := invoicing.NewRenderer(config.InvoiceServiceURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalogClient: catalogClient,
		notifier:      notifier,
		invoicer:      invoicer,
	}, nil
}

// Timings returns the simulated-carrier timing policy from configuration,
// falling back to the defaults for unset values.
func (c *CompositionRoot) Timings() order.Timings {
	timings := order.DefaultTimings()
	if c.config.DeliveryLead > 0 {
		timings.DeliveryLead = c.config.DeliveryLead
	}
	if c.config.ShipAfter > 0 {
		timings.ShipAfter = c.config.ShipAfter
	}
	if c.config.DeliverAfter > 0 {
		timings.DeliverAfter = c.config.DeliverAfter
	}
	return timings
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// CreateCreateOrderCommandHandler wires the order creation use case.
func (c *CompositionRoot) CreateCreateOrderCommandHandler() (commands.CreateOrderCommandHandler, error) {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.catalogClient, c.notifier, c.invoicer, c.Timings())
}

// CreateTransitionOrderStatusCommandHandler wires the transition gateway.
func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() (commands.TransitionOrderStatusCommandHandler, error) {
	planner, err := services.NewFulfillmentPlanner(c.Timings())
	if err != nil {
		return commands.TransitionOrderStatusCommandHandler{}, err
	}
	return commands.NewTransitionOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier, planner), nil
}

// CreateApplyCarrierUpdateCommandHandler wires the carrier webhook use case.
func (c *CompositionRoot) CreateApplyCarrierUpdateCommandHandler(
	gateway *commands.TransitionOrderStatusCommandHandler,
) commands.ApplyCarrierUpdateCommandHandler {
	return commands.NewApplyCarrierUpdateCommandHandler(c.orderUoWFactory(), gateway)
}

// CreateAutoProgressOrdersCommandHandler wires the scheduler sweep use case.
func (c *CompositionRoot) CreateAutoProgressOrdersCommandHandler(
	gateway *commands.TransitionOrderStatusCommandHandler,
) (commands.AutoProgressOrdersCommandHandler, error) {
	planner, err := services.NewFulfillmentPlanner(c.Timings())
	if err != nil {
		return commands.AutoProgressOrdersCommandHandler{}, err
	}
	return commands.NewAutoProgressOrdersCommandHandler(c.orderUoWFactory(), gateway, planner), nil
}

// CreateGetOrderQueryHandler wires the single-order read side.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// CreateGetCustomerOrdersQueryHandler wires the customer listing read side.
func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

// FuncOrderUoWFactory adapts a closure to the OrderUoWFactory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
