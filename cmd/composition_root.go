package cmd

import (
	"refill/internal/adapters/in/http"
	"refill/internal/adapters/out/paymongo"
	"refill/internal/adapters/out/postgres"
	"refill/internal/adapters/out/rabbitmq"
	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/application/usecases/queries"
	"refill/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	gateway    ports.PaymentGateway
	notifier   ports.StatusNotifier
	verifier   *paymongo.WebhookVerifier
	jwtSecret  []byte
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, amqpConn *amqp.Connection) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway:    paymongo.NewClient(configs.PayMongoSecretKey),
		notifier:   rabbitmq.NewStatusNotifier(amqpConn),
		verifier:   paymongo.NewWebhookVerifier(configs.PayMongoWebhookSecret),
		jwtSecret:  []byte(configs.JWTSecret),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderRiderUoWFactory() commands.OrderRiderUoWFactory {
	return FuncOrderRiderUoWFactory(func() commands.OrderRiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderPaymentUoWFactory() commands.OrderPaymentUoWFactory {
	return FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderPaymentRiderUoWFactory() commands.OrderPaymentRiderUoWFactory {
	return FuncOrderPaymentRiderUoWFactory(func() commands.OrderPaymentRiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderPaymentUoWFactory(), c.gateway)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderRiderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.orderRiderUoWFactory())
}

func (c *CompositionRoot) CreateAutoAssignRiderCommandHandler() commands.AutoAssignRiderCommandHandler {
	return commands.NewAutoAssignRiderCommandHandler(c.orderRiderUoWFactory())
}

func (c *CompositionRoot) CreateStartPickupCommandHandler() commands.StartPickupCommandHandler {
	return commands.NewStartPickupCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelPickupCommandHandler() commands.CancelPickupCommandHandler {
	return commands.NewCancelPickupCommandHandler(c.orderRiderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.orderRiderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateMarkPendingPaymentCommandHandler() commands.MarkPendingPaymentCommandHandler {
	return commands.NewMarkPendingPaymentCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateConfirmCashPaymentCommandHandler() commands.ConfirmCashPaymentCommandHandler {
	return commands.NewConfirmCashPaymentCommandHandler(c.orderRiderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCreateRiderCommandHandler() commands.CreateRiderCommandHandler {
	return commands.NewCreateRiderCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateSetRiderAvailabilityCommandHandler() commands.SetRiderAvailabilityCommandHandler {
	return commands.NewSetRiderAvailabilityCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateApplyPaymentEventCommandHandler() commands.ApplyPaymentEventCommandHandler {
	return commands.NewApplyPaymentEventCommandHandler(c.orderPaymentRiderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateExpireStalePaymentsCommandHandler() commands.ExpireStalePaymentsCommandHandler {
	return commands.NewExpireStalePaymentsCommandHandler(c.orderPaymentUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllRidersQueryHandler() queries.GetAllRidersQueryHandler {
	return queries.NewGetAllRidersQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the web server with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		CancelOrder:        c.CreateCancelOrderCommandHandler(),
		ConfirmOrder:       c.CreateConfirmOrderCommandHandler(),
		AssignRider:        c.CreateAssignRiderCommandHandler(),
		AutoAssignRider:    c.CreateAutoAssignRiderCommandHandler(),
		StartPickup:        c.CreateStartPickupCommandHandler(),
		CancelPickup:       c.CreateCancelPickupCommandHandler(),
		StartDelivery:      c.CreateStartDeliveryCommandHandler(),
		MarkDelivered:      c.CreateMarkDeliveredCommandHandler(),
		MarkPendingPayment: c.CreateMarkPendingPaymentCommandHandler(),
		ConfirmCash:        c.CreateConfirmCashPaymentCommandHandler(),
		CreateRider:        c.CreateCreateRiderCommandHandler(),
		SetAvailability:    c.CreateSetRiderAvailabilityCommandHandler(),
		ApplyPaymentEvent:  c.CreateApplyPaymentEventCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		GetAllRiders:       c.CreateGetAllRidersQueryHandler(),
	}, c.verifier, c.jwtSecret)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncOrderRiderUoWFactory func() commands.OrderRiderUoW

func (f FuncOrderRiderUoWFactory) Create() commands.OrderRiderUoW {
	return f()
}

type FuncOrderPaymentUoWFactory func() commands.OrderPaymentUoW

func (f FuncOrderPaymentUoWFactory) Create() commands.OrderPaymentUoW {
	return f()
}

type FuncOrderPaymentRiderUoWFactory func() commands.OrderPaymentRiderUoW

func (f FuncOrderPaymentRiderUoWFactory) Create() commands.OrderPaymentRiderUoW {
	return f()
}
