// Package http exposes the fulfillment pipeline over REST: order lifecycle
// commands, read-side queries, the rider registry, and the payment webhook.
// Authentication is a bearer JWT resolved to a domain actor; authorization
// stays in the use case layer.
package http

import (
	"net/http"

	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/application/usecases/queries"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	confirmOrderHandler       commands.ConfirmOrderCommandHandler
	assignRiderHandler        commands.AssignRiderCommandHandler
	autoAssignRiderHandler    commands.AutoAssignRiderCommandHandler
	startPickupHandler        commands.StartPickupCommandHandler
	cancelPickupHandler       commands.CancelPickupCommandHandler
	startDeliveryHandler      commands.StartDeliveryCommandHandler
	markDeliveredHandler      commands.MarkDeliveredCommandHandler
	markPendingPaymentHandler commands.MarkPendingPaymentCommandHandler
	confirmCashHandler        commands.ConfirmCashPaymentCommandHandler
	createRiderHandler        commands.CreateRiderCommandHandler
	setAvailabilityHandler    commands.SetRiderAvailabilityCommandHandler
	applyPaymentEventHandler  commands.ApplyPaymentEventCommandHandler

	// Query handlers
	getOrderHandler     queries.GetOrderQueryHandler
	listOrdersHandler   queries.ListOrdersQueryHandler
	getAllRidersHandler queries.GetAllRidersQueryHandler

	webhookVerifier WebhookVerifier
	jwtSecret       []byte
}

// WebhookVerifier checks the provider signature on raw webhook bodies.
type WebhookVerifier interface {
	Verify(header string, body []byte) error
}

// Handlers bundles every use case handler the server dispatches to.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	CancelOrder        commands.CancelOrderCommandHandler
	ConfirmOrder       commands.ConfirmOrderCommandHandler
	AssignRider        commands.AssignRiderCommandHandler
	AutoAssignRider    commands.AutoAssignRiderCommandHandler
	StartPickup        commands.StartPickupCommandHandler
	CancelPickup       commands.CancelPickupCommandHandler
	StartDelivery      commands.StartDeliveryCommandHandler
	MarkDelivered      commands.MarkDeliveredCommandHandler
	MarkPendingPayment commands.MarkPendingPaymentCommandHandler
	ConfirmCash        commands.ConfirmCashPaymentCommandHandler
	CreateRider        commands.CreateRiderCommandHandler
	SetAvailability    commands.SetRiderAvailabilityCommandHandler
	ApplyPaymentEvent  commands.ApplyPaymentEventCommandHandler

	GetOrder     queries.GetOrderQueryHandler
	ListOrders   queries.ListOrdersQueryHandler
	GetAllRiders queries.GetAllRidersQueryHandler
}

// NewServer creates an HTTP server dispatching to the given handlers.
func NewServer(handlers Handlers, webhookVerifier WebhookVerifier, jwtSecret []byte) *Server {
	return &Server{
		createOrderHandler:        handlers.CreateOrder,
		cancelOrderHandler:        handlers.CancelOrder,
		confirmOrderHandler:       handlers.ConfirmOrder,
		assignRiderHandler:        handlers.AssignRider,
		autoAssignRiderHandler:    handlers.AutoAssignRider,
		startPickupHandler:        handlers.StartPickup,
		cancelPickupHandler:       handlers.CancelPickup,
		startDeliveryHandler:      handlers.StartDelivery,
		markDeliveredHandler:      handlers.MarkDelivered,
		markPendingPaymentHandler: handlers.MarkPendingPayment,
		confirmCashHandler:        handlers.ConfirmCash,
		createRiderHandler:        handlers.CreateRider,
		setAvailabilityHandler:    handlers.SetAvailability,
		applyPaymentEventHandler:  handlers.ApplyPaymentEvent,
		getOrderHandler:           handlers.GetOrder,
		listOrdersHandler:         handlers.ListOrders,
		getAllRidersHandler:       handlers.GetAllRiders,
		webhookVerifier:           webhookVerifier,
		jwtSecret:                 jwtSecret,
	}
}

// RegisterRoutes wires every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(MetricsMiddleware())

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/webhooks/payments", s.HandlePaymentWebhook)

	api := e.Group("/api/v1", AuthMiddleware(s.jwtSecret))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/confirm", s.ConfirmOrder)
	api.POST("/orders/:id/assign", s.AssignRider)
	api.POST("/orders/:id/auto-assign", s.AutoAssignRider)
	api.POST("/orders/:id/pickup", s.StartPickup)
	api.POST("/orders/:id/pickup/cancel", s.CancelPickup)
	api.POST("/orders/:id/delivery", s.StartDelivery)
	api.POST("/orders/:id/delivered", s.MarkDelivered)
	api.POST("/orders/:id/pending-payment", s.MarkPendingPayment)
	api.POST("/orders/:id/settle-cash", s.ConfirmCashPayment)

	api.POST("/riders", s.CreateRider)
	api.GET("/riders", s.GetAllRiders)
	api.PATCH("/riders/:id/availability", s.SetRiderAvailability)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// NewOrderRequest is the create-order payload.
type NewOrderRequest struct {
	WaterQuantity int    `json:"water_quantity"`
	GallonType    string `json:"gallon_type"`
	TotalCentavos int64  `json:"total_centavos"`
	PaymentMethod string `json:"payment_method"`
}

// NewOrderResponse returns the id assigned to the created order.
type NewOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody("no authenticated actor"))
	}

	var req NewOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	gallonType, err := order.GallonTypeFromString(req.GallonType)
	if err != nil {
		return jsonError(c, err)
	}

	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return jsonError(c, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(actor, orderID,
		req.WaterQuantity, gallonType, req.TotalCentavos, paymentMethod)
	if err != nil {
		return jsonError(c, err)
	}

	if err := s.createOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, NewOrderResponse{ID: orderID.String()})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewCancelOrderCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.cancelOrderHandler.Handle(c.Request().Context(), cmd)
	})
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewConfirmOrderCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.confirmOrderHandler.Handle(c.Request().Context(), cmd)
	})
}

// AssignRiderRequest is the manual assignment payload.
type AssignRiderRequest struct {
	RiderID string `json:"rider_id"`
}

// AssignRider handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignRider(c echo.Context) error {
	var req AssignRiderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return jsonError(c, err)
	}

	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, cmdErr := commands.NewAssignRiderCommand(actor, orderID, riderID)
		if cmdErr != nil {
			return cmdErr
		}
		return s.assignRiderHandler.Handle(c.Request().Context(), cmd)
	})
}

// AutoAssignRider handles POST /api/v1/orders/:id/auto-assign.
func (s *Server) AutoAssignRider(c echo.Context) error {
	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewAutoAssignRiderCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.autoAssignRiderHandler.Handle(c.Request().Context(), cmd)
	})
}

// StartPickup handles POST /api/v1/orders/:id/pickup.
func (s *Server) StartPickup(c echo.Context) error {
	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewStartPickupCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.startPickupHandler.Handle(c.Request().Context(), cmd)
	})
}

// CancelPickup handles POST /api/v1/orders/:id/pickup/cancel.
func (s *Server) CancelPickup(c echo.Context) error {
	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewCancelPickupCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.cancelPickupHandler.Handle(c.Request().Context(), cmd)
	})
}

// StartDelivery handles POST /api/v1/orders/:id/delivery.
func (s *Server) StartDelivery(c echo.Context) error {
	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewStartDeliveryCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.startDeliveryHandler.Handle(c.Request().Context(), cmd)
	})
}

// MarkDelivered handles POST /api/v1/orders/:id/delivered.
func (s *Server) MarkDelivered(c echo.Context) error {
	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewMarkDeliveredCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.markDeliveredHandler.Handle(c.Request().Context(), cmd)
	})
}

// MarkPendingPayment handles POST /api/v1/orders/:id/pending-payment.
func (s *Server) MarkPendingPayment(c echo.Context) error {
	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewMarkPendingPaymentCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.markPendingPaymentHandler.Handle(c.Request().Context(), cmd)
	})
}

// ConfirmCashPayment handles POST /api/v1/orders/:id/settle-cash.
func (s *Server) ConfirmCashPayment(c echo.Context) error {
	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewConfirmCashPaymentCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.confirmCashHandler.Handle(c.Request().Context(), cmd)
	})
}

// orderAction runs a per-order command shared by the lifecycle endpoints:
// resolve the actor, parse the :id parameter, run, reply 204 on success.
func (s *Server) orderAction(c echo.Context, run func(actor kernel.Actor, orderID kernel.UUID) error) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody("no authenticated actor"))
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}

	if err := run(actor, orderID); err != nil {
		return jsonError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// OrderResponse is the JSON projection of one order.
type OrderResponse struct {
	ID            string  `json:"id"`
	CustomerID    string  `json:"customer_id"`
	RiderID       *string `json:"rider_id,omitempty"`
	Status        string  `json:"status"`
	WaterQuantity int     `json:"water_quantity"`
	GallonType    string  `json:"gallon_type"`
	TotalCentavos int64   `json:"total_centavos"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `json:"payment_status"`
	EtaText       string  `json:"eta_text,omitempty"`
}

func toOrderResponse(resp queries.OrderResponse) OrderResponse {
	out := OrderResponse{
		ID:            resp.ID.String(),
		CustomerID:    resp.CustomerID.String(),
		Status:        resp.Status,
		WaterQuantity: resp.WaterQuantity,
		GallonType:    resp.GallonType,
		TotalCentavos: resp.TotalCentavos,
		PaymentMethod: resp.PaymentMethod,
		PaymentStatus: resp.PaymentStatus,
		EtaText:       resp.EtaText,
	}
	if resp.RiderID != nil {
		id := resp.RiderID.String()
		out.RiderID = &id
	}
	return out
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody("no authenticated actor"))
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}

	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return jsonError(c, err)
	}

	resp, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(resp))
}

// ListOrders handles GET /api/v1/orders with an optional ?status= filter.
func (s *Server) ListOrders(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody("no authenticated actor"))
	}

	var statusFilter *order.Status
	if raw := c.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return jsonError(c, err)
		}
		statusFilter = &status
	}

	query, err := queries.NewListOrdersQuery(actor, statusFilter)
	if err != nil {
		return jsonError(c, err)
	}

	orders, err := s.listOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return jsonError(c, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, resp := range orders {
		response[i] = toOrderResponse(resp)
	}

	return c.JSON(http.StatusOK, response)
}

// NewRiderRequest is the create-rider payload.
type NewRiderRequest struct {
	Name               string `json:"name"`
	MaxCapacityGallons int    `json:"max_capacity_gallons"`
}

// NewRiderResponse returns the id assigned to the created rider.
type NewRiderResponse struct {
	ID string `json:"id"`
}

// CreateRider handles POST /api/v1/riders.
func (s *Server) CreateRider(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody("no authenticated actor"))
	}

	var req NewRiderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	riderID := kernel.NewUUID()
	cmd, err := commands.NewCreateRiderCommand(actor, riderID, req.Name, req.MaxCapacityGallons)
	if err != nil {
		return jsonError(c, err)
	}

	if err := s.createRiderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, NewRiderResponse{ID: riderID.String()})
}

// RiderResponse is the JSON projection of one rider.
type RiderResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Status             string `json:"status"`
	IsAvailable        bool   `json:"is_available"`
	MaxCapacityGallons int    `json:"max_capacity_gallons"`
	CurrentLoadGallons int    `json:"current_load_gallons"`
	ActiveOrdersCount  int    `json:"active_orders_count"`
}

// GetAllRiders handles GET /api/v1/riders.
func (s *Server) GetAllRiders(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody("no authenticated actor"))
	}

	query, err := queries.NewGetAllRidersQuery(actor)
	if err != nil {
		return jsonError(c, err)
	}

	riders, err := s.getAllRidersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return jsonError(c, err)
	}

	response := make([]RiderResponse, len(riders))
	for i, r := range riders {
		response[i] = RiderResponse{
			ID:                 r.ID.String(),
			Name:               r.Name,
			Status:             r.Status,
			IsAvailable:        r.IsAvailable,
			MaxCapacityGallons: r.MaxCapacityGallons,
			CurrentLoadGallons: r.CurrentLoadGallons,
			ActiveOrdersCount:  r.ActiveOrdersCount,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// SetAvailabilityRequest is the availability toggle payload.
type SetAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// SetRiderAvailability handles PATCH /api/v1/riders/:id/availability.
func (s *Server) SetRiderAvailability(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody("no authenticated actor"))
	}

	riderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}

	var req SetAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	cmd, err := commands.NewSetRiderAvailabilityCommand(actor, riderID, req.IsAvailable)
	if err != nil {
		return jsonError(c, err)
	}

	if err := s.setAvailabilityHandler.Handle(c.Request().Context(), cmd); err != nil {
		return jsonError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
