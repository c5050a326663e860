// Package http exposes the purchase lifecycle over REST. The sales routes
// live under /purchase, the logistics routes under /logistics; both sides
// share the same server and the same error envelope.
package http

import (
	"net/http"

	"purchases/internal/core/application/usecases/commands"
	"purchases/internal/core/application/usecases/queries"
	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createPurchaseHandler    commands.CreatePurchaseCommandHandler
	payPurchaseHandler       commands.PayPurchaseCommandHandler
	cancelPurchaseHandler    commands.CancelPurchaseCommandHandler
	dispatchPurchasesHandler commands.DispatchPurchasesCommandHandler
	deliverPurchaseHandler   commands.DeliverPurchaseCommandHandler

	// Query handlers
	getPurchaseByIDHandler      queries.GetPurchaseByIDQueryHandler
	getPurchasesByStatusHandler queries.GetPurchasesByStatusQueryHandler
	getPurchaseHistoryHandler   queries.GetPurchaseHistoryQueryHandler

	validate *validator.Validate
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createPurchaseHandler commands.CreatePurchaseCommandHandler,
	payPurchaseHandler commands.PayPurchaseCommandHandler,
	cancelPurchaseHandler commands.CancelPurchaseCommandHandler,
	dispatchPurchasesHandler commands.DispatchPurchasesCommandHandler,
	deliverPurchaseHandler commands.DeliverPurchaseCommandHandler,
	getPurchaseByIDHandler queries.GetPurchaseByIDQueryHandler,
	getPurchasesByStatusHandler queries.GetPurchasesByStatusQueryHandler,
	getPurchaseHistoryHandler queries.GetPurchaseHistoryQueryHandler,
) *Server {
	return &Server{
		createPurchaseHandler:       createPurchaseHandler,
		payPurchaseHandler:          payPurchaseHandler,
		cancelPurchaseHandler:       cancelPurchaseHandler,
		dispatchPurchasesHandler:    dispatchPurchasesHandler,
		deliverPurchaseHandler:      deliverPurchaseHandler,
		getPurchaseByIDHandler:      getPurchaseByIDHandler,
		getPurchasesByStatusHandler: getPurchasesByStatusHandler,
		getPurchaseHistoryHandler:   getPurchaseHistoryHandler,
		validate:                    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes wires the sales and logistics routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/purchase/:id", s.GetPurchase)
	e.GET("/purchase", s.GetPurchasesByStatus)
	e.POST("/purchase", s.CreatePurchase)
	e.PUT("/purchase/:id/pay", s.PayPurchase)
	e.PUT("/purchase/:id/cancel", s.CancelPurchase)

	e.PUT("/logistics/dispatch", s.DispatchPurchases)
	e.PUT("/logistics/:id/deliver", s.DeliverPurchase)
	e.GET("/logistics/history/:purchaseId", s.GetPurchaseHistory)
}

// parsePurchaseID parses a purchase id from a path parameter. Malformed ids
// are reported as invalid values so they surface as 400, not 500.
func parsePurchaseID(raw string) (kernel.UUID, error) {
	purchaseID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return purchaseID, nil
}

// GetPurchase handles GET /purchase/:id - retrieves one purchase with its items.
func (s *Server) GetPurchase(ctx echo.Context) error {
	purchaseID, err := parsePurchaseID(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPurchaseByIDQuery(purchaseID)
	if err != nil {
		return writeError(ctx, err)
	}

	projection, err := s.getPurchaseByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, purchaseFromProjection(projection))
}

// GetPurchasesByStatus handles GET /purchase?status= - lists purchases in a status.
func (s *Server) GetPurchasesByStatus(ctx echo.Context) error {
	query, err := queries.NewGetPurchasesByStatusQuery(ctx.QueryParam("status"))
	if err != nil {
		return writeError(ctx, err)
	}

	projections, err := s.getPurchasesByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]PurchaseResponse, 0, len(projections))
	for _, projection := range projections {
		response = append(response, purchaseFromProjection(projection))
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreatePurchase handles POST /purchase - registers a new purchase.
func (s *Server) CreatePurchase(ctx echo.Context) error {
	var request CreatePurchaseRequest
	if err := ctx.Bind(&request); err != nil {
		return writeBindError(ctx)
	}

	if err := s.validate.Struct(request); err != nil {
		return writeValidationError(ctx, "purchase", err)
	}

	taxID, err := kernel.NewTaxID(request.TaxID)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.ItemRequest, 0, len(request.Items))
	for _, item := range request.Items {
		productID, idErr := kernel.UUIDFromString(item.ProductID)
		if idErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("productId", idErr))
		}
		items = append(items, commands.ItemRequest{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	cmd, err := commands.NewCreatePurchaseCommand(kernel.NewUUID(), taxID, items)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("purchase", err))
	}

	created, err := s.createPurchaseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, purchaseFromAggregate(created))
}

// PayPurchase handles PUT /purchase/:id/pay - confirms payment of a purchase.
func (s *Server) PayPurchase(ctx echo.Context) error {
	purchaseID, err := parsePurchaseID(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewPayPurchaseCommand(purchaseID)
	if err != nil {
		return writeError(ctx, err)
	}

	paid, err := s.payPurchaseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, purchaseFromAggregate(paid))
}

// CancelPurchase handles PUT /purchase/:id/cancel - cancels a waiting purchase
// and returns its reserved stock.
func (s *Server) CancelPurchase(ctx echo.Context) error {
	purchaseID, err := parsePurchaseID(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelPurchaseCommand(purchaseID)
	if err != nil {
		return writeError(ctx, err)
	}

	canceled, err := s.cancelPurchaseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, purchaseFromAggregate(canceled))
}

// DispatchPurchases handles PUT /logistics/dispatch - groups every paid
// purchase for delivery. Purchases dispatched before a mid-batch failure keep
// their groups; the response carries whatever was dispatched.
func (s *Server) DispatchPurchases(ctx echo.Context) error {
	cmd := commands.NewDispatchPurchasesCommand()

	dispatched, err := s.dispatchPurchasesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]PurchaseResponse, 0, len(dispatched))
	for _, aggregate := range dispatched {
		response = append(response, purchaseFromAggregate(aggregate))
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeliverPurchase handles PUT /logistics/:id/deliver - marks a purchase delivered.
func (s *Server) DeliverPurchase(ctx echo.Context) error {
	purchaseID, err := parsePurchaseID(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeliverPurchaseCommand(purchaseID)
	if err != nil {
		return writeError(ctx, err)
	}

	confirmation, err := s.deliverPurchaseHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.String(http.StatusOK, confirmation)
}

// GetPurchaseHistory handles GET /logistics/history/:purchaseId - lists the
// status history of a purchase in the order the transitions happened.
func (s *Server) GetPurchaseHistory(ctx echo.Context) error {
	purchaseID, err := parsePurchaseID(ctx.Param("purchaseId"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPurchaseHistoryQuery(purchaseID)
	if err != nil {
		return writeError(ctx, err)
	}

	records, err := s.getPurchaseHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]StatusRecordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, StatusRecordResponse{
			PurchaseID: record.PurchaseID.String(),
			Status:     record.Status,
			StatusDate: record.StatusDate,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}
