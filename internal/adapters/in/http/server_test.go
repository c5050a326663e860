package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	adapter "purchases/internal/adapters/in/http"
	"purchases/internal/core/application/usecases/commands"
	"purchases/internal/core/application/usecases/queries"
	"purchases/internal/core/domain/model/history"
	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/domain/model/purchase"
	"purchases/internal/core/domain/services"
	"purchases/internal/core/ports"
	"purchases/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPurchaseRepository struct{ mock.Mock }

func (m *MockPurchaseRepository) Add(ctx context.Context, aggregate *purchase.Purchase) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Update(ctx context.Context, aggregate *purchase.Purchase) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Get(ctx context.Context, id kernel.UUID) (*purchase.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) GetAllPaidOrderedByZipCode(ctx context.Context) ([]*purchase.Purchase, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*purchase.Purchase), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, record history.StatusRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetByPurchaseID(
	ctx context.Context, purchaseID kernel.UUID,
) ([]history.StatusRecord, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]history.StatusRecord), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) PurchaseRepository() ports.PurchaseRepository {
	args := m.Called()
	return args.Get(0).(ports.PurchaseRepository)
}

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCustomerDirectory struct{ mock.Mock }

func (m *MockCustomerDirectory) FindCustomer(
	ctx context.Context, taxID kernel.TaxID,
) (ports.CustomerRecord, error) {
	args := m.Called(ctx, taxID)
	return args.Get(0).(ports.CustomerRecord), args.Error(1)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) FindProduct(ctx context.Context, id kernel.UUID) (ports.ProductRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.ProductRecord), args.Error(1)
}

func (m *MockProductCatalog) AdjustStock(ctx context.Context, id kernel.UUID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockProductCatalog) SaveProduct(ctx context.Context, record ports.ProductRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockStockReservator struct{ mock.Mock }

func (m *MockStockReservator) Reserve(
	ctx context.Context, purchaseID, productID kernel.UUID, quantity int,
) error {
	args := m.Called(ctx, purchaseID, productID, quantity)
	return args.Error(0)
}

func (m *MockStockReservator) Release(
	ctx context.Context, purchaseID, productID kernel.UUID, quantity int,
) error {
	args := m.Called(ctx, purchaseID, productID, quantity)
	return args.Error(0)
}

// serverFixture bundles the mocks behind a fully wired server so each test
// only sets the expectations it cares about.
type serverFixture struct {
	echo       *echo.Echo
	factory    *MockUoWFactory
	uow        *MockUoW
	purchases  *MockPurchaseRepository
	history    *MockHistoryRepository
	directory  *MockCustomerDirectory
	catalog    *MockProductCatalog
	reservator *MockStockReservator
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	fixture := &serverFixture{
		echo:       echo.New(),
		factory:    new(MockUoWFactory),
		uow:        new(MockUoW),
		purchases:  new(MockPurchaseRepository),
		history:    new(MockHistoryRepository),
		directory:  new(MockCustomerDirectory),
		catalog:    new(MockProductCatalog),
		reservator: new(MockStockReservator),
	}

	logger := slog.Default()
	grouper := services.NewDeliveryGrouper(services.NewGroupIDGenerator())
	server := adapter.NewServer(
		commands.NewCreatePurchaseCommandHandler(
			fixture.factory, fixture.directory, fixture.catalog, fixture.reservator, logger),
		commands.NewPayPurchaseCommandHandler(fixture.factory),
		commands.NewCancelPurchaseCommandHandler(fixture.factory, fixture.reservator, logger),
		commands.NewDispatchPurchasesCommandHandler(fixture.factory, grouper),
		commands.NewDeliverPurchaseCommandHandler(fixture.factory),
		queries.GetPurchaseByIDQueryHandler{},
		queries.GetPurchasesByStatusQueryHandler{},
		queries.GetPurchaseHistoryQueryHandler{},
	)
	server.RegisterRoutes(fixture.echo)

	return fixture
}

// expectLifecycleTx arms the unit of work for one get-mutate-append cycle.
func (f *serverFixture) expectLifecycleTx() {
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
	f.uow.On("PurchaseRepository").Return(f.purchases).Once()
	f.uow.On("HistoryRepository").Return(f.history).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func (f *serverFixture) perform(method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	recorder := httptest.NewRecorder()
	f.echo.ServeHTTP(recorder, request)
	return recorder
}

func mustTaxID(t *testing.T, value string) kernel.TaxID {
	t.Helper()
	taxID, err := kernel.NewTaxID(value)
	require.NoError(t, err)
	return taxID
}

func storedPurchase(t *testing.T, status purchase.Status) *purchase.Purchase {
	t.Helper()

	productID := kernel.NewUUID()
	item, err := purchase.NewItem(productID, 2, decimal.RequireFromString("10.00"))
	require.NoError(t, err)

	zipCode, err := kernel.NewZipCode("12380-000")
	require.NoError(t, err)

	aggregate, err := purchase.RestorePurchase(
		kernel.NewUUID(),
		mustTaxID(t, "529.982.247-25"),
		"Maria da Silva",
		zipCode,
		"Rua das Flores, 100",
		nil,
		decimal.RequireFromString("20.00"),
		status,
		[]purchase.Item{item},
		0,
	)
	require.NoError(t, err)
	return aggregate
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) adapter.StandardError {
	t.Helper()
	var envelope adapter.StandardError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func TestServer_CreatePurchase(t *testing.T) {
	fixture := newServerFixture(t)
	productID := kernel.NewUUID()

	fixture.directory.On("FindCustomer", mock.Anything, mock.Anything).Return(ports.CustomerRecord{
		FullName: "Maria da Silva",
		ZipCode:  "12380-000",
		Address:  "Rua das Flores, 100",
	}, nil).Once()
	fixture.catalog.On("FindProduct", mock.Anything, productID).Return(ports.ProductRecord{
		ID:       productID,
		Name:     "Caneta Azul",
		Price:    decimal.RequireFromString("19.90"),
		Quantity: 10,
	}, nil).Once()

	fixture.factory.On("Create").Return(fixture.uow).Twice()
	fixture.uow.On("Begin", mock.Anything).Return(nil).Twice()
	fixture.uow.On("Rollback", mock.Anything).Return(nil).Twice()
	fixture.uow.On("Commit", mock.Anything).Return(nil).Twice()
	fixture.uow.On("PurchaseRepository").Return(fixture.purchases).Once()
	fixture.uow.On("HistoryRepository").Return(fixture.history).Once()
	fixture.purchases.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	fixture.history.On("Append", mock.Anything, mock.Anything).Return(nil).Once()
	fixture.reservator.On("Reserve", mock.Anything, mock.Anything, productID, 3).Return(nil).Once()

	body := `{"cpf":"529.982.247-25","items":[{"productId":"` + productID.String() + `","quantity":3}]}`
	recorder := fixture.perform(http.MethodPost, "/purchase", body)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var response adapter.PurchaseResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "529.982.247-25", response.TaxID)
	assert.Equal(t, "Maria da Silva", response.CustomerName)
	assert.Equal(t, "12380-000", response.ZipCode)
	assert.Equal(t, "AGUARDANDO PAGAMENTO", response.Status)
	assert.True(t, decimal.RequireFromString("59.70").Equal(response.TotalAmount))
	require.Len(t, response.Items, 1)
	assert.Equal(t, productID.String(), response.Items[0].ProductID)
	assert.Equal(t, 3, response.Items[0].Quantity)

	fixture.purchases.AssertExpectations(t)
	fixture.reservator.AssertExpectations(t)
}

func TestServer_CreatePurchase_MissingFields(t *testing.T) {
	fixture := newServerFixture(t)

	recorder := fixture.perform(http.MethodPost, "/purchase", `{}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope adapter.ValidateError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "A entidade não é válida.", envelope.Error)
	assert.Equal(t, "/purchase", envelope.Path)
	require.NotEmpty(t, envelope.Messages)

	fields := make([]string, 0, len(envelope.Messages))
	for _, message := range envelope.Messages {
		fields = append(fields, message.Field)
	}
	assert.Contains(t, fields, "TaxID")
	assert.Contains(t, fields, "Items")
	fixture.factory.AssertNotCalled(t, "Create")
}

func TestServer_CreatePurchase_DuplicateProduct(t *testing.T) {
	fixture := newServerFixture(t)
	productID := kernel.NewUUID()

	body := `{"cpf":"529.982.247-25","items":[` +
		`{"productId":"` + productID.String() + `","quantity":2},` +
		`{"productId":"` + productID.String() + `","quantity":3}]}`
	recorder := fixture.perform(http.MethodPost, "/purchase", body)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "A entidade não é válida.", envelope.Error)
	fixture.factory.AssertNotCalled(t, "Create")
	fixture.reservator.AssertNotCalled(t, "Reserve")
}

func TestServer_CreatePurchase_UnknownCustomer(t *testing.T) {
	fixture := newServerFixture(t)
	productID := kernel.NewUUID()

	fixture.directory.On("FindCustomer", mock.Anything, mock.Anything).
		Return(ports.CustomerRecord{}, errs.NewObjectNotFoundError("Cliente não encontrado", "52998224725")).
		Once()

	body := `{"cpf":"529.982.247-25","items":[{"productId":"` + productID.String() + `","quantity":1}]}`
	recorder := fixture.perform(http.MethodPost, "/purchase", body)

	require.Equal(t, http.StatusNotFound, recorder.Code)

	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "Entidade não encontrada.", envelope.Error)
	assert.Equal(t, "Cliente não encontrado", envelope.Message)
	assert.Equal(t, http.StatusNotFound, envelope.Status)
	fixture.factory.AssertNotCalled(t, "Create")
}

func TestServer_PayPurchase(t *testing.T) {
	fixture := newServerFixture(t)
	stored := storedPurchase(t, purchase.WaitingPayment)

	fixture.expectLifecycleTx()
	fixture.purchases.On("Get", mock.Anything, mock.Anything).Return(stored, nil).Once()
	fixture.purchases.On("Update", mock.Anything, stored).Return(nil).Once()
	fixture.history.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

	recorder := fixture.perform(http.MethodPut, "/purchase/"+stored.ID().String()+"/pay", "")

	require.Equal(t, http.StatusOK, recorder.Code)

	var response adapter.PurchaseResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "PAGO", response.Status)
	fixture.purchases.AssertExpectations(t)
}

func TestServer_PayPurchase_MalformedID(t *testing.T) {
	fixture := newServerFixture(t)

	recorder := fixture.perform(http.MethodPut, "/purchase/not-a-uuid/pay", "")

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "A entidade não é válida.", envelope.Error)
	fixture.factory.AssertNotCalled(t, "Create")
}

func TestServer_PayPurchase_NotFound(t *testing.T) {
	fixture := newServerFixture(t)
	unknownID := kernel.NewUUID()

	fixture.factory.On("Create").Return(fixture.uow).Once()
	fixture.uow.On("Begin", mock.Anything).Return(nil).Once()
	fixture.uow.On("Rollback", mock.Anything).Return(nil).Once()
	fixture.uow.On("PurchaseRepository").Return(fixture.purchases).Once()
	fixture.purchases.On("Get", mock.Anything, unknownID).
		Return(nil, errs.NewObjectNotFoundError("Pedido não encontrado", unknownID.String())).
		Once()

	recorder := fixture.perform(http.MethodPut, "/purchase/"+unknownID.String()+"/pay", "")

	require.Equal(t, http.StatusNotFound, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "Entidade não encontrada.", envelope.Error)
	assert.Equal(t, "Pedido não encontrado", envelope.Message)
}

func TestServer_PayPurchase_InvalidTransition(t *testing.T) {
	fixture := newServerFixture(t)
	stored := storedPurchase(t, purchase.Canceled)

	fixture.factory.On("Create").Return(fixture.uow).Once()
	fixture.uow.On("Begin", mock.Anything).Return(nil).Once()
	fixture.uow.On("Rollback", mock.Anything).Return(nil).Once()
	fixture.uow.On("PurchaseRepository").Return(fixture.purchases).Once()
	fixture.purchases.On("Get", mock.Anything, mock.Anything).Return(stored, nil).Once()

	recorder := fixture.perform(http.MethodPut, "/purchase/"+stored.ID().String()+"/pay", "")

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "Violação da integridade dos dados.", envelope.Error)
	fixture.purchases.AssertNotCalled(t, "Update")
}

func TestServer_CancelPurchase(t *testing.T) {
	fixture := newServerFixture(t)
	stored := storedPurchase(t, purchase.WaitingPayment)

	fixture.expectLifecycleTx()
	fixture.purchases.On("Get", mock.Anything, mock.Anything).Return(stored, nil).Once()
	fixture.purchases.On("Update", mock.Anything, stored).Return(nil).Once()
	fixture.history.On("Append", mock.Anything, mock.Anything).Return(nil).Once()
	fixture.reservator.On("Release", mock.Anything, stored.ID(), mock.Anything, 2).Return(nil).Once()

	recorder := fixture.perform(http.MethodPut, "/purchase/"+stored.ID().String()+"/cancel", "")

	require.Equal(t, http.StatusOK, recorder.Code)

	var response adapter.PurchaseResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "CANCELADO", response.Status)
	fixture.reservator.AssertExpectations(t)
}

func TestServer_DeliverPurchase(t *testing.T) {
	fixture := newServerFixture(t)
	stored := storedPurchase(t, purchase.WaitingDelivery)

	fixture.expectLifecycleTx()
	fixture.purchases.On("Get", mock.Anything, mock.Anything).Return(stored, nil).Once()
	fixture.purchases.On("Update", mock.Anything, stored).Return(nil).Once()
	fixture.history.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

	recorder := fixture.perform(http.MethodPut, "/logistics/"+stored.ID().String()+"/deliver", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Pedido "+stored.ID().String()+" entregue", recorder.Body.String())
}

func TestServer_DispatchPurchases_Empty(t *testing.T) {
	fixture := newServerFixture(t)

	fixture.factory.On("Create").Return(fixture.uow).Once()
	fixture.uow.On("Begin", mock.Anything).Return(nil).Once()
	fixture.uow.On("Rollback", mock.Anything).Return(nil).Once()
	fixture.uow.On("Commit", mock.Anything).Return(nil).Once()
	fixture.uow.On("PurchaseRepository").Return(fixture.purchases).Once()
	fixture.purchases.On("GetAllPaidOrderedByZipCode", mock.Anything).
		Return([]*purchase.Purchase{}, nil).Once()

	recorder := fixture.perform(http.MethodPut, "/logistics/dispatch", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestServer_GetPurchase_MalformedID(t *testing.T) {
	fixture := newServerFixture(t)

	recorder := fixture.perform(http.MethodGet, "/purchase/123", "")

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "A entidade não é válida.", envelope.Error)
}

func TestServer_GetPurchasesByStatus_UnknownLabel(t *testing.T) {
	fixture := newServerFixture(t)

	recorder := fixture.perform(http.MethodGet, "/purchase?status=EM%20ROTA", "")

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "A entidade não é válida.", envelope.Error)
}

func TestServer_GetPurchaseHistory_MalformedID(t *testing.T) {
	fixture := newServerFixture(t)

	recorder := fixture.perform(http.MethodGet, "/logistics/history/abc", "")

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Equal(t, "A entidade não é válida.", envelope.Error)
}
