package commands_test

import (
	"context"

	"purchases/internal/core/application/usecases/commands"
	"purchases/internal/core/domain/model/history"
	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/domain/model/purchase"
	"purchases/internal/core/ports"

	"github.com/stretchr/testify/mock"
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
