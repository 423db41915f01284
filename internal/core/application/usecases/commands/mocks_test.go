package commands_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByCode(ctx context.Context, code string) (*order.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockConsignmentRepository struct{ mock.Mock }

func (m *MockConsignmentRepository) Add(ctx context.Context, aggregate *consignment.Consignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConsignmentRepository) Update(ctx context.Context, aggregate *consignment.Consignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConsignmentRepository) GetByCode(ctx context.Context, code string) (*consignment.Consignment, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consignment.Consignment), args.Error(1)
}

func (m *MockConsignmentRepository) GetByTrackingID(ctx context.Context, trackingID string) (*consignment.Consignment, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consignment.Consignment), args.Error(1)
}

func (m *MockConsignmentRepository) GetAllByOrderCode(ctx context.Context, orderCode string) ([]*consignment.Consignment, error) {
	args := m.Called(ctx, orderCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*consignment.Consignment), args.Error(1)
}

func (m *MockConsignmentRepository) GetAllByStatus(ctx context.Context, status consignment.Status) ([]*consignment.Consignment, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*consignment.Consignment), args.Error(1)
}

type MockReturnRepository struct{ mock.Mock }

func (m *MockReturnRepository) Add(ctx context.Context, aggregate *returns.Return) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockReturnRepository) Update(ctx context.Context, aggregate *returns.Return) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockReturnRepository) GetByRma(ctx context.Context, rma string) (*returns.Return, error) {
	args := m.Called(ctx, rma)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Return), args.Error(1)
}

func (m *MockReturnRepository) GetAllByOrderCode(ctx context.Context, orderCode string) ([]*returns.Return, error) {
	args := m.Called(ctx, orderCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*returns.Return), args.Error(1)
}

func (m *MockReturnRepository) GetByConsignmentCode(ctx context.Context, consignmentCode string) (*returns.Return, error) {
	args := m.Called(ctx, consignmentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Return), args.Error(1)
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

type MockFulfillmentUoW struct{ mock.Mock }

func (m *MockFulfillmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockFulfillmentUoW) ConsignmentRepository() ports.ConsignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ConsignmentRepository)
}

func (m *MockFulfillmentUoW) ReturnRepository() ports.ReturnRepository {
	args := m.Called()
	return args.Get(0).(ports.ReturnRepository)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockMarketplaceNotifier struct{ mock.Mock }

func (m *MockMarketplaceNotifier) NotifyOrderStatus(ctx context.Context, orderCode string, status order.Status) error {
	args := m.Called(ctx, orderCode, status)
	return args.Error(0)
}
