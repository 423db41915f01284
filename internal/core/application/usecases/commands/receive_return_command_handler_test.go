package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"
)

func newReturnLine(quantity int) []commands.ReturnLine {
	return []commands.ReturnLine{{
		OrderEntryNumber: 1,
		Quantity:         quantity,
		Reason:           "damaged",
		Allocations: []commands.ReturnAllocation{{
			ConsignmentCode: "CONS-1",
			Quantity:        quantity,
			TrackingIDs:     []string{"PKG-1"},
		}},
	}}
}

func TestNewReceiveReturnCommand_AllocationMismatch(t *testing.T) {
	lines := []commands.ReturnLine{{
		OrderEntryNumber: 1,
		Quantity:         3,
		Allocations: []commands.ReturnAllocation{{
			ConsignmentCode: "CONS-1",
			Quantity:        2,
		}},
	}}
	_, err := commands.NewReceiveReturnCommand("MPR-1", "ORD-1", "Jane Doe", "",
		time.Now(), lines)
	require.Error(t, err)
}

func TestReceiveReturnCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ord := newOrderFixture(t, map[int]int{1: 5})
	cons := newShippedConsignmentFixture(t, consignment.CarrierDHL)
	require.NoError(t, cons.Deliver(time.Now().UTC(), "delivered"))

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByCode", ctx, "ORD-1").Return(ord, nil)
	orderRepo.On("Update", ctx, ord).Return(nil)

	consignmentRepo := new(MockConsignmentRepository)
	consignmentRepo.On("GetByCode", ctx, "CONS-1").Return(cons, nil)
	consignmentRepo.On("Update", ctx, cons).Return(nil)
	consignmentRepo.On("GetAllByOrderCode", ctx, "ORD-1").
		Return([]*consignment.Consignment{cons}, nil)

	returnRepo := new(MockReturnRepository)
	returnRepo.On("Add", ctx, mock.AnythingOfType("*returns.Return")).Return(nil)
	returnRepo.On("GetAllByOrderCode", ctx, "ORD-1").
		Return([]*returns.Return{returnsInReceiving(t)}, nil)

	uow := new(MockFulfillmentUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ConsignmentRepository").Return(consignmentRepo)
	uow.On("ReturnRepository").Return(returnRepo)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow)

	cmd, err := commands.NewReceiveReturnCommand("MPR-1", "ORD-1", "Jane Doe", "",
		time.Now().UTC(), newReturnLine(2))
	require.NoError(t, err)

	h := commands.NewReceiveReturnCommandHandler(factory, nil)
	rma, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.NotEmpty(t, rma)

	// Both counters absorbed the returned quantity.
	orderEntry, err := ord.Entry(1)
	require.NoError(t, err)
	assert.Equal(t, 2, orderEntry.CanceledOrReturnedQuantity())
	consignmentEntry, err := cons.Entry(1)
	require.NoError(t, err)
	assert.Equal(t, 2, consignmentEntry.CancelledOrReturnedQuantity())

	// Partial return, the consignment stays delivered.
	assert.Equal(t, consignment.Delivered, cons.Status())
}

func TestReceiveReturnCommandHandler_Handle_FullReturnReconcilesConsignment(t *testing.T) {
	ctx := t.Context()
	ord := newOrderFixture(t, map[int]int{1: 5})
	cons := newShippedConsignmentFixture(t, consignment.CarrierDHL)
	require.NoError(t, cons.Deliver(time.Now().UTC(), "delivered"))

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByCode", ctx, "ORD-1").Return(ord, nil)
	orderRepo.On("Update", ctx, ord).Return(nil)

	consignmentRepo := new(MockConsignmentRepository)
	consignmentRepo.On("GetByCode", ctx, "CONS-1").Return(cons, nil)
	consignmentRepo.On("Update", ctx, cons).Return(nil)
	consignmentRepo.On("GetAllByOrderCode", ctx, "ORD-1").
		Return([]*consignment.Consignment{cons}, nil)

	announced := returnsInReceiving(t)
	returnRepo := new(MockReturnRepository)
	returnRepo.On("Add", ctx, mock.AnythingOfType("*returns.Return")).Return(nil)
	returnRepo.On("GetAllByOrderCode", ctx, "ORD-1").
		Return([]*returns.Return{announced}, nil)

	uow := new(MockFulfillmentUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ConsignmentRepository").Return(consignmentRepo)
	uow.On("ReturnRepository").Return(returnRepo)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow)

	notifier := new(MockMarketplaceNotifier)
	notifier.On("NotifyOrderStatus", ctx, "ORD-1", order.Shipped).Return(nil).Once()

	cmd, err := commands.NewReceiveReturnCommand("MPR-1", "ORD-1", "Jane Doe", "",
		time.Now().UTC(), newReturnLine(5))
	require.NoError(t, err)

	h := commands.NewReceiveReturnCommandHandler(factory, notifier)
	rma, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.NotEmpty(t, rma)

	// Everything came back, so the consignment leaves Delivered.
	assert.Equal(t, consignment.Returned, cons.Status())
	// The return is still underway, the order shows goods in motion.
	assert.Equal(t, order.Shipped, ord.Status())
	notifier.AssertExpectations(t)
}

func TestReceiveReturnCommandHandler_Handle_GuardRejectionRollsBack(t *testing.T) {
	ctx := t.Context()
	ord := newOrderFixture(t, map[int]int{1: 5})
	cons := newShippedConsignmentFixture(t, consignment.CarrierDHL)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByCode", ctx, "ORD-1").Return(ord, nil)

	consignmentRepo := new(MockConsignmentRepository)
	consignmentRepo.On("GetByCode", ctx, "CONS-1").Return(cons, nil)

	returnRepo := new(MockReturnRepository)

	uow := new(MockFulfillmentUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ConsignmentRepository").Return(consignmentRepo)
	uow.On("ReturnRepository").Return(returnRepo)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow)

	// The consignment only shipped 5 units of entry 1.
	cmd, err := commands.NewReceiveReturnCommand("MPR-1", "ORD-1", "Jane Doe", "",
		time.Now().UTC(), newReturnLine(7))
	require.NoError(t, err)

	h := commands.NewReceiveReturnCommandHandler(factory, nil)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrQuantityExceeded)
	uow.AssertNotCalled(t, "Commit", ctx)
	returnRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
}

func returnsInReceiving(t *testing.T) *returns.Return {
	t.Helper()
	ret, err := returns.NewReturn("RMA-0", "MPR-1", "ORD-1",
		returns.Customer{Name: "Jane Doe"}, time.Now().UTC())
	require.NoError(t, err)
	return ret
}
