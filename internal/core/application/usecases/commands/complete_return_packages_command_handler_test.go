package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
)

// newAnnouncedReturn builds a return in Receiving with one entry, one
// consignment and one tracked package.
func newAnnouncedReturn(t *testing.T, quantity int) *returns.Return {
	t.Helper()
	ret, err := returns.NewReturn("RMA-1", "MPR-1", "ORD-1",
		returns.Customer{Name: "Jane Doe"}, time.Now().UTC())
	require.NoError(t, err)
	entry, err := returns.NewEntry(1, quantity, "damaged")
	require.NoError(t, err)
	retCons, err := returns.NewConsignment("CONS-1", quantity)
	require.NoError(t, err)
	pkg, err := returns.NewPackage("PKG-1")
	require.NoError(t, err)
	require.NoError(t, retCons.AddPackage(pkg))
	require.NoError(t, entry.AddConsignment(retCons))
	require.NoError(t, ret.AddEntry(entry))
	return ret
}

func TestCompleteReturnPackagesCommandHandler_Handle_Delivered(t *testing.T) {
	ctx := t.Context()

	// The order already absorbed the full return and the consignment was
	// reconciled when the return was announced.
	ord := newOrderFixture(t, map[int]int{1: 5})
	require.NoError(t, ord.ApplyReturn(1, 5, time.Now().UTC()))
	require.NoError(t, ord.ApplyRollup(order.Shipped, time.Now().UTC()))

	cons := newShippedConsignmentFixture(t, consignment.CarrierDHL)
	require.NoError(t, cons.ApplyAdjustment(1, 5))
	reconciled, err := cons.Reconcile(consignment.Returned)
	require.NoError(t, err)
	require.True(t, reconciled)

	ret := newAnnouncedReturn(t, 5)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByCode", ctx, "ORD-1").Return(ord, nil)
	orderRepo.On("Update", ctx, ord).Return(nil)

	consignmentRepo := new(MockConsignmentRepository)
	consignmentRepo.On("GetAllByOrderCode", ctx, "ORD-1").
		Return([]*consignment.Consignment{cons}, nil)

	returnRepo := new(MockReturnRepository)
	returnRepo.On("GetByRma", ctx, "RMA-1").Return(ret, nil)
	returnRepo.On("Update", ctx, ret).Return(nil)
	returnRepo.On("GetAllByOrderCode", ctx, "ORD-1").Return([]*returns.Return{ret}, nil)

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
	notifier.On("NotifyOrderStatus", ctx, "ORD-1", order.Returned).Return(nil).Once()

	occurredAt := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	cmd, err := commands.NewCompleteReturnPackagesCommand("RMA-1", "delivered", occurredAt)
	require.NoError(t, err)

	h := commands.NewCompleteReturnPackagesCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, returns.Completed, ret.Status())
	retCons, err := ret.ConsignmentByCode("CONS-1")
	require.NoError(t, err)
	assert.Equal(t, 5, retCons.CompletedQuantity())
	require.NotNil(t, retCons.CompletedDate())
	assert.Equal(t, occurredAt, *retCons.CompletedDate())

	// The full return promotes the order to Returned, not Canceled.
	assert.Equal(t, order.Returned, ord.Status())
	notifier.AssertExpectations(t)
}

func TestCompleteReturnPackagesCommandHandler_Handle_AlreadySettled(t *testing.T) {
	ctx := t.Context()
	ret := newAnnouncedReturn(t, 5)
	require.NoError(t, ret.SetAllPackageStatuses(returns.PackageDelivered, time.Now().UTC()))
	_, err := ret.Reconcile()
	require.NoError(t, err)
	require.NoError(t, ret.StampCompletedDates(time.Now().UTC()))

	returnRepo := new(MockReturnRepository)
	returnRepo.On("GetByRma", ctx, "RMA-1").Return(ret, nil)
	returnRepo.On("Update", ctx, ret).Return(nil)

	uow := new(MockFulfillmentUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("ReturnRepository").Return(returnRepo)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow)

	cmd, err := commands.NewCompleteReturnPackagesCommand("RMA-1", "delivered", time.Now().UTC())
	require.NoError(t, err)

	h := commands.NewCompleteReturnPackagesCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	// Nothing changed, so the order is never touched.
	uow.AssertNotCalled(t, "OrderRepository")
}
