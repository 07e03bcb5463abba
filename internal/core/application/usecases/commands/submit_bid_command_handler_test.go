package commands_test

import (
	"testing"

	"procserve/internal/core/application/usecases/commands"
	"procserve/internal/core/domain/model/bid"
	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serverIdentity(tenantID kernel.UUID) ports.IdentityContext {
	return ports.IdentityContext{
		TenantID: tenantID,
		UserID:   kernel.NewUUID(),
		Role:     ports.RoleProcessServer,
	}
}

func TestSubmitBidCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	owner := customerIdentity()
	aggregate, recipientID := biddingOrder(t, owner)
	bidder := serverIdentity(owner.TenantID)
	amount, err := kernel.NewMoneyFromCents(8800)
	require.NoError(t, err)
	cmd, err := commands.NewSubmitBidCommand(
		kernel.NewUUID(), aggregate.ID(), recipientID, bidder, amount, "same day",
	)
	require.NoError(t, err)

	bidRepo := new(MockBidRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockBidUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("BidRepository").Return(bidRepo).Once()
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	bidRepo.On("Add", mock.Anything, mock.MatchedBy(func(b *bid.Bid) bool {
		return b.Status() == bid.Pending &&
			b.ProcessServerID().IsEqual(bidder.UserID) &&
			b.Amount().IsEqual(amount)
	})).Return(nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitBidCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Bidding, aggregate.Status())
	bidRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitBidCommandHandler_Handle_AssignedRecipient(t *testing.T) {
	ctx := t.Context()
	owner := customerIdentity()
	aggregate, recipientID := biddingOrder(t, owner)
	price, err := kernel.NewMoneyFromCents(9000)
	require.NoError(t, err)
	require.NoError(t, aggregate.BindServer(recipientID, kernel.NewUUID(), price, aggregate.CreatedAt()))

	bidder := serverIdentity(owner.TenantID)
	amount, _ := kernel.NewMoneyFromCents(8800)
	cmd, err := commands.NewSubmitBidCommand(
		kernel.NewUUID(), aggregate.ID(), recipientID, bidder, amount, "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockBidUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitBidCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	var conflict *errs.ConflictError
	assert.ErrorAs(t, err, &conflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestSubmitBidCommandHandler_Handle_ForeignTenant(t *testing.T) {
	ctx := t.Context()
	owner := customerIdentity()
	aggregate, recipientID := biddingOrder(t, owner)

	// A process server of a different tenant must not see the order.
	bidder := serverIdentity(kernel.NewUUID())
	amount, err := kernel.NewMoneyFromCents(8800)
	require.NoError(t, err)
	cmd, err := commands.NewSubmitBidCommand(
		kernel.NewUUID(), aggregate.ID(), recipientID, bidder, amount, "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockBidUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBidUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitBidCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	var unauthorized *errs.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "BidRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestNewSubmitBidCommand(t *testing.T) {
	amount, _ := kernel.NewMoneyFromCents(8800)

	t.Run("should reject non-server roles", func(t *testing.T) {
		_, err := commands.NewSubmitBidCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			customerIdentity(), amount, "",
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "role")
	})

	t.Run("should reject a zero amount", func(t *testing.T) {
		_, err := commands.NewSubmitBidCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			serverIdentity(kernel.NewUUID()), kernel.Zero(), "",
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount")
	})
}
