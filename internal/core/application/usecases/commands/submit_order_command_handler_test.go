package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"procserve/internal/core/application/usecases/commands"
	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockSubmitUoW struct{ mock.Mock }

func (m *MockSubmitUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSubmitUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSubmitUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSubmitUoW) DraftRepository() ports.DraftRepository {
	args := m.Called()
	return args.Get(0).(ports.DraftRepository)
}
func (m *MockSubmitUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockSubmitUoWFactory struct{ mock.Mock }

func (m *MockSubmitUoWFactory) Create() commands.SubmitUoW {
	args := m.Called()
	return args.Get(0).(commands.SubmitUoW)
}

type MockGeographyService struct{ mock.Mock }

func (m *MockGeographyService) StatesList(ctx context.Context) ([]ports.State, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.State), args.Error(1)
}
func (m *MockGeographyService) CitiesByState(ctx context.Context, stateID string) ([]ports.City, error) {
	args := m.Called(ctx, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.City), args.Error(1)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// newSubmittableDraft builds a draft that passes every submission check.
func newSubmittableDraft(t *testing.T, identity ports.IdentityContext) *order.Order {
	t.Helper()

	draft, err := order.NewDraft(kernel.NewUUID(), identity.TenantID, identity.UserID, time.Now().UTC())
	require.NoError(t, err)

	recipient, err := draft.AddRecipient(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, draft.UpdateRecipient(recipient.ID(), order.RecipientPatch{
		Name:           ptr("Jane Roe"),
		Address:        ptr("12 Main St"),
		City:           ptr("Austin"),
		State:          ptr("TX"),
		ZipCode:        ptr("78701"),
		ProcessService: ptr(true),
	}))
	deadline := time.Now().UTC().AddDate(0, 0, 14)
	require.NoError(t, draft.ApplyPatch(order.Patch{Deadline: &deadline}))
	return draft
}

func texasOnly() []ports.State {
	return []ports.State{{ID: "TX", Name: "Texas"}}
}

func TestSubmitOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	identity := customerIdentity()
	draft := newSubmittableDraft(t, identity)
	cmd, err := commands.NewSubmitOrderCommand(draft.ID(), identity)
	require.NoError(t, err)

	draftRepo := new(MockDraftRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockSubmitUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DraftRepository").Return(draftRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	draftRepo.On("Get", mock.Anything, draft.ID()).Return(draft, nil).Once()
	orderRepo.On("Add", mock.Anything, draft).Return(nil).Once()
	draftRepo.On("Delete", mock.Anything, draft.ID()).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	geography := new(MockGeographyService)
	geography.On("StatesList", mock.Anything).Return(texasOnly(), nil).Once()

	publisher := new(MockOrderEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Kind == ports.EventOrderSubmitted && e.OrderID.IsEqual(draft.ID())
	})).Return(nil).Once()

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(factory, geography, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Open, draft.Status())
	assert.True(t, strings.HasPrefix(draft.OrderNumber(), "PS-"))
	assert.Len(t, draft.OrderNumber(), len("PS-20060102-")+8)
	draftRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSubmitOrderCommandHandler_Handle_UnknownState(t *testing.T) {
	ctx := t.Context()
	identity := customerIdentity()
	draft := newSubmittableDraft(t, identity)
	cmd, err := commands.NewSubmitOrderCommand(draft.ID(), identity)
	require.NoError(t, err)

	draftRepo := new(MockDraftRepository)
	uow := new(MockSubmitUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DraftRepository").Return(draftRepo).Once()
	draftRepo.On("Get", mock.Anything, draft.ID()).Return(draft, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	geography := new(MockGeographyService)
	geography.On("StatesList", mock.Anything).
		Return([]ports.State{{ID: "CA", Name: "California"}}, nil).Once()

	publisher := new(MockOrderEventPublisher)
	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(factory, geography, publisher)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	var invalid *errs.ValueIsInvalidError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, order.Draft, draft.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestSubmitOrderCommandHandler_Handle_IncompleteDraft(t *testing.T) {
	ctx := t.Context()
	identity := customerIdentity()
	draft, err := order.NewDraft(kernel.NewUUID(), identity.TenantID, identity.UserID, time.Now().UTC())
	require.NoError(t, err)
	cmd, err := commands.NewSubmitOrderCommand(draft.ID(), identity)
	require.NoError(t, err)

	draftRepo := new(MockDraftRepository)
	uow := new(MockSubmitUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DraftRepository").Return(draftRepo).Once()
	draftRepo.On("Get", mock.Anything, draft.ID()).Return(draft, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	geography := new(MockGeographyService)
	geography.On("StatesList", mock.Anything).Return(texasOnly(), nil).Once()

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(factory, geography, new(MockOrderEventPublisher))
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipients")
	assert.Equal(t, order.Draft, draft.Status())
	assert.Empty(t, draft.OrderNumber())
}

func TestSubmitOrderCommandHandler_Handle_PublishFailureDoesNotFailSubmission(t *testing.T) {
	ctx := t.Context()
	identity := customerIdentity()
	draft := newSubmittableDraft(t, identity)
	cmd, err := commands.NewSubmitOrderCommand(draft.ID(), identity)
	require.NoError(t, err)

	draftRepo := new(MockDraftRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockSubmitUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DraftRepository").Return(draftRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	draftRepo.On("Get", mock.Anything, draft.ID()).Return(draft, nil).Once()
	orderRepo.On("Add", mock.Anything, draft).Return(nil).Once()
	draftRepo.On("Delete", mock.Anything, draft.ID()).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	geography := new(MockGeographyService)
	geography.On("StatesList", mock.Anything).Return(texasOnly(), nil).Once()

	publisher := new(MockOrderEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).
		Return(assert.AnError).Once()

	factory := new(MockSubmitUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderCommandHandler(factory, geography, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}
