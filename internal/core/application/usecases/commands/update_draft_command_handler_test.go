package commands_test

import (
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

func ptr[T any](v T) *T { return &v }

func newStoredDraft(t *testing.T, identity ports.IdentityContext) *order.Order {
	t.Helper()

	draft, err := order.NewDraft(kernel.NewUUID(), identity.TenantID, identity.UserID, time.Now().UTC())
	require.NoError(t, err)
	return draft
}

func TestUpdateDraftCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	identity := customerIdentity()
	draft := newStoredDraft(t, identity)
	existing, err := draft.AddRecipient(kernel.NewUUID())
	require.NoError(t, err)
	doomed, err := draft.AddRecipient(kernel.NewUUID())
	require.NoError(t, err)

	existingID := existing.ID()
	cmd, err := commands.NewUpdateDraftCommand(
		draft.ID(), 7, identity,
		order.Patch{CaseNumber: ptr("CV-2026-00123")},
		[]commands.RecipientInput{
			{ID: &existingID, Patch: order.RecipientPatch{Name: ptr("Jane Roe")}},
			{Patch: order.RecipientPatch{Name: ptr("New Recipient")}},
		},
	)
	require.NoError(t, err)

	repo := new(MockDraftRepository)
	uow := new(MockDraftUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DraftRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, draft.ID()).Return(draft, nil).Once(),
		repo.On("Upsert", mock.Anything, draft, int64(7)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDraftUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDraftCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "CV-2026-00123", draft.CaseNumber())
	assert.Len(t, draft.Recipients(), 2)
	updated, err := draft.Recipient(existingID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", updated.Name())
	_, err = draft.Recipient(doomed.ID())
	assert.Error(t, err, "recipient absent from the payload is removed")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateDraftCommandHandler_Handle_SwitchToGuidedInOneSave(t *testing.T) {
	ctx := t.Context()
	identity := customerIdentity()
	draft := newStoredDraft(t, identity)
	recipient, err := draft.AddRecipient(kernel.NewUUID())
	require.NoError(t, err)

	recipientID := recipient.ID()
	serverID := kernel.NewUUID()
	guided := order.Guided
	cmd, err := commands.NewUpdateDraftCommand(
		draft.ID(), 3, identity,
		order.Patch{},
		[]commands.RecipientInput{
			{ID: &recipientID, Mode: &guided, ServerID: &serverID},
		},
	)
	require.NoError(t, err)

	repo := new(MockDraftRepository)
	uow := new(MockDraftUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DraftRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, draft.ID()).Return(draft, nil).Once()
	repo.On("Upsert", mock.Anything, draft, int64(3)).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDraftUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDraftCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	updated, err := draft.Recipient(recipientID)
	require.NoError(t, err)
	assert.Equal(t, order.Guided, updated.AssignmentMode())
	require.NotNil(t, updated.AssignedServer())
	assert.True(t, updated.AssignedServer().IsEqual(serverID))
}

func TestUpdateDraftCommandHandler_Handle_ForeignDraft(t *testing.T) {
	ctx := t.Context()
	owner := customerIdentity()
	draft := newStoredDraft(t, owner)

	intruder := ports.IdentityContext{
		TenantID: owner.TenantID,
		UserID:   kernel.NewUUID(),
		Role:     ports.RoleCustomer,
	}
	cmd, err := commands.NewUpdateDraftCommand(draft.ID(), 1, intruder, order.Patch{}, nil)
	require.NoError(t, err)

	repo := new(MockDraftRepository)
	uow := new(MockDraftUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DraftRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, draft.ID()).Return(draft, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDraftUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDraftCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	var unauthorized *errs.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateDraftCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	identity := customerIdentity()
	draftID := kernel.NewUUID()
	cmd, err := commands.NewUpdateDraftCommand(draftID, 1, identity, order.Patch{}, nil)
	require.NoError(t, err)

	repo := new(MockDraftRepository)
	uow := new(MockDraftUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DraftRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, draftID).
		Return(nil, errs.NewObjectNotFoundError("draftId", draftID.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDraftUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateDraftCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	var notFound *errs.ObjectNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestNewUpdateDraftCommand(t *testing.T) {
	t.Run("should reject non-positive edit sequence", func(t *testing.T) {
		_, err := commands.NewUpdateDraftCommand(kernel.NewUUID(), 0, customerIdentity(), order.Patch{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "editSeq")

		_, err = commands.NewUpdateDraftCommand(kernel.NewUUID(), -5, customerIdentity(), order.Patch{}, nil)
		require.Error(t, err)
	})

	t.Run("should reject invalid identity", func(t *testing.T) {
		_, err := commands.NewUpdateDraftCommand(kernel.NewUUID(), 1, ports.IdentityContext{}, order.Patch{}, nil)
		require.Error(t, err)
	})
}
