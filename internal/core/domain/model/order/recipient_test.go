package order_test

import (
	"testing"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipient(t *testing.T) {
	t.Run("should create recipient with draft defaults", func(t *testing.T) {
		id := kernel.NewUUID()

		r, err := order.NewRecipient(id)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.True(t, r.ID().IsEqual(id))
		assert.Equal(t, order.Automated, r.AssignmentMode())
		assert.Equal(t, order.RecipientOpen, r.Status())
		assert.Equal(t, order.PriceUnset, r.PriceStatus())
		assert.Equal(t, 0, r.DeliveryAttempts())
		assert.Nil(t, r.QuotedPrice())
		assert.Nil(t, r.NegotiatedPrice())
		assert.Nil(t, r.FinalAgreedPrice())
	})

	t.Run("should fail with invalid id", func(t *testing.T) {
		var empty kernel.UUID

		r, err := order.NewRecipient(empty)

		require.Error(t, err)
		assert.Nil(t, r)
	})
}

func TestRecipient_Validate(t *testing.T) {
	var r order.Recipient
	assert.ErrorIs(t, r.Validate(), order.ErrRecipientIsNotConstructed)

	var nilR *order.Recipient
	assert.ErrorIs(t, nilR.Validate(), order.ErrRecipientIsNotConstructed)
}

func TestRecipient_ValidateForSubmission(t *testing.T) {
	fill := func(t *testing.T, draft *order.Order, id kernel.UUID, patch order.RecipientPatch) *order.Recipient {
		t.Helper()
		require.NoError(t, draft.UpdateRecipient(id, patch))
		r, err := draft.Recipient(id)
		require.NoError(t, err)
		return r
	}

	t.Run("should pass for a complete automated recipient", func(t *testing.T) {
		draft := newTestDraft(t)
		added, err := draft.AddRecipient(kernel.NewUUID())
		require.NoError(t, err)
		r := fill(t, draft, added.ID(), order.RecipientPatch{
			Name:          ptr("Jane Roe"),
			Address:       ptr("12 Main St"),
			CertifiedMail: ptr(true),
		})

		assert.NoError(t, r.ValidateForSubmission())
	})

	t.Run("should report all missing fields at once", func(t *testing.T) {
		draft := newTestDraft(t)
		added, err := draft.AddRecipient(kernel.NewUUID())
		require.NoError(t, err)

		err = added.ValidateForSubmission()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "recipient name")
		assert.Contains(t, err.Error(), "recipient address")
		assert.Contains(t, err.Error(), "neither process service nor certified mail")
	})

	t.Run("should require a selected server for guided mode", func(t *testing.T) {
		draft := newTestDraft(t)
		added, err := draft.AddRecipient(kernel.NewUUID())
		require.NoError(t, err)
		r := fill(t, draft, added.ID(), order.RecipientPatch{
			Name:           ptr("Jane Roe"),
			Address:        ptr("12 Main St"),
			ProcessService: ptr(true),
		})
		require.NoError(t, draft.SetAssignmentMode(r.ID(), order.Guided))
		r, err = draft.Recipient(added.ID())
		require.NoError(t, err)

		err = r.ValidateForSubmission()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no selected server")
	})
}

func TestRecipient_PriceStatusTransitions(t *testing.T) {
	t.Run("should move to Quoted on the first quote only", func(t *testing.T) {
		draft := newTestDraft(t)
		r, err := draft.AddRecipient(kernel.NewUUID())
		require.NoError(t, err)
		quote, _ := kernel.NewMoneyFromCents(6500)

		require.NoError(t, draft.UpdateRecipient(r.ID(), order.RecipientPatch{QuotedPrice: &quote}))

		current, _ := draft.Recipient(r.ID())
		assert.Equal(t, order.PriceQuoted, current.PriceStatus())
		require.NotNil(t, current.QuotedPrice())
		assert.True(t, current.QuotedPrice().IsEqual(quote))
	})

	t.Run("should move to Negotiating when a counter is recorded", func(t *testing.T) {
		draft := newTestDraft(t)
		r, err := draft.AddRecipient(kernel.NewUUID())
		require.NoError(t, err)
		quote, _ := kernel.NewMoneyFromCents(6500)
		counter, _ := kernel.NewMoneyFromCents(6000)
		require.NoError(t, draft.UpdateRecipient(r.ID(), order.RecipientPatch{QuotedPrice: &quote}))

		require.NoError(t, draft.UpdateRecipient(r.ID(), order.RecipientPatch{NegotiatedPrice: &counter}))

		current, _ := draft.Recipient(r.ID())
		assert.Equal(t, order.PriceNegotiating, current.PriceStatus())
		require.NotNil(t, current.NegotiatedPrice())
		assert.True(t, current.NegotiatedPrice().IsEqual(counter))
	})
}

func TestParseAssignmentMode(t *testing.T) {
	t.Run("should parse the wire strings", func(t *testing.T) {
		mode, err := order.ParseAssignmentMode("AUTOMATED")
		require.NoError(t, err)
		assert.Equal(t, order.Automated, mode)

		mode, err = order.ParseAssignmentMode("GUIDED")
		require.NoError(t, err)
		assert.Equal(t, order.Guided, mode)
	})

	t.Run("should reject unknown input", func(t *testing.T) {
		_, err := order.ParseAssignmentMode("manual")
		assert.Error(t, err)

		_, err = order.ParseAssignmentMode("automated")
		assert.Error(t, err)
	})
}

func TestServiceOptions_HasServiceMethod(t *testing.T) {
	assert.False(t, order.ServiceOptions{}.HasServiceMethod())
	assert.False(t, order.ServiceOptions{RushService: true, RemoteLocation: true}.HasServiceMethod())
	assert.True(t, order.ServiceOptions{ProcessService: true}.HasServiceMethod())
	assert.True(t, order.ServiceOptions{CertifiedMail: true}.HasServiceMethod())
}

func TestRecipientStatus_AcceptsPriceChanges(t *testing.T) {
	assert.True(t, order.RecipientOpen.AcceptsPriceChanges())
	assert.True(t, order.RecipientBidding.AcceptsPriceChanges())
	assert.False(t, order.RecipientAssigned.AcceptsPriceChanges())
	assert.False(t, order.RecipientInProgress.AcceptsPriceChanges())
	assert.False(t, order.RecipientCompleted.AcceptsPriceChanges())
	assert.False(t, order.RecipientFailed.AcceptsPriceChanges())
}
