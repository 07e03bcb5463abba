package queries_test

import (
	"testing"

	"procserve/internal/core/application/usecases/queries"
	"procserve/internal/core/domain/model/order"
	"procserve/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("should default the sort field to created_at", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery(customerIdentity(), nil, "", true, 20, 0)

		require.NoError(t, err)
		assert.Equal(t, queries.SortByCreatedAt, query.SortBy())
		assert.True(t, query.Descending())
		assert.Nil(t, query.Status())
	})

	t.Run("should accept the deadline sort and a status filter", func(t *testing.T) {
		status := order.Bidding
		query, err := queries.NewListOrdersQuery(customerIdentity(), &status, queries.SortByDeadline, false, 50, 100)

		require.NoError(t, err)
		assert.Equal(t, queries.SortByDeadline, query.SortBy())
		require.NotNil(t, query.Status())
		assert.Equal(t, order.Bidding, *query.Status())
		assert.Equal(t, 50, query.Limit())
		assert.Equal(t, 100, query.Offset())
	})

	t.Run("should reject a sort field outside the whitelist", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(customerIdentity(), nil, "amount; DROP TABLE orders", false, 20, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sortBy")
	})

	t.Run("should reject out-of-range limits", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(customerIdentity(), nil, "", false, 0, 0)
		require.Error(t, err)
		var outOfRange *errs.ValueIsOutOfRangeError
		assert.ErrorAs(t, err, &outOfRange)

		_, err = queries.NewListOrdersQuery(customerIdentity(), nil, "", false, 101, 0)
		require.Error(t, err)
	})

	t.Run("should reject a negative offset", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(customerIdentity(), nil, "", false, 20, -1)
		require.Error(t, err)
	})

	t.Run("should reject an invalid status filter", func(t *testing.T) {
		status := order.Unknown
		_, err := queries.NewListOrdersQuery(customerIdentity(), &status, "", false, 20, 0)
		require.Error(t, err)
	})
}
