package queries_test

import (
	"testing"

	"orders/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersAwaitingRecalculationQuery(t *testing.T) {
	t.Run("constructed query validates", func(t *testing.T) {
		query, err := queries.NewGetOrdersAwaitingRecalculationQuery()

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetOrdersAwaitingRecalculationQuery

		err := query.Validate()
		require.Error(t, err)
		require.ErrorIs(t, err, queries.ErrGetOrdersAwaitingRecalculationQueryIsNotConstructed)
	})
}
