package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(id))

	_, err = queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)

	var zero queries.GetOrderQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetCustomerOrdersQuery(t *testing.T) {
	query, err := queries.NewGetCustomerOrdersQuery("customer-1")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "customer-1", query.CustomerID())

	_, err = queries.NewGetCustomerOrdersQuery("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero queries.GetCustomerOrdersQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetCustomerOrdersQueryIsNotConstructed)
}
