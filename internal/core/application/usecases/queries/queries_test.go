package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/pkg/errs"
)

func TestNewGetOrderQuery(t *testing.T) {
	query, err := queries.NewGetOrderQuery("ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", query.OrderCode())

	_, err = queries.NewGetOrderQuery("")
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrOrderCodeIsRequired)
}

func TestNewGetConsignmentsByStatusQuery(t *testing.T) {
	query, err := queries.NewGetConsignmentsByStatusQuery(consignment.Shipped)
	require.NoError(t, err)
	assert.Equal(t, consignment.Shipped, query.Status())

	_, err = queries.NewGetConsignmentsByStatusQuery(consignment.Unknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewSearchConsignmentsQuery(t *testing.T) {
	query, err := queries.NewSearchConsignmentsQuery("TRK")
	require.NoError(t, err)
	assert.Equal(t, "TRK", query.Term())

	_, err = queries.NewSearchConsignmentsQuery("")
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrSearchTermIsRequired)
}

func TestNewGetReturnConsignmentQuery(t *testing.T) {
	query, err := queries.NewGetReturnConsignmentQuery("CONS-1")
	require.NoError(t, err)
	assert.Equal(t, "CONS-1", query.ConsignmentCode())

	_, err = queries.NewGetReturnConsignmentQuery("")
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrConsignmentCodeIsRequired)
}

func TestQueryValidate_NotConstructed(t *testing.T) {
	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(),
		queries.ErrGetOrderQueryIsNotConstructed)
	assert.ErrorIs(t, queries.SearchConsignmentsQuery{}.Validate(),
		queries.ErrSearchConsignmentsQueryIsNotConstructed)
}
