package queries

import (
	"testing"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery_Valid(t *testing.T) {
	actor := queryActor(t, kernel.RoleStaff)

	query, err := NewListOrdersQuery(actor, nil)

	require.NoError(t, err)
	assert.True(t, query.Actor().Is(actor.ID()))
	assert.Nil(t, query.Status())
}

func TestNewListOrdersQuery_WithStatusFilter(t *testing.T) {
	actor := queryActor(t, kernel.RoleCustomer)
	status := order.StatusConfirmed

	query, err := NewListOrdersQuery(actor, &status)

	require.NoError(t, err)
	require.NotNil(t, query.Status())
	assert.Equal(t, order.StatusConfirmed, *query.Status())
}

func TestNewListOrdersQuery_InvalidStatusFilter(t *testing.T) {
	actor := queryActor(t, kernel.RoleCustomer)
	status := order.StatusUnknown

	_, err := NewListOrdersQuery(actor, &status)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestListOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	var query ListOrdersQuery

	err := query.Validate()

	assert.ErrorIs(t, err, ErrListOrdersQueryIsNotConstructed)
}
