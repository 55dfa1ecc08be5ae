package services

import (
	"testing"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionForwardAndSkip(t *testing.T) {
	f := newFixture(t, nil)
	res := f.placeCashOrder(t)

	// pending straight to preparing, skipping confirmed.
	o, err := f.orders.Transition(res.ID, entity.OrderPreparing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPreparing, o.Status)

	o, err = f.orders.Transition(res.ID, entity.OrderReady)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderReady, o.Status)
}

func TestTransitionBackwards(t *testing.T) {
	f := newFixture(t, nil)
	res := f.placeCashOrder(t)

	_, err := f.orders.Transition(res.ID, entity.OrderReady)
	require.NoError(t, err)

	// Mis-click correction: step back into preparing.
	o, err := f.orders.Transition(res.ID, entity.OrderPreparing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPreparing, o.Status)
}

func TestTransitionTerminalFrozen(t *testing.T) {
	f := newFixture(t, nil)
	res := f.placeCashOrder(t)

	_, err := f.orders.Transition(res.ID, entity.OrderCompleted)
	require.NoError(t, err)

	_, err = f.orders.Transition(res.ID, entity.OrderPreparing)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.orders.Transition(res.ID, entity.OrderCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionUnknownStatus(t *testing.T) {
	f := newFixture(t, nil)
	res := f.placeCashOrder(t)

	_, err := f.orders.Transition(res.ID, entity.OrderStatus("teleported"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionUnknownOrder(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.orders.Transition(9999, entity.OrderPreparing)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCompleteSetsCompletedAtAndFreesTable(t *testing.T) {
	f := newFixture(t, nil)
	res := f.placeCashOrder(t)
	require.Equal(t, entity.TableOccupied, f.tableStatus(t))

	_, err := f.orders.Transition(res.ID, entity.OrderPreparing)
	require.NoError(t, err)

	o, err := f.orders.Transition(res.ID, entity.OrderCompleted)
	require.NoError(t, err)
	require.NotNil(t, o.CompletedAt)
	assert.Equal(t, entity.TableAvailable, f.tableStatus(t))
}

func TestCancelFreesTable(t *testing.T) {
	f := newFixture(t, nil)
	res := f.placeCashOrder(t)

	o, err := f.orders.Transition(res.ID, entity.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, o.Status)
	assert.Nil(t, o.CompletedAt)
	assert.Equal(t, entity.TableAvailable, f.tableStatus(t))
}

func TestTableStaysOccupiedWhileOtherOrdersActive(t *testing.T) {
	f := newFixture(t, nil)
	first := f.placeCashOrder(t)
	second := f.placeCashOrder(t)

	_, err := f.orders.Transition(first.ID, entity.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.TableOccupied, f.tableStatus(t))

	_, err = f.orders.Transition(second.ID, entity.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.TableAvailable, f.tableStatus(t))
}

func TestTransitionFiresStatusCallback(t *testing.T) {
	f := newFixture(t, nil)
	res := f.placeCashOrder(t)

	var got *entity.Order
	f.orders.OnOrderStatusChanged = func(o *entity.Order) { got = o }

	_, err := f.orders.Transition(res.ID, entity.OrderPreparing)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, res.ID, got.ID)
	assert.Equal(t, entity.OrderPreparing, got.Status)
}
