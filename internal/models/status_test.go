package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	require.True(t, OrderStatusPending.CanTransition(OrderStatusProcessing))
	require.True(t, OrderStatusPending.CanTransition(OrderStatusCancelled))
	require.True(t, OrderStatusProcessing.CanTransition(OrderStatusShipped))
	require.True(t, OrderStatusProcessing.CanTransition(OrderStatusCancelled))
	require.True(t, OrderStatusShipped.CanTransition(OrderStatusDelivered))

	require.False(t, OrderStatusPending.CanTransition(OrderStatusDelivered))
	require.False(t, OrderStatusPending.CanTransition(OrderStatusShipped))
	require.False(t, OrderStatusShipped.CanTransition(OrderStatusCancelled))
	require.False(t, OrderStatusDelivered.CanTransition(OrderStatusCancelled))
	require.False(t, OrderStatusCancelled.CanTransition(OrderStatusProcessing))
	require.False(t, OrderStatusDelivered.CanTransition(OrderStatusPending))
}

func TestOrderStatusNoSelfLoops(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		require.False(t, s.CanTransition(s), "self loop for %s", s)
	}
}

func TestOrderStatusValid(t *testing.T) {
	require.True(t, OrderStatusPending.Valid())
	require.True(t, OrderStatusCancelled.Valid())
	require.False(t, OrderStatus("unknown").Valid())
	require.False(t, OrderStatus("").Valid())
}

func TestReturnStatusTransitions(t *testing.T) {
	require.True(t, ReturnStatusPending.CanTransition(ReturnStatusApproved))
	require.True(t, ReturnStatusPending.CanTransition(ReturnStatusRejected))
	require.True(t, ReturnStatusApproved.CanTransition(ReturnStatusShipped))
	require.True(t, ReturnStatusShipped.CanTransition(ReturnStatusReceived))
	require.True(t, ReturnStatusReceived.CanTransition(ReturnStatusCompleted))

	require.False(t, ReturnStatusPending.CanTransition(ReturnStatusCompleted))
	require.False(t, ReturnStatusRejected.CanTransition(ReturnStatusApproved))
	require.False(t, ReturnStatusCompleted.CanTransition(ReturnStatusPending))
}
