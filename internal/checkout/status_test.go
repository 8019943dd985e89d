package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}
	assert.False(t, Status("REFUNDED").Valid())
	assert.False(t, Status("pending").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.False(t, StatusShipped.Terminal())
	assert.False(t, Status("REFUNDED").Terminal())
}

func TestTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusProcessing},
		{StatusPending, StatusCancelled},
		{StatusProcessing, StatusShipped},
		{StatusProcessing, StatusCancelled},
		{StatusShipped, StatusDelivered},
	}
	for _, tt := range allowed {
		assert.NoError(t, Transition(tt.from, tt.to), "%s -> %s should be allowed", tt.from, tt.to)
	}

	rejected := []struct{ from, to Status }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusProcessing, StatusDelivered},
		{StatusShipped, StatusCancelled},
		{StatusShipped, StatusPending},
		{StatusDelivered, StatusPending},
		{StatusDelivered, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusProcessing},
	}
	for _, tt := range rejected {
		err := Transition(tt.from, tt.to)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s should be rejected", tt.from, tt.to)
	}
}

func TestTransition_SameStatusIsNoOp(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.NoError(t, Transition(s, s))
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	assert.ErrorIs(t, Transition(Status("REFUNDED"), StatusPending), ErrInvalidTransition)
	assert.ErrorIs(t, Transition(StatusPending, Status("REFUNDED")), ErrInvalidTransition)
}
