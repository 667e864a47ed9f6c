package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, CanTransition(StatusPlaced, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusPlaced))
	assert.False(t, CanTransition(StatusCancelled, StatusCancelled))
	assert.False(t, CanTransition(StatusPlaced, StatusPlaced))
}
