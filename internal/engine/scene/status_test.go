package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusPending, "Pending"},
		{StatusInit, "Init"},
		{StatusStart, "Start"},
		{StatusLoading, "Loading"},
		{StatusCreating, "Creating"},
		{StatusRunning, "Running"},
		{StatusPaused, "Paused"},
		{StatusSleeping, "Sleeping"},
		{StatusShutdown, "Shutdown"},
		{StatusDestroyed, "Destroyed"},
		{Status(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

// The manager's behavior hangs on range checks over this order, so the
// numeric sequence is part of the contract.
func TestStatusConstants(t *testing.T) {
	assert.Equal(t, Status(0), StatusPending)
	assert.Equal(t, Status(1), StatusInit)
	assert.Equal(t, Status(2), StatusStart)
	assert.Equal(t, Status(3), StatusLoading)
	assert.Equal(t, Status(4), StatusCreating)
	assert.Equal(t, Status(5), StatusRunning)
	assert.Equal(t, Status(6), StatusPaused)
	assert.Equal(t, Status(7), StatusSleeping)
	assert.Equal(t, Status(8), StatusShutdown)
	assert.Equal(t, Status(9), StatusDestroyed)
}
