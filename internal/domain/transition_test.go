package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	statuses := []FaultStatus{FaultStatusOpen, FaultStatusInProgress, FaultStatusResolved, FaultStatusClosed}

	// Any recorded status may move to any other, reopening included.
	for _, from := range statuses {
		for _, to := range statuses {
			if from == to {
				continue
			}
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, CanTransition(FaultStatusOpen, FaultStatusOpen))
	assert.False(t, CanTransition(FaultStatus("Escalated"), FaultStatusOpen))
	assert.False(t, CanTransition(FaultStatusOpen, FaultStatus("Escalated")))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(FaultStatusOpen))
	assert.True(t, ValidStatus(FaultStatusInProgress))
	assert.True(t, ValidStatus(FaultStatusResolved))
	assert.True(t, ValidStatus(FaultStatusClosed))
	assert.False(t, ValidStatus(FaultStatus("open")))
	assert.False(t, ValidStatus(FaultStatus("")))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(FaultStatusOpen))
	assert.False(t, IsTerminal(FaultStatusInProgress))
	assert.True(t, IsTerminal(FaultStatusResolved))
	assert.True(t, IsTerminal(FaultStatusClosed))
}
