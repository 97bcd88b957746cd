package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNeighbour_StartsInInit(t *testing.T) {
	n := NewNeighbour("eth0", "r2")
	assert.Equal(t, NeighInit, n.State)
	assert.False(t, n.IsTwoWay())
}

func TestNeighbour_IsTwoWay(t *testing.T) {
	n := NewNeighbour("eth0", "r2")
	n.State = NeighTwoWay
	assert.True(t, n.IsTwoWay())
}

func TestNeighState_String(t *testing.T) {
	assert.Equal(t, "INIT", NeighInit.String())
	assert.Equal(t, "TWO-WAY", NeighTwoWay.String())
	assert.Equal(t, "DEAD", NeighDead.String())
}
