package state

import "time"

// NeighState is the neighbour lifecycle from spec section 3: created
// on first HELLO from an unknown peer (INIT), promoted to TWO-WAY once
// bidirectional HELLO is observed, and aged out to DEAD after
// dead-interval without a HELLO.
type NeighState int

const (
	NeighInit NeighState = iota
	NeighTwoWay
	NeighDead
)

func (s NeighState) String() string {
	switch s {
	case NeighInit:
		return "INIT"
	case NeighTwoWay:
		return "TWO-WAY"
	case NeighDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// Neighbour is the per-interface adjacency record of spec section 3.
// Links are point-to-point, so a Neighbour is uniquely identified by
// the local interface it was learned on.
type Neighbour struct {
	Iface      string
	PeerId     NodeId
	State      NeighState
	LastHeard  time.Time
}

func NewNeighbour(iface string, peer NodeId) *Neighbour {
	return &Neighbour{
		Iface:     iface,
		PeerId:    peer,
		State:     NeighInit,
		LastHeard: time.Now(),
	}
}

func (n *Neighbour) IsTwoWay() bool {
	return n.State == NeighTwoWay
}
