package state

import (
	"context"
	"log/slog"
	"net"
)

// NyModule mirrors the teacher's module lifecycle: every component that
// owns part of the per-node state implements Init/Cleanup and is driven
// entirely from the dispatch loop in core.MainLoop.
type NyModule interface {
	Init(s *State) error
	Cleanup(s *State) error
}

// State is mutated only from the control-plane loop goroutine; see
// spec section 5 ("Suspension points"). Anything reachable from State
// must never be touched from a goroutine other than the loop that owns
// it, which is why the UDP read loop in core only parses bytes and
// hands decoded messages back in via Env.Dispatch.
type State struct {
	*Env

	Id     NodeId
	Seqno  uint64
	Ifaces map[string]*IfaceCfg

	// Neighbours is keyed by local interface name: links are
	// point-to-point, so at most one neighbour exists per interface.
	Neighbours map[string]*Neighbour

	LSDB *LSDB

	Intents *IntentStore

	// Routes is the selected RIB, keyed by prefix string.
	Routes map[string]RouteEntry

	// Installed is the RIB installer's shadow of what is currently in
	// the kernel table, per spec section 4.6.
	Installed map[string]RouteEntry

	Modules map[string]NyModule

	// RecomputePending is set while a coalesced SPF run is scheduled but
	// has not yet fired; see spec section 4.4 "Re-entry".
	RecomputePending bool

	Counters Counters
}

// Env holds everything that may be read from a goroutine other than the
// control-plane loop (the UDP read loop, timers). Mutating Env fields
// after Start is not safe; only the channel send in Dispatch is.
type Env struct {
	Cfg LocalCfg

	Context context.Context
	Cancel  context.CancelCauseFunc

	DispatchChannel chan<- func(*State) error

	Log *slog.Logger

	Conn *net.UDPConn
}

func (s *State) GetNeighbourByPeer(peer NodeId) *Neighbour {
	for _, n := range s.Neighbours {
		if n.PeerId == peer {
			return n
		}
	}
	return nil
}

// Counters back the "count" half of spec section 7's error policy for
// malformed input and duplicate LSAs, plus accepted-and-flooded LSAs
// and failed kernel installs. No command reads them; tests assert on
// them directly, and nothing depends on them for correctness.
type Counters struct {
	MalformedDropped  uint64
	FloodIgnored       uint64
	FloodForwarded     uint64
	RibInstallFailures uint64
}
