package core

import (
	"errors"
	"net"
	"net/netip"
	"time"

	"github.com/ilsrd/ilsrd/protocol"
	"github.com/ilsrd/ilsrd/state"
)

// LinkManager owns neighbour discovery and liveness, per spec section
// 4.1: it emits HELLO on every configured interface at hello-interval,
// promotes a neighbour to TWO-WAY once its HELLO lists this router in
// "seen", and sweeps to DEAD after dead-interval of silence.
type LinkManager struct{}

func (m *LinkManager) Init(s *state.State) error {
	s.Env.RepeatTask(tickHello, s.Cfg.HelloInterval)
	s.Env.RepeatTask(sweepDead, s.Cfg.HelloInterval)
	return nil
}

func (m *LinkManager) Cleanup(s *state.State) error {
	return nil
}

// tickHello sends a HELLO out every up interface, per spec section
// 4.1. The "seen" field lists the neighbours currently known on that
// interface so the peer can self-confirm bidirectionality, mirroring
// the teacher's own link-state HELLO exchange in impl/ctl_link_manager.go.
func tickHello(s *state.State) error {
	for name, iface := range s.Ifaces {
		if !iface.IsUp() {
			continue
		}
		seen := []string{}
		if n, ok := s.Neighbours[name]; ok {
			seen = append(seen, string(n.PeerId))
		}
		msg := protocol.Hello{
			RouterId: string(s.Id),
			Iface:    name,
			Bw:       iface.BandwidthMbps,
			Delay:    iface.DelayMs,
			Seen:     seen,
		}
		if err := sendTo(s, iface.PeerIP, s.Cfg.ControlPort, msg); err != nil {
			s.Log.Debug("failed to send HELLO", "iface", name, "err", err)
			continue
		}
		s.Log.Debug(string(state.EventHelloTx), "iface", name)
	}
	return nil
}

func handleHello(s *state.State, iface string, msg protocol.Hello) error {
	peer := state.NodeId(msg.RouterId)
	if peer == s.Id {
		return nil
	}
	s.Log.Debug(string(state.EventHelloRx), "iface", iface, "peer", peer)

	n, ok := s.Neighbours[iface]
	if !ok || n.PeerId != peer {
		n = state.NewNeighbour(iface, peer)
		s.Neighbours[iface] = n
	}
	n.LastHeard = time.Now()

	wasTwoWay := n.IsTwoWay()
	selfSeen := false
	for _, id := range msg.Seen {
		if state.NodeId(id) == s.Id {
			selfSeen = true
			break
		}
	}
	if selfSeen {
		n.State = state.NeighTwoWay
	} else if n.State == state.NeighDead {
		n.State = state.NeighInit
	}

	if !wasTwoWay && n.IsTwoWay() {
		s.Log.Info(string(state.EventNeighbourUp), "iface", iface, "peer", peer)
		return onAdjacencyChange(s)
	}
	return nil
}

// sweepDead ages out neighbours that have gone quiet for dead-interval,
// per spec section 4.1, and triggers LSA regeneration for any that
// transition away from TWO-WAY.
func sweepDead(s *state.State) error {
	changed := false
	now := time.Now()
	for name, n := range s.Neighbours {
		if n.State == state.NeighDead {
			continue
		}
		if now.Sub(n.LastHeard) > s.Cfg.DeadInterval {
			s.Log.Info(string(state.EventNeighbourDown), "iface", name, "peer", n.PeerId)
			n.State = state.NeighDead
			changed = true
		}
	}
	if changed {
		return onAdjacencyChange(s)
	}
	return nil
}

// sendTo encodes and writes one message to a peer's control port. It is
// the only place core writes to the socket, mirroring the teacher's
// narrow send path in impl/ctl_link_manager.go.
func sendTo(s *state.State, addr netip.Addr, port uint16, msg protocol.Message) error {
	if s.Conn == nil {
		return errors.New("control socket is not open")
	}
	payload, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	_, err = s.Conn.WriteToUDP(payload, net.UDPAddrFromAddrPort(netip.AddrPortFrom(addr, port)))
	return err
}
