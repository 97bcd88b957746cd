package core

import (
	"net/netip"
	"time"

	"github.com/ilsrd/ilsrd/protocol"
	"github.com/ilsrd/ilsrd/state"
)

// onAdjacencyChange re-originates this node's own LSA whenever a
// neighbour transitions TWO-WAY<->DEAD, per spec section 4.2, and
// triggers a coalesced SPF recompute.
func onAdjacencyChange(s *state.State) error {
	if err := originateLSA(s); err != nil {
		return err
	}
	return requestRecompute(s)
}

// originateLSA builds this node's current LSA from its TWO-WAY
// neighbours and stub prefixes, assigns the next sequence number, and
// floods it, per spec section 4.2 ("Origination").
func originateLSA(s *state.State) error {
	s.Seqno++

	links := make([]state.Adjacency, 0, len(s.Neighbours))
	for _, n := range s.Neighbours {
		if !n.IsTwoWay() {
			continue
		}
		iface := s.Ifaces[n.Iface]
		if iface == nil || !iface.IsUp() {
			continue
		}
		links = append(links, state.Adjacency{
			Peer:          n.PeerId,
			BandwidthMbps: iface.BandwidthMbps,
			DelayMs:       iface.DelayMs,
		})
	}

	lsa := &state.LSA{
		Originator: s.Id,
		Seq:        s.Seqno,
		OriginTime: float64(time.Now().UnixNano()) / 1e9,
		Links:      links,
		Stubs:      append([]netip.Prefix(nil), s.Cfg.StubPrefixes...),
	}

	res, _ := s.LSDB.Accept(lsa)
	if res != state.AcceptNew {
		s.Log.Warn("own LSA was not accepted as new", "seq", lsa.Seq)
	}
	s.Log.Info(string(state.EventLsaOriginate), "seq", lsa.Seq, "links", len(lsa.Links))

	return floodLSA(s, lsa, "")
}

// lsaRefresh re-originates periodically even with no topology change,
// per spec section 4.2's refresh-interval, so that transient state
// loss elsewhere in the domain eventually self-heals.
func lsaRefresh(s *state.State) error {
	return originateLSA(s)
}

func toWireLSA(l *state.LSA) protocol.LSA {
	links := make([]protocol.LSALink, 0, len(l.Links))
	for _, adj := range l.Links {
		links = append(links, protocol.LSALink{
			Peer:  string(adj.Peer),
			Bw:    adj.BandwidthMbps,
			Delay: adj.DelayMs,
		})
	}
	stubs := make([]string, 0, len(l.Stubs))
	for _, p := range l.Stubs {
		stubs = append(stubs, p.String())
	}
	return protocol.LSA{
		Origin: string(l.Originator),
		Seq:    l.Seq,
		Ts:     l.OriginTime,
		Links:  links,
		Stubs:  stubs,
	}
}

func fromWireLSA(m protocol.LSA) *state.LSA {
	links := make([]state.Adjacency, 0, len(m.Links))
	for _, l := range m.Links {
		links = append(links, state.Adjacency{
			Peer:          state.NodeId(l.Peer),
			BandwidthMbps: l.Bw,
			DelayMs:       l.Delay,
		})
	}
	stubs := make([]netip.Prefix, 0, len(m.Stubs))
	for _, s := range m.Stubs {
		if p, err := netip.ParsePrefix(s); err == nil {
			stubs = append(stubs, p)
		}
	}
	return &state.LSA{
		Originator: state.NodeId(m.Origin),
		Seq:        m.Seq,
		OriginTime: m.Ts,
		Links:      links,
		Stubs:      stubs,
	}
}
