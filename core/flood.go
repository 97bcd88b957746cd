package core

import (
	"fmt"

	"github.com/ilsrd/ilsrd/protocol"
	"github.com/ilsrd/ilsrd/state"
	"github.com/jellydator/ttlcache/v3"
)

// Flooder implements the reliable bounded flooding of spec section
// 4.3: every accepted-new LSA is forwarded out every up interface with
// a TWO-WAY neighbour except the one it arrived on (split horizon),
// duplicates are
// dropped, and stale (lower-seq) LSAs trigger an anti-entropy reply of
// our own newer copy back to the sender.
type Flooder struct {
	// dedup is an observability aid (spec section 4.3's
	// LSA_FLOOD_IGNORE counter); it is never consulted for correctness,
	// since LSDB.Accept already enforces the sequence invariant on its
	// own, but it is consulted before every ignore-path log/count so a
	// duplicate that keeps arriving within the TTL window is only
	// reported once.
	dedup *ttlcache.Cache[string, struct{}]
}

func (f *Flooder) Init(s *state.State) error {
	f.dedup = ttlcache.New[string, struct{}](
		ttlcache.WithTTL[string, struct{}](state.SeqnoDedupTTL),
		ttlcache.WithDisableTouchOnHit[string, struct{}](),
	)
	go f.dedup.Start()

	s.Env.RepeatTask(lsaRefresh, s.Cfg.LsaRefreshInterval)
	return nil
}

func (f *Flooder) Cleanup(s *state.State) error {
	if f.dedup != nil {
		f.dedup.Stop()
	}
	return nil
}

func dedupKey(originator state.NodeId, seq uint64) string {
	return fmt.Sprintf("%s/%d", originator, seq)
}

// handleLSA applies the reception rule of spec section 4.3 to an LSA
// arriving on iface.
func handleLSA(s *state.State, iface string, msg protocol.LSA) error {
	lsa := fromWireLSA(msg)
	flooder := Get[*Flooder](s)

	res, prev := s.LSDB.Accept(lsa)
	switch res {
	case state.AcceptNew:
		s.Log.Debug(string(state.EventLsaFloodRx), "origin", lsa.Originator, "seq", lsa.Seq, "iface", iface)
		s.Counters.FloodForwarded++
		if err := floodLSA(s, lsa, iface); err != nil {
			return err
		}
		return requestRecompute(s)
	case state.AcceptIgnoreDuplicate:
		key := dedupKey(lsa.Originator, lsa.Seq)
		if _, seenAlready := flooder.dedup.GetOrSet(key, struct{}{}, ttlcache.WithTTL[string, struct{}](state.SeqnoDedupTTL)); !seenAlready {
			s.Counters.FloodIgnored++
			s.Log.Debug(string(state.EventLsaFloodIgnore), "origin", lsa.Originator, "seq", lsa.Seq)
		}
		return nil
	case state.AcceptStale:
		// Anti-entropy: the sender is behind, so hand back our newer
		// copy directly rather than waiting for the next refresh.
		if prev == nil {
			return nil
		}
		n := s.Neighbours[iface]
		if n == nil {
			return nil
		}
		ifaceCfg := s.Ifaces[iface]
		if ifaceCfg == nil {
			return nil
		}
		if err := sendTo(s, ifaceCfg.PeerIP, s.Cfg.ControlPort, toWireLSA(prev)); err != nil {
			s.Log.Debug("failed to send anti-entropy LSA", "iface", iface, "err", err)
		}
		return nil
	}
	return nil
}

// floodLSA forwards l out every up interface with a TWO-WAY neighbour
// other than except (split horizon). except is "" when flooding our own freshly
// originated LSA, in which case there is no exclusion.
func floodLSA(s *state.State, l *state.LSA, except string) error {
	wire := toWireLSA(l)
	for name, iface := range s.Ifaces {
		if name == except || !iface.IsUp() {
			continue
		}
		n := s.Neighbours[name]
		if n == nil || !n.IsTwoWay() {
			continue
		}
		if err := sendTo(s, iface.PeerIP, s.Cfg.ControlPort, wire); err != nil {
			s.Log.Debug("failed to flood LSA", "iface", name, "err", err)
			continue
		}
		s.Log.Debug(string(state.EventLsaFloodTx), "iface", name, "origin", l.Originator, "seq", l.Seq)
	}
	return nil
}
