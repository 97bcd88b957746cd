package state

import "net/netip"

// RouteEntry is the installed-route record of spec section 3: a
// destination prefix, the next hop to reach it, the outbound local
// interface, the computed cost, and whether an intent constraint was
// satisfied.
type RouteEntry struct {
	Prefix    netip.Prefix
	NextHopIP netip.Addr
	Iface     string
	Cost      float64

	// Owner is the router-id that originated/owns Prefix; used to key
	// into LSDB and IntentStore lookups without re-deriving it.
	Owner NodeId

	// IntentSatisfied is nil when no intent governs this destination,
	// true when a constrained path was found, false when the route was
	// installed by the fallback policy of spec section 4.4.
	IntentSatisfied *bool
}

func (r RouteEntry) IsFallback() bool {
	return r.IntentSatisfied != nil && !*r.IntentSatisfied
}
