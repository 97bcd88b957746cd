package state

import "time"

// Default timers, per spec section 5. Domain-wide agreement is only
// required on DeadInterval > HelloInterval; everything else is
// configurable per node without breaking correctness, only tripping
// spurious DEAD transitions if mismatched.
var (
	DefaultHelloInterval      = 2 * time.Second
	DefaultDeadInterval       = 4 * DefaultHelloInterval
	DefaultLsaRefreshInterval = 30 * time.Second
	DefaultRecomputeCoalesce  = 100 * time.Millisecond
	DefaultControlPort        = uint16(20001)
)

// SafeMTU is the per-datagram size budget for one encoded message,
// leaving headroom under the common 1500 byte link MTU for IP/UDP
// headers, per spec section 4.3. Outgoing messages are not checked
// against it; readLoop sizes its receive buffer at twice this value.
const SafeMTU = 1200

// SeqnoDedupTTL bounds how long the flooder remembers a (originator,
// seq) pair it has already counted as an ignored duplicate, purely for
// the LSA_FLOOD_IGNORE counter; it has no bearing on flooding
// correctness.
var SeqnoDedupTTL = 10 * time.Second
