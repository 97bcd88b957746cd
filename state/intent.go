package state

import (
	"fmt"
	"time"
)

// IntentKey identifies an intent by (src, dst), per spec section 3.
// Per original_source/router_daemon.py, Src/Dst name routers directly
// (the example's "pc1"/"pc5" hosts are just the routers that own
// them); intents are kept local to the node that received the INTENT
// datagram, per spec section 9's open-question resolution.
type IntentKey struct {
	Src NodeId
	Dst NodeId
}

// Intent is the per-flow constraint record of spec section 3. A nil
// pointer means "unset"; an Intent with neither constraint set is
// equivalent to no intent at all.
type Intent struct {
	Key          IntentKey
	MinBandwidth *float64
	MaxLatency   *float64
	InstalledAt  time.Time
}

func (i *Intent) IsEmpty() bool {
	return i.MinBandwidth == nil && i.MaxLatency == nil
}

// IntentStore is the policy table of spec section 4.5, keyed by
// (src, dst).
type IntentStore struct {
	entries map[IntentKey]*Intent
}

func NewIntentStore() *IntentStore {
	return &IntentStore{entries: make(map[IntentKey]*Intent)}
}

// ValidateIntent enforces the section 4.5 put() precondition: src/dst
// non-empty, constraints non-negative.
func ValidateIntent(key IntentKey, minBw, maxLatency *float64) error {
	if key.Src == "" || key.Dst == "" {
		return fmt.Errorf("intent src/dst must not be empty")
	}
	if minBw != nil && *minBw < 0 {
		return fmt.Errorf("min_bandwidth must be non-negative")
	}
	if maxLatency != nil && *maxLatency < 0 {
		return fmt.Errorf("max_latency must be non-negative")
	}
	return nil
}

// Put replaces any existing record for the same key, per spec section
// 3 ("a new record with the same key replaces the old").
func (s *IntentStore) Put(intent *Intent) {
	s.entries[intent.Key] = intent
}

func (s *IntentStore) Delete(key IntentKey) bool {
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

func (s *IntentStore) Get(key IntentKey) *Intent {
	return s.entries[key]
}

// List enumerates all intents for operators, per spec section 4.5.
func (s *IntentStore) List() []*Intent {
	out := make([]*Intent, 0, len(s.entries))
	for _, v := range s.entries {
		out = append(out, v)
	}
	return out
}

// ForDst returns every intent whose destination is dst, used by the
// path engine during each SPF run to find the intent (if any) that
// governs the route to dst.
func (s *IntentStore) ForDst(dst NodeId) []*Intent {
	out := make([]*Intent, 0)
	for _, v := range s.entries {
		if v.Key.Dst == dst {
			out = append(out, v)
		}
	}
	return out
}
