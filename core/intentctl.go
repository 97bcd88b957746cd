package core

import (
	"time"

	"github.com/ilsrd/ilsrd/protocol"
	"github.com/ilsrd/ilsrd/state"
)

// IntentController applies INTENT/INTENT_DELETE control messages to
// the local IntentStore and triggers a recompute, per spec section
// 4.5. Intents are kept local to the receiving node; they are never
// flooded to other routers.
type IntentController struct{}

func (c *IntentController) Init(s *state.State) error {
	return nil
}

func (c *IntentController) Cleanup(s *state.State) error {
	return nil
}

func handleIntentPut(s *state.State, msg protocol.Intent) error {
	key := state.IntentKey{Src: state.NodeId(msg.Src), Dst: state.NodeId(msg.Dst)}
	if err := state.ValidateIntent(key, msg.MinBandwidth, msg.MaxLatency); err != nil {
		s.Log.Warn("rejected invalid intent", "src", msg.Src, "dst", msg.Dst, "err", err)
		return nil
	}
	s.Intents.Put(&state.Intent{
		Key:          key,
		MinBandwidth: msg.MinBandwidth,
		MaxLatency:   msg.MaxLatency,
		InstalledAt:  time.Now(),
	})
	s.Log.Info("intent installed", "src", msg.Src, "dst", msg.Dst)
	return requestRecompute(s)
}

func handleIntentDelete(s *state.State, msg protocol.IntentDelete) error {
	key := state.IntentKey{Src: state.NodeId(msg.Src), Dst: state.NodeId(msg.Dst)}
	if s.Intents.Delete(key) {
		s.Log.Info("intent removed", "src", msg.Src, "dst", msg.Dst)
		return requestRecompute(s)
	}
	return nil
}
