package state

// Event names the log surface of spec section 6, one per line emitted
// via slog with structured attributes, the way core/router.go's
// r.Log(event, desc, args...) does in the teacher.
type Event string

const (
	EventHelloTx       Event = "HELLO_TX"
	EventHelloRx       Event = "HELLO_RX"
	EventNeighbourUp   Event = "NEIGHBOR_UP"
	EventNeighbourDown Event = "NEIGHBOR_DOWN"
	EventLsaOriginate  Event = "LSA_ORIGINATE"
	EventLsaFloodTx    Event = "LSA_FLOOD_TX"
	EventLsaFloodRx    Event = "LSA_FLOOD_RX"
	EventLsaFloodIgnore Event = "LSA_FLOOD_IGNORE"
	EventSpfRun        Event = "SPF_RUN"
	EventIntentApply   Event = "INTENT_APPLY"
	EventIntentFallback Event = "INTENT_FALLBACK"
	EventRibInstall    Event = "RIB_INSTALL"
	EventRibRemove     Event = "RIB_REMOVE"
	EventRibFail       Event = "RIB_FAIL"
)
