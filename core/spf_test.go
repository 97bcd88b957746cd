package core

import (
	"testing"

	"github.com/ilsrd/ilsrd/state"
	"github.com/stretchr/testify/assert"
)

func triTopology() map[state.NodeId][]graphEdge {
	return map[state.NodeId][]graphEdge{
		"r1": {{to: "r2", bandwidthMbps: 20, delayMs: 5}, {to: "r3", bandwidthMbps: 40, delayMs: 2}},
		"r2": {{to: "r1", bandwidthMbps: 20, delayMs: 5}, {to: "r3", bandwidthMbps: 50, delayMs: 5}},
		"r3": {{to: "r1", bandwidthMbps: 40, delayMs: 2}, {to: "r2", bandwidthMbps: 50, delayMs: 5}},
	}
}

func TestDijkstra_PicksShortestByDelay(t *testing.T) {
	dist, nextHop := dijkstra(triTopology(), "r1", passAll)
	assert.Equal(t, 2.0, dist["r3"])
	assert.Equal(t, state.NodeId("r3"), nextHop["r3"])
	// direct r1-r2 (delay 5) beats the detour via r3 (2+5=7).
	assert.Equal(t, 5.0, dist["r2"])
	assert.Equal(t, state.NodeId("r2"), nextHop["r2"])
}

func TestDijkstra_DirectLinkWinsWhenShorter(t *testing.T) {
	graph := map[state.NodeId][]graphEdge{
		"r1": {{to: "r2", bandwidthMbps: 20, delayMs: 1}, {to: "r3", bandwidthMbps: 40, delayMs: 2}},
		"r2": {{to: "r1", bandwidthMbps: 20, delayMs: 1}, {to: "r3", bandwidthMbps: 50, delayMs: 5}},
		"r3": {{to: "r1", bandwidthMbps: 40, delayMs: 2}, {to: "r2", bandwidthMbps: 50, delayMs: 5}},
	}
	dist, nextHop := dijkstra(graph, "r1", passAll)
	assert.Equal(t, 1.0, dist["r2"])
	assert.Equal(t, state.NodeId("r2"), nextHop["r2"])
}

func TestDijkstra_FilterExcludesEdgesBelowMinBandwidth(t *testing.T) {
	minBw := 45.0
	filter := filterFor(&minBw, nil)
	dist, nextHop := dijkstra(triTopology(), "r1", filter)

	// r1-r2 (20) and r1-r3 (40) both fail the 45 Mbps floor, so r1 has
	// no usable egress at all under this constraint.
	_, reachable := nextHop["r2"]
	assert.False(t, reachable)
	_, reachable = nextHop["r3"]
	assert.False(t, reachable)
	assert.Equal(t, map[state.NodeId]float64{"r1": 0}, dist)
}

func TestDijkstra_FilterExcludesEdgesAboveMaxLatency(t *testing.T) {
	maxLat := 3.0
	filter := filterFor(nil, &maxLat)
	_, nextHop := dijkstra(triTopology(), "r1", filter)

	assert.Equal(t, state.NodeId("r3"), nextHop["r3"])
	_, reachable := nextHop["r2"]
	assert.False(t, reachable) // direct r1-r2 is delay 5 > 3, and via r3 is 2+5=7 > 3
}

func TestFilterFor_NilConstraintsPassesEverything(t *testing.T) {
	f := filterFor(nil, nil)
	assert.True(t, f(graphEdge{bandwidthMbps: 0, delayMs: 1000}))
}

func TestBuildGraph_RequiresBidirectionalConfirmation(t *testing.T) {
	lsdb := map[state.NodeId]*state.LSA{
		"r1": {Originator: "r1", Links: []state.Adjacency{{Peer: "r2", BandwidthMbps: 10, DelayMs: 1}}},
		// r2 never lists r1 back: the edge must not appear in the graph.
		"r2": {Originator: "r2", Links: nil},
	}
	graph := buildGraph(lsdb)
	assert.Empty(t, graph["r1"])
}

func TestBuildGraph_KeepsReciprocalAdjacency(t *testing.T) {
	lsdb := map[state.NodeId]*state.LSA{
		"r1": {Originator: "r1", Links: []state.Adjacency{{Peer: "r2", BandwidthMbps: 10, DelayMs: 1}}},
		"r2": {Originator: "r2", Links: []state.Adjacency{{Peer: "r1", BandwidthMbps: 10, DelayMs: 1}}},
	}
	graph := buildGraph(lsdb)
	assert.Len(t, graph["r1"], 1)
	assert.Equal(t, state.NodeId("r2"), graph["r1"][0].to)
}
