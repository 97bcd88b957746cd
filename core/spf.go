package core

import (
	"container/heap"
	"sort"
	"time"

	"github.com/ilsrd/ilsrd/state"
)

// PathEngine recomputes the RIB from the LSDB, per spec section 4.4:
// Dijkstra shortest paths by delay, with per-destination intent
// constraints applied as edge filters, max latency also checked
// against the path's total delay, and a documented fallback to the
// unconstrained shortest path when no constrained path exists.
type PathEngine struct{}

func (p *PathEngine) Init(s *state.State) error {
	return nil
}

func (p *PathEngine) Cleanup(s *state.State) error {
	return nil
}

// requestRecompute coalesces bursts of topology/intent churn into a
// single SPF run after RecomputeCoalesce, per spec section 4.4
// ("Re-entry"): multiple calls before the timer fires are no-ops.
func requestRecompute(s *state.State) error {
	if s.RecomputePending {
		return nil
	}
	s.RecomputePending = true
	s.Env.ScheduleTask(runSPF, s.Cfg.RecomputeCoalesce)
	return nil
}

// graphEdge is one directed, confirmed adjacency used by Dijkstra.
type graphEdge struct {
	to            state.NodeId
	bandwidthMbps float64
	delayMs       float64
}

// buildGraph keeps only adjacencies confirmed from both sides' LSAs,
// per spec section 4.4 ("an edge exists only if both endpoints'
// LSAs list each other").
func buildGraph(lsdb map[state.NodeId]*state.LSA) map[state.NodeId][]graphEdge {
	graph := make(map[state.NodeId][]graphEdge, len(lsdb))
	for origin, lsa := range lsdb {
		for _, adj := range lsa.Links {
			peerLSA, ok := lsdb[adj.Peer]
			if !ok || !peerLSA.HasPeer(origin) {
				continue
			}
			graph[origin] = append(graph[origin], graphEdge{
				to:            adj.Peer,
				bandwidthMbps: adj.BandwidthMbps,
				delayMs:       adj.DelayMs,
			})
		}
	}
	return graph
}

type pqItem struct {
	node state.NodeId
	dist float64
}

type priorityQueue []pqItem

func (q priorityQueue) Len() int            { return len(q) }
func (q priorityQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q priorityQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x interface{}) { *q = append(*q, x.(pqItem)) }
func (q *priorityQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// spfFilter is a predicate over a candidate edge, used to apply an
// intent's min-bandwidth/max-latency constraints during relaxation.
type spfFilter func(edge graphEdge) bool

func passAll(graphEdge) bool { return true }

func filterFor(minBw, maxLatency *float64) spfFilter {
	if minBw == nil && maxLatency == nil {
		return passAll
	}
	return func(e graphEdge) bool {
		if minBw != nil && e.bandwidthMbps < *minBw {
			return false
		}
		if maxLatency != nil && e.delayMs > *maxLatency {
			return false
		}
		return true
	}
}

// dijkstra computes shortest (by cumulative delay) paths from src,
// restricted to edges that pass filter. It returns, for every
// reachable destination, the cost and the next hop from src along the
// shortest path, with deterministic tie-breaking per spec section 4.4
// (smallest next-hop router-id, then smallest outbound interface name).
func dijkstra(graph map[state.NodeId][]graphEdge, src state.NodeId, filter spfFilter) (dist map[state.NodeId]float64, nextHop map[state.NodeId]state.NodeId) {
	dist = map[state.NodeId]float64{src: 0}
	nextHop = map[state.NodeId]state.NodeId{}
	visited := map[state.NodeId]bool{}

	pq := &priorityQueue{{node: src, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		edges := append([]graphEdge(nil), graph[cur.node]...)
		sort.Slice(edges, func(i, j int) bool { return edges[i].to < edges[j].to })

		for _, e := range edges {
			if !filter(e) {
				continue
			}
			nd := cur.dist + e.delayMs
			existing, known := dist[e.to]
			if !known || nd < existing {
				dist[e.to] = nd
				if cur.node == src {
					nextHop[e.to] = e.to
				} else {
					nextHop[e.to] = nextHop[cur.node]
				}
				heap.Push(pq, pqItem{node: e.to, dist: nd})
			} else if nd == existing && known {
				// deterministic tie-break: prefer the smaller
				// first-hop router-id. The interface-name half of the
				// rule has no vertex here to apply to; it is resolved
				// afterward in outgoingIface, once a next hop is
				// chosen.
				var candidateFirstHop state.NodeId
				if cur.node == src {
					candidateFirstHop = e.to
				} else {
					candidateFirstHop = nextHop[cur.node]
				}
				if candidateFirstHop < nextHop[e.to] {
					nextHop[e.to] = candidateFirstHop
				}
			}
		}
	}
	return dist, nextHop
}

// runSPF recomputes the full RIB and diffs it into the RIB installer,
// per spec section 4.4: every destination's route is chosen by
// constrained Dijkstra when an intent governs it, falling back to the
// unconstrained shortest path (flagged IntentSatisfied=false) when no
// constrained path exists, per spec section 4.4's fallback policy.
func runSPF(s *state.State) error {
	start := time.Now()
	s.RecomputePending = false

	lsdb := s.LSDB.Snapshot()
	graph := buildGraph(lsdb)
	edges := 0
	for _, adj := range graph {
		edges += len(adj)
	}

	baseDist, baseNextHop := dijkstra(graph, s.Id, passAll)

	newRoutes := make(map[string]state.RouteEntry)

	for origin, lsa := range lsdb {
		if origin == s.Id {
			continue
		}
		nh, reachable := baseNextHop[origin]
		cost := baseDist[origin]
		satisfied := (*bool)(nil)

		// Only intents originated by this node apply to this node's own
		// route computation: a node only ever routes traffic sourced
		// behind its own stub prefixes, so an intent for some other
		// source router is not this node's policy to enforce.
		var intent *state.Intent
		for _, candidate := range s.Intents.ForDst(origin) {
			if candidate.Key.Src == s.Id {
				intent = candidate
				break
			}
		}
		if intent != nil && !intent.IsEmpty() {
			filter := filterFor(intent.MinBandwidth, intent.MaxLatency)
			cDist, cNextHop := dijkstra(graph, s.Id, filter)
			// The constrained Dijkstra path is the lowest-delay path that
			// passes the edge filter, so max latency holds for some path
			// exactly when it holds for this one's total delay.
			cnh, ok := cNextHop[origin]
			if ok && intent.MaxLatency != nil && cDist[origin] > *intent.MaxLatency {
				ok = false
			}
			if ok {
				nh = cnh
				cost = cDist[origin]
				reachable = true
				ok2 := true
				satisfied = &ok2
				s.Log.Debug(string(state.EventIntentApply), "dst", origin, "cost", cost)
			} else if reachable {
				ok2 := false
				satisfied = &ok2
				s.Log.Info(string(state.EventIntentFallback), "dst", origin, "cost", cost)
			}
		}

		if !reachable {
			continue
		}

		iface := outgoingIface(s, nh)
		if iface == nil {
			continue
		}
		for _, prefix := range lsa.Stubs {
			newRoutes[prefix.String()] = state.RouteEntry{
				Prefix:          prefix,
				NextHopIP:       iface.PeerIP,
				Iface:           iface.Name,
				Cost:            cost,
				Owner:           origin,
				IntentSatisfied: satisfied,
			}
		}
	}

	s.Routes = newRoutes
	s.Log.Debug(string(state.EventSpfRun), "duration", time.Since(start), "vertices", len(graph), "edges", edges)
	return Get[*RIBInstaller](s).reconcile(s)
}

// outgoingIface returns the local interface this node uses to reach
// nextHop directly. When more than one local interface connects to the
// same neighbour (parallel links), the lexicographically smallest
// interface name wins, per spec section 4.4's determinism requirement.
func outgoingIface(s *state.State, nextHop state.NodeId) *state.IfaceCfg {
	var best string
	for name, n := range s.Neighbours {
		if n.PeerId != nextHop || !n.IsTwoWay() {
			continue
		}
		if best == "" || name < best {
			best = name
		}
	}
	if best == "" {
		return nil
	}
	return s.Ifaces[best]
}
