package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLSDB_AcceptNewOnFirstSeen(t *testing.T) {
	db := NewLSDB()
	res, prev := db.Accept(&LSA{Originator: "r1", Seq: 1})
	assert.Equal(t, AcceptNew, res)
	assert.Nil(t, prev)
	assert.Equal(t, 1, db.Len())
}

func TestLSDB_AcceptNewOnHigherSeq(t *testing.T) {
	db := NewLSDB()
	db.Accept(&LSA{Originator: "r1", Seq: 1})
	res, prev := db.Accept(&LSA{Originator: "r1", Seq: 2})
	assert.Equal(t, AcceptNew, res)
	assert.NotNil(t, prev)
	assert.Equal(t, uint64(1), prev.Seq)
}

func TestLSDB_IgnoreDuplicateSeq(t *testing.T) {
	db := NewLSDB()
	db.Accept(&LSA{Originator: "r1", Seq: 5})
	res, _ := db.Accept(&LSA{Originator: "r1", Seq: 5})
	assert.Equal(t, AcceptIgnoreDuplicate, res)
	assert.Equal(t, uint64(5), db.Get("r1").Seq)
}

func TestLSDB_RejectStaleSeq(t *testing.T) {
	db := NewLSDB()
	db.Accept(&LSA{Originator: "r1", Seq: 5})
	res, prev := db.Accept(&LSA{Originator: "r1", Seq: 3})
	assert.Equal(t, AcceptStale, res)
	assert.Equal(t, uint64(5), prev.Seq)
	assert.Equal(t, uint64(5), db.Get("r1").Seq)
}

func TestLSDB_Snapshot_IsIndependentCopy(t *testing.T) {
	db := NewLSDB()
	db.Accept(&LSA{Originator: "r1", Seq: 1})
	snap := db.Snapshot()
	db.Accept(&LSA{Originator: "r2", Seq: 1})
	assert.Len(t, snap, 1)
	assert.Equal(t, 2, db.Len())
}

func TestLSA_HasPeerAndAdjacencyTo(t *testing.T) {
	lsa := &LSA{
		Originator: "r1",
		Links: []Adjacency{
			{Peer: "r2", BandwidthMbps: 100, DelayMs: 5},
		},
	}
	assert.True(t, lsa.HasPeer("r2"))
	assert.False(t, lsa.HasPeer("r3"))

	adj, ok := lsa.AdjacencyTo("r2")
	assert.True(t, ok)
	assert.Equal(t, 100.0, adj.BandwidthMbps)

	_, ok = lsa.AdjacencyTo("r3")
	assert.False(t, ok)
}
