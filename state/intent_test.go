package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIntent_RejectsEmptyEndpoints(t *testing.T) {
	err := ValidateIntent(IntentKey{Src: "", Dst: "r2"}, nil, nil)
	assert.Error(t, err)
}

func TestValidateIntent_RejectsNegativeConstraints(t *testing.T) {
	minBw := -5.0
	err := ValidateIntent(IntentKey{Src: "r1", Dst: "r2"}, &minBw, nil)
	assert.Error(t, err)
}

func TestValidateIntent_AcceptsValid(t *testing.T) {
	minBw := 50.0
	maxLat := 25.0
	err := ValidateIntent(IntentKey{Src: "r1", Dst: "r2"}, &minBw, &maxLat)
	assert.NoError(t, err)
}

func TestIntentStore_PutReplacesSameKey(t *testing.T) {
	store := NewIntentStore()
	key := IntentKey{Src: "r1", Dst: "r5"}
	minBw := 10.0
	store.Put(&Intent{Key: key, MinBandwidth: &minBw})

	maxLat := 20.0
	store.Put(&Intent{Key: key, MaxLatency: &maxLat})

	got := store.Get(key)
	assert.NotNil(t, got)
	assert.Nil(t, got.MinBandwidth)
	assert.Equal(t, 20.0, *got.MaxLatency)
	assert.Len(t, store.List(), 1)
}

func TestIntentStore_DeleteReturnsFalseWhenAbsent(t *testing.T) {
	store := NewIntentStore()
	assert.False(t, store.Delete(IntentKey{Src: "r1", Dst: "r2"}))
}

func TestIntentStore_ForDst(t *testing.T) {
	store := NewIntentStore()
	store.Put(&Intent{Key: IntentKey{Src: "r1", Dst: "r5"}})
	store.Put(&Intent{Key: IntentKey{Src: "r2", Dst: "r5"}})
	store.Put(&Intent{Key: IntentKey{Src: "r1", Dst: "r6"}})

	assert.Len(t, store.ForDst("r5"), 2)
	assert.Len(t, store.ForDst("r6"), 1)
	assert.Len(t, store.ForDst("r9"), 0)
}

func TestIntent_IsEmpty(t *testing.T) {
	assert.True(t, (&Intent{}).IsEmpty())
	minBw := 1.0
	assert.False(t, (&Intent{MinBandwidth: &minBw}).IsEmpty())
}
