package core

import (
	"testing"

	"github.com/ilsrd/ilsrd/protocol"
	"github.com/ilsrd/ilsrd/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleIntentPut_InstallsAndTriggersRecompute(t *testing.T) {
	s := newTestState(t)
	minBw := 30.0
	require.NoError(t, handleIntentPut(s, protocol.Intent{Src: "r1", Dst: "r5", MinBandwidth: &minBw}))

	intent := s.Intents.Get(state.IntentKey{Src: "r1", Dst: "r5"})
	require.NotNil(t, intent)
	assert.Equal(t, 30.0, *intent.MinBandwidth)
	assert.True(t, s.RecomputePending)
}

func TestHandleIntentPut_RejectsInvalid(t *testing.T) {
	s := newTestState(t)
	badBw := -5.0
	require.NoError(t, handleIntentPut(s, protocol.Intent{Src: "r1", Dst: "r5", MinBandwidth: &badBw}))

	assert.Nil(t, s.Intents.Get(state.IntentKey{Src: "r1", Dst: "r5"}))
	assert.False(t, s.RecomputePending)
}

func TestHandleIntentDelete_RemovesAndTriggersRecompute(t *testing.T) {
	s := newTestState(t)
	s.Intents.Put(&state.Intent{Key: state.IntentKey{Src: "r1", Dst: "r5"}})

	require.NoError(t, handleIntentDelete(s, protocol.IntentDelete{Src: "r1", Dst: "r5"}))
	assert.Nil(t, s.Intents.Get(state.IntentKey{Src: "r1", Dst: "r5"}))
	assert.True(t, s.RecomputePending)
}

func TestHandleIntentDelete_NoOpWhenAbsent(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, handleIntentDelete(s, protocol.IntentDelete{Src: "r1", Dst: "r5"}))
	assert.False(t, s.RecomputePending)
}
