package core

import (
	"context"
	"io"
	"log/slog"

	"github.com/ilsrd/ilsrd/state"
)

// testEnv returns a minimally-functional Env for unit tests that
// exercise dispatch-triggering code paths (requestRecompute,
// onAdjacencyChange) without a real socket or main loop. The dispatch
// channel is buffered so ScheduleTask/Dispatch calls made during a
// test never block.
func testEnv() *state.Env {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &state.Env{
		Context:         ctx,
		Cancel:          cancel,
		DispatchChannel: make(chan func(*state.State) error, 64),
		Log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
