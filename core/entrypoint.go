package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"os"
	"os/signal"
	"path"
	"reflect"
	"runtime"
	"syscall"
	"time"

	"github.com/encodeous/tint"
	"github.com/ilsrd/ilsrd/state"
	slogmulti "github.com/samber/slog-multi"
)

// Start wires up a node's logger, UDP socket and modules, then runs
// the control-plane loop until the context is cancelled, mirroring
// core/entrypoint.go's Bootstrap/Start split in the teacher, minus the
// config-distribution restart loop (spec section 1 scopes distributed
// config fetch out as an environment concern).
func Start(cfg state.LocalCfg, logLevel slog.Level) error {
	cfg.ApplyDefaults()
	if err := state.LocalConfigValidator(&cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	dispatch := make(chan func(*state.State) error, 128)

	handlers := []slog.Handler{
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:        logLevel,
			CustomPrefix: string(cfg.Id),
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				if attr.Key == "time" {
					return slog.Attr{}
				}
				return attr
			},
		}),
	}
	if cfg.LogPath != "" {
		if err := os.MkdirAll(path.Dir(cfg.LogPath), 0700); err != nil {
			return err
		}
		f, err := os.OpenFile(cfg.LogPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0700)
		if err != nil {
			return err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel}))
	}
	logger := slog.New(slogmulti.Fanout(handlers...))

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: int(cfg.ControlPort)})
	if err != nil {
		return fmt.Errorf("failed to bind control port %d: %w", cfg.ControlPort, err)
	}

	ifaces := make(map[string]*state.IfaceCfg, len(cfg.Interfaces))
	for i := range cfg.Interfaces {
		ic := cfg.Interfaces[i]
		ifaces[ic.Name] = &ic
	}

	s := &state.State{
		Id:         cfg.Id,
		Ifaces:     ifaces,
		Neighbours: make(map[string]*state.Neighbour),
		LSDB:       state.NewLSDB(),
		Intents:    state.NewIntentStore(),
		Routes:     make(map[string]state.RouteEntry),
		Installed:  make(map[string]state.RouteEntry),
		Modules:    make(map[string]state.NyModule),
		Env: &state.Env{
			Cfg:             cfg,
			Context:         ctx,
			Cancel:          cancel,
			DispatchChannel: dispatch,
			Log:             logger,
			Conn:            conn,
		},
	}

	// seed the LSDB with our own empty LSA at seq 0 so path computation
	// never needs a nil check for the local node.
	s.LSDB.Accept(&state.LSA{Originator: s.Id, Seq: 0})

	s.Log.Info("init modules")
	if err := initModules(s); err != nil {
		return err
	}
	s.Log.Info("init modules complete", "interfaces", len(cfg.Interfaces))

	dispatch <- originateLSA

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			s.Cancel(errors.New("received shutdown signal"))
		case <-ctx.Done():
		}
	}()

	go readLoop(s.Env, conn)

	return MainLoop(s, dispatch)
}

func initModules(s *state.State) error {
	modules := []state.NyModule{
		&LinkManager{},
		&Flooder{},
		&PathEngine{},
		&IntentController{},
		&RIBInstaller{},
	}
	for _, m := range modules {
		if err := registerModule(s, m); err != nil {
			return err
		}
	}
	return nil
}

// MainLoop is the single cooperative event loop of spec section 4.7:
// every mutation of LSDB/neighbours/intents/RIB happens inside one of
// the dispatched functions, never concurrently with another.
func MainLoop(s *state.State, dispatch <-chan func(*state.State) error) error {
	s.Log.Debug("started main loop")
	for {
		select {
		case fun := <-dispatch:
			if fun == nil {
				goto endLoop
			}
			start := time.Now()
			if err := fun(s); err != nil {
				s.Log.Error("error occurred during dispatch", "error", err)
				s.Cancel(err)
			}
			if elapsed := time.Since(start); elapsed > 4*time.Millisecond {
				s.Log.Warn("dispatch took a long time", "fun", runtime.FuncForPC(reflect.ValueOf(fun).Pointer()).Name(), "elapsed", elapsed)
			}
		case <-s.Context.Done():
			goto endLoop
		}
	}
endLoop:
	s.Log.Info("stopped main loop", "reason", context.Cause(s.Context).Error())
	Stop(s)
	return nil
}

func Stop(s *state.State) {
	for name, m := range s.Modules {
		if err := m.Cleanup(s); err != nil {
			s.Log.Error("error occurred during cleanup", "module", name, "error", err)
		}
	}
	if s.Conn != nil {
		_ = s.Conn.Close()
	}
}

// sourceAddr is a small helper kept separate from readLoop purely so
// tests can exercise interface resolution without a real socket.
func sourceAddr(addr *net.UDPAddr) (netip.Addr, bool) {
	if addr == nil {
		return netip.Addr{}, false
	}
	ip, ok := netip.AddrFromSlice(addr.IP.To4())
	return ip, ok
}
