package core

import (
	"net"
	"net/netip"

	"github.com/ilsrd/ilsrd/protocol"
	"github.com/ilsrd/ilsrd/state"
)

// readLoop is the only goroutine that reads from the socket. It parses
// bytes and immediately hands the decoded message back to the
// control-plane loop via Env.Dispatch; per spec section 5 it never
// mutates State itself. This mirrors the teacher's linkHandler
// goroutine in impl/ctl_link_manager.go, which reads off a link and
// dispatches onto the main loop rather than mutating state inline.
func readLoop(env *state.Env, conn *net.UDPConn) {
	buf := make([]byte, 2*state.SafeMTU)
	for env.Context.Err() == nil {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if env.Context.Err() != nil {
				return
			}
			continue // transient I/O error, per spec section 7
		}
		src, ok := sourceAddr(addr)
		if !ok {
			continue
		}
		payload := append([]byte(nil), buf[:n]...)
		msg, err := protocol.Decode(payload)
		if err != nil {
			env.Dispatch(func(s *state.State) error {
				s.Counters.MalformedDropped++
				s.Log.Debug("dropped malformed datagram", "from", src, "err", err)
				return nil
			})
			continue
		}
		env.Dispatch(func(s *state.State) error {
			return handleMessage(s, src, msg)
		})
	}
}

func handleMessage(s *state.State, src netip.Addr, msg protocol.Message) error {
	iface := s.Cfg.IfaceForPeer(src)
	switch m := msg.(type) {
	case protocol.Hello:
		if iface == nil {
			s.Log.Debug("HELLO from unrecognized peer address", "from", src)
			return nil
		}
		return handleHello(s, iface.Name, m)
	case protocol.LSA:
		if iface == nil {
			s.Log.Debug("LSA from unrecognized peer address", "from", src)
			return nil
		}
		return handleLSA(s, iface.Name, m)
	case protocol.Intent:
		return handleIntentPut(s, m)
	case protocol.IntentDelete:
		return handleIntentDelete(s, m)
	default:
		s.Counters.MalformedDropped++
		return nil
	}
}
