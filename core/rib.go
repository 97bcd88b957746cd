package core

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/gaissmai/bart"
	"github.com/ilsrd/ilsrd/state"
	"github.com/vishvananda/netlink"
)

// Installer is the host-forwarding-table backend of spec section 4.6.
// The Linux implementation programs the real kernel table via netlink;
// tests and non-Linux builds use NullInstaller, mirroring the
// sys_linux.go / sys_darwin.go split in the teacher.
type Installer interface {
	Install(route state.RouteEntry) error
	Remove(route state.RouteEntry) error
}

// RIBInstaller reconciles the computed RouteEntry set against what is
// currently installed, per spec section 4.6: it only issues the
// minimal add/replace/remove operations needed, using a bart.Table as
// an LPM-capable shadow of the installed state for fast membership
// checks, the same structure the teacher keeps for its own
// ForwardTable/ExitTable in core/router.go.
type RIBInstaller struct {
	backend Installer
	shadow  bart.Table[state.RouteEntry]
}

func (r *RIBInstaller) Init(s *state.State) error {
	r.backend = newInstaller()
	r.shadow = bart.Table[state.RouteEntry]{}
	return nil
}

func (r *RIBInstaller) Cleanup(s *state.State) error {
	for prefix, route := range s.Installed {
		p, err := netip.ParsePrefix(prefix)
		if err != nil {
			continue
		}
		if err := r.backend.Remove(route); err != nil {
			s.Log.Warn(string(state.EventRibFail), "prefix", p, "err", err)
		}
	}
	return nil
}

// reconcile diffs s.Routes (freshly computed by runSPF) against
// r.shadow (the LPM view of what is actually in the kernel table) and
// issues the minimal set of install/remove calls, per spec section
// 4.6. s.Installed is kept as a plain mirror of r.shadow for callers
// that want to read back installed state without the bart API.
func (r *RIBInstaller) reconcile(s *state.State) error {
	for key, route := range s.Routes {
		old, exists := r.shadow.Get(route.Prefix)
		if exists && routeEqual(old, route) {
			continue
		}
		if err := r.backend.Install(route); err != nil {
			s.Counters.RibInstallFailures++
			s.Log.Warn(string(state.EventRibFail), "prefix", route.Prefix, "err", err)
			continue
		}
		r.shadow.Insert(route.Prefix, route)
		s.Installed[key] = route
		s.Log.Info(string(state.EventRibInstall), "prefix", route.Prefix, "next_hop", route.NextHopIP, "cost", route.Cost)
	}

	var stale []netip.Prefix
	for prefix, old := range r.shadow.All() {
		if _, stillWanted := s.Routes[prefix.String()]; stillWanted {
			continue
		}
		if err := r.backend.Remove(old); err != nil {
			s.Counters.RibInstallFailures++
			s.Log.Warn(string(state.EventRibFail), "prefix", old.Prefix, "err", err)
			continue
		}
		stale = append(stale, prefix)
		delete(s.Installed, prefix.String())
		s.Log.Info(string(state.EventRibRemove), "prefix", old.Prefix)
	}
	for _, prefix := range stale {
		r.shadow.Delete(prefix)
	}
	return nil
}

func routeEqual(a, b state.RouteEntry) bool {
	return a.NextHopIP == b.NextHopIP && a.Iface == b.Iface && a.Cost == b.Cost
}

// linuxInstaller programs the real host forwarding table via netlink,
// per spec section 4.6.
type linuxInstaller struct{}

func (linuxInstaller) Install(route state.RouteEntry) error {
	link, err := netlink.LinkByName(route.Iface)
	if err != nil {
		return fmt.Errorf("lookup iface %q: %w", route.Iface, err)
	}
	nlRoute := toNetlinkRoute(link.Attrs().Index, route)
	if err := netlink.RouteReplace(&nlRoute); err != nil {
		return fmt.Errorf("install route to %s: %w", route.Prefix, err)
	}
	return nil
}

func (linuxInstaller) Remove(route state.RouteEntry) error {
	link, err := netlink.LinkByName(route.Iface)
	if err != nil {
		// already gone along with the interface; nothing to remove.
		return nil
	}
	nlRoute := toNetlinkRoute(link.Attrs().Index, route)
	if err := netlink.RouteDel(&nlRoute); err != nil {
		return fmt.Errorf("remove route to %s: %w", route.Prefix, err)
	}
	return nil
}

func toNetlinkRoute(linkIndex int, route state.RouteEntry) netlink.Route {
	_, dst, _ := net.ParseCIDR(route.Prefix.String())
	return netlink.Route{
		LinkIndex: linkIndex,
		Dst:       dst,
		Gw:        net.IP(route.NextHopIP.AsSlice()),
	}
}

// NullInstaller is the no-op backend used by tests and any platform
// where real route installation is out of scope, per spec section 9
// ("host forwarding table install is an environment concern; a no-op
// backend must remain available for simulation/test").
type NullInstaller struct{}

func (NullInstaller) Install(route state.RouteEntry) error { return nil }
func (NullInstaller) Remove(route state.RouteEntry) error  { return nil }
