package state

import (
	"fmt"
	"net/netip"
	"time"
)

// NodeId is a stable opaque router identifier, unique within the
// routing domain, per spec section 3.
type NodeId string

// IfaceCfg is the local handle described in spec section 3
// ("Interface"): a point-to-point link with a nominal, statically
// configured bandwidth and delay.
type IfaceCfg struct {
	Name          string
	LocalIP       netip.Addr
	PeerIP        netip.Addr
	BandwidthMbps float64
	DelayMs       float64
	// AdminDown mirrors spec section 4.1's admin-down edge policy; the
	// zero value (false) is "up", so an interface needs no explicit
	// flag to participate.
	AdminDown bool `yaml:"admin_down,omitempty"`
}

func (i *IfaceCfg) IsUp() bool {
	return !i.AdminDown
}

// LocalCfg is this node's configuration, loaded from YAML the way the
// teacher loads state.LocalCfg in core/entrypoint.go.
type LocalCfg struct {
	Id           NodeId
	Interfaces   []IfaceCfg
	StubPrefixes []netip.Prefix `yaml:"stub_prefixes,omitempty"`
	ControlPort  uint16         `yaml:"control_port,omitempty"`

	HelloInterval      time.Duration `yaml:"hello_interval,omitempty"`
	DeadInterval       time.Duration `yaml:"dead_interval,omitempty"`
	LsaRefreshInterval time.Duration `yaml:"lsa_refresh_interval,omitempty"`
	RecomputeCoalesce  time.Duration `yaml:"recompute_coalesce,omitempty"`

	LogPath string `yaml:"log_path,omitempty"`
}

// ApplyDefaults fills in the timers left unset in YAML, mirroring the
// teacher's ExpandCentralConfig pattern of normalizing config after
// load and before validation.
func (c *LocalCfg) ApplyDefaults() {
	if c.ControlPort == 0 {
		c.ControlPort = DefaultControlPort
	}
	if c.HelloInterval == 0 {
		c.HelloInterval = DefaultHelloInterval
	}
	if c.DeadInterval == 0 {
		c.DeadInterval = DefaultDeadInterval
	}
	if c.LsaRefreshInterval == 0 {
		c.LsaRefreshInterval = DefaultLsaRefreshInterval
	}
	if c.RecomputeCoalesce == 0 {
		c.RecomputeCoalesce = DefaultRecomputeCoalesce
	}
}

func (c *LocalCfg) GetIface(name string) *IfaceCfg {
	for i := range c.Interfaces {
		if c.Interfaces[i].Name == name {
			return &c.Interfaces[i]
		}
	}
	return nil
}

// IfaceForPeer finds the local interface whose point-to-point peer
// matches the given source address, used to map an inbound datagram
// to its owning interface/neighbour, since the control socket is
// bound to all local addresses (spec section 6).
func (c *LocalCfg) IfaceForPeer(src netip.Addr) *IfaceCfg {
	for i := range c.Interfaces {
		if c.Interfaces[i].PeerIP == src {
			return &c.Interfaces[i]
		}
	}
	return nil
}

func NodeIdValidator(id NodeId) error {
	if id == "" {
		return fmt.Errorf("router id must not be empty")
	}
	return nil
}

// LocalConfigValidator checks the static invariants spec section 5
// requires for safety (DeadInterval > HelloInterval) plus the basic
// structural requirements from section 3.
func LocalConfigValidator(c *LocalCfg) error {
	if err := NodeIdValidator(c.Id); err != nil {
		return err
	}
	if c.DeadInterval <= c.HelloInterval {
		return fmt.Errorf("dead_interval (%s) must be greater than hello_interval (%s)", c.DeadInterval, c.HelloInterval)
	}
	seen := make(map[string]bool)
	for _, iface := range c.Interfaces {
		if iface.Name == "" {
			return fmt.Errorf("interface with empty name")
		}
		if seen[iface.Name] {
			return fmt.Errorf("duplicate interface name %q", iface.Name)
		}
		seen[iface.Name] = true
		if !iface.LocalIP.IsValid() || !iface.PeerIP.IsValid() {
			return fmt.Errorf("interface %q must have valid local/peer IPs", iface.Name)
		}
		if iface.BandwidthMbps <= 0 {
			return fmt.Errorf("interface %q bandwidth must be positive", iface.Name)
		}
		if iface.DelayMs < 0 {
			return fmt.Errorf("interface %q delay must be non-negative", iface.Name)
		}
	}
	return nil
}
