package cmd

import (
	"fmt"
	"net"

	"github.com/ilsrd/ilsrd/protocol"
	"github.com/ilsrd/ilsrd/state"
	"github.com/spf13/cobra"
)

// intentCmd groups the operator-facing INTENT control surface of spec
// section 6: intents are pushed to a running daemon's control port
// over the same UDP wire protocol routers use among themselves.
var intentCmd = &cobra.Command{
	Use:     "intent",
	Short:   "Install or remove a per-flow intent on a running daemon",
	GroupID: "operator",
}

var (
	intentTarget     string
	intentSrc        string
	intentDst        string
	intentMinBw      float64
	intentMaxLatency float64
	intentHasMinBw   bool
	intentHasMaxLat  bool
)

var intentPutCmd = &cobra.Command{
	Use:   "put",
	Short: "Install or replace an intent",
	RunE: func(cmd *cobra.Command, args []string) error {
		msg := protocol.Intent{Src: intentSrc, Dst: intentDst}
		if intentHasMinBw {
			msg.MinBandwidth = &intentMinBw
		}
		if intentHasMaxLat {
			msg.MaxLatency = &intentMaxLatency
		}
		return sendControlMessage(intentTarget, msg)
	},
}

var intentDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove an intent",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendControlMessage(intentTarget, protocol.IntentDelete{Src: intentSrc, Dst: intentDst})
	},
}

func init() {
	rootCmd.AddCommand(intentCmd)
	intentCmd.AddCommand(intentPutCmd)
	intentCmd.AddCommand(intentDeleteCmd)

	for _, c := range []*cobra.Command{intentPutCmd, intentDeleteCmd} {
		c.Flags().StringVar(&intentTarget, "target", fmt.Sprintf("127.0.0.1:%d", state.DefaultControlPort), "host:port of the daemon's control socket")
		c.Flags().StringVar(&intentSrc, "src", "", "source router id")
		c.Flags().StringVar(&intentDst, "dst", "", "destination router id")
		_ = c.MarkFlagRequired("src")
		_ = c.MarkFlagRequired("dst")
	}
	intentPutCmd.Flags().Float64Var(&intentMinBw, "min-bandwidth", 0, "minimum bandwidth in Mbps")
	intentPutCmd.Flags().Float64Var(&intentMaxLatency, "max-latency", 0, "maximum latency in ms")
	intentPutCmd.PreRun = func(cmd *cobra.Command, args []string) {
		intentHasMinBw = cmd.Flags().Changed("min-bandwidth")
		intentHasMaxLat = cmd.Flags().Changed("max-latency")
	}
}

func sendControlMessage(target string, msg protocol.Message) error {
	addr, err := net.ResolveUDPAddr("udp4", target)
	if err != nil {
		return err
	}
	conn, err := net.DialUDP("udp4", nil, addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	payload, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	_, err = conn.Write(payload)
	return err
}
