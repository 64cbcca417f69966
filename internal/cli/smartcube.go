package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cubegame "github.com/trollgameskr/cube-game"
	"github.com/trollgameskr/cube-game/internal/smartcube"
)

var (
	scanTimeout    time.Duration
	connectAddress string
	connectReset   bool
	connectOrient  bool
)

var smartcubeCmd = &cobra.Command{
	Use:     "smartcube",
	Aliases: []string{"gocube"},
	Short:   "Drive a 3×3×3 game from a GoCube over Bluetooth",
}

var smartcubeScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List nearby GoCube devices",
	Args:  cobra.NoArgs,
	RunE:  runSmartcubeScan,
}

var smartcubeConnectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Mirror a GoCube's turns into a 3×3×3 cube",
	Long: `Connect to a GoCube and print each turn, the running move count and
solved events until interrupted with Ctrl+C.

Examples:
  cubegame smartcube connect
  cubegame smartcube connect --address 12:34:56:78:9A:BC --reset`,
	Args: cobra.NoArgs,
	RunE: runSmartcubeConnect,
}

func init() {
	rootCmd.AddCommand(smartcubeCmd)
	smartcubeCmd.AddCommand(smartcubeScanCmd)
	smartcubeCmd.AddCommand(smartcubeConnectCmd)

	smartcubeScanCmd.Flags().DurationVar(&scanTimeout, "timeout", 10*time.Second, "Scan duration")
	smartcubeConnectCmd.Flags().StringVar(&connectAddress, "address", "", "Device address (default: first GoCube found)")
	smartcubeConnectCmd.Flags().BoolVar(&connectReset, "reset", false, "Tell the cube it is solved after connecting")
	smartcubeConnectCmd.Flags().BoolVar(&connectOrient, "orientation", false, "Print which faces point up and front")
}

func runSmartcubeScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanning for %s...\n", scanTimeout)

	devices, err := smartcube.Scan(ctx, scanTimeout, logger)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Fprintln(out, "No GoCube devices found")
		return nil
	}

	for _, d := range devices {
		fmt.Fprintf(out, "  %-20s %s  %d dBm\n", d.Name, d.UUID, d.RSSI)
	}
	return nil
}

func runSmartcubeConnect(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := cubegame.NewEngine(3, cubegame.WithLogger(logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var sc *smartcube.SmartCube
	if connectAddress != "" {
		fmt.Fprintf(out, "Connecting to %s...\n", connectAddress)
		sc, err = smartcube.Connect(ctx, smartcube.Device{UUID: connectAddress}, engine, logger)
	} else {
		fmt.Fprintln(out, "Looking for a GoCube...")
		sc, err = smartcube.ConnectFirst(ctx, engine, logger)
	}
	if err != nil {
		return err
	}
	defer sc.Close()

	fmt.Fprintf(out, "Connected to %s\n", sc.DeviceName())
	if sf, err := openSettings(); err == nil {
		if err := sf.SetLastDevice(sc.DeviceName()); err != nil {
			logger.Warn("save last device", zap.Error(err))
		}
	}

	if connectReset {
		if err := sc.ResetSolved(); err != nil {
			return err
		}
	}

	engine.OnSolved(func() {
		fmt.Fprintf(out, "Solved in %d moves!\n", engine.MoveCount())
		if err := sc.Flash(); err != nil {
			logger.Debug("flash backlight", zap.Error(err))
		}
	})
	sc.OnMove(func(m cubegame.Move) {
		fmt.Fprintf(out, "%-3s  moves: %d\n", m.Notation(3), engine.MoveCount())
	})
	sc.OnBattery(func(level int) {
		fmt.Fprintf(out, "Battery: %d%%\n", level)
	})
	if connectOrient {
		sc.OnOrientationChange(func(o smartcube.Orientation) {
			fmt.Fprintf(out, "Up: %s  Front: %s\n", o.UpFace, o.FrontFace)
		})
		if err := sc.TrackOrientation(true); err != nil {
			return err
		}
		defer sc.TrackOrientation(false)
	}

	fmt.Fprintln(out, "Turn the cube. Press Ctrl+C to stop.")
	<-ctx.Done()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Moves: %d  Solved: %v\n", engine.MoveCount(), engine.IsSolved())
	return nil
}
