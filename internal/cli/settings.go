package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cubegame "github.com/trollgameskr/cube-game"
	"github.com/trollgameskr/cube-game/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences and key bindings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsBindCmd = &cobra.Command{
	Use:   "bind <action> <key>",
	Short: "Bind a key to an action",
	Long: `Bind a single letter to an action. Actions: U D L R F B undo.
Shifted letters always turn counter-clockwise.

Example:
  cubegame settings bind R k`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsBind,
}

var settingsResetKeysCmd = &cobra.Command{
	Use:   "reset-keys",
	Short: "Restore the default key bindings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsResetKeys,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <size|mode|nickname> <value>",
	Short: "Change a preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsBindCmd)
	settingsCmd.AddCommand(settingsResetKeysCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	sf, err := openSettings()
	if err != nil {
		return err
	}
	s := sf.Settings()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Settings: %s\n\n", sf.Path())
	nickname := s.Nickname
	if nickname == "" {
		nickname = "(not set)"
	}
	fmt.Fprintf(out, "Nickname:       %s\n", nickname)
	fmt.Fprintf(out, "Cube size:      %d\n", s.CubeSize)
	fmt.Fprintf(out, "Rotation speed: %dms\n", s.RotationSpeedMs)
	fmt.Fprintf(out, "Drag mode:      %s\n", s.ResolverMode)
	if s.LastDeviceName != "" {
		fmt.Fprintf(out, "Last device:    %s\n", s.LastDeviceName)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Key bindings:")
	for _, action := range settings.Actions {
		fmt.Fprintf(out, "  %-5s %s\n", action, s.Keys[action])
	}
	return nil
}

func runSettingsBind(cmd *cobra.Command, args []string) error {
	sf, err := openSettings()
	if err != nil {
		return err
	}
	if err := sf.Bind(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s bound to %s\n", args[0], sf.Settings().Keys[args[0]])
	return nil
}

func runSettingsResetKeys(cmd *cobra.Command, args []string) error {
	sf, err := openSettings()
	if err != nil {
		return err
	}
	if err := sf.ResetKeys(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Key bindings restored to defaults")
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	sf, err := openSettings()
	if err != nil {
		return err
	}

	switch args[0] {
	case "size":
		var size int
		if _, err := fmt.Sscanf(args[1], "%d", &size); err != nil {
			return fmt.Errorf("%w: %q", cubegame.ErrInvalidSize, args[1])
		}
		err = sf.SetCubeSize(size)
	case "mode":
		mode, perr := cubegame.ParseResolverMode(args[1])
		if perr != nil {
			return perr
		}
		err = sf.SetResolverMode(mode)
	case "nickname":
		err = sf.SetNickname(args[1])
	default:
		return fmt.Errorf("unknown setting %q (want size, mode or nickname)", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", args[0], args[1])
	return nil
}
