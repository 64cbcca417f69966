// Package cli implements the command-line interface for cubegame.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trollgameskr/cube-game/internal/logx"
	"github.com/trollgameskr/cube-game/internal/settings"
	"github.com/trollgameskr/cube-game/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath       string
	settingsPath string
	logFile      string
	verbose      bool

	logger   = zap.NewNop()
	closeLog = func() error { return nil }
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubegame",
	Short: "Twisty puzzle game for the terminal",
	Long: `cubegame - an N×N×N twisty puzzle (2×2×2 to 7×7×7) in your terminal.

Turn layers with the keyboard or by dragging stickers with the mouse, race the
timer and put your name on the local leaderboard. A GoCube smart cube can drive
the game over Bluetooth.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Leaderboard database path (default: ~/.cube_game/scores.db)")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Settings file path (default: ~/.cube_game/settings.json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// setupLogging logs to --log-file when given, otherwise to stderr only with
// --verbose.
func setupLogging(cmd *cobra.Command, args []string) error {
	if logFile == "" && !verbose {
		logger, closeLog = zap.NewNop(), func() error { return nil }
		return nil
	}

	level := "info"
	if verbose {
		level = "debug"
	}
	l, closeFn, err := logx.New(logx.Config{Level: level, File: logFile})
	if err != nil {
		return err
	}
	logger, closeLog = l, closeFn
	return nil
}

// openDB opens the leaderboard database from the flag, the settings file or
// the default path, in that order.
func openDB() (*storage.DB, error) {
	if dbPath != "" {
		return storage.Open(dbPath)
	}
	if sf, err := openSettings(); err == nil && sf.Settings().DBPath != "" {
		return storage.Open(sf.Settings().DBPath)
	}
	return storage.OpenDefault()
}

// openSettings loads settings from the flag or the default path.
func openSettings() (*settings.File, error) {
	if settingsPath != "" {
		return settings.Open(settingsPath)
	}
	return settings.OpenDefault()
}
