package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cubegame "github.com/trollgameskr/cube-game"
	"github.com/trollgameskr/cube-game/internal/settings"
	"github.com/trollgameskr/cube-game/internal/storage"
	"github.com/trollgameskr/cube-game/internal/tui"
)

var (
	playSize       int
	playSpeed      time.Duration
	playMode       string
	playNoScramble bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the interactive game. The cube is shown as an unfolded net.

Keys (customizable with "cubegame settings bind"):
  u d l r f b   turn a face clockwise, shifted for counter-clockwise
  1-9           prefix a turn with a layer depth (2r turns the slice next to R)
  z             undo
  enter         scramble
  backspace     reset to solved
  + / -         change cube size
  tab           toggle drag mode (face layer / adjacent layer)
  ?             show the leaderboard
  esc           quit

Drag a sticker with the mouse to turn its row or column.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVarP(&playSize, "size", "n", 0, "Cube size 2-7 (default: from settings)")
	playCmd.Flags().DurationVar(&playSpeed, "speed", 0, "Rotation duration per move (default: from settings)")
	playCmd.Flags().StringVar(&playMode, "mode", "", "Drag mode: face or adjacent (default: from settings)")
	playCmd.Flags().BoolVar(&playNoScramble, "no-scramble", false, "Start from a solved cube")
}

func runPlay(cmd *cobra.Command, args []string) error {
	sf, err := openSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	prefs := sf.Settings()

	opts, size, err := engineOptions(prefs, playSize, playSpeed, playMode)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so only a log file may receive logs.
	log := logger
	if logFile == "" {
		log = zap.NewNop()
	}
	opts = append(opts, cubegame.WithLogger(log), cubegame.WithMinDrag(tui.MinDragCells))

	engine, err := cubegame.NewEngine(size, opts...)
	if err != nil {
		return err
	}

	var scores *storage.ScoreRepository
	db, err := openDB()
	if err != nil {
		log.Warn("leaderboard unavailable", zap.Error(err))
	} else {
		defer db.Close()
		scores = storage.NewScoreRepository(db)
	}

	model := tui.New(tui.Config{
		Engine:       engine,
		Settings:     sf,
		Scores:       scores,
		Logger:       log,
		AutoScramble: !playNoScramble,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// engineOptions merges saved preferences with command flags. Zero or empty
// flags fall back to the preferences.
func engineOptions(prefs settings.Settings, size int, speed time.Duration, mode string) ([]cubegame.Option, int, error) {
	if size == 0 {
		size = prefs.CubeSize
	}
	if size < cubegame.MinSize || size > cubegame.MaxSize {
		return nil, 0, fmt.Errorf("%w: got %d", cubegame.ErrInvalidSize, size)
	}

	if speed == 0 {
		speed = time.Duration(prefs.RotationSpeedMs) * time.Millisecond
	}

	if mode == "" {
		mode = prefs.ResolverMode
	}
	resolverMode, err := cubegame.ParseResolverMode(mode)
	if err != nil {
		return nil, 0, err
	}

	return []cubegame.Option{
		cubegame.WithRotationSpeed(speed),
		cubegame.WithResolverMode(resolverMode),
	}, size, nil
}
