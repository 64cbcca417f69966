// Package tui is the terminal front end: an unfolded cube net driven by
// keyboard turns and mouse drags.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	cubegame "github.com/trollgameskr/cube-game"
	"github.com/trollgameskr/cube-game/internal/netview"
	"github.com/trollgameskr/cube-game/internal/settings"
	"github.com/trollgameskr/cube-game/internal/storage"
)

// frameInterval is the animation tick.
const frameInterval = 16 * time.Millisecond

// MinDragCells is the gesture threshold to build the engine with, since drags
// are measured in terminal cells rather than pixels.
const MinDragCells = 1.0

// Net placement on screen: a title line and a blank line above, two columns
// of margin on the left.
const (
	netLeft = 2
	netTop  = 2
)

// Messages
type frameMsg time.Time

// Config wires a Model to its collaborators. Settings and Scores are
// optional.
type Config struct {
	Engine       *cubegame.Engine
	Settings     *settings.File
	Scores       *storage.ScoreRepository
	Logger       *zap.Logger
	AutoScramble bool
}

// Model is the Bubble Tea model of a game session.
type Model struct {
	engine   *cubegame.Engine
	tracker  *cubegame.Tracker
	settings *settings.File
	keys     settings.Settings
	scores   *storage.ScoreRepository
	log      *zap.Logger
	layout   netview.Layout

	lastFrame time.Time
	depth     int // pending inner-layer prefix, 0 = none
	scramble  string

	// Pointer drag
	dragging bool
	dragFace cubegame.Face
	dragR    int
	dragC    int
	dragX    int
	dragY    int

	// Victory prompt
	victory  bool
	result   cubegame.Result
	nickname string

	board     []storage.Score
	showBoard bool

	message  string
	isError  bool
	quitting bool
}

// New builds a model. With AutoScramble the cube is scrambled immediately.
func New(cfg Config) *Model {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	m := &Model{
		engine:   cfg.Engine,
		tracker:  cubegame.NewTracker(cfg.Engine),
		settings: cfg.Settings,
		keys:     settings.Defaults(),
		scores:   cfg.Scores,
		log:      log.Named("tui"),
	}
	if cfg.Settings != nil {
		m.keys = cfg.Settings.Settings()
		m.nickname = m.keys.Nickname
	}
	m.relayout()

	m.tracker.SetSolveCallback(m.solved)
	m.tracker.SetPhaseCallback(func(p cubegame.Phase) {
		m.log.Debug("phase reached", zap.String("phase", p.String()))
	})

	if cfg.AutoScramble {
		m.startScramble()
	}
	return m
}

func (m *Model) relayout() {
	m.layout = netview.Layout{Size: m.engine.Size(), Left: netLeft, Top: netTop, Gap: 1}
}

// Init starts the frame ticker.
func (m *Model) Init() tea.Cmd {
	return frameCmd()
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles input and frame ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			m.engine.Tick(now.Sub(m.lastFrame))
		}
		m.lastFrame = now
		return m, frameCmd()

	case tea.KeyMsg:
		if m.victory {
			return m, m.handleVictoryKey(msg)
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if !m.victory {
			m.handleMouse(msg)
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit

	case "enter":
		m.startScramble()
		return nil

	case "backspace":
		if err := m.engine.Reset(); err != nil {
			m.fail(err)
			return nil
		}
		m.scramble = ""
		m.info("Reset")
		return nil

	case "+", "=":
		m.resize(m.engine.Size() + 1)
		return nil

	case "-", "_":
		m.resize(m.engine.Size() - 1)
		return nil

	case "tab":
		mode := cubegame.ModeAdjacentLayer
		if m.engine.Resolver().Mode == cubegame.ModeAdjacentLayer {
			mode = cubegame.ModeFaceLayer
		}
		m.engine.SetResolverMode(mode)
		if m.settings != nil {
			if err := m.settings.SetResolverMode(mode); err != nil {
				m.log.Warn("failed to save settings", zap.Error(err))
			}
		}
		m.info("Drag mode: " + mode.String())
		return nil

	case "?":
		m.showBoard = !m.showBoard
		if m.showBoard {
			m.loadBoard()
		}
		return nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		m.depth = int(key[0] - '0')
		return nil
	}

	action, _, ok := m.keys.Action(key)
	if !ok {
		m.depth = 0
		return nil
	}
	if action == settings.ActionUndo {
		m.depth = 0
		if _, err := m.engine.Undo(); err != nil {
			m.fail(err)
		}
		return nil
	}

	mv, _ := m.keys.FaceMove(key, m.engine.Size())
	depth := m.depth
	m.depth = 0
	if depth > 1 {
		mv = deepen(mv, depth)
	}
	if !m.engine.Submit(mv) {
		m.fail(fmt.Errorf("no layer %d on a %d×%d×%d cube", max(depth, 1), m.engine.Size(), m.engine.Size(), m.engine.Size()))
		return nil
	}
	m.message = ""
	return nil
}

// deepen moves a face turn depth-1 layers toward the opposite face. The slice
// keeps the turning sense of the face it was named after.
func deepen(mv cubegame.Move, depth int) cubegame.Move {
	step := 1.0
	if mv.Layer > 0 {
		step = -1
	}
	sense := mv.Angle()
	mv.Layer += step * float64(depth-1)
	if (mv.Angle() > 0) != (sense > 0) {
		mv.Direction = -mv.Direction
	}
	return mv
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		f, r, c, ok := m.layout.Locate(msg.X, msg.Y)
		if !ok {
			return
		}
		m.dragging = true
		m.dragFace, m.dragR, m.dragC = f, r, c
		m.dragX, m.dragY = msg.X, msg.Y

	case tea.MouseActionRelease:
		if !m.dragging {
			return
		}
		m.dragging = false
		drag := cubegame.Vec2{float64(msg.X - m.dragX), float64(msg.Y - m.dragY)}
		hit := m.layout.Hit(m.dragFace, m.dragR, m.dragC)
		if _, ok := m.engine.Drag(hit, drag, m.layout.Projector(m.dragFace)); !ok {
			m.log.Debug("drag declined",
				zap.String("face", string(m.dragFace)),
				zap.Float64("dx", drag.X()), zap.Float64("dy", drag.Y()))
		}
	}
}

func (m *Model) startScramble() {
	moves, err := m.engine.Scramble()
	if err != nil {
		m.fail(err)
		return
	}
	m.scramble = cubegame.FormatMoves(moves, m.engine.Size())
	m.showBoard = false
	m.info("Scrambled: solve it!")
}

func (m *Model) resize(size int) {
	if err := m.engine.Resize(size); err != nil {
		m.fail(err)
		return
	}
	m.relayout()
	m.scramble = ""
	if m.settings != nil {
		if err := m.settings.SetCubeSize(size); err != nil {
			m.log.Warn("failed to save settings", zap.Error(err))
		}
	}
	m.info(fmt.Sprintf("Cube size %d×%d×%d", size, size, size))
}

func (m *Model) solved(r cubegame.Result) {
	m.log.Info("solved",
		zap.Int("size", r.Size),
		zap.Int("moves", r.Moves),
		zap.Duration("elapsed", r.Elapsed))
	m.victory = true
	m.result = r
	m.info(fmt.Sprintf("Solved in %d moves, %s!", r.Moves, formatElapsed(r.Elapsed)))
}

func (m *Model) handleVictoryKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return tea.Quit
	case tea.KeyEsc:
		m.victory = false
		return nil
	case tea.KeyEnter:
		m.saveScore()
		return nil
	case tea.KeyBackspace:
		if r := []rune(m.nickname); len(r) > 0 {
			m.nickname = string(r[:len(r)-1])
		}
		return nil
	case tea.KeySpace:
		m.appendNickname(" ")
	case tea.KeyRunes:
		m.appendNickname(string(msg.Runes))
	}
	return nil
}

func (m *Model) appendNickname(s string) {
	if utf8.RuneCountInString(m.nickname)+utf8.RuneCountInString(s) <= storage.MaxNicknameLength {
		m.nickname += s
	}
}

func (m *Model) saveScore() {
	name := strings.TrimSpace(m.nickname)
	if name == "" {
		m.fail(storage.ErrEmptyNickname)
		return
	}
	if m.scores == nil {
		m.victory = false
		m.info("No leaderboard database; score not saved")
		return
	}

	_, rank, err := m.scores.Create(storage.Score{
		Nickname: name,
		CubeSize: m.result.Size,
		Moves:    m.result.Moves,
		Time:     m.result.Elapsed,
		Scramble: m.scramble,
		MoveLog:  strings.Join(m.result.Notation, " "),
	})
	if err != nil {
		m.log.Error("failed to save score", zap.Error(err))
		m.fail(err)
		return
	}
	if m.settings != nil {
		if err := m.settings.SetNickname(name); err != nil {
			m.log.Warn("failed to save settings", zap.Error(err))
		}
	}

	m.victory = false
	m.loadBoard()
	m.showBoard = true
	m.info(fmt.Sprintf("%s placed #%d on the %d×%d×%d leaderboard", name, rank, m.result.Size, m.result.Size, m.result.Size))
}

func (m *Model) loadBoard() {
	if m.scores == nil {
		m.board = nil
		return
	}
	board, err := m.scores.Top(m.engine.Size(), 10)
	if err != nil {
		m.fail(err)
		return
	}
	m.board = board
}

func (m *Model) info(s string) {
	m.message, m.isError = s, false
}

func (m *Model) fail(err error) {
	switch {
	case errors.Is(err, cubegame.ErrBusy):
		m.message = "Wait for the cube to stop turning"
	case errors.Is(err, cubegame.ErrNoHistory):
		m.message = "Nothing to undo"
	case errors.Is(err, cubegame.ErrInvalidSize):
		m.message = fmt.Sprintf("Size must be %d to %d", cubegame.MinSize, cubegame.MaxSize)
	default:
		m.message = err.Error()
	}
	m.isError = true
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%04.1f", mins, secs)
}
