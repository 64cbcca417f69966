// Package settings persists player preferences and key bindings.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	cubegame "github.com/trollgameskr/cube-game"
)

// Actions that can be bound to a key.
const (
	ActionU    = "U"
	ActionD    = "D"
	ActionL    = "L"
	ActionR    = "R"
	ActionF    = "F"
	ActionB    = "B"
	ActionUndo = "undo"
)

// Actions lists every bindable action in display order.
var Actions = []string{ActionU, ActionD, ActionL, ActionR, ActionF, ActionB, ActionUndo}

var (
	ErrUnknownAction = errors.New("settings: unknown action")
	ErrInvalidKey    = errors.New("settings: key must be a single letter")
	ErrKeyInUse      = errors.New("settings: key already bound")
)

// DefaultKeys returns the default key bindings.
func DefaultKeys() map[string]string {
	return map[string]string{
		ActionU:    "u",
		ActionD:    "d",
		ActionL:    "l",
		ActionR:    "r",
		ActionF:    "f",
		ActionB:    "b",
		ActionUndo: "z",
	}
}

// Settings is the persisted preferences document.
type Settings struct {
	Nickname        string            `json:"nickname,omitempty"`
	CubeSize        int               `json:"cube_size"`
	RotationSpeedMs int               `json:"rotation_speed_ms"`
	ResolverMode    string            `json:"resolver_mode"`
	DBPath          string            `json:"db_path,omitempty"`
	LastDeviceName  string            `json:"last_device_name,omitempty"`
	Keys            map[string]string `json:"keys"`
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{
		CubeSize:        3,
		RotationSpeedMs: int(cubegame.DefaultRotationSpeed.Milliseconds()),
		ResolverMode:    cubegame.ModeFaceLayer.String(),
		Keys:            DefaultKeys(),
	}
}

// normalize fills missing or invalid fields with defaults so older files
// keep loading.
func (s *Settings) normalize() {
	d := Defaults()
	if s.CubeSize < cubegame.MinSize || s.CubeSize > cubegame.MaxSize {
		s.CubeSize = d.CubeSize
	}
	if s.RotationSpeedMs < 0 {
		s.RotationSpeedMs = d.RotationSpeedMs
	}
	if _, err := cubegame.ParseResolverMode(s.ResolverMode); err != nil {
		s.ResolverMode = d.ResolverMode
	}
	if s.Keys == nil {
		s.Keys = map[string]string{}
	}
	for action, key := range d.Keys {
		if _, ok := s.Keys[action]; !ok {
			s.Keys[action] = key
		}
	}
}

// Action returns the action bound to key and whether the key was typed
// shifted. Shifted face keys turn counter-clockwise.
func (s Settings) Action(key string) (action string, shifted bool, ok bool) {
	r := []rune(key)
	if len(r) != 1 || !unicode.IsLetter(r[0]) {
		return "", false, false
	}
	shifted = unicode.IsUpper(r[0])
	lower := string(unicode.ToLower(r[0]))
	for _, a := range Actions {
		if s.Keys[a] == lower {
			return a, shifted, true
		}
	}
	return "", false, false
}

// FaceMove returns the move bound to key on a cube of the given size.
func (s Settings) FaceMove(key string, size int) (cubegame.Move, bool) {
	action, shifted, ok := s.Action(key)
	if !ok || action == ActionUndo {
		return cubegame.Move{}, false
	}
	dir := cubegame.CW
	if shifted {
		dir = cubegame.CCW
	}
	return cubegame.FaceMove(cubegame.Face(action), size, dir), true
}

// File manages the settings file.
type File struct {
	path     string
	settings Settings
}

// DefaultPath returns ~/.cube_game/settings.json, creating the directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".cube_game")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(dir, "settings.json"), nil
}

// Open loads the settings at path. A missing file yields defaults.
func Open(path string) (*File, error) {
	f := &File{path: path, settings: Defaults()}
	if err := f.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return f, nil
}

// OpenDefault loads the settings at the default path.
func OpenDefault() (*File, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Path returns the settings file path.
func (f *File) Path() string {
	return f.path
}

// Load loads the settings from disk.
func (f *File) Load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}
	s.normalize()
	f.settings = s
	return nil
}

// Save saves the settings to disk.
func (f *File) Save() error {
	data, err := json.MarshalIndent(f.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Settings returns a copy of the current settings.
func (f *File) Settings() Settings {
	s := f.settings
	s.Keys = make(map[string]string, len(f.settings.Keys))
	for k, v := range f.settings.Keys {
		s.Keys[k] = v
	}
	return s
}

// SetNickname stores the nickname used for leaderboard entries.
func (f *File) SetNickname(name string) error {
	f.settings.Nickname = strings.TrimSpace(name)
	return f.Save()
}

// SetCubeSize stores the preferred cube size.
func (f *File) SetCubeSize(size int) error {
	if size < cubegame.MinSize || size > cubegame.MaxSize {
		return cubegame.ErrInvalidSize
	}
	f.settings.CubeSize = size
	return f.Save()
}

// SetResolverMode stores the drag resolver mode.
func (f *File) SetResolverMode(mode cubegame.ResolverMode) error {
	f.settings.ResolverMode = mode.String()
	return f.Save()
}

// SetLastDevice stores the last connected smart cube.
func (f *File) SetLastDevice(name string) error {
	f.settings.LastDeviceName = name
	return f.Save()
}

// Bind assigns key to action. A key already bound to another action is
// rejected.
func (f *File) Bind(action, key string) error {
	if _, ok := DefaultKeys()[action]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	r := []rune(key)
	if len(r) != 1 || !unicode.IsLetter(r[0]) {
		return ErrInvalidKey
	}
	key = strings.ToLower(key)
	for other, bound := range f.settings.Keys {
		if other != action && bound == key {
			return fmt.Errorf("%w: %q is used by %s", ErrKeyInUse, key, other)
		}
	}
	f.settings.Keys[action] = key
	return f.Save()
}

// ResetKeys restores the default key bindings.
func (f *File) ResetKeys() error {
	f.settings.Keys = DefaultKeys()
	return f.Save()
}
