package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cubegame "github.com/trollgameskr/cube-game"
)

func TestMissingFileYieldsDefaults(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), f.Settings())
	assert.Equal(t, 200, f.Settings().RotationSpeedMs)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "settings.json")
	f, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, f.SetNickname("  cuber "))
	require.NoError(t, f.SetCubeSize(5))
	require.NoError(t, f.SetResolverMode(cubegame.ModeAdjacentLayer))
	require.NoError(t, f.Bind(ActionR, "K"))
	assert.ErrorIs(t, f.SetCubeSize(9), cubegame.ErrInvalidSize)

	g, err := Open(path)
	require.NoError(t, err)
	s := g.Settings()
	assert.Equal(t, "cuber", s.Nickname)
	assert.Equal(t, 5, s.CubeSize)
	assert.Equal(t, "adjacent", s.ResolverMode)
	assert.Equal(t, "k", s.Keys[ActionR])
}

func TestOldFileGetsMissingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cube_size": 42, "resolver_mode": "spin", "keys": {"U": "w"}}`), 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	s := f.Settings()
	assert.Equal(t, 3, s.CubeSize)
	assert.Equal(t, "face", s.ResolverMode)
	assert.Equal(t, "w", s.Keys[ActionU])
	assert.Equal(t, "z", s.Keys[ActionUndo])
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := Open(path)
	assert.Error(t, err)
}

func TestBindRejects(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.Bind("spin", "q"), ErrUnknownAction)
	assert.ErrorIs(t, f.Bind(ActionU, "1"), ErrInvalidKey)
	assert.ErrorIs(t, f.Bind(ActionU, "ab"), ErrInvalidKey)
	assert.ErrorIs(t, f.Bind(ActionU, "d"), ErrKeyInUse)
	require.NoError(t, f.Bind(ActionU, "u"), "rebinding the same key is fine")

	require.NoError(t, f.Bind(ActionU, "q"))
	require.NoError(t, f.ResetKeys())
	assert.Equal(t, DefaultKeys(), f.Settings().Keys)
}

func TestFaceMoveFromKeys(t *testing.T) {
	s := Defaults()

	m, ok := s.FaceMove("r", 3)
	require.True(t, ok)
	assert.Equal(t, "R", m.Notation(3))

	m, ok = s.FaceMove("F", 3)
	require.True(t, ok)
	assert.Equal(t, "F'", m.Notation(3))

	m, ok = s.FaceMove("u", 4)
	require.True(t, ok)
	assert.Equal(t, 1.5, m.Layer)

	_, ok = s.FaceMove("z", 3)
	assert.False(t, ok, "undo is not a move")
	_, ok = s.FaceMove("x", 3)
	assert.False(t, ok)

	action, shifted, ok := s.Action("Z")
	require.True(t, ok)
	assert.Equal(t, ActionUndo, action)
	assert.True(t, shifted)
}

func TestSettingsCopyIsolated(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	s := f.Settings()
	s.Keys[ActionU] = "q"
	assert.Equal(t, "u", f.Settings().Keys[ActionU])
}
