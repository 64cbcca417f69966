package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cubegame "github.com/trollgameskr/cube-game"
	"github.com/trollgameskr/cube-game/internal/storage"
)

// run executes the root command. Flag values persist between runs, so tests
// pass every flag they depend on.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScrambleIsDeterministicWithSeed(t *testing.T) {
	first, err := run(t, "scramble", "--size", "3", "--seed", "42", "--net=false")
	require.NoError(t, err)
	second, err := run(t, "scramble", "--size", "3", "--seed", "42", "--net=false")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, strings.Fields(first), cubegame.ScrambleLength(3))

	other, err := run(t, "scramble", "--size", "3", "--seed", "7", "--net=false")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestScrambleRejectsSize(t *testing.T) {
	_, err := run(t, "scramble", "--size", "9", "--seed", "1", "--net=false")
	assert.ErrorIs(t, err, cubegame.ErrInvalidSize)
}

func TestScrambleNet(t *testing.T) {
	out, err := run(t, "scramble", "--size", "2", "--seed", "3", "--net")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Greater(t, len(lines), 2)
}

func TestSimulateSolved(t *testing.T) {
	out, err := run(t, "simulate", "--size", "3", "--scramble=false", "--seed", "0", "R R'")
	require.NoError(t, err)
	assert.Contains(t, out, "Solved after move 2")
	assert.Contains(t, out, "Moves: 2 (R R')")
	assert.Contains(t, out, "Solved: true")
}

func TestSimulateUnsolved(t *testing.T) {
	out, err := run(t, "simulate", "--size", "3", "--scramble=false", "--seed", "0", "R", "U", "R'", "U'")
	require.NoError(t, err)
	assert.Contains(t, out, "Moves: 4 (R U R' U')")
	assert.Contains(t, out, "Solved: false")
	assert.NotContains(t, out, "Solved after")
}

func TestSimulateInvalidNotation(t *testing.T) {
	_, err := run(t, "simulate", "--size", "3", "--scramble=false", "--seed", "0", "R Q")
	assert.ErrorIs(t, err, cubegame.ErrInvalidNotation)
}

func TestSimulateWithScramble(t *testing.T) {
	out, err := run(t, "simulate", "--size", "3", "--scramble", "--seed", "5", "R")
	require.NoError(t, err)
	assert.Contains(t, out, "Scramble: ")
	assert.Contains(t, out, "Moves: 1 (R)")
}

func TestLeaderboard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	out, err := run(t, "--db", path, "leaderboard", "--size", "3", "--limit", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "No scores yet")

	db, err := storage.Open(path)
	require.NoError(t, err)
	_, rank, err := storage.NewScoreRepository(db).Create(storage.Score{
		Nickname: "ada", CubeSize: 3, Moves: 31, Time: 75 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
	require.NoError(t, db.Close())

	out, err = run(t, "--db", path, "leaderboard", "--size", "3", "--limit", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Leaderboard 3×3×3 (1 scores)")
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "1:15.0")

	out, err = run(t, "--db", path, "leaderboard", "--size", "4", "--limit", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "No scores yet")
}

func TestSettingsBindAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	out, err := run(t, "--settings", path, "settings", "bind", "R", "K")
	require.NoError(t, err)
	assert.Contains(t, out, "R bound to k")

	out, err = run(t, "--settings", path, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "  R     k")
	assert.Contains(t, out, "Nickname:       (not set)")

	_, err = run(t, "--settings", path, "settings", "bind", "U", "k")
	assert.Error(t, err, "k is taken by R")

	_, err = run(t, "--settings", path, "settings", "reset-keys")
	require.NoError(t, err)
	out, err = run(t, "--settings", path, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "  R     r")
}

func TestSettingsSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	_, err := run(t, "--settings", path, "settings", "set", "size", "5")
	require.NoError(t, err)
	_, err = run(t, "--settings", path, "settings", "set", "mode", "adjacent")
	require.NoError(t, err)
	_, err = run(t, "--settings", path, "settings", "set", "nickname", "  ada  ")
	require.NoError(t, err)

	out, err := run(t, "--settings", path, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "Cube size:      5")
	assert.Contains(t, out, "Drag mode:      adjacent")
	assert.Contains(t, out, "Nickname:       ada")

	_, err = run(t, "--settings", path, "settings", "set", "size", "8")
	assert.ErrorIs(t, err, cubegame.ErrInvalidSize)
	_, err = run(t, "--settings", path, "settings", "set", "colour", "red")
	assert.Error(t, err)
}

func TestGestureFrontView(t *testing.T) {
	out, err := run(t, "gesture", "--size", "3", "--mode", "face", "--moves", "",
		"--theta", "0", "--phi", "90", "--width", "600", "--height", "600",
		"--x", "423", "--y", "300", "--dx", "0", "--dy", "-40")
	require.NoError(t, err)
	assert.Contains(t, out, "Hit piece (1, 0, 1) on the F face")
	assert.Contains(t, out, "Move: R ")
}

func TestGestureMiss(t *testing.T) {
	out, err := run(t, "gesture", "--size", "3", "--mode", "face", "--moves", "",
		"--theta", "0", "--phi", "90", "--width", "600", "--height", "600",
		"--x", "2", "--y", "2", "--dx", "0", "--dy", "-40")
	require.NoError(t, err)
	assert.Contains(t, out, "No sticker under the pointer")
}

func TestEngineOptionsFallBackToSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	settingsPath = path
	t.Cleanup(func() { settingsPath = "" })

	sf, err := openSettings()
	require.NoError(t, err)
	prefs := sf.Settings()

	opts, size, err := engineOptions(prefs, 0, 0, "")
	require.NoError(t, err)
	assert.Equal(t, prefs.CubeSize, size)
	assert.Len(t, opts, 2)

	_, size, err = engineOptions(prefs, 5, 10*time.Millisecond, "adjacent")
	require.NoError(t, err)
	assert.Equal(t, 5, size)

	_, _, err = engineOptions(prefs, 8, 0, "")
	assert.ErrorIs(t, err, cubegame.ErrInvalidSize)
	_, _, err = engineOptions(prefs, 3, 0, "sideways")
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "12.3s", formatDuration(12300*time.Millisecond))
	assert.Equal(t, "1:02.5", formatDuration(62500*time.Millisecond))
}
