package cubegame

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Default timings, matching the original browser game.
const (
	DefaultRotationSpeed = 200 * time.Millisecond
	DefaultScrambleSpeed = 60 * time.Millisecond
	DefaultMinDrag       = 8.0 // pixels
)

// Option configures Engine behavior.
type Option func(*config)

type config struct {
	rotationSpeed time.Duration
	scrambleSpeed time.Duration
	moveHistory   bool
	resolverMode  ResolverMode
	viewAxis      Axis
	minDrag       float64
	rng           *rand.Rand
	logger        *zap.Logger
}

func defaultConfig() *config {
	return &config{
		rotationSpeed: DefaultRotationSpeed,
		scrambleSpeed: DefaultScrambleSpeed,
		moveHistory:   true,
		resolverMode:  ModeFaceLayer,
		viewAxis:      AxisZ,
		minDrag:       DefaultMinDrag,
	}
}

// WithRotationSpeed sets the animation duration of a user move.
// Zero makes moves complete on the next Tick.
func WithRotationSpeed(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.rotationSpeed = d
		}
	}
}

// WithScrambleSpeed sets the animation duration of each scramble move.
func WithScrambleSpeed(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.scrambleSpeed = d
		}
	}
}

// WithMoveHistory enables or disables move history tracking.
// When enabled (default), recorded moves are stored and accessible via
// History() and can be undone. The move count is kept either way.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}

// WithResolverMode selects how drags on the camera-facing face are mapped to
// layers.
func WithResolverMode(mode ResolverMode) Option {
	return func(c *config) {
		c.resolverMode = mode
	}
}

// WithViewAxis sets the axis the camera looks along for ModeAdjacentLayer.
func WithViewAxis(axis Axis) Option {
	return func(c *config) {
		if axis.Valid() {
			c.viewAxis = axis
		}
	}
}

// WithMinDrag sets the drag length in pixels below which gestures are
// ignored.
func WithMinDrag(px float64) Option {
	return func(c *config) {
		if px >= 0 {
			c.minDrag = px
		}
	}
}

// WithRand sets the random source used for scrambles. Use a seeded source
// for reproducible scrambles.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
