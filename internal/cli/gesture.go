package cli

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	cubegame "github.com/trollgameskr/cube-game"
	"github.com/trollgameskr/cube-game/internal/camera"
)

var (
	gestureSize   int
	gestureWidth  int
	gestureHeight int
	gestureTheta  float64
	gesturePhi    float64
	gestureX      float64
	gestureY      float64
	gestureDX     float64
	gestureDY     float64
	gestureMode   string
	gestureMoves  string
)

var gestureCmd = &cobra.Command{
	Use:   "gesture",
	Short: "Resolve a pointer drag against the orbit camera",
	Long: `Pick the sticker under a pixel with the default orbit camera and resolve a
drag from there into a layer turn. Useful for checking how drags map to moves
from different viewpoints.

Examples:
  cubegame gesture --x 400 --y 300 --dx 0 --dy -40
  cubegame gesture --theta 0 --phi 90 --x 423 --y 300 --dy -40`,
	Args: cobra.NoArgs,
	RunE: runGesture,
}

func init() {
	rootCmd.AddCommand(gestureCmd)
	f := gestureCmd.Flags()
	f.IntVarP(&gestureSize, "size", "n", 3, "Cube size 2-7")
	f.IntVar(&gestureWidth, "width", 800, "Viewport width in pixels")
	f.IntVar(&gestureHeight, "height", 600, "Viewport height in pixels")
	f.Float64Var(&gestureTheta, "theta", mgl64.RadToDeg(camera.DefaultTheta), "Camera azimuth in degrees")
	f.Float64Var(&gesturePhi, "phi", mgl64.RadToDeg(camera.DefaultPhi), "Camera polar angle in degrees")
	f.Float64Var(&gestureX, "x", 400, "Pointer x at drag start")
	f.Float64Var(&gestureY, "y", 300, "Pointer y at drag start")
	f.Float64Var(&gestureDX, "dx", 0, "Drag x displacement in pixels")
	f.Float64Var(&gestureDY, "dy", 0, "Drag y displacement in pixels")
	f.StringVar(&gestureMode, "mode", "face", "Drag mode: face or adjacent")
	f.StringVar(&gestureMoves, "moves", "", "Moves to apply before picking")
}

func runGesture(cmd *cobra.Command, args []string) error {
	mode, err := cubegame.ParseResolverMode(gestureMode)
	if err != nil {
		return err
	}
	engine, err := cubegame.NewEngine(gestureSize,
		cubegame.WithRotationSpeed(0),
		cubegame.WithResolverMode(mode),
		cubegame.WithLogger(logger))
	if err != nil {
		return err
	}

	if strings.TrimSpace(gestureMoves) != "" {
		moves, err := cubegame.ParseMoves(gestureMoves, gestureSize)
		if err != nil {
			return err
		}
		for _, m := range moves {
			engine.Submit(m)
		}
		engine.Flush()
	}

	cam := camera.New(gestureSize, gestureWidth, gestureHeight)
	cam.Theta = mgl64.DegToRad(gestureTheta)
	cam.Phi = mgl64.Clamp(mgl64.DegToRad(gesturePhi), camera.MinPhi, camera.MaxPhi)

	out := cmd.OutOrStdout()
	hit, ok := cam.Pick(engine.Snapshot(), gestureX, gestureY)
	if !ok {
		fmt.Fprintln(out, "No sticker under the pointer: the drag orbits the camera")
		return nil
	}

	fmt.Fprintf(out, "Hit piece %s on the %s face\n", formatVec(hit.Piece), faceOf(hit.Normal))

	drag := cubegame.Vec2{gestureDX, gestureDY}
	m, ok := engine.Drag(hit, drag, cam.Project)
	if !ok {
		fmt.Fprintln(out, "Drag declined: the drag orbits the camera")
		return nil
	}
	engine.Flush()
	fmt.Fprintf(out, "Move: %s (%s)\n", m.Notation(gestureSize), m)
	return nil
}

func formatVec(v cubegame.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X(), v.Y(), v.Z())
}

func faceOf(n cubegame.Vec3) cubegame.Face {
	for _, f := range cubegame.Faces {
		if f.Normal().ApproxEqual(n) {
			return f
		}
	}
	return ""
}
