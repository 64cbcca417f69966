// Package smartcube mirrors a physical GoCube into a cube engine.
package smartcube

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	cubegame "github.com/trollgameskr/cube-game"
	"github.com/trollgameskr/cube-game/internal/ble"
	"github.com/trollgameskr/cube-game/internal/protocol"
)

// ErrUnsupportedSize is returned when the engine is not a 3×3×3; GoCube
// hardware only reports outer face turns of a 3×3×3.
var ErrUnsupportedSize = errors.New("smartcube: engine must be 3x3x3")

// Device is a discovered GoCube.
type Device struct {
	Name string // Device name (e.g., "GoCube_XXXX")
	UUID string // Address used to connect
	RSSI int16  // Signal strength in dBm

	result ble.ScanResult
}

// Orientation is the cube's physical orientation in space.
type Orientation struct {
	UpFace    cubegame.Face // Which face is pointing up
	FrontFace cubegame.Face // Which face is facing the user
}

// SmartCube applies the turns a connected GoCube reports to an engine.
//
//	sc, err := smartcube.ConnectFirst(ctx, engine, logger)
//	if err != nil {
//	    return err
//	}
//	defer sc.Close()
//
//	sc.OnMove(func(m cubegame.Move) {
//	    fmt.Println("Move:", m.Notation(3))
//	})
type SmartCube struct {
	client *ble.Client
	engine *cubegame.Engine
	log    *zap.Logger

	mu            sync.RWMutex
	onMove        func(cubegame.Move)
	onOrientation func(Orientation)
	onBattery     func(int)
}

// Scan discovers nearby GoCube devices.
func Scan(ctx context.Context, timeout time.Duration, log *zap.Logger) ([]Device, error) {
	client, err := ble.NewClient(log)
	if err != nil {
		return nil, err
	}
	defer client.Disconnect()

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = Device{Name: r.Name, UUID: r.UUID, RSSI: r.RSSI, result: r}
	}
	return devices, nil
}

// Connect connects to a device and starts mirroring it into engine.
func Connect(ctx context.Context, device Device, engine *cubegame.Engine, log *zap.Logger) (*SmartCube, error) {
	if engine.Size() != 3 {
		return nil, ErrUnsupportedSize
	}

	client, err := ble.NewClient(log)
	if err != nil {
		return nil, err
	}
	if device.result.Name != "" || device.result.UUID != "" {
		err = client.ConnectToResult(ctx, device.result)
	} else {
		err = client.Connect(ctx, device.UUID)
	}
	if err != nil {
		return nil, err
	}

	sc := newSmartCube(engine, log)
	sc.client = client
	client.SetMessageCallback(sc.handleMessage)
	return sc, nil
}

// ConnectFirst scans for ten seconds and connects to the first GoCube found.
func ConnectFirst(ctx context.Context, engine *cubegame.Engine, log *zap.Logger) (*SmartCube, error) {
	devices, err := Scan(ctx, 10*time.Second, log)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ble.ErrDeviceNotFound
	}
	return Connect(ctx, devices[0], engine, log)
}

func newSmartCube(engine *cubegame.Engine, log *zap.Logger) *SmartCube {
	if log == nil {
		log = zap.NewNop()
	}
	return &SmartCube{engine: engine, log: log.Named("smartcube")}
}

// Close disconnects from the cube.
func (s *SmartCube) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect()
}

// DeviceName returns the connected device name.
func (s *SmartCube) DeviceName() string {
	if s.client == nil {
		return ""
	}
	return s.client.DeviceName()
}

// Battery returns the last known battery level (0-100), or -1 if unknown.
func (s *SmartCube) Battery() int {
	if s.client == nil {
		return -1
	}
	return s.client.Battery()
}

// OnMove sets a callback that fires for each turn after it reaches the
// engine.
func (s *SmartCube) OnMove(cb func(cubegame.Move)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = cb
}

// OnOrientationChange sets a callback for cube orientation changes.
func (s *SmartCube) OnOrientationChange(cb func(Orientation)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onOrientation = cb
}

// OnBattery sets a callback for battery level updates.
func (s *SmartCube) OnBattery(cb func(int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onBattery = cb
}

// ResetSolved marks both the physical cube and the engine as solved.
func (s *SmartCube) ResetSolved() error {
	if err := s.engine.Reset(); err != nil {
		return err
	}
	if s.client == nil {
		return nil
	}
	return s.client.ResetSolved()
}

// TrackOrientation turns the cube's orientation reports on or off.
func (s *SmartCube) TrackOrientation(on bool) error {
	if s.client == nil {
		return ble.ErrNotConnected
	}
	if on {
		return s.client.EnableOrientation()
	}
	return s.client.DisableOrientation()
}

// Flash blinks the cube's backlight.
func (s *SmartCube) Flash() error {
	if s.client == nil {
		return ble.ErrNotConnected
	}
	return s.client.FlashBacklight()
}

func (s *SmartCube) handleMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgTypeRotation:
		s.handleRotation(msg)
	case protocol.MsgTypeBattery:
		s.handleBattery(msg)
	case protocol.MsgTypeOrientation:
		s.handleOrientation(msg)
	}
}

// handleRotation applies each reported turn. The physical turn already
// happened, so it is submitted with zero duration. An idle engine applies it
// at once; otherwise it waits behind the queued moves and lands on the
// owner's next Tick, so an on-screen animation is never cut short.
func (s *SmartCube) handleRotation(msg *protocol.Message) {
	rotations, err := protocol.DecodeRotation(msg.Payload)
	if err != nil {
		s.log.Warn("bad rotation payload", zap.Error(err))
		return
	}

	for _, m := range protocol.RotationsToMoves(rotations, s.engine.Size()) {
		idle := s.engine.IsIdle()
		if !s.engine.Submit(m, cubegame.WithDuration(0), cubegame.WithOnComplete(s.moveApplied(m))) {
			continue
		}
		if idle {
			s.engine.Tick(0)
		}
	}
}

func (s *SmartCube) moveApplied(m cubegame.Move) func() {
	return func() {
		s.mu.RLock()
		cb := s.onMove
		s.mu.RUnlock()
		if cb != nil {
			cb(m)
		}
	}
}

func (s *SmartCube) handleBattery(msg *protocol.Message) {
	battery, err := protocol.DecodeBattery(msg.Payload)
	if err != nil {
		return
	}

	s.mu.RLock()
	cb := s.onBattery
	s.mu.RUnlock()

	if cb != nil {
		cb(battery.Level)
	}
}

func (s *SmartCube) handleOrientation(msg *protocol.Message) {
	orient, err := protocol.DecodeOrientation(msg.Payload)
	if err != nil {
		return
	}

	s.mu.RLock()
	cb := s.onOrientation
	s.mu.RUnlock()

	if cb != nil {
		cb(Orientation{UpFace: orient.UpFace, FrontFace: orient.FrontFace})
	}
}
