// Package ble provides low-level BLE communication with GoCube devices.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"

	"github.com/trollgameskr/cube-game/internal/protocol"
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

// connectScanTimeout bounds the scan that locates a device by address.
const connectScanTimeout = 10 * time.Second

// ScanResult is a discovered GoCube device.
type ScanResult struct {
	Name    string
	UUID    string
	RSSI    int16
	Address bluetooth.Address
}

// Client manages the BLE connection to one GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	log     *zap.Logger
	device  bluetooth.Device
	rxChar  bluetooth.DeviceCharacteristic

	mu         sync.RWMutex
	connected  bool
	deviceName string
	deviceUUID string
	battery    int

	onMessage func(*protocol.Message)
}

// NewClient enables the default adapter.
func NewClient(log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	return &Client{adapter: adapter, log: log.Named("ble"), battery: -1}, nil
}

// SetMessageCallback sets the callback for parsed notifications.
func (c *Client) SetMessageCallback(cb func(*protocol.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// Scan lists GoCube devices advertising within timeout.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		done    = make(chan error, 1)
	)

	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			addr := r.Address.String()
			mu.Lock()
			defer mu.Unlock()
			if seen[addr] {
				return
			}
			seen[addr] = true
			if strings.HasPrefix(strings.ToLower(r.LocalName()), "gocube") {
				results = append(results, ScanResult{Name: r.LocalName(), UUID: addr, RSSI: r.RSSI, Address: r.Address})
			}
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}
	if err := c.adapter.StopScan(); err != nil {
		c.log.Debug("stop scan", zap.Error(err))
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	c.log.Info("scan finished", zap.Int("found", len(results)))
	return results, nil
}

// Connect locates a device by address and connects to it.
func (c *Client) Connect(ctx context.Context, deviceUUID string) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	found := make(chan ScanResult, 1)
	var once sync.Once
	go func() {
		_ = c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			if r.Address.String() == deviceUUID {
				once.Do(func() {
					found <- ScanResult{Name: r.LocalName(), UUID: deviceUUID, RSSI: r.RSSI, Address: r.Address}
				})
			}
		})
	}()

	var target ScanResult
	select {
	case target = <-found:
	case <-time.After(connectScanTimeout):
		_ = c.adapter.StopScan()
		return ErrDeviceNotFound
	case <-ctx.Done():
		_ = c.adapter.StopScan()
		return ctx.Err()
	}
	_ = c.adapter.StopScan()

	return c.ConnectToResult(ctx, target)
}

// ConnectToResult connects directly to a scanned device.
func (c *Client) ConnectToResult(_ context.Context, result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	serviceUUID, err := bluetooth.ParseUUID(protocol.ServiceUUID)
	if err != nil {
		return err
	}
	txUUID, err := bluetooth.ParseUUID(protocol.TxCharUUID)
	if err != nil {
		return err
	}
	rxUUID, err := bluetooth.ParseUUID(protocol.RxCharUUID)
	if err != nil {
		return err
	}

	device, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	fail := func(err error) error {
		_ = device.Disconnect()
		return err
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		return fail(fmt.Errorf("failed to discover services: %w", err))
	}
	if len(services) == 0 {
		return fail(ErrServiceNotFound)
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txUUID, rxUUID})
	if err != nil {
		return fail(fmt.Errorf("failed to discover characteristics: %w", err))
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txUUID:
			txChar = ch
		case rxUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		return fail(fmt.Errorf("failed to enable notifications: %w", err))
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = result.Name
	c.deviceUUID = result.UUID
	c.mu.Unlock()

	c.log.Info("connected", zap.String("name", result.Name), zap.String("address", result.UUID))
	if err := c.RequestBattery(); err != nil {
		c.log.Warn("battery request failed", zap.Error(err))
	}
	return nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.deviceUUID = ""
	c.battery = -1
	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// Battery returns the last known battery level (-1 if unknown).
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command frame to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := protocol.BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		_, err = c.rxChar.Write(data)
		return err
	}
	return nil
}

// RequestBattery requests the battery level from the cube.
func (c *Client) RequestBattery() error {
	return c.SendCommand(protocol.CmdRequestBattery)
}

// ResetSolved tells the cube its current physical state is solved.
func (c *Client) ResetSolved() error {
	return c.SendCommand(protocol.CmdResetSolved)
}

// FlashBacklight flashes the cube backlight.
func (c *Client) FlashBacklight() error {
	return c.SendCommand(protocol.CmdFlashBacklight)
}

// EnableOrientation enables orientation tracking on the cube.
func (c *Client) EnableOrientation() error {
	return c.SendCommand(protocol.CmdEnableOrientation)
}

// DisableOrientation disables orientation tracking on the cube.
func (c *Client) DisableOrientation() error {
	return c.SendCommand(protocol.CmdDisableOrientation)
}

func (c *Client) handleNotification(data []byte) {
	msg, err := protocol.Parse(data)
	if err != nil {
		c.log.Debug("dropping frame", zap.Binary("data", data), zap.Error(err))
		return
	}

	if msg.Type == protocol.MsgTypeBattery {
		if battery, err := protocol.DecodeBattery(msg.Payload); err == nil {
			c.mu.Lock()
			c.battery = battery.Level
			c.mu.Unlock()
		}
	}

	c.mu.RLock()
	cb := c.onMessage
	c.mu.RUnlock()

	if cb != nil {
		cb(msg)
	}
}
