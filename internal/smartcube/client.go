package smartcube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"tinygo.org/x/bluetooth"
)

// Errors
var (
	ErrNotConnected     = errors.New("smartcube: not connected to device")
	ErrAlreadyConnected = errors.New("smartcube: already connected to a device")
	ErrDeviceNotFound   = errors.New("smartcube: no GoCube found")
)

var (
	serviceUUID = mustParseUUID(ServiceUUID)
	txCharUUID  = mustParseUUID(TxCharUUID)
	rxCharUUID  = mustParseUUID(RxCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// ScanResult is a discovered GoCube.
type ScanResult struct {
	Name    string
	RSSI    int16
	Address bluetooth.Address
}

// Client is a BLE connection to one GoCube.
//
// Callbacks run on the BLE stack's goroutine; frontends must hand the
// events to their own loop.
type Client struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	rxChar  bluetooth.DeviceCharacteristic
	log     *log.Logger

	mu         sync.RWMutex
	connected  bool
	deviceName string
	battery    int

	onRotation    func([]RotationEvent)
	onOrientation func(*OrientationEvent)
}

// NewClient enables the default adapter.
func NewClient(logger *log.Logger) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	return &Client{adapter: adapter, log: logger, battery: -1}, nil
}

// OnRotation sets the callback for face turns.
func (c *Client) OnRotation(cb func([]RotationEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRotation = cb
}

// OnOrientation sets the callback for attitude updates.
func (c *Client) OnOrientation(cb func(*OrientationEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onOrientation = cb
}

// Scan looks for GoCubes until timeout or ctx ends.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		done    = make(chan struct{})
	)

	go func() {
		c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			name := r.LocalName()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			addr := r.Address.String()
			if seen[addr] {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{Name: name, RSSI: r.RSSI, Address: r.Address})
		})
		close(done)
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}
	c.adapter.StopScan()
	<-done

	mu.Lock()
	defer mu.Unlock()
	c.log.Debug("scan finished", "found", len(results))
	return results, nil
}

// ConnectFirst scans and connects to the first GoCube found.
func (c *Client) ConnectFirst(ctx context.Context, timeout time.Duration) error {
	results, err := c.Scan(ctx, timeout)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return ErrDeviceNotFound
	}
	return c.Connect(results[0])
}

// Connect opens a connection to a scanned device and subscribes to its
// notifications.
func (c *Client) Connect(result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	device, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil || len(services) == 0 {
		device.Disconnect()
		return fmt.Errorf("GoCube service not found: %v", err)
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = result.Name
	c.mu.Unlock()

	c.log.Info("connected", "device", result.Name, "rssi", result.RSSI)
	return c.SendCommand(CmdRequestBattery)
}

// Disconnect closes the connection.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.battery = -1
	return err
}

// IsConnected reports whether a device is connected.
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

// Battery returns the last reported battery level, -1 if unknown.
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command frame.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return ErrNotConnected
	}
	_, err := c.rxChar.WriteWithoutResponse(BuildCommand(cmd))
	return err
}

// SetOrientationUpdates turns the cube's attitude notifications on or off.
func (c *Client) SetOrientationUpdates(enabled bool) error {
	if enabled {
		return c.SendCommand(CmdEnableOrientation)
	}
	return c.SendCommand(CmdDisableOrientation)
}

// ResetSolved tells the cube its current state is solved, aligning it with
// a freshly assembled game cube.
func (c *Client) ResetSolved() error {
	return c.SendCommand(CmdResetSolved)
}

func (c *Client) handleNotification(data []byte) {
	msg, err := ParseMessage(data)
	if err != nil {
		c.log.Debug("dropped frame", "err", err)
		return
	}
	c.dispatch(msg)
}

func (c *Client) dispatch(msg *Message) {
	c.mu.RLock()
	onRotation, onOrientation := c.onRotation, c.onOrientation
	c.mu.RUnlock()

	switch msg.Type {
	case MsgTypeRotation:
		events, err := DecodeRotation(msg.Payload)
		if err != nil {
			c.log.Warn("bad rotation", "err", err, "raw", msg.RawBase64)
			return
		}
		if onRotation != nil {
			onRotation(events)
		}
	case MsgTypeOrientation:
		ev, err := DecodeOrientation(msg.Payload)
		if err != nil {
			c.log.Debug("bad orientation", "err", err)
			return
		}
		if onOrientation != nil {
			onOrientation(ev)
		}
	case MsgTypeBattery:
		level, err := DecodeBattery(msg.Payload)
		if err != nil {
			return
		}
		c.mu.Lock()
		c.battery = level
		c.mu.Unlock()
		c.log.Debug("battery", "level", level)
	default:
		c.log.Debug("ignored message", "type", MessageTypeName(msg.Type))
	}
}
