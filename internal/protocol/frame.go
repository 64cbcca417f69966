// Package protocol implements GoCube smart-cube frame parsing and decoding.
package protocol

import (
	"errors"
	"fmt"
)

// GoCube BLE Service and Characteristic UUIDs
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// Message type constants
const (
	MsgTypeRotation    byte = 0x01
	MsgTypeState       byte = 0x02
	MsgTypeOrientation byte = 0x03
	MsgTypeBattery     byte = 0x05
)

// Command codes for writing to RX characteristic
const (
	CmdRequestBattery     byte = 0x32
	CmdRequestState       byte = 0x33
	CmdResetSolved        byte = 0x35
	CmdDisableOrientation byte = 0x37
	CmdEnableOrientation  byte = 0x38
	CmdFlashBacklight     byte = 0x41
)

// Frame delimiters
const (
	FramePrefix  byte = 0x2A // '*'
	FrameSuffix1 byte = 0x0D // CR
	FrameSuffix2 byte = 0x0A // LF
)

// Errors
var (
	ErrInvalidPrefix   = errors.New("protocol: invalid frame prefix")
	ErrInvalidSuffix   = errors.New("protocol: invalid frame suffix")
	ErrInvalidChecksum = errors.New("protocol: invalid checksum")
	ErrMessageTooShort = errors.New("protocol: message too short")
	ErrInvalidLength   = errors.New("protocol: invalid message length")
)

// Message is one parsed notification frame.
type Message struct {
	Type    byte
	Payload []byte
}

// Parse parses a raw notification.
//
// Frame layout: [0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A],
// where length counts every byte after itself and checksum is the byte sum
// of everything before it.
func Parse(data []byte) (*Message, error) {
	if len(data) < 5 {
		return nil, ErrMessageTooShort
	}
	if data[0] != FramePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	total := 2 + length
	if len(data) < total {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLength, total, len(data))
	}

	sumAt := length - 1
	if sumAt < 3 {
		return nil, ErrMessageTooShort
	}
	if data[sumAt+1] != FrameSuffix1 || data[sumAt+2] != FrameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	var sum byte
	for _, b := range data[:sumAt] {
		sum += b
	}
	if sum != data[sumAt] {
		return nil, fmt.Errorf("%w: frame says 0x%02X, computed 0x%02X", ErrInvalidChecksum, data[sumAt], sum)
	}

	payload := make([]byte, sumAt-3)
	copy(payload, data[3:sumAt])
	return &Message{Type: data[2], Payload: payload}, nil
}

// Build frames a message of the given type and payload.
func Build(msgType byte, payload []byte) []byte {
	length := byte(len(payload) + 4) // type + payload + checksum + CRLF
	frame := make([]byte, 0, len(payload)+6)
	frame = append(frame, FramePrefix, length, msgType)
	frame = append(frame, payload...)

	var sum byte
	for _, b := range frame {
		sum += b
	}
	return append(frame, sum, FrameSuffix1, FrameSuffix2)
}

// BuildCommand creates a command frame for the RX characteristic.
// Command frames carry a fixed length byte of 0x01.
func BuildCommand(cmd byte) []byte {
	length := byte(0x01)
	sum := FramePrefix + length + cmd
	return []byte{FramePrefix, length, cmd, sum, FrameSuffix1, FrameSuffix2}
}

// MessageTypeName returns a human-readable name for the message type.
func MessageTypeName(msgType byte) string {
	switch msgType {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeOrientation:
		return "orientation"
	case MsgTypeBattery:
		return "battery"
	default:
		return fmt.Sprintf("unknown_0x%02X", msgType)
	}
}
