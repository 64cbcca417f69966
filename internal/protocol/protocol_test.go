package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cubegame "github.com/trollgameskr/cube-game"
)

func TestParseBuiltFrame(t *testing.T) {
	frame := Build(MsgTypeRotation, []byte{0x08, 0x03, 0x05, 0x00})

	msg, err := Parse(frame)
	require.NoError(t, err)
	assert.Equal(t, MsgTypeRotation, msg.Type)
	assert.Equal(t, []byte{0x08, 0x03, 0x05, 0x00}, msg.Payload)
}

func TestParseErrors(t *testing.T) {
	good := Build(MsgTypeBattery, []byte{80})

	_, err := Parse(good[:3])
	assert.ErrorIs(t, err, ErrMessageTooShort)

	bad := append([]byte(nil), good...)
	bad[0] = 0x00
	_, err = Parse(bad)
	assert.ErrorIs(t, err, ErrInvalidPrefix)

	bad = append([]byte(nil), good...)
	bad[len(bad)-3]++
	_, err = Parse(bad)
	assert.ErrorIs(t, err, ErrInvalidChecksum)

	bad = append([]byte(nil), good...)
	bad[len(bad)-1] = 0x00
	_, err = Parse(bad)
	assert.ErrorIs(t, err, ErrInvalidSuffix)

	bad = append([]byte(nil), good...)
	bad[1] = 0x20
	_, err = Parse(bad)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestBuildCommand(t *testing.T) {
	cmd := BuildCommand(CmdRequestBattery)
	assert.Equal(t, []byte{0x2A, 0x01, 0x32, 0x5D, 0x0D, 0x0A}, cmd)
}

func TestDecodeRotation(t *testing.T) {
	// red clockwise, green counter-clockwise
	events, err := DecodeRotation([]byte{0x08, 0x00, 0x03, 0x06})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "red", events[0].Color)
	assert.True(t, events[0].Clockwise)
	assert.Equal(t, "green", events[1].Color)
	assert.False(t, events[1].Clockwise)
	assert.Equal(t, byte(0x06), events[1].CenterOrientation)

	_, err = DecodeRotation([]byte{0x08})
	assert.Error(t, err)
	_, err = DecodeRotation([]byte{0x0C, 0x00})
	assert.Error(t, err)
}

func TestRotationToMove(t *testing.T) {
	events, err := DecodeRotation([]byte{0x08, 0x00, 0x05, 0x00})
	require.NoError(t, err)

	moves := RotationsToMoves(events, 3)
	assert.Equal(t, "R U'", cubegame.FormatMoves(moves, 3))

	m, ok := RotationToMove(events[0], 4)
	require.True(t, ok)
	assert.Equal(t, 1.5, m.Layer)
}

func TestDecodeBattery(t *testing.T) {
	b, err := DecodeBattery([]byte{73})
	require.NoError(t, err)
	assert.Equal(t, 73, b.Level)

	_, err = DecodeBattery(nil)
	assert.Error(t, err)
}

func TestDecodeOrientation(t *testing.T) {
	o, err := DecodeOrientation([]byte("0#0#0#1000\x55"))
	require.NoError(t, err)
	assert.Equal(t, cubegame.FaceU, o.UpFace)
	assert.Equal(t, cubegame.FaceF, o.FrontFace)

	// 90 degrees about x tips the front face up.
	o, err = DecodeOrientation([]byte("707#0#0#707"))
	require.NoError(t, err)
	assert.Equal(t, cubegame.FaceF, o.UpFace)
	assert.Equal(t, cubegame.FaceD, o.FrontFace)

	_, err = DecodeOrientation([]byte("1#2#3"))
	assert.Error(t, err)
}
