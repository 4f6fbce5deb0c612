package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeByteSource is an in-memory ByteSource for codec tests - it stands
// in for a serial transport without needing one.
type fakeByteSource struct {
	buf []byte
}

func (f *fakeByteSource) Available() int { return len(f.buf) }

func (f *fakeByteSource) ReadByte() (byte, error) {
	if len(f.buf) == 0 {
		return 0, errors.New("no data")
	}
	b := f.buf[0]
	f.buf = f.buf[1:]
	return b, nil
}

func TestChecksumRoundTrip(t *testing.T) {
	// property 1
	poll := EmitPoll(VarTOutside)
	assert.Equal(t, CalcChecksum(poll), poll.Checksum())
	assert.True(t, Validate(poll))

	write := EmitWrite(VarFanSpeed, FanSpeedToHex(3), AllMainboards)
	assert.Equal(t, CalcChecksum(write), write.Checksum())
	assert.True(t, Validate(write))
}

func TestAddressFilterRejectsBadSource(t *testing.T) {
	// property 2
	f := Frame{MsgDomain, 0x99, AllPanels, VarStatus, 0x01, 0}
	f[5] = CalcChecksum(f)
	src := &fakeByteSource{buf: f[:]}
	_, ok := TryReadFrame(src, nil)
	assert.False(t, ok)
}

func TestAddressFilterRejectsBadDestination(t *testing.T) {
	f := Frame{MsgDomain, Mainboard1, 0x99, VarStatus, 0x01, 0}
	f[5] = CalcChecksum(f)
	src := &fakeByteSource{buf: f[:]}
	_, ok := TryReadFrame(src, nil)
	assert.False(t, ok)
}

func TestTryReadFrameDiscardsLeadingJunkByte(t *testing.T) {
	good := EmitPoll(VarTInside)
	src := &fakeByteSource{buf: append([]byte{0xFF}, good[:]...)}

	// first call sees the bad domain byte and returns nothing, without
	// touching the rest of the buffer
	_, ok := TryReadFrame(src, nil)
	assert.False(t, ok)
	assert.Equal(t, len(good), src.Available())

	frame, ok := TryReadFrame(src, nil)
	require.True(t, ok)
	assert.Equal(t, good, frame)
}

func TestChecksumMismatchFiresCallbackAndDropsFrame(t *testing.T) {
	// scenario D
	f := Frame{MsgDomain, Mainboard1, ThisPanel, VarTOutside, 0x83, 0}
	f[5] = CalcChecksum(f) + 1 // off by one

	fired := 0
	src := &fakeByteSource{buf: f[:]}
	_, ok := TryReadFrame(src, func() { fired++ })
	assert.False(t, ok)
	assert.Equal(t, 1, fired)
}

func TestScenarioATemperatureAbsorb(t *testing.T) {
	f := Frame{MsgDomain, Mainboard1, ThisPanel, VarTOutside, 0x83, 0}
	f[5] = CalcChecksum(f)
	src := &fakeByteSource{buf: f[:]}

	frame, ok := TryReadFrame(src, nil)
	require.True(t, ok)
	assert.Equal(t, VarTOutside, frame.Variable())
	assert.Equal(t, 10, NtcToCelsius(frame.Value()))
}

func TestDualAddressWriteUsesDistinctSourceAndChecksum(t *testing.T) {
	toMainboards := EmitWrite(VarStatus, 0x01, AllMainboards)
	toPanels := EmitWrite(VarStatus, 0x01, AllPanels)

	assert.Equal(t, ThisPanel, toMainboards.Source())
	assert.Equal(t, AllMainboards, toMainboards.Destination())

	assert.Equal(t, Mainboard1, toPanels.Source())
	assert.Equal(t, AllPanels, toPanels.Destination())

	assert.NotEqual(t, toMainboards.Checksum(), toPanels.Checksum())
	assert.True(t, Validate(toMainboards))
	assert.True(t, Validate(toPanels))
}
