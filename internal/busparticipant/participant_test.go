package busparticipant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vallox/titonbridge/internal/clock"
	"github.com/vallox/titonbridge/internal/observer"
	"github.com/vallox/titonbridge/internal/protocol"
)

func noSleep(time.Duration) {}

func newTestParticipant(hooks *observer.Hooks) (*Participant, *fakeTransport, *clock.Fake) {
	tr := &fakeTransport{}
	fc := clock.NewFake()
	cfg := DefaultConfig()
	p := Connect(tr, fc, hooks, cfg, WithSleepFunc(noSleep))
	return p, tr, fc
}

func fromMainboard(variable, value byte) [6]byte {
	return protocol.EmitWrite(variable, value, protocol.AllPanels)
}

func TestConnectSendsInitBurst(t *testing.T) {
	_, tr, _ := newTestParticipant(nil)
	require.Len(t, tr.outbound, 10)

	wantVariables := []byte{
		protocol.VarStatus, protocol.VarIO08, protocol.VarFanSpeed,
		protocol.VarDefaultFanSpeed, protocol.VarRH1, protocol.VarServicePeriod,
		protocol.VarServiceCounter, protocol.VarHeatingTarget, protocol.VarFlags06,
		protocol.VarProgram,
	}
	for i, raw := range tr.outbound {
		var f protocol.Frame
		copy(f[:], raw)
		assert.True(t, f.IsPoll())
		assert.Equal(t, wantVariables[i], f.Variable())
	}
}

func TestTemperatureChangeGatedUntilAllFourSeen(t *testing.T) {
	var changes int
	p, tr, _ := newTestParticipant(&observer.Hooks{
		OnTemperatureChanged: func() { changes++ },
	})
	tr.outbound = nil

	tr.push(fromMainboard(protocol.VarTInside, 0x83))
	p.Poll()
	assert.Equal(t, 0, changes)

	tr.push(fromMainboard(protocol.VarTOutside, 0x64))
	p.Poll()
	assert.Equal(t, 0, changes)

	tr.push(fromMainboard(protocol.VarTIncoming, 0x78))
	p.Poll()
	assert.Equal(t, 0, changes)

	tr.push(fromMainboard(protocol.VarTExhaust, 0x78))
	p.Poll()
	assert.Equal(t, 1, changes)

	inside, ok := p.InsideTemp()
	require.True(t, ok)
	assert.Equal(t, 10, inside)
}

func TestCO2CombinesWithinWindowOnly(t *testing.T) {
	var changes int
	p, tr, fc := newTestParticipant(&observer.Hooks{
		OnTemperatureChanged: func() { changes++ },
	})
	tr.outbound = nil

	tr.push(fromMainboard(protocol.VarCO2Hi, 0x02))
	p.Poll()
	fc.Advance(3 * time.Second)
	tr.push(fromMainboard(protocol.VarCO2Lo, 0x10))
	p.Poll()

	co2, ok := p.CO2()
	assert.False(t, ok)
	assert.Equal(t, 0, co2)

	fc.Advance(-3 * time.Second)
	tr.push(fromMainboard(protocol.VarCO2Hi, 0x02))
	p.Poll()
	tr.push(fromMainboard(protocol.VarCO2Lo, 0x10))
	p.Poll()

	co2, ok = p.CO2()
	require.True(t, ok)
	assert.Equal(t, protocol.CombineCO2(0x02, 0x10), co2)
}

func TestStatusWriteGateRejectsConcurrentWrite(t *testing.T) {
	p, tr, _ := newTestParticipant(nil)
	tr.outbound = nil

	accepted := p.SetPower(true)
	assert.True(t, accepted)
	assert.Len(t, tr.outbound, 2, "status writes are dual-emitted")

	accepted = p.SetPower(false)
	assert.False(t, accepted, "a second status write must be rejected while one is in flight")
	assert.Len(t, tr.outbound, 2, "rejected write must not emit anything")
}

func TestDualAddressWriteUsesDistinctSourceAndChecksum(t *testing.T) {
	p, tr, _ := newTestParticipant(nil)
	tr.outbound = nil

	p.SetPower(true)
	require.Len(t, tr.outbound, 2)

	var first, second protocol.Frame
	copy(first[:], tr.outbound[0])
	copy(second[:], tr.outbound[1])

	assert.Equal(t, protocol.ThisPanel, first.Source())
	assert.Equal(t, protocol.AllMainboards, first.Destination())
	assert.Equal(t, protocol.Mainboard1, second.Source())
	assert.Equal(t, protocol.AllPanels, second.Destination())
	assert.NotEqual(t, first.Checksum(), second.Checksum())
	assert.Equal(t, first.Checksum(), protocol.CalcChecksum(first))
	assert.Equal(t, second.Checksum(), protocol.CalcChecksum(second))
}

func TestRetryWatchdogReleasesStuckGate(t *testing.T) {
	p, _, fc := newTestParticipant(nil)

	require.True(t, p.SetPower(true))
	require.False(t, p.SetPower(false))

	fc.Advance(DefaultConfig().RetryInterval + time.Second)
	p.Poll()

	assert.True(t, p.SetPower(false), "retry watchdog must release the gate after RETRY_INTERVAL")
}

func TestFullStatusInitTransitionFiresExactlyOnce(t *testing.T) {
	var changes int
	p, tr, _ := newTestParticipant(&observer.Hooks{
		OnStatusChanged: func() { changes++ },
	})
	tr.outbound = nil

	assert.False(t, p.InitComplete())

	tr.push(fromMainboard(protocol.VarStatus, 0x01))
	p.Poll()
	tr.push(fromMainboard(protocol.VarIO08, 0x00))
	p.Poll()
	tr.push(fromMainboard(protocol.VarFanSpeed, 0x07))
	p.Poll()
	tr.push(fromMainboard(protocol.VarDefaultFanSpeed, 0x07))
	p.Poll()
	tr.push(fromMainboard(protocol.VarServicePeriod, 6))
	p.Poll()
	tr.push(fromMainboard(protocol.VarServiceCounter, 2))
	p.Poll()

	before := changes
	assert.False(t, p.InitComplete())

	tr.push(fromMainboard(protocol.VarHeatingTarget, 0x64))
	p.Poll()

	assert.True(t, p.InitComplete())
	assert.Equal(t, before+1, changes, "the init-complete transition notifies exactly once")
}

func TestUnknownVariableIgnoredSilently(t *testing.T) {
	var changes int
	p, tr, _ := newTestParticipant(&observer.Hooks{
		OnStatusChanged:      func() { changes++ },
		OnTemperatureChanged: func() { changes++ },
	})
	tr.outbound = nil

	tr.push(fromMainboard(0x7E, 0xAB))
	assert.NotPanics(t, func() { p.Poll() })
	assert.Equal(t, 0, changes)
}

func TestChecksumFailureFiresDebugPrintAndDropsFrame(t *testing.T) {
	var messages []string
	p, tr, _ := newTestParticipant(&observer.Hooks{
		OnDebugPrint: func(text string) { messages = append(messages, text) },
	})
	tr.outbound = nil

	bad := fromMainboard(protocol.VarTInside, 0x83)
	bad[5] ^= 0xFF
	tr.push(bad)
	p.Poll()

	require.Len(t, messages, 1)
	_, ok := p.InsideTemp()
	assert.False(t, ok)
}

func TestSetFanSpeedRejectsOutOfRange(t *testing.T) {
	p, _, _ := newTestParticipant(nil)
	assert.False(t, p.SetFanSpeed(0))
	assert.False(t, p.SetFanSpeed(9))
	assert.True(t, p.SetFanSpeed(5))
	speed, ok := p.FanSpeed()
	require.True(t, ok)
	assert.Equal(t, 5, speed)
}

func TestSetDefaultFanSpeedExcludesTopSpeed(t *testing.T) {
	p, _, _ := newTestParticipant(nil)
	assert.False(t, p.SetDefaultFanSpeed(protocol.MaxFanSpeed))
	assert.True(t, p.SetDefaultFanSpeed(protocol.MaxFanSpeed-1))
}

func TestSetHeatingModeShortCircuitsOnNoOp(t *testing.T) {
	var debugMessages, statusChanges int
	p, tr, _ := newTestParticipant(&observer.Hooks{
		OnDebugPrint:    func(string) { debugMessages++ },
		OnStatusChanged: func() { statusChanges++ },
	})
	tr.outbound = nil

	tr.push(fromMainboard(protocol.VarStatus, 0x00))
	p.Poll()
	// the first Poll also runs the retry watchdog, which polls the
	// variables not yet seen; only SetHeatingMode's output is checked.
	tr.outbound = nil

	accepted := p.SetHeatingMode(false)
	assert.True(t, accepted)
	assert.Equal(t, 1, debugMessages)
	assert.Empty(t, tr.outbound)
}
