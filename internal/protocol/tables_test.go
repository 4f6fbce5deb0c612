package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNtcIdempotence(t *testing.T) {
	// property 3: for every representable Celsius value, converting back
	// to an NTC byte and decoding it again reproduces the same value.
	seen := map[int]bool{}
	for b := 0; b < 256; b++ {
		seen[NtcToCelsius(byte(b))] = true
	}
	for cel := range seen {
		hex := CelsiusToNtc(cel)
		require.Equal(t, cel, NtcToCelsius(hex))
	}
}

func TestFanSpeedBijection(t *testing.T) {
	for speed := 1; speed <= MaxFanSpeed; speed++ {
		hex := FanSpeedToHex(speed)
		got, ok := HexToFanSpeed(hex)
		require.True(t, ok)
		assert.Equal(t, speed, got)
	}

	_, ok := HexToFanSpeed(0x55)
	assert.False(t, ok, "0x55 is not one of the eight fan-speed codes")
}

func TestHexToRelativeHumidity(t *testing.T) {
	pct, ok := HexToRelativeHumidity(51)
	require.True(t, ok)
	assert.Equal(t, 0, pct)

	_, ok = HexToRelativeHumidity(50)
	assert.False(t, ok)

	pct, ok = HexToRelativeHumidity(255)
	require.True(t, ok)
	assert.Equal(t, int(float64(255-51)/2.04), pct)
}

func TestCombineCO2(t *testing.T) {
	assert.Equal(t, 1200, CombineCO2(0x04, 0xB0))
}

func TestHeatingTargetToDisplayHex(t *testing.T) {
	assert.Equal(t, byte(0x01), HeatingTargetToDisplayHex(10))
	assert.Equal(t, byte(0xFF), HeatingTargetToDisplayHex(27))
	assert.Equal(t, byte(0x01), HeatingTargetToDisplayHex(30))
}
