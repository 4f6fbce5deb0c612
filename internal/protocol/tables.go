package protocol

// ntcTable is the 256-entry NTC-byte-to-Celsius lookup, transcribed from
// the appliance vendor firmware's own table. Saturates at -74..+100 at
// both ends by construction - no extra clamping needed at lookup time.
var ntcTable = [256]int8{
	-74, -70, -66, -62, -59, -56, -54, -52, -50, -48, // 0x00 - 0x09
	-47, -46, -44, -43, -42, -41, -40, -39, -38, -37, // 0x0a - 0x13
	-36, -35, -34, -33, -33, -32, -31, -30, -30, -29, // 0x14 - 0x1d
	-28, -28, -27, -27, -26, -25, -25, -24, -24, -23, // 0x1e - 0x27
	-23, -22, -22, -21, -21, -20, -20, -19, -19, -19, // 0x28 - 0x31
	-18, -18, -17, -17, -16, -16, -16, -15, -15, -14, // 0x32 - 0x3b
	-14, -14, -13, -13, -12, -12, -12, -11, -11, -11, // 0x3c - 0x45
	-10, -10, -9, -9, -9, -8, -8, -8, -7, -7, // 0x46 - 0x4f
	-7, -6, -6, -6, -5, -5, -5, -4, -4, -4, // 0x50 - 0x59
	-3, -3, -3, -2, -2, -2, -1, -1, -1, -1, // 0x5a - 0x63
	0, 0, 0, 1, 1, 1, 2, 2, 2, 3, // 0x64 - 0x6d
	3, 3, 4, 4, 4, 5, 5, 5, 5, 6, // 0x6e - 0x77
	6, 6, 7, 7, 7, 8, 8, 8, 9, 9, // 0x78 - 0x81
	9, 10, 10, 10, 11, 11, 11, 12, 12, 12, // 0x82 - 0x8b
	13, 13, 13, 14, 14, 14, 15, 15, 15, 16, // 0x8c - 0x95
	16, 16, 17, 17, 18, 18, 18, 19, 19, 19, // 0x96 - 0x9f
	20, 20, 21, 21, 21, 22, 22, 22, 23, 23, // 0xa0 - 0xa9
	24, 24, 24, 25, 25, 26, 26, 27, 27, 27, // 0xaa - 0xb3
	28, 28, 29, 29, 30, 30, 31, 31, 32, 32, // 0xb4 - 0xbd
	33, 33, 34, 34, 35, 35, 36, 36, 37, 37, // 0xbe - 0xc7
	38, 38, 39, 40, 40, 41, 41, 42, 43, 43, // 0xc8 - 0xd1
	44, 45, 45, 46, 47, 48, 48, 49, 50, 51, // 0xd2 - 0xdb
	52, 53, 53, 54, 55, 56, 57, 59, 60, 61, // 0xdc - 0xe5
	62, 63, 65, 66, 68, 69, 71, 73, 75, 77, // 0xe6 - 0xef
	79, 81, 82, 86, 90, 93, 97, 100, 100, 100, // 0xf0 - 0xf9
	100, 100, 100, 100, 100, 100, // 0xfa - 0xff
}

// NtcToCelsius converts a raw NTC byte into degrees Celsius.
func NtcToCelsius(ntc byte) int {
	return int(ntcTable[ntc])
}

// CelsiusToNtc returns an NTC byte whose lookup yields cel, preferring
// the lowest such byte. If cel is outside the representable range it
// falls back to 0x83 - the source's own default ("we should not be
// here").
func CelsiusToNtc(cel int) byte {
	for i := 0; i < 256; i++ {
		if int(ntcTable[i]) == cel {
			return byte(i)
		}
	}
	return 0x83
}

// fanSpeedTable maps discrete fan speed 1..8 (index 0..7) to its wire
// byte code.
var fanSpeedTable = [MaxFanSpeed]byte{0x01, 0x03, 0x07, 0x0F, 0x1F, 0x3F, 0x7F, 0xFF}

// FanSpeedToHex converts a 1..8 fan speed into its wire byte. Callers
// are expected to have already range-checked speed; out-of-range input
// falls back to speed 1, matching the source's "we should not be here"
// default.
func FanSpeedToHex(speed int) byte {
	if speed >= 1 && speed <= MaxFanSpeed {
		return fanSpeedTable[speed-1]
	}
	return fanSpeedTable[0]
}

// HexToFanSpeed is the inverse of FanSpeedToHex. ok is false when hex is
// not one of the eight known codes.
func HexToFanSpeed(hex byte) (speed int, ok bool) {
	for i, code := range fanSpeedTable {
		if code == hex {
			return i + 1, true
		}
	}
	return 0, false
}

// HexToRelativeHumidity applies the linear RH transform. ok is false for
// bytes below the unreadable-range guard (b < 51).
func HexToRelativeHumidity(b byte) (percent int, ok bool) {
	if b < 51 {
		return 0, false
	}
	return int(float64(b-51) / 2.04), true
}

// HeatingTargetToDisplayHex mirrors the source's htCel2Hex: a coarse 8-step
// table used only for display reconstruction, kept for compatibility.
func HeatingTargetToDisplayHex(cel int) byte {
	switch {
	case cel < 13:
		return 0x01
	case cel < 15:
		return 0x03
	case cel < 18:
		return 0x07
	case cel < 20:
		return 0x0F
	case cel < 23:
		return 0x1F
	case cel < 25:
		return 0x3F
	case cel < 27:
		return 0x7F
	case cel == 27:
		return 0xFF
	default:
		return 0x01
	}
}

// CombineCO2 reconstructs the 16-bit CO2 reading from its split bytes.
func CombineCO2(hi, lo byte) int {
	return int(hi)<<8 | int(lo)
}
