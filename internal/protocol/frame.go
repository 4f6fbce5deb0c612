package protocol

import "fmt"

// Frame is a single fixed-length Titon telegram.
type Frame [MsgLength]byte

func (f Frame) Source() byte      { return f[1] }
func (f Frame) Destination() byte { return f[2] }
func (f Frame) Byte3() byte       { return f[3] }
func (f Frame) Byte4() byte       { return f[4] }
func (f Frame) Checksum() byte    { return f[5] }

// IsPoll reports whether the frame carries a poll marker in byte 3 - in
// that case Byte4 names the variable being requested rather than a value.
func (f Frame) IsPoll() bool { return f[3] == PollByte }

// Variable returns the variable ID regardless of whether the frame is a
// poll (byte 4) or a write/broadcast (byte 3).
func (f Frame) Variable() byte {
	if f.IsPoll() {
		return f[4]
	}
	return f[3]
}

// Value returns the carried value for a non-poll frame.
func (f Frame) Value() byte { return f[4] }

func (f Frame) String() string {
	return fmt.Sprintf("% 02X", [MsgLength]byte(f))
}

// CalcChecksum is the unsigned byte-wise sum of bytes 0..4, truncated to
// 8 bits.
func CalcChecksum(f Frame) byte {
	var sum byte
	for i := 0; i < MsgLength-1; i++ {
		sum += f[i]
	}
	return sum
}

var validSources = [...]byte{Mainboard1, ThisPanel, Panel1}
var validDestinations = [...]byte{AllPanels, ThisPanel, Panel1, Mainboard1, AllMainboards}

func oneOf(b byte, set []byte) bool {
	for _, v := range set {
		if b == v {
			return true
		}
	}
	return false
}

// Validate applies the acceptance rules from the wire spec: source and
// destination must belong to the accepted classes and the checksum must
// match. It does not inspect byte 0 (the domain byte) - that filtering
// happens in TryReadFrame before a candidate frame is even
// assembled.
func Validate(f Frame) bool {
	if !oneOf(f.Source(), validSources[:]) {
		return false
	}
	if !oneOf(f.Destination(), validDestinations[:]) {
		return false
	}
	return f.Checksum() == CalcChecksum(f)
}

// EmitPoll builds a poll frame for variable, addressed from this panel
// to mainboard 1.
func EmitPoll(variable byte) Frame {
	f := Frame{MsgDomain, ThisPanel, Mainboard1, PollByte, variable, 0}
	f[5] = CalcChecksum(f)
	return f
}

// EmitWrite builds a single write frame for variable=value, addressed to
// destination with source inferred the way the source firmware infers it:
// mainboard-scoped destinations are written from this panel, panel-scoped
// destinations are written from mainboard 1. This mirrors setVariable's
// two calls in the original firmware and is used directly by the dual
// emission in busparticipant for status writes, and alone for
// non-status writes (which target AllMainboards only).
func EmitWrite(variable, value, destination byte) Frame {
	source := ThisPanel
	if destination == AllPanels || destination == Panel1 {
		source = Mainboard1
	}
	f := Frame{MsgDomain, source, destination, variable, value, 0}
	f[5] = CalcChecksum(f)
	return f
}

// ByteSource is the minimal read surface the codec needs from a
// transport: a non-blocking count of buffered bytes and a blocking
// single-byte read once that count says bytes are available. Transports
// live outside this package (see internal/transport); this interface is
// the "well-defined interface" spec.md keeps the core decoupled through.
type ByteSource interface {
	Available() int
	ReadByte() (byte, error)
}

// TryReadFrame implements the non-blocking frame-read state machine from
// spec.md 4.1: it only looks at the transport when a full frame's worth
// of bytes is buffered, discards a leading byte that isn't the domain
// constant (one byte at a time, so a resynchronising stream is recovered
// within MsgLength calls), and applies Validate to the remaining
// candidate. ok is false whenever nothing was read, or nothing
// validated; onChecksumFail is invoked exactly when validation failed
// specifically on the checksum comparison (spec.md 4.1 rule 6 and 7.1).
func TryReadFrame(r ByteSource, onChecksumFail func()) (Frame, bool) {
	if r.Available() < MsgLength {
		return Frame{}, false
	}

	b0, err := r.ReadByte()
	if err != nil {
		return Frame{}, false
	}
	if b0 != MsgDomain {
		return Frame{}, false
	}

	var f Frame
	f[0] = b0
	for i := 1; i < MsgLength; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return Frame{}, false
		}
		f[i] = b
	}

	if !oneOf(f.Source(), validSources[:]) {
		return Frame{}, false
	}
	if !oneOf(f.Destination(), validDestinations[:]) {
		return Frame{}, false
	}
	if f.Checksum() != CalcChecksum(f) {
		if onChecksumFail != nil {
			onChecksumFail()
		}
		return Frame{}, false
	}

	return f, true
}
