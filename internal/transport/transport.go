// Package transport is the serial-line boundary spec.md places out of
// the core's scope: byte I/O and baud setup live here, reached by the
// bus participant only through the Transport interface (which also
// satisfies protocol.ByteSource). RS-485 direction control is left to
// the OS driver or adapter hardware.
package transport

// Transport is the minimal byte-oriented interface the bus participant
// needs. Receive is non-blocking (Available is queried before Read, per
// spec.md 5); Write is blocking.
type Transport interface {
	// Available returns the number of bytes currently buffered and
	// ready to read, without blocking.
	Available() int
	// ReadByte blocks only long enough to return a byte that Available
	// has already reported as buffered.
	ReadByte() (byte, error)
	// Write blocks until the given bytes have been sent.
	Write(p []byte) error
	// Close releases the underlying line.
	Close() error
}
