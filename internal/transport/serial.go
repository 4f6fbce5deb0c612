package transport

import (
	"errors"
	"sync"
	"time"

	"github.com/tarm/serial"
)

// SerialTransport is a Transport backed by a real RS-485 serial line,
// grounded on the teacher's serial3/comport.go use of
// github.com/tarm/serial. The wire default is 9600 baud (spec.md 6.1);
// the baud is a constructor parameter so the 1200-baud sibling tool
// spec.md mentions can reuse this same type.
type SerialTransport struct {
	port *serial.Port

	mu     sync.Mutex
	buf    []byte
	closed bool
}

// Open opens the named serial device at baud and starts the background
// feeder that keeps SerialTransport's internal buffer filled. Direction
// control for RS-485 adapters that need it is expected to be handled by
// the OS driver or adapter hardware; this type does not toggle any GPIO
// itself.
func Open(device string, baud int) (*SerialTransport, error) {
	cfg := &serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: 200 * time.Millisecond,
	}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, err
	}

	t := &SerialTransport{port: port}
	go t.feed()
	return t, nil
}

// feed repeatedly reads whatever the OS driver has buffered and appends
// it to t.buf, the same "read a chunk, stash it" shape as
// serial3/comport.go's Loop, adapted to a buffer the core can poll
// synchronously instead of a channel a second goroutine drains.
func (t *SerialTransport) feed() {
	chunk := make([]byte, 256)
	for {
		n, err := t.port.Read(chunk)
		t.mu.Lock()
		closed := t.closed
		t.mu.Unlock()
		if closed {
			return
		}
		if err != nil {
			continue
		}
		if n > 0 {
			t.mu.Lock()
			t.buf = append(t.buf, chunk[:n]...)
			t.mu.Unlock()
		}
	}
}

func (t *SerialTransport) Available() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buf)
}

func (t *SerialTransport) ReadByte() (byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.buf) == 0 {
		return 0, errors.New("transport: no data buffered")
	}
	b := t.buf[0]
	t.buf = t.buf[1:]
	return b, nil
}

func (t *SerialTransport) Write(p []byte) error {
	n, err := t.port.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return errors.New("transport: short write")
	}
	return nil
}

func (t *SerialTransport) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.port.Flush()
	return t.port.Close()
}
