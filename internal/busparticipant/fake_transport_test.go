package busparticipant

import "errors"

// fakeTransport is an in-memory transport.Transport: inbound is a
// queue of bytes tests push onto the "wire", outbound records every
// byte slice Write was called with so tests can assert on emitted
// frames.
type fakeTransport struct {
	inbound  []byte
	outbound [][]byte
}

func (t *fakeTransport) Available() int { return len(t.inbound) }

func (t *fakeTransport) ReadByte() (byte, error) {
	if len(t.inbound) == 0 {
		return 0, errors.New("fakeTransport: empty")
	}
	b := t.inbound[0]
	t.inbound = t.inbound[1:]
	return b, nil
}

func (t *fakeTransport) Write(p []byte) error {
	cp := make([]byte, len(p))
	copy(cp, p)
	t.outbound = append(t.outbound, cp)
	return nil
}

func (t *fakeTransport) Close() error { return nil }

func (t *fakeTransport) push(frame [6]byte) {
	t.inbound = append(t.inbound, frame[:]...)
}
