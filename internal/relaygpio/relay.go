// Package relaygpio drives an auxiliary relay (for example, a physical
// fireplace-boost button wired in parallel with the panel's own) over
// a Raspberry Pi GPIO pin. Grounded on the teacher's pi4 package: the
// same availability probe at open time, generalised from a fixed no-op
// Ringer into a configurable pin and pulse.
package relaygpio

import (
	"log"
	"time"

	rpio "github.com/stianeikeland/go-rpio/v4"
)

// Available reports whether rpio.Open succeeds on this host, the same
// check the teacher's pi4 package runs in its init - done here at call
// time instead so it doesn't run automatically on hosts that never
// wire a relay.
func Available() bool {
	if err := rpio.Open(); err != nil {
		log.Println("relaygpio: GPIO isn't present:", err)
		return false
	}
	rpio.Close()
	return true
}

// Relay is a single GPIO output pin driven high for a pulse.
type Relay struct {
	pin rpio.Pin
}

// Open opens the GPIO memory range and configures pin as output, low.
func Open(pin int) (*Relay, error) {
	if err := rpio.Open(); err != nil {
		return nil, err
	}
	p := rpio.Pin(pin)
	p.Output()
	p.Low()
	return &Relay{pin: p}, nil
}

// Pulse drives the pin high for duration then low again.
func (r *Relay) Pulse(duration time.Duration) {
	r.pin.High()
	time.Sleep(duration)
	r.pin.Low()
}

func (r *Relay) Close() error {
	r.pin.Low()
	return rpio.Close()
}
