// Package busparticipant implements the bus-participant state machine
// from spec.md 4.2-4.5: it owns the shadow model, dispatches decoded
// frames, issues the initialisation burst and periodic polls, and runs
// the single-outstanding status-write gate. Everything here is meant to
// be driven from one goroutine, via repeated calls to Poll - see
// spec.md 5.
package busparticipant

import (
	"time"

	"github.com/vallox/titonbridge/internal/clock"
	"github.com/vallox/titonbridge/internal/observer"
	"github.com/vallox/titonbridge/internal/protocol"
	"github.com/vallox/titonbridge/internal/shadow"
	"github.com/vallox/titonbridge/internal/transport"
)

// Config tunes the timers and delays spec.md 4.5/5/6.1 leave as
// appliance-observed defaults.
type Config struct {
	// QueryInterval gates the periodic IO-08/service-counter re-poll.
	QueryInterval time.Duration
	// RetryInterval gates re-polling never-received variables and
	// releasing a stuck status-write gate.
	RetryInterval time.Duration
	// CO2LifeTime is the maximum age difference between the CO2
	// high and low byte stamps for a combined reading to publish.
	CO2LifeTime time.Duration
	// SettleDelay is the pause after each outbound poll, giving the
	// mainboard time to reply before the transport is read again.
	SettleDelay time.Duration
	// Debug enables OnPacket notifications for sent and received
	// frames.
	Debug bool
}

// DefaultConfig matches spec.md's stated defaults: CO2 combination
// window 2000ms, settle delay ~100ms, and tens-of-seconds query/retry
// timers kept deliberately distinct from one another.
func DefaultConfig() Config {
	return Config{
		QueryInterval: 30 * time.Second,
		RetryInterval: 20 * time.Second,
		CO2LifeTime:   2000 * time.Millisecond,
		SettleDelay:   100 * time.Millisecond,
		Debug:         false,
	}
}

// Participant is a single bus-participant instance: one transport, one
// shadow, one set of timers. It is not safe for concurrent use; all
// methods are meant to be called from one goroutine (spec.md 5).
type Participant struct {
	transport transport.Transport
	clock     clock.Clock
	shadow    *shadow.Shadow
	notify    *observer.Notify
	cfg       Config
	sleep     func(time.Duration)

	statusWritePending bool
	fullStatusInitDone bool

	lastQueried time.Time
	lastRetry   time.Time
}

// Option customises a Participant at Connect time.
type Option func(*Participant)

// WithSleepFunc overrides the settle-delay sleep, so tests don't pay
// real wall-clock time for it.
func WithSleepFunc(fn func(time.Duration)) Option {
	return func(p *Participant) { p.sleep = fn }
}

// Connect wires a transport and clock into a fresh Participant and
// issues the initialisation burst (spec.md 4.3): one poll for every
// status-relevant variable, skipping temperatures (broadcast
// unsolicited) and RH2 (never explicitly polled - an open question
// spec.md preserves rather than "fixes").
func Connect(t transport.Transport, c clock.Clock, hooks *observer.Hooks, cfg Config, opts ...Option) *Participant {
	p := &Participant{
		transport: t,
		clock:     c,
		shadow:    shadow.New(),
		notify:    observer.New(hooks),
		cfg:       cfg,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.sendInitBurst()
	return p
}

func (p *Participant) sendInitBurst() {
	p.pollVariable(protocol.VarStatus)
	p.pollVariable(protocol.VarIO08)
	p.pollVariable(protocol.VarFanSpeed)
	p.pollVariable(protocol.VarDefaultFanSpeed)
	p.pollVariable(protocol.VarRH1)
	p.pollVariable(protocol.VarServicePeriod)
	p.pollVariable(protocol.VarServiceCounter)
	p.pollVariable(protocol.VarHeatingTarget)
	p.pollVariable(protocol.VarFlags06)
	p.pollVariable(protocol.VarProgram)

	p.lastQueried = p.clock.Now()
	// lastRetry is deliberately left at its zero value: the first Poll
	// call's RETRY_INTERVAL check will see an enormous elapsed time and
	// run the retry loop immediately, mirroring the source firmware's
	// uninitialised lastRetryLoop falling through on the very first
	// loop() iteration.
}

// Poll drains every frame currently buffered on the transport, then -
// if enough time has elapsed - runs the periodic query and retry
// watchdog work. Poll never blocks waiting for input; it only sleeps
// for the short settle delay after an outbound poll it issues itself.
func (p *Participant) Poll() {
	for p.transport.Available() >= protocol.MsgLength {
		frame, ok := protocol.TryReadFrame(p.transport, func() {
			p.notify.DebugPrint("Checksum comparison failed!")
		})
		if !ok {
			continue
		}
		if p.cfg.Debug {
			p.notify.Packet(frame, observer.DirectionReceived)
		}
		p.decode(frame)
	}

	now := p.clock.Now()
	if now.Sub(p.lastQueried) > p.cfg.QueryInterval {
		p.lastQueried = now
		if p.fullStatusInitDone {
			p.pollVariable(protocol.VarIO08)
			p.pollVariable(protocol.VarServiceCounter)
		}
	}

	if now.Sub(p.lastRetry) > p.cfg.RetryInterval {
		p.retryLoop()
	}
}

// InitComplete reports whether full-status-init is done - spec.md
// 6.2's "init-complete predicate".
func (p *Participant) InitComplete() bool { return p.fullStatusInitDone }

func (p *Participant) temperatureInitDone() bool {
	r := &p.shadow.Runtime
	return r.TInside.Seen() && r.TOutside.Seen() && r.TIncoming.Seen() && r.TExhaust.Seen()
}

func (p *Participant) computeFullStatusInitDone() bool {
	r := &p.shadow.Runtime
	return r.Power.Seen() && r.RHMode.Seen() && r.HeatingMode.Seen() &&
		r.Filter.Seen() && r.Heating.Seen() && r.Fault.Seen() && r.Service.Seen() &&
		r.IO08.Seen() &&
		r.FanSpeed.Seen() && r.DefaultFanSpeed.Seen() &&
		r.ServicePeriod.Seen() && r.ServiceCounter.Seen() &&
		r.HeatingTarget.Seen()
}

func (p *Participant) sendFrame(f protocol.Frame) {
	if p.cfg.Debug {
		p.notify.Packet(f, observer.DirectionSent)
	}
	_ = p.transport.Write(f[:])
}

// pollVariable emits a poll request and yields the settle delay
// (spec.md 5, 9): the only point where this cooperative core gives the
// mainboard time to answer before being asked to read again.
func (p *Participant) pollVariable(variable byte) {
	p.sendFrame(protocol.EmitPoll(variable))
	p.sleep(p.cfg.SettleDelay)
}

// writeSingle emits a non-status write to all mainboards, a single
// emission - spec.md's setter table lists these as updating the cache
// optimistically with no dual-address requirement.
func (p *Participant) writeSingle(variable, value byte) {
	p.sendFrame(protocol.EmitWrite(variable, value, protocol.AllMainboards))
}

// writeStatusDual performs the mandatory dual emission for any write
// that touches the status word (spec.md 4.1, 9): once to all
// mainboards (source=this-panel) and once to all panels
// (source=mainboard-1), checksums recomputed independently for each.
func (p *Participant) writeStatusDual(variable, value byte) {
	p.sendFrame(protocol.EmitWrite(variable, value, protocol.AllMainboards))
	p.sendFrame(protocol.EmitWrite(variable, value, protocol.AllPanels))
}
