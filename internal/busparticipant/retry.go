package busparticipant

import "github.com/vallox/titonbridge/internal/protocol"

// retryLoop is the RETRY_INTERVAL watchdog (spec.md 4.5): re-poll each
// full-status-init variable (status word, IO-08, both fan speeds, both
// service fields, heating target) that has never been stamped, and
// unconditionally release a stuck status-write gate. Temperatures, RH,
// CO2, the 06 flags and the program byte are not re-polled here. It resets p.lastRetry itself so Poll's
// timer check only fires retryLoop once per interval.
func (p *Participant) retryLoop() {
	p.lastRetry = p.clock.Now()
	p.sendMissingRequests()
	p.statusWritePending = false
}

func (p *Participant) sendMissingRequests() {
	r := &p.shadow.Runtime
	if !r.Status.Seen() {
		p.pollVariable(protocol.VarStatus)
	}
	if !r.IO08.Seen() {
		p.pollVariable(protocol.VarIO08)
	}
	if !r.FanSpeed.Seen() {
		p.pollVariable(protocol.VarFanSpeed)
	}
	if !r.DefaultFanSpeed.Seen() {
		p.pollVariable(protocol.VarDefaultFanSpeed)
	}
	if !r.ServicePeriod.Seen() {
		p.pollVariable(protocol.VarServicePeriod)
	}
	if !r.ServiceCounter.Seen() {
		p.pollVariable(protocol.VarServiceCounter)
	}
	if !r.HeatingTarget.Seen() {
		p.pollVariable(protocol.VarHeatingTarget)
	}
}
