package busparticipant

import "github.com/vallox/titonbridge/internal/protocol"

func onOffWord(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// SetFanSpeed requests a new fan speed 1..8 inclusive. A non-status
// write: single emission, optimistic cache update, never gated.
func (p *Participant) SetFanSpeed(speed int) bool {
	if speed < 1 || speed > protocol.MaxFanSpeed {
		return false
	}
	p.writeSingle(protocol.VarFanSpeed, protocol.FanSpeedToHex(speed))
	p.shadow.Runtime.FanSpeed.Set(speed, p.clock.Now())
	p.notify.StatusChanged()
	return true
}

// SetDefaultFanSpeed requests a new power-up default fan speed. The
// accepted range is 1..<MaxFanSpeed, strictly excluding the top speed -
// an asymmetry with SetFanSpeed the source firmware has always had and
// spec.md 9 preserves rather than "fixes".
func (p *Participant) SetDefaultFanSpeed(speed int) bool {
	if speed < 1 || speed >= protocol.MaxFanSpeed {
		return false
	}
	p.writeSingle(protocol.VarDefaultFanSpeed, protocol.FanSpeedToHex(speed))
	p.shadow.Runtime.DefaultFanSpeed.Set(speed, p.clock.Now())
	p.notify.StatusChanged()
	return true
}

// SetHeatingTargetCelsius requests a new heating target, 10..27C.
func (p *Participant) SetHeatingTargetCelsius(celsius int) bool {
	if celsius < 10 || celsius > 27 {
		return false
	}
	p.writeSingle(protocol.VarHeatingTarget, protocol.CelsiusToNtc(celsius))
	p.shadow.Runtime.HeatingTarget.Set(celsius, p.clock.Now())
	p.notify.StatusChanged()
	return true
}

// SetServicePeriod requests a new service interval in months, 0..255.
func (p *Participant) SetServicePeriod(months int) bool {
	if months < 0 || months > 255 {
		return false
	}
	p.writeSingle(protocol.VarServicePeriod, byte(months))
	p.shadow.Runtime.ServicePeriod.Set(months, p.clock.Now())
	p.notify.StatusChanged()
	return true
}

// SetServiceCounter requests a new elapsed-months counter, 0..255.
func (p *Participant) SetServiceCounter(months int) bool {
	if months < 0 || months > 255 {
		return false
	}
	p.writeSingle(protocol.VarServiceCounter, byte(months))
	p.shadow.Runtime.ServiceCounter.Set(months, p.clock.Now())
	p.notify.StatusChanged()
	return true
}

// setStatusBit is the shared path for every write that touches the
// status word: single-flight gated, dual-emitted, and it resets the
// RETRY_INTERVAL clock so a successful status write doesn't also
// immediately trigger the retry watchdog's gate release.
func (p *Participant) setStatusBit(bit byte, on bool) bool {
	if p.statusWritePending {
		return false
	}
	current, _ := p.shadow.Runtime.Status.Get()
	var next byte
	if on {
		next = current | bit
	} else {
		next = current &^ bit
	}
	p.statusWritePending = true
	p.writeStatusDual(protocol.VarStatus, next)
	p.lastRetry = p.clock.Now()
	return true
}

// SetPower turns the unit on or off.
func (p *Participant) SetPower(on bool) bool { return p.setStatusBit(protocol.StatusFlagPower, on) }

// SetRhMode turns humidity-led fan control on or off.
func (p *Participant) SetRhMode(on bool) bool { return p.setStatusBit(protocol.StatusFlagRH, on) }

// SetHeatingMode turns heating mode on or off, short-circuiting with a
// debug print (and no wire write) if the cached status bit already
// matches the requested state.
func (p *Participant) SetHeatingMode(on bool) bool {
	if current, ok := p.shadow.Runtime.HeatingMode.Get(); ok && current == on {
		p.notify.DebugPrint("Heating mode is already " + onOffWord(on) + "!")
		p.notify.StatusChanged()
		return true
	}
	return p.setStatusBit(protocol.StatusFlagHeatingMode, on)
}

// SetFireplaceBoost triggers the fireplace function. Never gated or
// rejected - it writes the 06-flags variable, not the status word.
func (p *Participant) SetFireplaceBoost() bool {
	current, _ := p.shadow.Runtime.Flags06.Get()
	p.writeSingle(protocol.VarFlags06, current|protocol.Flags06ActivateFireplace)
	p.notify.StatusChanged()
	return true
}
