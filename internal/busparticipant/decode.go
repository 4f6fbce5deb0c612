package busparticipant

import (
	"time"

	"github.com/vallox/titonbridge/internal/protocol"
	"github.com/vallox/titonbridge/internal/shadow"
)

// decode dispatches one validated frame by variable ID (spec.md 4.4),
// then re-evaluates the full-status-init predicate exactly once and
// fires OnStatusChanged on its 0->1 transition - a notification
// distinct from, and in addition to, any the variable-specific decode
// already fired.
func (p *Participant) decode(f protocol.Frame) {
	now := p.clock.Now()
	wasFullStatusInitDone := p.fullStatusInitDone

	switch f.Variable() {
	case protocol.VarTInside:
		p.recordValue(&p.shadow.Runtime.TInside, protocol.NtcToCelsius(f.Value()), now)
	case protocol.VarTOutside:
		p.recordValue(&p.shadow.Runtime.TOutside, protocol.NtcToCelsius(f.Value()), now)
	case protocol.VarTIncoming:
		p.recordValue(&p.shadow.Runtime.TIncoming, protocol.NtcToCelsius(f.Value()), now)
	case protocol.VarTExhaust:
		p.recordValue(&p.shadow.Runtime.TExhaust, protocol.NtcToCelsius(f.Value()), now)

	case protocol.VarRH1:
		if pct, ok := protocol.HexToRelativeHumidity(f.Value()); ok {
			p.recordValue(&p.shadow.Runtime.RH1, pct, now)
		}
	case protocol.VarRH2:
		if pct, ok := protocol.HexToRelativeHumidity(f.Value()); ok {
			p.recordValue(&p.shadow.Runtime.RH2, pct, now)
		}

	case protocol.VarCO2Hi:
		p.shadow.Runtime.CO2Hi.Set(f.Value(), now)
		p.combineCO2(now)
	case protocol.VarCO2Lo:
		p.shadow.Runtime.CO2Lo.Set(f.Value(), now)
		p.combineCO2(now)

	case protocol.VarFanSpeed:
		if speed, ok := protocol.HexToFanSpeed(f.Value()); ok {
			p.recordStatusInt(&p.shadow.Runtime.FanSpeed, speed, now, wasFullStatusInitDone)
		}
	case protocol.VarDefaultFanSpeed:
		if speed, ok := protocol.HexToFanSpeed(f.Value()); ok {
			p.recordStatusInt(&p.shadow.Runtime.DefaultFanSpeed, speed, now, wasFullStatusInitDone)
		}

	case protocol.VarServicePeriod:
		p.recordStatusInt(&p.shadow.Runtime.ServicePeriod, int(f.Value()), now, wasFullStatusInitDone)
	case protocol.VarServiceCounter:
		p.recordStatusInt(&p.shadow.Runtime.ServiceCounter, int(f.Value()), now, wasFullStatusInitDone)
	case protocol.VarHeatingTarget:
		p.recordStatusInt(&p.shadow.Runtime.HeatingTarget, protocol.NtcToCelsius(f.Value()), now, wasFullStatusInitDone)

	case protocol.VarStatus:
		p.decodeStatus(f.Value(), now, wasFullStatusInitDone)
	case protocol.VarIO08:
		p.decodeIO08(f.Value(), now, wasFullStatusInitDone)
	case protocol.VarFlags06:
		p.decodeFlags06(f.Value(), now, wasFullStatusInitDone)
	case protocol.VarProgram:
		p.decodeProgram(f.Value(), now)

	default:
		// unknown variable ID - ignored silently, per spec.md 4.4.
	}

	p.fullStatusInitDone = p.computeFullStatusInitDone()
	if !wasFullStatusInitDone && p.fullStatusInitDone {
		p.notify.StatusChanged()
	}
}

// recordValue is the "value change" path shared by temperatures, RH and
// combined CO2 (spec.md 4.4): the source firmware routes all three
// through one checkValueChange overload that gates on temperature-init
// and fires OnTemperatureChanged, a quirk this bridge preserves
// faithfully rather than re-deriving a per-field gating rule the spec
// never states.
func (p *Participant) recordValue(s *shadow.Stamped[int], newVal int, now time.Time) {
	old, hadOld := s.Get()
	s.Set(newVal, now)
	changed := !hadOld || old != newVal
	if changed && p.temperatureInitDone() {
		p.notify.TemperatureChanged()
	}
}

func (p *Participant) combineCO2(now time.Time) {
	r := &p.shadow.Runtime
	if !r.CO2Hi.Within(now, p.cfg.CO2LifeTime) || !r.CO2Lo.Within(now, p.cfg.CO2LifeTime) {
		return
	}
	hi, _ := r.CO2Hi.Get()
	lo, _ := r.CO2Lo.Get()
	p.recordValue(&r.CO2, protocol.CombineCO2(hi, lo), now)
}

// recordStatusInt is the change path for scalar status-relevant fields:
// fan speeds, service fields and heating target. Gated on
// full-status-init as it stood before this decode, matching the
// single end-of-decode re-evaluation in decode above.
func (p *Participant) recordStatusInt(s *shadow.Stamped[int], newVal int, now time.Time, initDone bool) {
	old, hadOld := s.Get()
	s.Set(newVal, now)
	changed := !hadOld || old != newVal
	if changed && initDone {
		p.notify.StatusChanged()
	}
}

func (p *Participant) recordStatusBit(s *shadow.Stamped[bool], newVal bool, now time.Time) bool {
	old, hadOld := s.Get()
	s.Set(newVal, now)
	return !hadOld || old != newVal
}

// decodeStatus decomposes the status word, releases the status-write
// gate (spec.md 4.2, 7) and fires a single OnStatusChanged for the
// whole word when any bit changed - never one notification per bit.
func (p *Participant) decodeStatus(value byte, now time.Time, initDone bool) {
	r := &p.shadow.Runtime
	r.Status.Set(value, now)

	anyChanged := false
	if p.recordStatusBit(&r.Power, value&protocol.StatusFlagPower != 0, now) {
		anyChanged = true
	}
	if p.recordStatusBit(&r.RHMode, value&protocol.StatusFlagRH != 0, now) {
		anyChanged = true
	}
	if p.recordStatusBit(&r.HeatingMode, value&protocol.StatusFlagHeatingMode != 0, now) {
		anyChanged = true
	}
	if p.recordStatusBit(&r.Filter, value&protocol.StatusFlagFilter != 0, now) {
		anyChanged = true
	}
	if p.recordStatusBit(&r.Heating, value&protocol.StatusFlagHeating != 0, now) {
		anyChanged = true
	}
	if p.recordStatusBit(&r.Fault, value&protocol.StatusFlagFault != 0, now) {
		anyChanged = true
	}
	if p.recordStatusBit(&r.Service, value&protocol.StatusFlagService != 0, now) {
		anyChanged = true
	}

	p.statusWritePending = false

	if anyChanged && initDone {
		p.notify.StatusChanged()
	}
}

func (p *Participant) decodeIO08(value byte, now time.Time, initDone bool) {
	r := &p.shadow.Runtime
	r.IO08.Set(value, now)

	anyChanged := false
	if p.recordStatusBit(&r.SummerMode, value&protocol.IO08FlagSummerMode != 0, now) {
		anyChanged = true
	}
	if p.recordStatusBit(&r.ErrorRelay, value&protocol.IO08FlagErrorRelay != 0, now) {
		anyChanged = true
	}
	if p.recordStatusBit(&r.MotorIn, value&protocol.IO08FlagMotorIn != 0, now) {
		anyChanged = true
	}
	if p.recordStatusBit(&r.FrontHeating, value&protocol.IO08FlagFrontHeating != 0, now) {
		anyChanged = true
	}
	if p.recordStatusBit(&r.MotorOut, value&protocol.IO08FlagMotorOut != 0, now) {
		anyChanged = true
	}
	if p.recordStatusBit(&r.ExtraFunc, value&protocol.IO08FlagExtraFunc != 0, now) {
		anyChanged = true
	}

	if anyChanged && initDone {
		p.notify.StatusChanged()
	}
}

func (p *Participant) decodeFlags06(value byte, now time.Time, initDone bool) {
	r := &p.shadow.Runtime
	r.Flags06.Set(value, now)

	if p.recordStatusBit(&r.FireplaceActive, value&protocol.Flags06FireplaceIsActive != 0, now) && initDone {
		p.notify.StatusChanged()
	}
}

// decodeProgram decomposes the settings byte. Settings notify once,
// the first time they are ever seen, independent of either init
// predicate - spec.md 3.3 treats settings as out of band from runtime
// data's init-gated notifications.
func (p *Participant) decodeProgram(value byte, now time.Time) {
	s := &p.shadow.Settings
	firstSeen := !s.Program.Seen()
	s.Program.Set(value, now)
	s.SwitchType.Set(value&protocol.ProgramSwitchType != 0, now)
	if firstSeen {
		p.notify.StatusChanged()
	}
}
