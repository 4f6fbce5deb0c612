package busparticipant

// The getters below all return (value, ok) - ok is false when the
// underlying variable has never been received, per spec.md 3.2's
// explicit-optional cache model. There is deliberately no "give me the
// zero value" fallback: callers that want one write it themselves.

func (p *Participant) InsideTemp() (int, bool)   { return p.shadow.Runtime.TInside.Get() }
func (p *Participant) OutsideTemp() (int, bool)  { return p.shadow.Runtime.TOutside.Get() }
func (p *Participant) IncomingTemp() (int, bool) { return p.shadow.Runtime.TIncoming.Get() }
func (p *Participant) ExhaustTemp() (int, bool)  { return p.shadow.Runtime.TExhaust.Get() }

func (p *Participant) RH1() (int, bool) { return p.shadow.Runtime.RH1.Get() }
func (p *Participant) RH2() (int, bool) { return p.shadow.Runtime.RH2.Get() }
func (p *Participant) CO2() (int, bool) { return p.shadow.Runtime.CO2.Get() }

func (p *Participant) FanSpeed() (int, bool)        { return p.shadow.Runtime.FanSpeed.Get() }
func (p *Participant) DefaultFanSpeed() (int, bool) { return p.shadow.Runtime.DefaultFanSpeed.Get() }
func (p *Participant) HeatingTarget() (int, bool)   { return p.shadow.Runtime.HeatingTarget.Get() }
func (p *Participant) ServicePeriod() (int, bool)   { return p.shadow.Runtime.ServicePeriod.Get() }
func (p *Participant) ServiceCounter() (int, bool)  { return p.shadow.Runtime.ServiceCounter.Get() }

func (p *Participant) IsOn() (bool, bool)          { return p.shadow.Runtime.Power.Get() }
func (p *Participant) IsRhMode() (bool, bool)      { return p.shadow.Runtime.RHMode.Get() }
func (p *Participant) IsHeatingMode() (bool, bool) { return p.shadow.Runtime.HeatingMode.Get() }
func (p *Participant) IsFilterDue() (bool, bool)   { return p.shadow.Runtime.Filter.Get() }
func (p *Participant) IsHeating() (bool, bool)     { return p.shadow.Runtime.Heating.Get() }
func (p *Participant) IsFault() (bool, bool)       { return p.shadow.Runtime.Fault.Get() }
func (p *Participant) IsServiceDue() (bool, bool)  { return p.shadow.Runtime.Service.Get() }

func (p *Participant) IsSummerMode() (bool, bool)   { return p.shadow.Runtime.SummerMode.Get() }
func (p *Participant) IsErrorRelay() (bool, bool)   { return p.shadow.Runtime.ErrorRelay.Get() }
func (p *Participant) IsMotorIn() (bool, bool)      { return p.shadow.Runtime.MotorIn.Get() }
func (p *Participant) IsFrontHeating() (bool, bool) { return p.shadow.Runtime.FrontHeating.Get() }
func (p *Participant) IsMotorOut() (bool, bool)     { return p.shadow.Runtime.MotorOut.Get() }
func (p *Participant) IsExtraFunc() (bool, bool)    { return p.shadow.Runtime.ExtraFunc.Get() }

func (p *Participant) IsFireplaceActive() (bool, bool) {
	return p.shadow.Runtime.FireplaceActive.Get()
}

func (p *Participant) Program() (byte, bool)     { return p.shadow.Settings.Program.Get() }
func (p *Participant) IsSwitchType() (bool, bool) { return p.shadow.Settings.SwitchType.Get() }
