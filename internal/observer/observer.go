// Package observer defines the bus participant's callback surface:
// a capability set of four optional hooks, not an interface with many
// methods to implement - the same "record of function pointers" shape
// spec.md 9 calls for and the teacher favours (event.EventEmitter,
// clusters.OnOffCluster) over deep interface hierarchies.
package observer

import "github.com/vallox/titonbridge/internal/protocol"

// Direction tags a frame passed to OnPacket.
type Direction int

const (
	DirectionReceived Direction = iota
	DirectionSent
)

func (d Direction) String() string {
	if d == DirectionSent {
		return "sent"
	}
	return "received"
}

// Hooks is the observer capability set. Every field is optional; a nil
// hook is simply skipped. Hooks are invoked synchronously on the poll
// goroutine (spec.md 5) and must not block.
type Hooks struct {
	// OnPacket fires for every frame, sent or received, but only when
	// the participant is running in debug mode.
	OnPacket func(frame protocol.Frame, direction Direction)
	// OnStatusChanged fires after any cached value change subject to
	// the init-gating rules in spec.md 3.2 and 4.3.
	OnStatusChanged func()
	// OnTemperatureChanged fires after a temperature change, once
	// temperature-init is done.
	OnTemperatureChanged func()
	// OnDebugPrint carries diagnostic strings: checksum failures,
	// redundant status writes, and similar.
	OnDebugPrint func(text string)
}

func (h *Hooks) packet(frame protocol.Frame, direction Direction) {
	if h == nil || h.OnPacket == nil {
		return
	}
	h.OnPacket(frame, direction)
}

func (h *Hooks) statusChanged() {
	if h == nil || h.OnStatusChanged == nil {
		return
	}
	h.OnStatusChanged()
}

func (h *Hooks) temperatureChanged() {
	if h == nil || h.OnTemperatureChanged == nil {
		return
	}
	h.OnTemperatureChanged()
}

func (h *Hooks) debugPrint(text string) {
	if h == nil || h.OnDebugPrint == nil {
		return
	}
	h.OnDebugPrint(text)
}

// Notify is the internal dispatcher the bus participant uses; exported
// so integration packages that build their own Hooks (see
// internal/telegramnotify) can call through identically in tests.
type Notify struct {
	hooks *Hooks
}

func New(hooks *Hooks) *Notify { return &Notify{hooks: hooks} }

func (n *Notify) Packet(frame protocol.Frame, direction Direction) { n.hooks.packet(frame, direction) }
func (n *Notify) StatusChanged()                                  { n.hooks.statusChanged() }
func (n *Notify) TemperatureChanged()                              { n.hooks.temperatureChanged() }
func (n *Notify) DebugPrint(text string)                          { n.hooks.debugPrint(text) }

// Merge combines any number of Hooks into one that calls every
// non-nil sub-hook in argument order, so the CLI can wire the Telegram,
// GPIO and websocket-stream integrations onto the same participant
// without them knowing about each other.
func Merge(all ...*Hooks) *Hooks {
	merged := &Hooks{}
	merged.OnPacket = func(frame protocol.Frame, direction Direction) {
		for _, h := range all {
			if h != nil && h.OnPacket != nil {
				h.OnPacket(frame, direction)
			}
		}
	}
	merged.OnStatusChanged = func() {
		for _, h := range all {
			if h != nil && h.OnStatusChanged != nil {
				h.OnStatusChanged()
			}
		}
	}
	merged.OnTemperatureChanged = func() {
		for _, h := range all {
			if h != nil && h.OnTemperatureChanged != nil {
				h.OnTemperatureChanged()
			}
		}
	}
	merged.OnDebugPrint = func(text string) {
		for _, h := range all {
			if h != nil && h.OnDebugPrint != nil {
				h.OnDebugPrint(text)
			}
		}
	}
	return merged
}
