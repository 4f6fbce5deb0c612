// Package telegramnotify relays shadow change notifications to a
// Telegram chat and relays a small allow-listed command set back into
// the bus participant. It is grounded directly on the teacher's
// telega32 package: the same inherited-bot-plus-channel shape, the
// same chat-id allow list, cut down to the one chat this bridge talks
// to instead of a multi-user registry.
package telegramnotify

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vallox/titonbridge/internal/observer"
)

// Commands is the capability set of setters a command may invoke -
// the same optional-function-record shape as observer.Hooks, so the
// notifier never needs to import the bus participant package
// directly.
type Commands struct {
	SetPower       func(on bool) bool
	SetFanSpeed    func(speed int) bool
	SetHeatingMode func(on bool) bool
}

// Notifier wraps one Telegram bot bound to one chat.
type Notifier struct {
	botApi  *tgbotapi.BotAPI
	chatId  int64
	running bool
	outbox  chan string
	cmds    Commands
}

// New authenticates against the Telegram Bot API using token and
// binds to chatId, the one chat this bridge is allowed to talk to.
func New(token string, chatId int64, cmds Commands) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegramnotify: %w", err)
	}
	bot.Debug = false

	return &Notifier{
		botApi: bot,
		chatId: chatId,
		outbox: make(chan string, 16),
		cmds:   cmds,
	}, nil
}

// Run starts the send loop and the update-polling loop, each on its
// own goroutine - this package is one of the integration points
// spec.md 5 allows to run concurrently with the single-threaded core,
// since it only ever talks to the core through Hooks and Commands.
func (n *Notifier) Run() {
	n.running = true
	go n.sendLoop()
	go n.pollLoop()
}

func (n *Notifier) Stop() {
	n.running = false
	n.botApi.StopReceivingUpdates()
}

func (n *Notifier) sendLoop() {
	for text := range n.outbox {
		if !n.running {
			return
		}
		msg := tgbotapi.NewMessage(n.chatId, text)
		if _, err := n.botApi.Send(msg); err != nil {
			log.Println("telegramnotify: send failed:", err)
		}
	}
}

func (n *Notifier) pollLoop() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := n.botApi.GetUpdatesChan(u)
	for n.running {
		update, ok := <-updates
		if !ok {
			return
		}
		if update.Message == nil || update.Message.Chat.ID != n.chatId {
			continue
		}
		if reply := n.handleCommand(update.Message.Text); reply != "" {
			n.outbox <- reply
		}
	}
}

// handleCommand applies the allow-listed command set: /power on|off,
// /fan N, /heating on|off. Anything else is rejected, the same
// default-deny posture as the teacher's handle_msg_in.
func (n *Notifier) handleCommand(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "/power":
		if len(fields) != 2 || n.cmds.SetPower == nil {
			return "usage: /power on|off"
		}
		if n.cmds.SetPower(fields[1] == "on") {
			return "Ok"
		}
		return "rejected"
	case "/fan":
		if len(fields) != 2 || n.cmds.SetFanSpeed == nil {
			return "usage: /fan 1..8"
		}
		var speed int
		if _, err := fmt.Sscanf(fields[1], "%d", &speed); err != nil {
			return "usage: /fan 1..8"
		}
		if n.cmds.SetFanSpeed(speed) {
			return "Ok"
		}
		return "rejected"
	case "/heating":
		if len(fields) != 2 || n.cmds.SetHeatingMode == nil {
			return "usage: /heating on|off"
		}
		if n.cmds.SetHeatingMode(fields[1] == "on") {
			return "Ok"
		}
		return "rejected"
	default:
		return "unknown command"
	}
}

// Notify enqueues text for delivery without blocking the caller -
// Hooks below call this from the core's poll loop, so it must never
// block on a full chat.
func (n *Notifier) Notify(text string) {
	select {
	case n.outbox <- text:
	default:
		log.Println("telegramnotify: outbox full, dropping message")
	}
}

// Summary renders a one-line status line for a status-changed
// notification. Callers pass in the fields they want surfaced so this
// package never needs to import busparticipant's getters directly.
func Summary(power, heating, fault bool, fanSpeed int) string {
	state := "off"
	if power {
		state = "on"
	}
	return fmt.Sprintf("power=%s heating=%t fault=%t fan=%d", state, heating, fault, fanSpeed)
}

// Hooks builds an *observer.Hooks that calls summarize and forwards
// the result to the chat whenever the shadow's status changes.
func (n *Notifier) Hooks(summarize func() string) *observer.Hooks {
	return &observer.Hooks{
		OnStatusChanged: func() { n.Notify(summarize()) },
	}
}
