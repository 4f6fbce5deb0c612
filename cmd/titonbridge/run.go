package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vallox/titonbridge/internal/busparticipant"
	"github.com/vallox/titonbridge/internal/clock"
	"github.com/vallox/titonbridge/internal/config"
	"github.com/vallox/titonbridge/internal/observer"
	"github.com/vallox/titonbridge/internal/protocol"
	"github.com/vallox/titonbridge/internal/relaygpio"
	"github.com/vallox/titonbridge/internal/streamserver"
	"github.com/vallox/titonbridge/internal/sysinfo"
	"github.com/vallox/titonbridge/internal/telegramnotify"
	"github.com/vallox/titonbridge/internal/transport"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the bus and run the bridge until interrupted",
	RunE:  runBridge,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runBridge(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Println("titonbridge:", err)
		cfg = config.Default()
	}
	if portName != "" {
		cfg.SerialPort = portName
	}
	if baudRate != 0 {
		cfg.Baud = baudRate
	}
	if httpAddr != "" {
		cfg.HttpAddress = httpAddr
	}
	if debugFlag {
		cfg.Debug = true
	}

	host := sysinfo.Collect()
	log.Printf("titonbridge starting on %s (%s/%s)\n", host.Hostname, host.OS, host.Platform)

	tr, err := transport.Open(cfg.SerialPort, cfg.Baud)
	if err != nil {
		return err
	}
	defer tr.Close()

	hookGroups := []*observer.Hooks{debugLogHooks(cfg.Debug)}

	var stream *streamserver.Server
	var participant *busparticipant.Participant
	var relay *relaygpio.Relay

	if cfg.GpioRelayPin >= 0 {
		var relayErr error
		relay, relayErr = relaygpio.Open(cfg.GpioRelayPin)
		if relayErr != nil {
			log.Println("titonbridge:", relayErr)
			relay = nil
		} else {
			defer relay.Close()
			hookGroups = append(hookGroups, fireplaceRelayHooks(relay, func() (bool, bool) {
				return participant.IsFireplaceActive()
			}))
		}
	}

	if cfg.HttpAddress != "" {
		stream = streamserver.New(cfg.HttpAddress, func() any { return snapshot(participant) })
		stream.Start()
		defer stream.Stop()
		hookGroups = append(hookGroups, &observer.Hooks{
			OnStatusChanged:      stream.Broadcast,
			OnTemperatureChanged: stream.Broadcast,
		})
	}

	// Telegram commands arrive on the notifier's goroutine; they are run on the poll loop below.
	commands := make(chan func())
	onPollLoop := func(fn func() bool) bool {
		done := make(chan bool)
		commands <- func() { done <- fn() }
		return <-done
	}

	var notifier *telegramnotify.Notifier
	if cfg.TelegramBotToken != "" {
		notifier, err = telegramnotify.New(cfg.TelegramBotToken, cfg.TelegramChatId, telegramnotify.Commands{
			SetPower:       func(on bool) bool { return onPollLoop(func() bool { return participant.SetPower(on) }) },
			SetFanSpeed:    func(speed int) bool { return onPollLoop(func() bool { return participant.SetFanSpeed(speed) }) },
			SetHeatingMode: func(on bool) bool { return onPollLoop(func() bool { return participant.SetHeatingMode(on) }) },
		})
		if err != nil {
			log.Println("titonbridge:", err)
		} else {
			notifier.Run()
			defer notifier.Stop()
			hookGroups = append(hookGroups, notifier.Hooks(func() string { return statusSummary(participant) }))
		}
	}

	pCfg := busparticipant.DefaultConfig()
	if cfg.QueryIntervalSeconds > 0 {
		pCfg.QueryInterval = time.Duration(cfg.QueryIntervalSeconds) * time.Second
	}
	if cfg.RetryIntervalSeconds > 0 {
		pCfg.RetryInterval = time.Duration(cfg.RetryIntervalSeconds) * time.Second
	}
	pCfg.Debug = cfg.Debug

	participant = busparticipant.Connect(tr, clock.Real{}, observer.Merge(hookGroups...), pCfg)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	log.Println("titonbridge running, press Ctrl-C to stop")
	for {
		select {
		case sig := <-sigs:
			log.Println("titonbridge stopping:", sig)
			return nil
		case fn := <-commands:
			fn()
		case <-ticker.C:
			participant.Poll()
		}
	}
}

func debugLogHooks(enabled bool) *observer.Hooks {
	if !enabled {
		return &observer.Hooks{}
	}
	return &observer.Hooks{
		OnPacket: func(frame protocol.Frame, direction observer.Direction) {
			log.Printf("%s %s\n", direction, frame)
		},
		OnDebugPrint: func(text string) { log.Println(text) },
	}
}

// fireplaceRelayHooks pulses relay once when the cached fireplace-active
// bit transitions from off to on, mirroring a physical relay wired in
// parallel with the panel's own fireplace button.
func fireplaceRelayHooks(relay *relaygpio.Relay, active func() (bool, bool)) *observer.Hooks {
	wasActive := false
	return &observer.Hooks{
		OnStatusChanged: func() {
			on, ok := active()
			if ok && on && !wasActive {
				go relay.Pulse(500 * time.Millisecond)
			}
			wasActive = on
		},
	}
}

func statusSummary(p *busparticipant.Participant) string {
	power, _ := p.IsOn()
	heating, _ := p.IsHeating()
	fault, _ := p.IsFault()
	fanSpeed, _ := p.FanSpeed()
	return telegramnotify.Summary(power, heating, fault, fanSpeed)
}

func snapshot(p *busparticipant.Participant) any {
	if p == nil {
		return map[string]any{}
	}
	inside, _ := p.InsideTemp()
	outside, _ := p.OutsideTemp()
	incoming, _ := p.IncomingTemp()
	exhaust, _ := p.ExhaustTemp()
	fanSpeed, _ := p.FanSpeed()
	power, _ := p.IsOn()
	heating, _ := p.IsHeating()
	fault, _ := p.IsFault()
	co2, co2ok := p.CO2()

	return map[string]any{
		"insideTemp":   inside,
		"outsideTemp":  outside,
		"incomingTemp": incoming,
		"exhaustTemp":  exhaust,
		"fanSpeed":     fanSpeed,
		"power":        power,
		"heating":      heating,
		"fault":        fault,
		"co2":          co2,
		"co2Available": co2ok,
		"initComplete": p.InitComplete(),
	}
}
