// Package config loads titonbridge's configuration file, a small
// line-oriented text format grounded directly on the teacher's own
// getGlobalConfig (main.go): a "Mode" line selects which "[section]"
// block below it applies, then each line inside that section is a
// "Key value" pair. Unknown keys are ignored rather than rejected, the
// same tolerance the teacher's parser has.
package config

import (
	"bufio"
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds every setting the CLI needs to start a bridge: the
// serial transport, the core's timers, and the optional integrations.
type Config struct {
	Mode string

	SerialPort string
	Baud       int

	QueryIntervalSeconds int
	RetryIntervalSeconds int
	Debug                bool

	HttpAddress string

	TelegramBotToken string
	TelegramChatId   int64

	GpioRelayPin int
}

// Default returns a Config with the wire defaults from spec.md 6.1 and
// the timer defaults from busparticipant.DefaultConfig, before a file
// is loaded on top of it.
func Default() Config {
	return Config{
		SerialPort:           "/dev/ttyUSB0",
		Baud:                 9600,
		QueryIntervalSeconds: 30,
		RetryIntervalSeconds: 20,
		GpioRelayPin:         -1,
	}
}

// Load reads path and overlays every recognised key onto a Default
// Config. It returns an error only when the file cannot be opened or a
// numeric field fails to parse - an unknown key is silently skipped,
// same as the teacher's parser.
func Load(path string) (Config, error) {
	cfg := Default()

	fd, err := os.Open(path)
	if err != nil {
		return cfg, errors.New("titonbridge: incorrect file with configuration")
	}
	defer fd.Close()

	var mode string
	var sectionActive = true

	scan := bufio.NewScanner(fd)
	for scan.Scan() {
		line := strings.Trim(scan.Text(), " \t")
		if strings.HasPrefix(line, "//") || len(line) < 3 {
			continue
		}

		if mode == "" {
			fields := strings.Split(line, " ")
			if fields[0] != "Mode" {
				continue
			}
			mode = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, fields[0])))
			cfg.Mode = mode
			continue
		}

		if strings.HasPrefix(line, "[") {
			section := line[1 : len(line)-1]
			sectionActive = section == mode
			continue
		}
		if !sectionActive {
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		if err := apply(&cfg, key, value); err != nil {
			return cfg, err
		}
	}

	return cfg, scan.Err()
}

func splitKeyValue(line string) (key, value string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}

func apply(cfg *Config, key, value string) error {
	switch key {
	case "SerialPort":
		cfg.SerialPort = value
	case "Baud":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.New("titonbridge: incorrect Baud")
		}
		cfg.Baud = n
	case "QueryIntervalSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.New("titonbridge: incorrect QueryIntervalSeconds")
		}
		cfg.QueryIntervalSeconds = n
	case "RetryIntervalSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.New("titonbridge: incorrect RetryIntervalSeconds")
		}
		cfg.RetryIntervalSeconds = n
	case "Debug":
		cfg.Debug = value == "true" || value == "1"
	case "Http":
		cfg.HttpAddress = value
	case "TelegramBotToken":
		cfg.TelegramBotToken = value
	case "TelegramChatId":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return errors.New("titonbridge: incorrect TelegramChatId")
		}
		cfg.TelegramChatId = n
	case "GpioRelayPin":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.New("titonbridge: incorrect GpioRelayPin")
		}
		cfg.GpioRelayPin = n
	}
	return nil
}
