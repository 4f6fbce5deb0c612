/*
titonbridge
Copyright (c) 2024-2026 Vallox titonbridge contributors
MIT License
*/

package main

import "github.com/spf13/cobra"

var (
	configPath string
	portName   string
	baudRate   int
	debugFlag  bool
	httpAddr   string
)

var rootCmd = &cobra.Command{
	Use:   "titonbridge",
	Short: "A bridge shadowing a Titon DIGIT SE / Vallox MVHR unit's RS-485 panel bus",
	Long: `titonbridge impersonates a control panel on a Titon DIGIT SE / Vallox
mechanical ventilation unit's RS-485 bus, decodes its telegrams into a typed
shadow model, and exposes that model over Telegram, a relay output and an
HTTP/websocket dashboard.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "/usr/local/etc/titonbridge/config.txt", "configuration file path")
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "serial port device (overrides config file)")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 0, "baud rate (overrides config file)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log every sent and received frame")
	rootCmd.PersistentFlags().StringVar(&httpAddr, "http", "", "HTTP dashboard address, e.g. :8180 (overrides config file)")
}

func Execute() error {
	return rootCmd.Execute()
}
