/*
titonbridge
Copyright (c) 2024-2026 Vallox titonbridge contributors
MIT License
*/

// Package protocol holds the Titon DIGIT SE RS-485 wire-format constants:
// frame layout, addressing classes, variable IDs and the status/IO-08/06/
// program flag bit layouts. Nothing here talks to a transport.
package protocol

// MsgLength is the fixed length of every telegram on the bus.
const MsgLength = 6

// MsgDomain is the constant first byte that identifies the Titon protocol.
const MsgDomain byte = 0x01

// PollByte, placed in byte 3, marks a poll frame; the variable being
// polled is then carried in byte 4 instead of a value.
const PollByte byte = 0x00

// Address classes. ThisPanel is the address this bridge impersonates -
// an otherwise-unused panel slot, the same trick every DIY Titon/Vallox
// integration uses to avoid colliding with a real wall panel.
const (
	ThisPanel     byte = 0x27
	Panel1        byte = 0x11
	AllPanels     byte = 0x10
	Mainboard1    byte = 0x21
	AllMainboards byte = 0x20
)

// Variable IDs. VarIO08 and VarFlags06 are the IDs of the IO-08 and
// 06-flags words themselves -
// the source names them "variable 08" and "variable 06" for exactly
// that reason.
const (
	VarTInside         byte = 0x34
	VarTOutside        byte = 0x35
	VarTIncoming       byte = 0x36
	VarTExhaust        byte = 0x37
	VarStatus          byte = 0x03
	VarServicePeriod   byte = 0x0A
	VarServiceCounter  byte = 0x0B
	VarFanSpeed        byte = 0x29
	VarDefaultFanSpeed byte = 0x28
	VarHeatingTarget   byte = 0xA4
	VarIO08            byte = 0x08
	VarFlags06         byte = 0x06
	VarProgram         byte = 0x2F
	VarRH1             byte = 0x2A
	VarRH2             byte = 0x2B
	VarCO2Hi           byte = 0x2C
	VarCO2Lo           byte = 0x2D
)

// Status word bits.
const (
	StatusFlagPower       byte = 0x01
	StatusFlagRH          byte = 0x02
	StatusFlagHeatingMode byte = 0x04
	StatusFlagFilter      byte = 0x08
	StatusFlagHeating     byte = 0x10
	StatusFlagFault       byte = 0x20
	StatusFlagService     byte = 0x40
)

// IO-08 word bits.
const (
	IO08FlagSummerMode   byte = 0x01
	IO08FlagErrorRelay   byte = 0x02
	IO08FlagMotorIn      byte = 0x04
	IO08FlagFrontHeating byte = 0x08
	IO08FlagMotorOut     byte = 0x10
	IO08FlagExtraFunc    byte = 0x20
)

// 06-flags bits. Flags06ActivateFireplace is write-only (sent to trigger
// boost); Flags06FireplaceIsActive is the read-back bit the mainboard
// reports.
const (
	Flags06ActivateFireplace byte = 0x20
	Flags06FireplaceIsActive byte = 0x01
)

// Program byte bits.
const (
	ProgramSwitchType byte = 0x01
)

// MaxFanSpeed is the top of the discrete 1..8 fan-speed range.
const MaxFanSpeed = 8

// NotSet is the sentinel historically used by the source for "value not
// available". Nothing in this module uses it: the decoders in tables.go
// report an unreadable value with ok=false, and internal/shadow keeps
// "never received" as an unset stamp.
const NotSet = -1
