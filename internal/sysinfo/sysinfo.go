// Package sysinfo collects host diagnostics for startup logging,
// grounded on zhub.go's single call to goInfo.GetInfo() for its own
// config.Os field. The dashboard does not include them.
package sysinfo

import "github.com/matishsiao/goInfo"

// Host is the subset of goInfo's report this bridge cares about.
type Host struct {
	OS       string `json:"os"`
	Kernel   string `json:"kernel"`
	Core     string `json:"core"`
	Platform string `json:"platform"`
	Hostname string `json:"hostname"`
	CPUs     int    `json:"cpus"`
}

// Collect queries goInfo once. Errors are swallowed the same way
// zhub.go discards them - this is diagnostic information, never load
// bearing.
func Collect() Host {
	gi, _ := goInfo.GetInfo()
	return Host{
		OS:       gi.GoOS,
		Kernel:   gi.Kernel,
		Core:     gi.Core,
		Platform: gi.Platform,
		Hostname: gi.Hostname,
		CPUs:     gi.CPUs,
	}
}
