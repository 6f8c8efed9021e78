//go:build windows
// +build windows

// File: internal/tamer/platform_windows.go
// Author: momentics <momentics@gmail.com>
//
// No epoll-equivalent backend exists for this build (reactor.NewReactor
// returns ErrUnsupported on Windows, matching the original tamer's
// POSIX-only scope), so NewDriver never reaches this probe in practice;
// it is kept build-tag-complete for whichever platform file ships next.

package tamer

import "runtime"

// RegisterPlatformProbes sets Windows-specific debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
}
