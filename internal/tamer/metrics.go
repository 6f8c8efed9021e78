// File: internal/tamer/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Metrics counts what each turn of the driver did. The per-turn counters
// are plain uint64 fields, since only the driver's own goroutine ever
// increments them; GetSnapshot copies them under a lock so a separate
// monitoring goroutine (e.g. a Debug probe) can poll safely without
// synchronizing with Once.
package tamer

import "sync"

// Metric keys published by Metrics.GetSnapshot.
const (
	MetricTurns             = "driver.turns"
	MetricTimersFired       = "driver.timers_fired"
	MetricFDEventsFired     = "driver.fd_events_fired"
	MetricSignalsDispatched = "driver.signals_dispatched"
	MetricAsapRun           = "driver.asap_run"
	MetricRendezvousRun     = "driver.rendezvous_run"
)

// Metrics holds per-turn driver counters.
type Metrics struct {
	mu sync.RWMutex

	turns             uint64
	timersFired       uint64
	fdEventsFired     uint64
	signalsDispatched uint64
	asapRun           uint64
	rendezvousRun     uint64
}

func newMetrics() Metrics {
	return Metrics{}
}

func (m *Metrics) recordTurn() { m.mu.Lock(); m.turns++; m.mu.Unlock() }
func (m *Metrics) addTimersFired(n uint64) {
	m.mu.Lock()
	m.timersFired += n
	m.mu.Unlock()
}
func (m *Metrics) addFDEventsFired(n uint64) {
	m.mu.Lock()
	m.fdEventsFired += n
	m.mu.Unlock()
}
func (m *Metrics) addSignalsDispatched(n uint64) {
	m.mu.Lock()
	m.signalsDispatched += n
	m.mu.Unlock()
}
func (m *Metrics) addAsapRun(n uint64) {
	m.mu.Lock()
	m.asapRun += n
	m.mu.Unlock()
}
func (m *Metrics) addRendezvousRun(n uint64) {
	m.mu.Lock()
	m.rendezvousRun += n
	m.mu.Unlock()
}

// GetSnapshot returns the current counters as a metric-key map.
func (m *Metrics) GetSnapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]any{
		MetricTurns:             m.turns,
		MetricTimersFired:       m.timersFired,
		MetricFDEventsFired:     m.fdEventsFired,
		MetricSignalsDispatched: m.signalsDispatched,
		MetricAsapRun:           m.asapRun,
		MetricRendezvousRun:     m.rendezvousRun,
	}
}
