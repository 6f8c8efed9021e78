// File: internal/tamer/driver.go
// Author: momentics <momentics@gmail.com>
//
// Driver is the single-goroutine event loop: one reactor-backed fd table,
// one timer heap, one asap stack, one signal table, and one FIFO of
// rendezvous woken since the last drain. Once implements exactly the
// eight phases grounded on tame_driver.cc's driver::once(): timer-head
// cleanup, wait-budget computation, readiness poll, signal dispatch,
// asap drain, fd drain, timer expiry, rendezvous drain.
//
// Every exported method here must be called from the goroutine running
// Loop/Once, with one deliberate exception: signal delivery, which
// crosses from Go's os/signal delivery goroutine via atomic flags and a
// self-pipe write, exactly as the original crosses from a POSIX signal
// handler via sigprocmask and a self-pipe write.
package tamer

import (
	"container/heap"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/eapache/queue"
	"golang.org/x/sys/unix"

	"github.com/momentics/tamer-go/reactor"
)

const maxSignal = 64

// fdSlot holds the events currently armed on one fd, one per direction.
type fdSlot struct {
	read  *SimpleEvent
	write *SimpleEvent
}

// fdReady is one (fd, directions) pair observed during the readiness
// poll phase, staged for the fd-drain phase.
type fdReady struct {
	fd     uintptr
	events reactor.FDEventType
}

// Driver owns every piece of mutable scheduling state for one event
// loop. The zero value is not usable; construct with NewDriver.
type Driver struct {
	react reactor.EventReactor

	timers timerHeap

	fds     map[uintptr]*fdSlot
	fdReady []fdReady

	asap []*SimpleEvent // LIFO: triggered in reverse-of-arming order

	unblocked *queue.Queue // FIFO of abstractRendezvous

	sigPipeR, sigPipeW int
	sigCh              chan os.Signal
	sigStop            chan struct{}
	sigActive          [maxSignal]int32
	sigAnyActive       int32
	sigEvents          [maxSignal]*SimpleEvent

	closed bool

	Config  *DriverConfig
	Metrics Metrics
	Debug   *DebugProbes
}

// hookRendezvous is the hidden, process-wide functional rendezvous that
// SimpleEvent.hardAtTrigger chains secondary hook events through. It is
// never blocked on and never driven by any particular Driver, matching
// _event_superbase's single hidden "hook" list in the original.
var hookRendezvous = NewFunctionalRendezvous(nil, nil)

// NewDriver constructs a Driver backed by the platform reactor. Call
// Close when done to release the reactor and signal plumbing.
func NewDriver() (*Driver, error) {
	react, err := reactor.NewReactor()
	if err != nil {
		return nil, fmt.Errorf("tamer: new driver: %w", err)
	}
	d := &Driver{
		react:     react,
		fds:       make(map[uintptr]*fdSlot),
		unblocked: queue.New(),
		Config:    NewDriverConfig(),
		Metrics:   newMetrics(),
		Debug:     NewDebugProbes(),
	}
	d.Debug.RegisterProbe("driver.metrics", func() any { return d.Metrics.GetSnapshot() })
	RegisterPlatformProbes(d.Debug)
	if err := d.initSignalPipe(); err != nil {
		react.Close()
		return nil, err
	}
	return d, nil
}

// initSignalPipe creates the self-pipe and starts the trampoline
// goroutine that forwards os/signal deliveries into it. Go offers no
// async-signal-safe hook to install a raw handler the way the original
// driver's at_signal does via sigaction; os/signal.Notify is the
// idiomatic substitute for the OS-level catch, with the self-pipe still
// doing the job of waking a blocked poll.
func (d *Driver) initSignalPipe() error {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return fmt.Errorf("tamer: signal self-pipe: %w", err)
	}
	d.sigPipeR, d.sigPipeW = fds[0], fds[1]
	d.sigCh = make(chan os.Signal, 16)
	d.sigStop = make(chan struct{})
	go d.signalTrampoline()
	return d.react.Register(uintptr(d.sigPipeR), reactor.EventRead, d.onSignalPipeReadable)
}

// signalTrampoline runs on its own goroutine for the driver's lifetime,
// turning Go signal deliveries into the atomic-flag-plus-self-pipe-byte
// protocol the main loop polls for.
func (d *Driver) signalTrampoline() {
	for {
		select {
		case <-d.sigStop:
			return
		case sig := <-d.sigCh:
			n := signalNumber(sig)
			if n < 0 || n >= maxSignal {
				continue
			}
			atomic.StoreInt32(&d.sigActive[n], 1)
			atomic.StoreInt32(&d.sigAnyActive, 1)
			unix.Write(d.sigPipeW, []byte{1})
		}
	}
}

// onSignalPipeReadable drains the self-pipe. Invoked from the readiness
// poll phase; actual dispatch happens later, in phase four.
func (d *Driver) onSignalPipeReadable(fd uintptr, events reactor.FDEventType) {
	var buf [64]byte
	for {
		n, err := unix.Read(int(fd), buf[:])
		if n <= 0 || err != nil {
			break
		}
	}
}

// signalNumber extracts the POSIX signal number, or -1 if sig isn't the
// syscall.Signal this platform's os/signal delivers.
func signalNumber(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return int(s)
	}
	return -1
}

// AtSignal arms e to trigger the next time sig is delivered to the
// process. Only one event may be armed per signal number at a time.
func (d *Driver) AtSignal(sig os.Signal, e Event0) error {
	n := signalNumber(sig)
	if n < 0 || n >= maxSignal {
		return ErrSignalOutOfRange
	}
	d.sigEvents[n] = e.se
	signal.Notify(d.sigCh, sig)
	return nil
}

// enqueueUnblocked appends r to the driver's unblocked-rendezvous FIFO.
// Called by base.unblock; a rendezvous already queued is never queued
// twice, matching the original's unblocked_next_==sentinel membership
// test.
func (d *Driver) enqueueUnblocked(r abstractRendezvous) {
	d.unblocked.Add(r)
}

// AtFDRead arms e to trigger once fd becomes readable.
func (d *Driver) AtFDRead(fd uintptr, e Event0) error {
	return d.armFD(fd, reactor.EventRead, e.se)
}

// AtFDWrite arms e to trigger once fd becomes writable.
func (d *Driver) AtFDWrite(fd uintptr, e Event0) error {
	return d.armFD(fd, reactor.EventWrite, e.se)
}

func (d *Driver) armFD(fd uintptr, dir reactor.FDEventType, se *SimpleEvent) error {
	slot, ok := d.fds[fd]
	if !ok {
		slot = &fdSlot{}
		d.fds[fd] = slot
	}
	if dir == reactor.EventRead {
		slot.read = se
	} else {
		slot.write = se
	}
	return d.react.Register(fd, d.fdInterest(slot), d.onFDReady)
}

func (d *Driver) fdInterest(slot *fdSlot) reactor.FDEventType {
	var ev reactor.FDEventType
	if slot.read != nil {
		ev |= reactor.EventRead
	}
	if slot.write != nil {
		ev |= reactor.EventWrite
	}
	return ev
}

// onFDReady is the reactor callback for every user fd. It only stages
// the observation; triggering happens in the fd-drain phase so fd
// completions run after signals and asap work, matching the turn order.
func (d *Driver) onFDReady(fd uintptr, events reactor.FDEventType) {
	if fd == uintptr(d.sigPipeR) {
		d.onSignalPipeReadable(fd, events)
		return
	}
	d.fdReady = append(d.fdReady, fdReady{fd: fd, events: events})
}

// AtTime arms e to trigger once the wall clock (time.Now) reaches when.
func (d *Driver) AtTime(when time.Time, e Event0) {
	t := &timer{when: when.UnixNano(), e: e.se}
	heap.Push(&d.timers, t)
	e.se.AtTriggerFunc(func(_ any, _ int) {
		removeTimer(&d.timers, t)
	}, nil, 0)
}

// AtDelay arms e to trigger after d elapses from now.
func (d *Driver) AtDelay(delay time.Duration, e Event0) {
	d.AtTime(time.Now().Add(delay), e)
}

// AtAsap arms e to trigger during the very next turn, before any timer
// or fd processing, in LIFO order relative to other pending asap events.
func (d *Driver) AtAsap(e Event0) {
	d.asap = append(d.asap, e.se)
}

// Close releases the reactor and stops the signal trampoline.
func (d *Driver) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	close(d.sigStop)
	signal.Stop(d.sigCh)
	unix.Close(d.sigPipeR)
	unix.Close(d.sigPipeW)
	return d.react.Close()
}

// Loop runs Once repeatedly and returns the first error Once reports:
// ErrPollFailed, or ErrDriverClosed once Close has been called (e.g. from
// a closure resumed by an AtSignal event). It does not return on its own
// when no work remains.
func (d *Driver) Loop() error {
	for {
		if err := d.Once(); err != nil {
			return err
		}
	}
}

// Once runs a single turn of the event loop. It blocks for at most the
// time until the next timer expires (or the configured max wait), unless
// asap work or already-ready rendezvous make it non-blocking.
func (d *Driver) Once() error {
	if d.closed {
		return ErrDriverClosed
	}
	d.Metrics.recordTurn()

	// Phase 1: timer-head cleanup - drop already-cancelled timers sitting
	// at the heap root so the wait-budget calculation below never blocks
	// on a timer nobody still cares about.
	for {
		t := d.timers.peek()
		if t == nil || !t.e.Empty() {
			break
		}
		heap.Pop(&d.timers)
	}

	// Phase 2: wait-budget computation.
	timeoutMs := d.Config.GetInt(CfgMaxWaitMillis, 1000)
	if len(d.asap) > 0 || d.unblocked.Length() > 0 {
		timeoutMs = 0
	} else if t := d.timers.peek(); t != nil {
		remain := (t.when - time.Now().UnixNano()) / int64(time.Millisecond)
		if remain < 0 {
			remain = 0
		}
		if int(remain) < timeoutMs {
			timeoutMs = int(remain)
		}
	}

	// Phase 3: readiness poll.
	d.fdReady = d.fdReady[:0]
	if err := d.react.Poll(timeoutMs); err != nil {
		log.Printf("[tamer] poll failed: %v", err)
		return fmt.Errorf("%w: %w", ErrPollFailed, err)
	}

	// Phase 4: signal dispatch. Only the trampoline goroutine ever sets
	// these flags, via atomic stores; Once only ever clears them, also
	// atomically, so there is no data race despite the cross-goroutine
	// write.
	if atomic.LoadInt32(&d.sigAnyActive) != 0 {
		atomic.StoreInt32(&d.sigAnyActive, 0)
		var dispatched uint64
		for n := 0; n < maxSignal; n++ {
			if atomic.SwapInt32(&d.sigActive[n], 0) == 0 {
				continue
			}
			if se := d.sigEvents[n]; se != nil {
				d.sigEvents[n] = nil
				se.simpleTrigger(true)
				dispatched++
				// AtSignal is one-shot: once delivered and not re-armed,
				// stop catching this signal so a further raise reaches its
				// default disposition instead of being silently absorbed
				// by a Notify with no listener behind it. A closure that
				// re-arms via AtSignal during phase 8 calls signal.Notify
				// again, which cancels this Reset.
				signal.Reset(syscall.Signal(n))
			}
		}
		d.Metrics.addSignalsDispatched(dispatched)
	}

	// Phase 5: asap drain, LIFO.
	var asapRun uint64
	for len(d.asap) > 0 {
		n := len(d.asap) - 1
		se := d.asap[n]
		d.asap = d.asap[:n]
		se.simpleTrigger(true)
		asapRun++
	}
	d.Metrics.addAsapRun(asapRun)

	// Phase 6: fd drain. Each ready direction triggers its armed event
	// and is cleared from the slot so a stale readiness notification
	// never double-fires.
	var fdFired uint64
	for _, r := range d.fdReady {
		slot, ok := d.fds[r.fd]
		if !ok {
			continue
		}
		if r.events&(reactor.EventRead|reactor.EventError) != 0 && slot.read != nil {
			se := slot.read
			slot.read = nil
			se.simpleTrigger(true)
			fdFired++
		}
		if r.events&(reactor.EventWrite|reactor.EventError) != 0 && slot.write != nil {
			se := slot.write
			slot.write = nil
			se.simpleTrigger(true)
			fdFired++
		}
		if slot.read == nil && slot.write == nil {
			delete(d.fds, r.fd)
			d.react.Unregister(r.fd)
		} else {
			d.react.Register(r.fd, d.fdInterest(slot), d.onFDReady)
		}
	}
	d.Metrics.addFDEventsFired(fdFired)

	// Phase 7: timer expiry.
	now := time.Now().UnixNano()
	var timersFired uint64
	for {
		t := d.timers.peek()
		if t == nil || t.when > now {
			break
		}
		heap.Pop(&d.timers)
		if !t.e.Empty() {
			t.e.simpleTrigger(true)
			timersFired++
		}
	}
	d.Metrics.addTimersFired(timersFired)

	// Phase 8: rendezvous drain - run every closure parked on a
	// rendezvous that was unblocked since the last drain.
	var rvRun uint64
	for d.unblocked.Length() > 0 {
		r := d.unblocked.Remove().(abstractRendezvous)
		r.run()
		rvRun++
	}
	d.Metrics.addRendezvousRun(rvRun)

	return nil
}
