// File: cmd/tamerdemo/main.go
// Author: momentics <momentics@gmail.com>
//
// tamerdemo is a minimal event-driven echo loop: it reads lines from
// stdin and writes them back to stdout, racing each read against a
// five-second idle timeout, until SIGINT stops it. It exists to give
// the driver, the fdwrap package, and the explicit rendezvous flavour
// one end-to-end exercise outside of unit tests.
package main

import (
	"log"
	"os"
	"syscall"
	"time"

	"github.com/momentics/tamer-go/internal/tamer"
	"github.com/momentics/tamer-go/internal/tamer/fdwrap"
)

const (
	idRead = iota
	idTimeout
	idSigint
	idSighup
	idWrite
)

func main() {
	drv, err := tamer.NewDriver()
	if err != nil {
		log.Fatalf("[tamer] new driver: %v", err)
	}
	defer drv.Close()

	if err := fdwrap.MakeNonblocking(int(os.Stdin.Fd())); err != nil {
		log.Fatalf("[tamer] stdin nonblocking: %v", err)
	}
	stdin := fdwrap.New(drv, int(os.Stdin.Fd()))
	stdout := fdwrap.New(drv, int(os.Stdout.Fd()))
	defer stdin.Close()
	defer stdout.Close()

	rv := tamer.NewExplicitRendezvous(drv, false)

	sigEvt := tamer.MakeEvent1[int](rv, idSigint, new(int))
	if err := drv.AtSignal(syscall.SIGINT, tamer.Bind1(sigEvt, 0)); err != nil {
		log.Fatalf("[tamer] at signal: %v", err)
	}

	drv.Config.OnReload(func() {
		log.Printf("[tamer] driver config reloaded: %v", drv.Metrics.GetSnapshot())
	})
	hupEvt := tamer.MakeEvent1[int](rv, idSighup, new(int))
	if err := drv.AtSignal(syscall.SIGHUP, tamer.Bind1(hupEvt, 0)); err != nil {
		log.Fatalf("[tamer] at signal: %v", err)
	}

	log.Printf("[tamer] echoing stdin, ctrl-C to stop, SIGHUP to reload config")

	buf := make([]byte, 4096)
	var n int

	armRead := func() {
		result := tamer.MakeEvent1[int](rv, idRead, &n)
		stdin.Read(buf, result)
		timeoutEvt := tamer.MakeEvent1[int](rv, idTimeout, new(int))
		drv.AtDelay(5*time.Second, tamer.Bind1(timeoutEvt, 0))
	}
	armRead()

	stopping := false
	for !stopping {
		if err := drv.Once(); err != nil {
			log.Fatalf("[tamer] turn failed: %v", err)
		}

		for {
			id, ok := rv.Join()
			if !ok {
				break
			}
			switch id {
			case idRead:
				if n <= 0 {
					log.Printf("[tamer] stdin closed or error (n=%d), stopping", n)
					stopping = true
					break
				}
				var written int
				wresult := tamer.MakeEvent1[int](rv, idWrite, &written)
				stdout.Write(buf[:n], wresult)
				armRead()
			case idTimeout:
				log.Printf("[tamer] idle timeout, still waiting")
			case idSigint:
				log.Printf("[tamer] interrupted, stopping")
				stopping = true
			case idSighup:
				drv.Config.Set(map[string]any{tamer.CfgMaxWaitMillis: 500})
				next := tamer.MakeEvent1[int](rv, idSighup, new(int))
				drv.AtSignal(syscall.SIGHUP, tamer.Bind1(next, 0))
			}
		}
	}
}
