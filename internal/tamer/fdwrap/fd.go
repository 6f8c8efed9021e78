// File: internal/tamer/fdwrap/fd.go
// Author: momentics <momentics@gmail.com>

package fdwrap

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/tamer-go/internal/tamer"
)

// FD wraps a file descriptor for event-based access. Unlike the
// original's reference-counted fd, this one assumes single ownership
// (the Go idiom: close whoever opened it); serialization of overlapping
// Read/Write calls is still provided, since that ordering guarantee is
// behavior applications can depend on, not an implementation detail of
// C++ reference counting.
type FD struct {
	drv *tamer.Driver
	fd  int

	readQ     []fdReadReq
	writeQ    []fdWriteReq
	readBusy  bool
	writeBusy bool
}

type fdReadReq struct {
	buf    []byte
	result tamer.Event1[int]
}

type fdWriteReq struct {
	buf    []byte
	result tamer.Event1[int]
}

// New wraps an already-open, already-nonblocking file descriptor.
func New(drv *tamer.Driver, rawFD int) *FD {
	return &FD{drv: drv, fd: rawFD}
}

// MakeNonblocking sets O_NONBLOCK on a raw file descriptor, as required
// before handing it to New.
func MakeNonblocking(rawFD int) error {
	flags, err := unix.FcntlInt(uintptr(rawFD), unix.F_GETFL, 0)
	if err != nil {
		return err
	}
	_, err = unix.FcntlInt(uintptr(rawFD), unix.F_SETFL, flags|unix.O_NONBLOCK)
	return err
}

// Open opens filename and wraps the result, delivering the new FD via
// result, or nil if the open failed; the open error itself is not
// reported.
func Open(drv *tamer.Driver, filename string, flags int, mode uint32, result tamer.Event1[*FD]) {
	raw, err := unix.Open(filename, flags|unix.O_NONBLOCK, mode)
	if err != nil {
		result.Trigger(nil)
		return
	}
	result.Trigger(New(drv, raw))
}

// Socket creates a nonblocking socket file descriptor.
func Socket(drv *tamer.Driver, domain, typ, protocol int) (*FD, error) {
	raw, err := unix.Socket(domain, typ, protocol)
	if err != nil {
		return nil, err
	}
	if err := MakeNonblocking(raw); err != nil {
		unix.Close(raw)
		return nil, err
	}
	return New(drv, raw), nil
}

// Valid reports whether the wrapper still owns an open descriptor.
func (f *FD) Valid() bool { return f.fd >= 0 }

// Raw returns the underlying descriptor number.
func (f *FD) Raw() int { return f.fd }

// Close closes the underlying descriptor; pending reads and writes
// still in flight finish with -ECANCELED as the original's fd::close
// contract specifies.
func (f *FD) Close() error {
	if f.fd < 0 {
		return nil
	}
	raw := f.fd
	f.fd = -1
	for _, req := range f.readQ {
		req.result.Trigger(-int(unix.ECANCELED))
	}
	for _, req := range f.writeQ {
		req.result.Trigger(-int(unix.ECANCELED))
	}
	f.readQ, f.writeQ = nil, nil
	return unix.Close(raw)
}

// Read queues a read of up to len(buf) bytes, delivering the byte count
// (or a negative errno) via result once it completes. Overlapping Read
// calls on the same FD are serviced in the order they were issued.
func (f *FD) Read(buf []byte, result tamer.Event1[int]) {
	if f.fd < 0 {
		result.Trigger(-int(unix.EBADF))
		return
	}
	f.readQ = append(f.readQ, fdReadReq{buf: buf, result: result})
	if !f.readBusy {
		f.armNextRead()
	}
}

func (f *FD) armNextRead() {
	if len(f.readQ) == 0 {
		f.readBusy = false
		return
	}
	f.readBusy = true
	// The in-flight request stays at the head of readQ until it completes,
	// so Close can still cancel it.
	req := f.readQ[0]

	fr := tamer.NewFunctionalRendezvous(f.drv, func(_ *tamer.FunctionalRendezvous, _ *tamer.SimpleEvent, values bool) {
		if !values || f.fd < 0 {
			req.result.Trigger(-int(unix.ECANCELED))
		} else {
			n, err := unix.Read(f.fd, req.buf)
			if err != nil {
				req.result.Trigger(-int(errno(err)))
			} else {
				req.result.Trigger(n)
			}
		}
		if len(f.readQ) > 0 {
			f.readQ = f.readQ[1:]
		}
		f.armNextRead()
	})
	ev := tamer.MakeEvent0(fr, 0)
	f.drv.AtFDRead(uintptr(f.fd), ev)
}

// Write queues a write of buf, delivering the byte count (or a negative
// errno) via result once it completes. Overlapping Write calls on the
// same FD are serviced in the order they were issued.
func (f *FD) Write(buf []byte, result tamer.Event1[int]) {
	if f.fd < 0 {
		result.Trigger(-int(unix.EBADF))
		return
	}
	f.writeQ = append(f.writeQ, fdWriteReq{buf: buf, result: result})
	if !f.writeBusy {
		f.armNextWrite()
	}
}

func (f *FD) armNextWrite() {
	if len(f.writeQ) == 0 {
		f.writeBusy = false
		return
	}
	f.writeBusy = true
	// As in armNextRead, the in-flight request stays at the head of writeQ
	// until it completes, so Close can still cancel it.
	req := f.writeQ[0]

	fr := tamer.NewFunctionalRendezvous(f.drv, func(_ *tamer.FunctionalRendezvous, _ *tamer.SimpleEvent, values bool) {
		if !values || f.fd < 0 {
			req.result.Trigger(-int(unix.ECANCELED))
		} else {
			n, err := unix.Write(f.fd, req.buf)
			if err != nil {
				req.result.Trigger(-int(errno(err)))
			} else {
				req.result.Trigger(n)
			}
		}
		if len(f.writeQ) > 0 {
			f.writeQ = f.writeQ[1:]
		}
		f.armNextWrite()
	})
	ev := tamer.MakeEvent0(fr, 0)
	f.drv.AtFDWrite(uintptr(f.fd), ev)
}

// errno extracts the raw errno from an error returned by the unix
// package, falling back to EIO for anything unrecognized.
func errno(err error) unix.Errno {
	if e, ok := err.(unix.Errno); ok {
		return e
	}
	return unix.EIO
}
