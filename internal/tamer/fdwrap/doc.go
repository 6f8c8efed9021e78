// File: internal/tamer/fdwrap/doc.go
// Author: momentics <momentics@gmail.com>

// Package fdwrap provides an event-based file descriptor wrapper on top
// of a tamer Driver, grounded on tamer/fd.hh: reads complete in the
// order they were called, and so do writes, even though the underlying
// fd may service several pending operations in parallel.
package fdwrap
