// +build linux darwin

/*
Package dgram provides connectionless (datagram) Unix Domain Sockets for
processes on the same host exchanging discrete, size-bounded messages. This
sits below the "net" package: a Socket owns its descriptor directly so that
ownership can be transferred, the socket file is removed exactly once by the
handle that created it, and every failure carries the OS error and the
syscall that produced it.

The package currently only works for Linux/Darwin, as those are the systems I use.

This package takes the stance that Send() and Receive() should block until
the OS completes them. There are no timeouts and no readiness polling; if
you need those, layer them above this package.

A Socket must not be copied after creation: two handles believing they own
the same descriptor will both close it (and may both remove the socket
file). Pass *Socket around and use Transfer() when ownership must move.

Unix/Linux Note:
	Socket paths may have a length limit that is different than the normal
	filesystem. On Linux there seems to be an 108 character limit for path
	names, https://github.com/golang/go/issues/6895 . See SunPathLen for how
	this package handles longer paths.
*/
package dgram

import (
	"os"

	log "github.com/golang/glog"
	"golang.org/x/sys/unix"
)

const (
	// MaxMessageSize is the largest payload a single Receive() captures. A
	// datagram is not fragmented or reassembled; a message larger than the
	// OS's datagram limit fails the Send() outright.
	MaxMessageSize = 8196

	// Unnamed creates a Socket with no address. It can Send() but no peer
	// can reach it by path, and no socket file is created or removed.
	Unnamed = ""
)

// noCopy flags Socket as uncopyable to go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Msg is the result of a single Receive(): the datagram's payload and the
// sender's bound socket path. Sender is "" when the sender is unnamed.
type Msg struct {
	Data   []byte
	Sender string
}

// Socket is a handle to one connectionless Unix Domain Socket. It owns the
// descriptor exclusively; see the package comment on copying. The zero
// value owns nothing and is only useful as a placeholder, use New().
//
// Send() and Receive() from different goroutines are safe at the OS level
// (the kernel serializes on the descriptor) but no ordering between them is
// guaranteed. Concurrent use with Close() or Transfer() is not safe.
type Socket struct {
	noCopy noCopy

	fd     int
	path   string
	unlink bool

	mode  os.FileMode
	chmod bool
}

// Option is an optional argument to New.
type Option func(s *Socket)

// FileMode causes New to chmod the socket file to mode after a successful
// bind. Suggest 0770. Has no effect on an Unnamed socket.
func FileMode(mode os.FileMode) Option {
	return func(s *Socket) {
		s.mode = mode
		s.chmod = true
	}
}

// New creates a datagram Unix socket. With a real path the socket is bound
// to it, the socket file appears at that path and this Socket becomes
// responsible for removing it on Close. With Unnamed the socket stays
// anonymous: it can send but cannot be addressed. Paths longer than
// SunPathLen-1 bytes are silently truncated, see SunPathLen.
func New(path string, options ...Option) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_DGRAM, 0)
	if err != nil {
		return nil, &OpError{Op: OpSocket, Err: err}
	}

	s := &Socket{fd: fd}
	for _, o := range options {
		o(s)
	}

	if path == Unnamed {
		return s, nil
	}

	if err := unix.Bind(fd, sockAddr(path)); err != nil {
		unix.Close(fd)
		return nil, &OpError{Op: OpBind, Err: err}
	}
	// Record what the OS actually bound, not what the caller passed.
	s.path = truncatePath(path)
	s.unlink = true

	if s.chmod {
		if err := os.Chmod(s.path, s.mode); err != nil {
			s.Close()
			return nil, &OpError{Op: OpChmod, Err: err}
		}
	}
	return s, nil
}

// Path returns the path this Socket is bound to, "" if it is unnamed or no
// longer owns the socket.
func (s *Socket) Path() string {
	return s.path
}

// valid reports if this handle currently owns a descriptor. fd 0 is treated
// as not owned so the zero value and a transferred-from Socket behave the
// same; a socket we created never lands on fd 0 in a normal process.
func (s *Socket) valid() bool {
	return s.fd > 0
}

// Send transmits msg as one datagram to the socket bound at dest. It blocks
// until the OS accepts the datagram. There is no acknowledgment and no
// retry; delivery is whatever the OS guarantees for local datagrams. dest
// is truncated the same way as in New.
func (s *Socket) Send(msg []byte, dest string) error {
	if !s.valid() {
		return &OpError{Op: OpSend, Err: unix.EBADF}
	}
	if err := unix.Sendto(s.fd, msg, 0, sockAddr(dest)); err != nil {
		return &OpError{Op: OpSend, Err: err}
	}
	return nil
}

// Receive blocks until one datagram arrives and returns its payload, up to
// MaxMessageSize bytes, along with the sender's bound path. The Socket
// retains nothing; the returned Msg is the caller's.
func (s *Socket) Receive() (Msg, error) {
	if !s.valid() {
		return Msg{}, &OpError{Op: OpReceive, Err: unix.EBADF}
	}

	buf := make([]byte, MaxMessageSize)
	n, from, err := unix.Recvfrom(s.fd, buf, 0)
	if err != nil {
		return Msg{}, &OpError{Op: OpReceive, Err: err}
	}

	msg := Msg{Data: buf[:n]}
	if ua, ok := from.(*unix.SockaddrUnix); ok {
		msg.Sender = ua.Name
	}
	return msg, nil
}

// Transfer moves ownership of the descriptor, the bound path and the
// responsibility for removing the socket file to a new Socket. The receiver
// is left owning nothing: its Close becomes a no-op and it can no longer
// send or receive.
func (s *Socket) Transfer() *Socket {
	moved := &Socket{fd: s.fd, path: s.path, unlink: s.unlink}
	s.fd = -1
	s.path = ""
	s.unlink = false
	return moved
}

// Close releases the socket. If this Socket bound its path, the socket file
// is removed best-effort; a failure there is logged and never surfaced, as
// Close typically runs in a defer where nothing can act on it. Close is
// idempotent and a no-op on a zero or transferred-from Socket. The returned
// error is the close(2) failure, informational only.
func (s *Socket) Close() error {
	if !s.valid() {
		return nil
	}

	err := unix.Close(s.fd)
	s.fd = -1

	if s.unlink {
		if uerr := unix.Unlink(s.path); uerr != nil {
			log.Warningf("dgram: could not remove socket file %q: %s", s.path, uerr)
		}
		s.unlink = false
		s.path = ""
	}

	if err != nil {
		return &OpError{Op: OpClose, Err: err}
	}
	return nil
}
