package dgram

import "fmt"

// Operation tags reported in OpError.Op, named for the syscall that failed.
const (
	OpSocket  = "socket"
	OpBind    = "bind"
	OpChmod   = "chmod"
	OpSend    = "sendto"
	OpReceive = "recvfrom"
	OpClose   = "close"
)

// OpError is the error type returned by this package. Op identifies which
// call failed and Err is the error the OS reported, normally a unix.Errno,
// so callers can match with errors.Is(err, unix.EADDRINUSE) and similar.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("dgram: %s: %s", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
