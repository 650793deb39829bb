// +build linux darwin

package dgram

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// SunPathLen is the size of the fixed path field in the OS's local socket
// address (sun_path), one byte of which is reserved for the terminator.
// 108 is the Linux value; rather than interpret each system's limit (and
// its non-sensical errors) it is applied on every supported system.
// Paths handed to New or Send that are longer than SunPathLen-1 bytes are
// silently cut to fit, mirroring how the address structure is filled at the
// C level. Note the hazard: the OS then binds or sends to the truncated
// prefix, not the path the caller named. Path() reports the truncated form.
const SunPathLen = 108

// truncatePath cuts path to the SunPathLen-1 bytes that fit in sun_path.
func truncatePath(path string) string {
	if len(path) < SunPathLen {
		return path
	}
	return path[:SunPathLen-1]
}

// sockAddr builds the AF_UNIX address for path, applying the documented
// truncation. The remainder of the fixed field is zero-filled by the
// sockaddr marshaling in x/sys.
func sockAddr(path string) *unix.SockaddrUnix {
	return &unix.SockaddrUnix{Name: truncatePath(path)}
}

// TempSocketPath returns a path in the OS's tmp directory with a UUIDv4
// name, suitable for an ephemeral socket. The path is not reserved; two
// calls never collide in practice but nothing is created until you bind.
func TempSocketPath() string {
	return filepath.Join(os.TempDir(), uuid.New().String())
}
