//go:build !tinygo && (linux || darwin)

package hal

import (
	"os"

	"golang.org/x/sys/unix"
)

// RawStdin puts the controlling terminal into raw mode so key bytes and
// escape sequences reach the serial reader unbuffered and unechoed. The
// returned restore function reinstates the previous settings.
func RawStdin() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	old, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}

	raw := *old
	// ISIG stays on so Ctrl-C still quits the process.
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	raw.Iflag &^= unix.IXON | unix.ICRNL | unix.BRKINT | unix.INPCK | unix.ISTRIP
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, err
	}

	return func() {
		_ = unix.IoctlSetTermios(fd, ioctlSetTermios, old)
	}, nil
}
