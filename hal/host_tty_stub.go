//go:build !tinygo && !linux && !darwin

package hal

// RawStdin is a no-op on platforms without termios.
func RawStdin() (restore func(), err error) {
	return func() {}, nil
}
