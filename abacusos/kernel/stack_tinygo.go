//go:build tinygo

package kernel

// Stack traces are not available on bare metal builds.
func captureStack() []byte { return nil }
