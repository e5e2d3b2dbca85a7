package kernel

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// InPanicMode reports whether one of this kernel's tasks has panicked.
func (k *Kernel) InPanicMode() bool {
	return k.panicActive.Load()
}

// SetPanicHandler installs the handler invoked when a task started via Go
// panics. Only the first panic reaches the handler; later ones park their
// goroutine silently. The handler must not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.panicHandler.Store(fn)
}

func (k *Kernel) triggerPanic(info PanicInfo) {
	k.panicOnce.Do(func() {
		k.panicActive.Store(true)
		info.Stack = captureStack()
		if v := k.panicHandler.Load(); v != nil {
			if fn, ok := v.(func(PanicInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
}
