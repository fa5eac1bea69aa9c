package kernel

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// SetPanicHandler installs the handler for recovered task panics.
//
// The handler runs at most once, on the first panic. It must not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.onPanic = fn
}

// InPanicMode reports whether any task has panicked.
func (k *Kernel) InPanicMode() bool { return k.panicked }

// runStep calls t.Step and reports false if it panicked.
func (k *Kernel) runStep(id TaskID, t Task, ctx *Context) (ok bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ok = false
		if k.panicked {
			return
		}
		k.panicked = true
		if k.onPanic != nil {
			k.onPanic(PanicInfo{TaskID: id, Value: r, Stack: captureStack()})
		}
	}()
	t.Step(ctx)
	return true
}
