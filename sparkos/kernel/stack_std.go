//go:build !tinygo

package kernel

import "runtime/debug"

// maxStackBytes bounds the trace handed to the panic handler.
const maxStackBytes = 4096

func captureStack() []byte {
	s := debug.Stack()
	if len(s) > maxStackBytes {
		s = s[:maxStackBytes]
	}
	return s
}
