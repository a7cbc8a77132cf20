package chatlog

import "sync"

// The process-wide default logger. Guarded because facades may be created
// and closed from different goroutines during program start and stop.
var registry struct {
	def *Logger
	mu  sync.Mutex
}

// SetDefault registers l as the process-wide default logger, replacing any
// previous one.
func SetDefault(l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.def = l
}

// Default returns the process-wide default logger, or nil after [Shutdown]
// or before any registration.
func Default() *Logger {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	return registry.def
}

// Shutdown flushes and unregisters the default logger. Calling it again, or
// with nothing registered, does nothing.
func Shutdown() {
	registry.mu.Lock()
	def := registry.def
	registry.def = nil
	registry.mu.Unlock()

	if def != nil {
		def.Flush()
	}
}

// release unregisters l if it is still the default logger and reports
// whether it was.
func release(l *Logger) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if registry.def != l {
		return false
	}

	registry.def = nil

	return true
}
