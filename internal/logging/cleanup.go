package logging

import "sync"

type cleanupList struct {
	mu  sync.Mutex
	fns []func()
}

// RegisterCleanup adds fn to the functions run before a fatal exit. The most
// recently registered function runs first.
func (f *Facility) RegisterCleanup(fn func()) {
	if fn == nil {
		return
	}
	f.cleanups.mu.Lock()
	f.cleanups.fns = append(f.cleanups.fns, fn)
	f.cleanups.mu.Unlock()
}

// Cleanup runs the registered functions, most recent first.
func (f *Facility) Cleanup() {
	f.cleanups.mu.Lock()
	fns := make([]func(), len(f.cleanups.fns))
	copy(fns, f.cleanups.fns)
	f.cleanups.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// Terminate runs the cleanup functions and exits with status 1.
func (f *Facility) Terminate() {
	f.Cleanup()
	f.exit(1)
}
