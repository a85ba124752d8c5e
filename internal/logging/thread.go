package logging

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/smazurov/complog/internal/metrics"
)

// DefaultThreadName is the name records carry when the execution context
// was never named.
const DefaultThreadName = "* log emergency *"

// ThreadContext is the per execution context rendering state: a name and a
// bounded buffer. A context is used by one dispatch at a time.
type ThreadContext struct {
	name      atomic.Pointer[string]
	buf       *Buffer
	busy      atomic.Bool
	emergency bool
}

// Name returns the thread name.
func (tc *ThreadContext) Name() string {
	if p := tc.name.Load(); p != nil {
		return *p
	}
	return DefaultThreadName
}

func (tc *ThreadContext) setName(name string) {
	if name == "" {
		name = DefaultThreadName
	}
	tc.name.Store(&name)
}

func (tc *ThreadContext) release() { tc.busy.Store(false) }

type threadKey struct{}

func threadFromContext(ctx context.Context) *ThreadContext {
	if ctx == nil {
		return nil
	}
	tc, _ := ctx.Value(threadKey{}).(*ThreadContext)
	return tc
}

// ThreadName returns the name attached to ctx, or DefaultThreadName.
func ThreadName(ctx context.Context) string {
	if tc := threadFromContext(ctx); tc != nil {
		return tc.Name()
	}
	return DefaultThreadName
}

type threadManager struct {
	pool    sync.Pool
	live    atomic.Int64
	max     int64
	bufSize int

	emergencyMu sync.Mutex
	emergency   *ThreadContext
}

func newThreadManager(maxContexts, bufSize int) *threadManager {
	m := &threadManager{
		max:     int64(maxContexts),
		bufSize: bufSize,
		emergency: &ThreadContext{
			buf:       NewBuffer(bufSize),
			emergency: true,
		},
	}
	m.emergency.setName(DefaultThreadName)
	m.pool.New = func() any {
		return &ThreadContext{buf: NewBuffer(m.bufSize)}
	}
	return m
}

// reserve takes one slot of the live context budget.
func (m *threadManager) reserve() bool {
	if m.max == 0 {
		m.live.Add(1)
		return true
	}
	if m.live.Add(1) > m.max {
		m.live.Add(-1)
		return false
	}
	return true
}

func (m *threadManager) get(name string) *ThreadContext {
	if !m.reserve() {
		return nil
	}
	tc := m.pool.Get().(*ThreadContext)
	tc.setName(name)
	tc.busy.Store(true)
	return tc
}

func (m *threadManager) put(tc *ThreadContext) {
	tc.busy.Store(false)
	tc.buf.Reset()
	m.live.Add(-1)
	m.pool.Put(tc)
}

// attach creates a context owned by an execution context. Its slot is given
// back once the context.Context holding it is garbage collected.
func (m *threadManager) attach(name string) *ThreadContext {
	if !m.reserve() {
		return nil
	}
	tc := &ThreadContext{buf: NewBuffer(m.bufSize)}
	tc.setName(name)
	runtime.AddCleanup(tc, func(m *threadManager) { m.live.Add(-1) }, m)
	return tc
}

// Live returns the number of thread contexts currently counted against
// MaxContexts.
func (f *Facility) Live() int64 { return f.threads.live.Load() }

// OpenFiles returns how many log files are held open by in-flight writes.
func (f *Facility) OpenFiles() int64 { return f.openFiles.Load() }

// WithThreadName names the execution context carried by ctx. A context that
// already carries a thread context is renamed in place. When no thread
// context can be created ctx is returned unchanged.
func (f *Facility) WithThreadName(ctx context.Context, name string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if tc := threadFromContext(ctx); tc != nil && !tc.emergency {
		tc.setName(name)
		return ctx
	}
	tc := f.threads.attach(name)
	if tc == nil {
		f.Crit(context.Background(), ComponentLogEmerg,
			"Could not create thread context for %s: %d contexts live", name, f.threads.live.Load())
		return ctx
	}
	return context.WithValue(ctx, threadKey{}, tc)
}

// getContext returns a thread context for one dispatch and the function
// that gives it back. The emergency context is used when no other context
// is available; its mutex is held until release.
func (f *Facility) getContext(ctx context.Context, reportErrors bool) (*ThreadContext, func()) {
	m := f.threads
	name := DefaultThreadName

	if tc := threadFromContext(ctx); tc != nil {
		if tc.busy.CompareAndSwap(false, true) {
			tc.buf.Reset()
			return tc, tc.release
		}
		name = tc.Name()
	}

	if tc := m.get(name); tc != nil {
		return tc, func() { m.put(tc) }
	}

	if reportErrors {
		f.Display(context.Background(), ComponentLogEmerg, "getContext", LevelCrit,
			"Thread context arena exhausted (%d live), using emergency context", m.live.Load())
	}
	m.emergencyMu.Lock()
	metrics.EmergencyContextUsed()
	m.emergency.buf.Reset()
	return m.emergency, m.emergencyMu.Unlock
}
