package geom

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ReporterHooks are the three callbacks a Context uses to surface
// diagnostics. Error is contractually non-returning from the caller's point
// of view: every public function in this package checks for a non-nil error
// return immediately after invoking it and unwinds. Notice and Debug return
// normally. A nil hook is treated as a no-op.
type ReporterHooks struct {
	Error  func(err error)
	Notice func(format string, args ...interface{})
	Debug  func(level int, format string, args ...interface{})
}

// AllocatorHooks mirror the C core's allocator trio. Go's garbage collector
// makes Alloc/Realloc/Free unnecessary for this port's own allocations, but
// the hooks are preserved on Context because external collaborators (the
// projection and CG adapters in spec.md §6.3) are specified against them.
type AllocatorHooks struct {
	Alloc   func(size int) []byte
	Realloc func(buf []byte, size int) []byte
	Free    func(buf []byte)
}

// Context is threaded as the first argument to every public function that
// can fail, loop unboundedly, or call an external collaborator. Two threads
// sharing one Context race only on its interrupt flag; two threads with
// separate Contexts never race (spec.md §5).
type Context struct {
	Alloc    AllocatorHooks
	Report   ReporterHooks
	interrupt int32

	// DebugID correlates this Context's notice/debug lines across
	// subsystems, the way banshee-data-velocity.report and
	// sentra-language-sentra both stamp a uuid onto related log lines.
	DebugID uuid.UUID
}

// NewContext returns a Context with default (no-op) hooks and a fresh
// DebugID. Callers override Report/Alloc as needed.
func NewContext() *Context {
	return &Context{DebugID: uuid.New()}
}

// Interrupt requests cooperative cancellation. It may be called from any
// goroutine, including a signal handler equivalent, without holding any
// lock associated with this Context.
func (c *Context) Interrupt() {
	atomic.StoreInt32(&c.interrupt, 1)
}

// ClearInterrupt resets the interrupt flag so the Context can be reused.
func (c *Context) ClearInterrupt() {
	atomic.StoreInt32(&c.interrupt, 0)
}

// interrupted polls the flag. It is polled (via checkInterrupt) at each step
// of Dist2D's recursion and of Subdivide; Simplify and Stroke take no
// Context and do not poll it.
func (c *Context) interrupted() bool {
	return c != nil && atomic.LoadInt32(&c.interrupt) != 0
}

// checkInterrupt returns a non-nil *GeomError iff cancellation was
// requested, wrapped with pkg/errors so the caller gets a stack frame at the
// point of detection.
func (c *Context) checkInterrupt() error {
	if c.interrupted() {
		e := newErr(ErrInterrupted, "operation interrupted")
		c.raise(e)
		return errors.WithStack(e)
	}
	return nil
}

// raise invokes the Context's error reporter, if any. It does not itself
// panic or return an error; callers are expected to also return the error
// through their own result value, per spec.md §9 ("every public function
// returns a result value, and the error reporter is invoked at the
// top-level boundary only"). Non-top-level code should prefer propagating
// the error value and let the top-level public entrypoint call raise once.
func (c *Context) raise(err error) {
	if c == nil || c.Report.Error == nil || err == nil {
		return
	}
	c.Report.Error(err)
}

func (c *Context) notice(format string, args ...interface{}) {
	if c == nil || c.Report.Notice == nil {
		return
	}
	c.Report.Notice("ctx=%s: "+format, append([]interface{}{safeID(c)}, args...)...)
}

func (c *Context) debug(level int, format string, args ...interface{}) {
	if c == nil || c.Report.Debug == nil {
		return
	}
	c.Report.Debug(level, "ctx=%s: "+format, append([]interface{}{safeID(c)}, args...)...)
}

// fail attaches this Context's diagnostic correlation id to err for
// notice/debug reporting without changing err's type, then raises it.
func (c *Context) fail(err *GeomError) error {
	wrapped := errors.WithMessage(err, "ctx="+safeID(c))
	c.raise(wrapped)
	return wrapped
}

func safeID(c *Context) string {
	if c == nil {
		return "<nil>"
	}
	return c.DebugID.String()
}
