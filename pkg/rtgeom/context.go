package rtgeom

import "github.com/rtgeom/rtgeom/internal/geom"

// Context carries the allocator hooks, diagnostic reporter hooks, and
// cooperative interrupt flag threaded through every operation that can
// fail, loop unboundedly, or be cancelled (spec.md §5, §6.3). A Context is
// not safe for concurrent use by two goroutines that might both call
// Interrupt/ClearInterrupt and a long-running operation at once; give each
// goroutine its own Context unless you specifically want them to share one
// interrupt flag.
type Context struct {
	inner *geom.Context
}

// NewContext returns a Context with no-op hooks. Install reporter hooks
// via SetReporter before use if you want diagnostics; the facade has no
// setter for the allocator hooks.
func NewContext() *Context {
	return &Context{inner: geom.NewContext()}
}

// DefaultContext returns a fresh Context with default (no-op) hooks,
// suitable for callers that don't need custom logging or cancellation.
func DefaultContext() *Context {
	return NewContext()
}

// Reporter receives error/notice/debug callbacks from operations run with
// this Context. Error is invoked once at the top-level boundary of a
// failing public call (spec.md §7); Notice and Debug may be invoked any
// number of times and always return normally.
type Reporter struct {
	Error  func(err error)
	Notice func(format string, args ...interface{})
	Debug  func(level int, format string, args ...interface{})
}

// SetReporter installs r's hooks on ctx. A nil field is a no-op.
func (ctx *Context) SetReporter(r Reporter) {
	ctx.inner.Report = geom.ReporterHooks{Error: r.Error, Notice: r.Notice, Debug: r.Debug}
}

// Interrupt requests cooperative cancellation of any operation currently
// running (or about to run) with this Context. Safe to call from any
// goroutine.
func (ctx *Context) Interrupt() { ctx.inner.Interrupt() }

// ClearInterrupt resets the interrupt flag so the Context can be reused.
func (ctx *Context) ClearInterrupt() { ctx.inner.ClearInterrupt() }
