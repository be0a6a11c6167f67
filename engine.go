package marionette

import (
	"errors"
	"log/slog"
	"strings"
)

// Options configures an [Engine]. The zero value is usable: silent logging,
// fast run speed, 60 FPS time base, and a 256-line log tail.
type Options struct {
	// Speed selects how driven interactions play out. Defaults to
	// RunSpeedFast.
	Speed RunSpeed

	// Verbosity selects how much the engine logs. Defaults to
	// VerbositySilent; interactive hosts usually want VerbosityInfo.
	Verbosity Verbosity

	// Logger, when set, receives the engine's log output instead of the
	// default stderr text handler. Verbosity still gates what is emitted.
	Logger *slog.Logger

	// LogTail is the number of recent log lines retained for
	// [Engine.LogTail]. Defaults to 256.
	LogTail int

	// FPS is the assumed frame rate used to convert seconds to frames for
	// Sleep commands. Defaults to 60.
	FPS int

	// CaptureDir is where screen captures are written. Defaults to
	// "captures".
	CaptureDir string

	// CaptureOnError queues a screen capture whenever a test fails.
	CaptureOnError bool
}

// Engine owns the test registry, the run queue, and every script
// registered against it. It is driven one frame at a time: the host steps
// the UI under test, then calls [Engine.PostFrame], and the engine resumes
// the running test until it next suspends.
//
// An Engine and its Surface belong to a single goroutine. Tests execute on
// a goroutine of their own, but in strict lockstep with PostFrame, so
// exactly one side is ever running; multiple independent engines need no
// coordination with each other.
type Engine struct {
	sur  Surface
	opts Options

	log   *slog.Logger
	level *slog.LevelVar
	ring  *logRing

	tests   []*Test
	scripts []*Script
	queue   []*Test
	cur     *run
	flags   RunFlags

	frame    int
	started  bool
	captures []string
}

// run is the lockstep handshake for one executing test. The test goroutine
// alternates between running and being parked at a frame boundary; the
// host side releases it once per PostFrame.
type run struct {
	test    *Test
	ctx     *Context
	resume  chan struct{}
	yielded chan struct{}
	abort   chan struct{}
	done    chan struct{}
}

// errAborted unwinds a test goroutine that was cancelled from the host
// side. It never escapes the engine.
var errAborted = errors.New("marionette: run aborted")

// NewEngine creates an engine over the given surface.
func NewEngine(surface Surface, opts Options) *Engine {
	if opts.LogTail == 0 {
		opts.LogTail = 256
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.CaptureDir == "" {
		opts.CaptureDir = "captures"
	}
	log, level, ring := newEngineLogger(opts.Logger, opts.Verbosity, opts.LogTail)
	return &Engine{
		sur:   surface,
		opts:  opts,
		log:   log,
		level: level,
		ring:  ring,
	}
}

// Start enables the frame pump. Queued tests begin running on the next
// PostFrame.
func (e *Engine) Start() {
	if e.started {
		return
	}
	e.started = true
	e.log.Debug("engine started")
}

// Stop aborts any running test, clears the queue, and disables the frame
// pump. De-queued tests return to unknown status.
func (e *Engine) Stop() {
	if e.cur != nil {
		e.abortRun(e.cur)
	}
	e.clearQueue()
	e.started = false
}

// Shutdown stops the engine and releases every script it owns. The engine
// must not be used afterwards.
func (e *Engine) Shutdown() {
	e.Stop()
	for _, s := range e.scripts {
		s.release()
	}
	e.scripts = nil
	if len(e.captures) > 0 {
		e.log.Warn("captures dropped at shutdown", "count", len(e.captures))
		e.captures = nil
	}
	e.log.Debug("engine shut down")
}

// SetRunSpeed changes the interaction speed for subsequent commands,
// including those of a test already running.
func (e *Engine) SetRunSpeed(s RunSpeed) {
	e.opts.Speed = s
}

// SetVerbosity changes the log verbosity immediately.
func (e *Engine) SetVerbosity(v Verbosity) {
	e.opts.Verbosity = v
	e.level.Set(v.slogLevel())
}

func (e *Engine) speed() RunSpeed { return e.opts.Speed }
func (e *Engine) fps() int        { return e.opts.FPS }

// Frame returns the number of PostFrame calls since Start.
func (e *Engine) Frame() int { return e.frame }

// Running reports whether a test is currently executing.
func (e *Engine) Running() bool { return e.cur != nil }

// QueueEmpty reports whether no test is queued or running. Host pump loops
// use this as their stop condition.
func (e *Engine) QueueEmpty() bool {
	return len(e.queue) == 0 && e.cur == nil
}

// RegisterTest registers a plain Go test function under category/name.
func (e *Engine) RegisterTest(category, name string, fn func(*Context)) *Test {
	t := &Test{Category: category, Name: name, Group: GroupTests, fn: fn}
	e.tests = append(e.tests, t)
	return t
}

// RegisterScript registers a script as a runnable test and takes ownership
// of it: the script is released when the engine shuts down. An empty
// category falls back to the script's own category label. A nil script
// registers as an empty script.
func (e *Engine) RegisterScript(category, name string, s *Script) *Test {
	if s == nil {
		s = NewScript(category)
	}
	if category == "" {
		category = s.Category
	}
	s.registered = true
	e.scripts = append(e.scripts, s)
	t := e.RegisterTest(category, name, s.run)
	t.script = s
	return t
}

// Lookup returns the registered test with the given category and name, or
// nil.
func (e *Engine) Lookup(category, name string) *Test {
	for _, t := range e.tests {
		if t.Category == category && t.Name == name {
			return t
		}
	}
	return nil
}

// Tests returns a snapshot of the registered tests, in registration order.
func (e *Engine) Tests() []*Test {
	return append([]*Test(nil), e.tests...)
}

// QueueTests queues every registered test matching the group and filter.
// The filter is "" or "all" for everything, otherwise a substring of the
// test's "category/name" key. Tests already queued or running are left
// alone. The flags apply to the whole batch.
func (e *Engine) QueueTests(group TestGroup, filter string, flags RunFlags) {
	e.flags = flags
	queued := 0
	for _, t := range e.tests {
		if group != GroupAll && t.Group != group {
			continue
		}
		if !matchFilter(filter, t) {
			continue
		}
		if t.Status == TestStatusQueued || t.Status == TestStatusRunning {
			continue
		}
		t.Status = TestStatusQueued
		e.queue = append(e.queue, t)
		queued++
	}
	e.log.Debug("tests queued", "count", queued, "filter", filter)
}

func matchFilter(filter string, t *Test) bool {
	if filter == "" || filter == "all" {
		return true
	}
	return strings.Contains(t.Key(), filter)
}

// PostFrame advances the engine by one frame. The host calls it exactly
// once per frame, after stepping the UI under test. If a test is running
// it resumes until its next suspension point; otherwise the next queued
// test starts and runs up to its first suspension point.
func (e *Engine) PostFrame() {
	if !e.started {
		return
	}
	e.frame++
	if e.cur == nil {
		if len(e.queue) == 0 {
			return
		}
		e.startNext()
		return
	}
	e.cur.resume <- struct{}{}
	e.waitCur()
}

func (e *Engine) startNext() {
	t := e.queue[0]
	e.queue = e.queue[1:]
	t.Status = TestStatusRunning
	t.failMsg = ""

	r := &run{
		test:    t,
		resume:  make(chan struct{}),
		yielded: make(chan struct{}),
		abort:   make(chan struct{}),
		done:    make(chan struct{}),
	}
	ctx := &Context{
		eng:    e,
		sur:    e.sur,
		test:   t,
		run:    r,
		log:    e.log.With("test", t.Key()),
		cursor: Vec2{voidX, voidY},
	}
	r.ctx = ctx
	e.cur = r
	e.log.Debug("test started", "test", t.Key())

	go func() {
		defer close(r.done)
		defer func() {
			if v := recover(); v != nil {
				if v == errAborted {
					ctx.Errorf("test aborted")
					return
				}
				ctx.Errorf("test panicked: %v", v)
			}
		}()
		t.fn(ctx)
	}()

	e.waitCur()
}

// waitCur blocks until the running test either parks at a frame boundary
// or finishes.
func (e *Engine) waitCur() {
	r := e.cur
	select {
	case <-r.yielded:
	case <-r.done:
		e.finish(r)
	}
}

func (e *Engine) finish(r *run) {
	t := r.test
	if r.ctx.failed {
		t.Status = TestStatusError
		t.failMsg = r.ctx.failMsg
	} else {
		t.Status = TestStatusSuccess
	}
	e.cur = nil

	if t.Status == TestStatusSuccess {
		if e.flags&RunFlagNoSuccessMsg == 0 {
			e.log.Info("test passed", "test", t.Key())
		}
		return
	}
	e.log.Error("test failed", "test", t.Key(), "reason", t.failMsg)
	if e.opts.CaptureOnError {
		e.requestCapture(t.Category + "-" + t.Name)
	}
	if e.flags&RunFlagStopOnError != 0 {
		e.clearQueue()
	}
}

// abortRun cancels the parked test goroutine and records the run as
// failed. Only called from the host side, so the goroutine is guaranteed
// to be parked at a suspension point.
func (e *Engine) abortRun(r *run) {
	close(r.abort)
	<-r.done
	e.finish(r)
}

// AbortCurrent aborts the test that is currently running, if any. The
// queue keeps draining on later frames.
func (e *Engine) AbortCurrent() {
	if e.cur != nil {
		e.abortRun(e.cur)
	}
}

// TryAbort aborts the current test and clears the rest of the queue.
func (e *Engine) TryAbort() {
	e.AbortCurrent()
	e.clearQueue()
}

func (e *Engine) clearQueue() {
	for _, t := range e.queue {
		t.Status = TestStatusUnknown
	}
	e.queue = e.queue[:0]
}

// ResultSummary tallies the status of every registered test.
func (e *Engine) ResultSummary() Summary {
	var s Summary
	for _, t := range e.tests {
		switch t.Status {
		case TestStatusSuccess:
			s.Tested++
			s.Success++
		case TestStatusError:
			s.Tested++
		case TestStatusQueued, TestStatusRunning:
			s.InQueue++
		}
	}
	return s
}

// LogTail returns up to n of the most recent log lines, oldest first.
func (e *Engine) LogTail(n int) []string {
	return e.ring.tail(n)
}

// requestCapture queues a labeled screen capture for the harness to write
// at the end of the current frame's draw.
func (e *Engine) requestCapture(label string) {
	e.captures = append(e.captures, label)
	e.log.Debug("capture requested", "label", label)
}

// takeCaptures hands the pending capture labels to the harness and clears
// the queue.
func (e *Engine) takeCaptures() []string {
	if len(e.captures) == 0 {
		return nil
	}
	out := e.captures
	e.captures = nil
	return out
}
