package target

import (
	"context"
	"fmt"
	"sync"

	"github.com/1broseidon/paneweave/internal/layout"
)

// Call is one recorded action against a Recorder.
type Call struct {
	Op  string // "activate", "newTab", "newWindow", "split", "navigate", "sendText", "enter"
	Arg string // direction or text, empty for nullary ops
}

func (c Call) String() string {
	if c.Arg == "" {
		return c.Op
	}
	return fmt.Sprintf("%s(%s)", c.Op, c.Arg)
}

// Recorder is an in-memory Target. It records every action in order and
// can be scripted to fail selected operations, which is how the engine
// tests exercise retry and focus-recovery paths. It also backs dry-run
// planning: executing a layout against a Recorder yields the exact
// action sequence without touching a real terminal.
//
// Read operations (FrontmostAppName and the window readers) are counted
// but do not appear in Calls; they carry no side effects on the target.
type Recorder struct {
	mu sync.Mutex

	name      string
	frontmost string
	title     string

	calls           []Call
	frontmostReads  int
	failures        map[string]error
	failuresLeft    map[string]int
	failFrontmostFn func(reads int) (string, error)
}

// NewRecorder returns a Recorder posing as the named application, with
// the frontmost process reporting the same name.
func NewRecorder(name string) *Recorder {
	return &Recorder{
		name:         name,
		frontmost:    name,
		failures:     make(map[string]error),
		failuresLeft: make(map[string]int),
	}
}

func (r *Recorder) Name() string { return r.name }

// FailOn scripts the next n invocations of op to return err. Subsequent
// invocations succeed again.
func (r *Recorder) FailOn(op string, err error, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op] = err
	r.failuresLeft[op] = n
}

// SetFrontmost overrides the name FrontmostAppName reports.
func (r *Recorder) SetFrontmost(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frontmost = name
}

// FrontmostFunc installs a per-read hook for FrontmostAppName, taking
// the 1-based read count. Useful to simulate focus returning after an
// Activate retry.
func (r *Recorder) FrontmostFunc(fn func(reads int) (string, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failFrontmostFn = fn
}

// SetTitle sets the window title the readers report.
func (r *Recorder) SetTitle(title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.title = title
}

// Calls returns a copy of the recorded action sequence.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallStrings renders the recorded sequence, one action per entry.
func (r *Recorder) CallStrings() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// FrontmostReads reports how many times FrontmostAppName was consulted.
func (r *Recorder) FrontmostReads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frontmostReads
}

// Reset clears the recorded calls and scripted failures.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.frontmostReads = 0
	r.failures = make(map[string]error)
	r.failuresLeft = make(map[string]int)
	r.failFrontmostFn = nil
}

func (r *Recorder) record(ctx context.Context, op, arg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: op, Arg: arg})
	if n := r.failuresLeft[op]; n > 0 {
		r.failuresLeft[op] = n - 1
		return r.failures[op]
	}
	return nil
}

func (r *Recorder) Activate(ctx context.Context) error {
	return r.record(ctx, "activate", "")
}

func (r *Recorder) NewTab(ctx context.Context) error {
	return r.record(ctx, "newTab", "")
}

func (r *Recorder) NewWindow(ctx context.Context) error {
	return r.record(ctx, "newWindow", "")
}

func (r *Recorder) Split(ctx context.Context, direction layout.Direction) error {
	return r.record(ctx, "split", string(direction))
}

func (r *Recorder) Navigate(ctx context.Context, direction NavDirection) error {
	return r.record(ctx, "navigate", string(direction))
}

func (r *Recorder) SendText(ctx context.Context, text string) error {
	return r.record(ctx, "sendText", text)
}

func (r *Recorder) PressEnter(ctx context.Context) error {
	return r.record(ctx, "enter", "")
}

func (r *Recorder) FrontmostAppName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frontmostReads++
	if r.failFrontmostFn != nil {
		return r.failFrontmostFn(r.frontmostReads)
	}
	return r.frontmost, nil
}

func (r *Recorder) WindowTitle(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.title, nil
}

func (r *Recorder) WindowDescription(ctx context.Context) (string, error) {
	return r.WindowTitle(ctx)
}

func (r *Recorder) WindowName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return r.name, nil
}

var _ Target = (*Recorder)(nil)
