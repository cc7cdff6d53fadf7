// Package leaktest detects goroutines left running by loops, pools and
// streams that are expected to shut down cleanly.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 10 * time.Millisecond
	checkTimeout = 500 * time.Millisecond
	dumpSize     = 1 << 16
)

// GoroutineChecker records a goroutine baseline and compares against it later
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	settle()
	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check polls until the goroutine count is back within tolerance of the
// baseline, failing with a stack dump when it never gets there.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	target := g.before + tolerance
	if waitFor(target, checkTimeout) {
		return
	}
	after := runtime.NumGoroutine()
	g.t.Errorf("goroutine leak: before=%d after=%d leaked=%d tolerance=%d\n%s",
		g.before, after, after-g.before, tolerance, dump())
}

// Check returns a func to defer that fails t if goroutines outlive the test body
//
//	defer leaktest.Check(t)()
func Check(t testing.TB) func() {
	t.Helper()
	checker := NewGoroutineChecker(t)
	return func() {
		t.Helper()
		checker.Check(0)
	}
}

// CheckNoGoroutineLeak runs fn and checks that it leaves no goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	defer Check(t)()
	fn()
}

// WaitForGoroutines waits until at most target goroutines remain
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()
	if !waitFor(target, timeout) {
		t.Errorf("timed out waiting for goroutines: current=%d target=%d",
			runtime.NumGoroutine(), target)
	}
}

func waitFor(target int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

func settle() {
	runtime.Gosched()
	time.Sleep(settleDelay)
}

func dump() string {
	buf := make([]byte, dumpSize)
	n := runtime.Stack(buf, true)
	return string(buf[:n])
}
