// Package leaktest catches goroutines and heap left behind by hubs, pools and
// waiters once they are stopped.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settlePoll    = 10 * time.Millisecond
	settleTimeout = 2 * time.Second
	stackDumpSize = 1 << 16
)

// GoroutineChecker compares the goroutine count at construction with the
// count once the code under test has shut down.
type GoroutineChecker struct {
	t        testing.TB
	baseline int
}

// NewGoroutineChecker records the current goroutine count.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{t: t, baseline: runtime.NumGoroutine()}
}

// Check waits for stopped goroutines to exit and fails the test when more
// than tolerance extra goroutines remain. The failure includes a stack dump.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	limit := g.baseline + tolerance
	current := settle(limit)
	if current <= limit {
		return
	}

	buf := make([]byte, stackDumpSize)
	n := runtime.Stack(buf, true)
	g.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d\n%s",
		g.baseline, current, tolerance, buf[:n])
}

// settle polls until the goroutine count drops to limit or the timeout passes,
// returning the last count observed.
func settle(limit int) int {
	deadline := time.Now().Add(settleTimeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= limit || time.Now().After(deadline) {
			return n
		}
		time.Sleep(settlePoll)
	}
}

// CheckNoMemoryLeak runs fn and fails when live heap grew by more than maxGrowthMB.
func CheckNoMemoryLeak(t testing.TB, maxGrowthMB float64, fn func()) {
	t.Helper()

	before := heapMB()
	fn()
	after := heapMB()

	if growth := after - before; growth > maxGrowthMB {
		t.Errorf("heap grew %.2fMB (%.2fMB -> %.2fMB), max %.2fMB", growth, before, after, maxGrowthMB)
	}
}

func heapMB() float64 {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc) / (1 << 20)
}
