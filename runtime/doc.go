// Package runtime hosts a program on a single-threaded event loop.
//
// A Loop runs one main Task on the goroutine that calls Run. The task, and
// every callback it schedules, interacts with the loop through a *Runtime:
// printing to the console, arming timeouts and intervals, and starting
// fetches that settle a Promise. Background goroutines only wait on timers
// and network I/O; their completions are posted back and dispatched one at
// a time on the Run goroutine, so user code never runs concurrently with
// itself.
//
// Await suspends the current task without blocking the loop: while the
// awaited promise is pending, the awaiting goroutine keeps dispatching other
// completions.
//
// Run returns once the main task has returned and no timer is armed and no
// fetch is in flight.
package runtime
