// Package heartbeat provides the periodic liveness sender for worker
// processes.
//
// Each worker runs one Sender bound to its process name. The sender
// enqueues a heartbeat onto the shared queue at a fixed interval, and the
// monitor on the other end of the queue counts silence against a growing
// staleness allowance.
//
// # Sender Lifecycle
//
//  1. Create a sender with New(queue, name, interval)
//  2. Optionally attach a logger/metrics with SetLogger/SetMetrics
//  3. Start sending with Start(ctx)
//  4. Stop sending with Stop(), or cancel ctx when the worker leaves its
//     serving state
//
// Example:
//
//	sender := heartbeat.New(queue, "web-1", 5*time.Second)
//	if err := sender.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer sender.Stop()
//
// # Delivery Guarantees
//
// None, on purpose. Send is non-blocking and a full queue drops the
// heartbeat. The monitor's miss budget (maxMisses consecutive failed
// checks, each with a growing allowance) absorbs occasional drops; only
// sustained silence escalates. A sender must never be the reason a worker
// stalls.
//
// # Thread Safety
//
// The Sender is safe for concurrent use. Lifecycle methods use proper
// synchronization; the sending loop runs in its own goroutine.
package heartbeat
