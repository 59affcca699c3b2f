// Package queue provides implementations of the bounded heartbeat queue.
//
// All implementations share the same contract: Send never blocks and
// drops when the bounded capacity is exhausted, Receive waits at most the
// given timeout, and both report expected control conditions through the
// types.ErrQueueFull / types.ErrQueueEmpty / types.ErrQueueClosed
// sentinels.
//
// Available transports:
//
//   - Buffered: in-process Go channel, for workers that are goroutines of
//     the monitoring process
//   - NATS: core NATS publish/subscribe, for workers that are separate
//     processes sharing a NATS deployment
//   - AMQP: RabbitMQ classic queue with a length cap, for deployments
//     already operating a broker
//
// The queue capacity should be workerCount multiplied by the configured
// slots per worker (two by default); the monitor drains far faster than
// senders fill, so a small buffer only has to absorb scheduling jitter.
package queue
