// Package publisher provides escalation publisher implementations.
//
// The monitor hands a stale process name to its Publisher exactly once
// per episode and moves on; implementations decide what an escalation
// means. The NATS publisher broadcasts the name for recovery daemons to
// act on. The Logging publisher records it, which is enough when a human
// or an external log pipeline owns recovery.
//
// Custom behavior plugs in via types.PublisherFunc without implementing
// a new type.
package publisher
