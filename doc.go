// Package vigil provides a heartbeat watchdog for fleets of worker
// processes: workers announce liveness on a bounded queue, a single
// monitor detects silence and escalates stale processes.
//
// Vigil trades detection latency for tolerance to backpressure. The
// silence allowance grows with each consecutive miss, so a worker that is
// merely slow accrues misses gradually, while a dead worker is escalated
// after a bounded number of failed checks.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import "github.com/arloliu/vigil"
//
//	cfg := vigil.DefaultConfig()
//	q := queue.NewBufferedFor(3, cfg.QueueSlotsPerWorker)
//	src := source.NewStatic("web-1", "web-2", "indexer")
//	pub := publisher.NewLogging(logging.NewSlogDefault())
//
//	mon, err := vigil.NewMonitor(&cfg, q, src, pub)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := mon.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer mon.Stop(context.Background())
//
// Each worker runs a sender that reports on the shared queue:
//
//	hb := heartbeat.New(q, "web-1", cfg.ReportInterval)
//	if err := hb.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer hb.Stop()
//
// # Key Features
//
//   - Growing Allowance: A process fails a check after missThreshold*(misses+1)
//     of silence, measured from its last real heartbeat
//   - Drop-On-Full Senders: Heartbeat senders never block their host; a
//     dropped beat is recovered by the next periodic tick
//   - Exactly-Once Escalation: A stale process is published once per
//     episode, then re-based so it does not re-trigger every sweep
//   - Pluggable Transport: In-process channel, NATS, or RabbitMQ queues
//     behind one small interface
//
// # Architecture
//
// The monitor progresses through a linear state machine:
//
//	INIT → RUNNING → STOPPING → STOPPED
//
// One consumer loop drains the queue with a bounded poll and sweeps every
// watched process each iteration. Producers (heartbeat senders) run in the
// worker processes and share nothing with the monitor but the queue.
//
// # Advanced Usage
//
// Cross-process setup over NATS with hooks:
//
//	import (
//	    "github.com/arloliu/vigil"
//	    "github.com/arloliu/vigil/publisher"
//	    "github.com/arloliu/vigil/queue"
//	)
//
//	q := queue.NewNATS(nc, queue.DefaultSubject, 2*workerCount)
//	pub := publisher.NewNATS(nc, publisher.DefaultSubject)
//
//	hooks := &vigil.Hooks{
//	    OnEscalated: func(ctx context.Context, name string, silentFor time.Duration) error {
//	        // Page an operator or restart the process
//	        return nil
//	    },
//	}
//
//	mon, err := vigil.NewMonitor(&cfg, q, src, pub,
//	    vigil.WithHooks(hooks),
//	    vigil.WithLogger(logger),
//	)
//
// See the examples/ directory for complete working examples.
package vigil
