package authui

import (
	"context"
	"sync"
	"sync/atomic"
)

// auditDispatcher keeps a slow sink out of the action path: Emit enqueues
// onto a buffered queue and a single forwarder goroutine delivers events in
// order. Close is part of widget teardown and flushes the backlog so no
// event recorded before Close is lost.
type auditDispatcher struct {
	sink  AuditSink
	queue chan AuditEvent
	lossy bool

	// mu orders enqueues against teardown: Emit holds the read side while
	// sending, so Close can only close the queue once no send is in flight.
	mu      sync.RWMutex
	closed  bool
	flushed chan struct{}
	dropped atomic.Uint64
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	size := cfg.BufferSize
	if size <= 0 {
		size = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &auditDispatcher{
		sink:    sink,
		queue:   make(chan AuditEvent, size),
		lossy:   cfg.DropIfFull,
		flushed: make(chan struct{}),
	}
	go d.forward()
	return d
}

// forward delivers queued events one at a time. Closing the queue ends the
// range once the backlog is drained, then flushed is signalled.
func (d *auditDispatcher) forward() {
	for event := range d.queue {
		d.sink.Emit(context.Background(), event)
	}
	close(d.flushed)
}

// Emit enqueues an event for delivery. In lossy mode a full queue counts a
// drop instead of blocking; otherwise the caller blocks until there is
// space or its context is cancelled. Safe on a nil or closed dispatcher.
func (d *auditDispatcher) Emit(ctx context.Context, event AuditEvent) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	if d.lossy {
		select {
		case d.queue <- event:
		default:
			d.dropped.Add(1)
		}
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case d.queue <- event:
	case <-ctx.Done():
	}
}

// Close tears the dispatcher down: no further events are accepted, the
// backlog is delivered, and Close returns once the forwarder has exited.
// Repeated calls are no-ops.
func (d *auditDispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.flushed
}

// Dropped reports how many events were discarded because the queue was full.
func (d *auditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
