package service

import "github.com/openblog/blog-api/internal/core/ports"

// AuditSink accepts events for asynchronous recording. Implemented by the
// queue dispatcher; a nil sink disables auditing.
type AuditSink interface {
	Enqueue(event ports.AuditEvent)
}

func emit(sink AuditSink, event ports.AuditEvent) {
	if sink != nil {
		sink.Enqueue(event)
	}
}
