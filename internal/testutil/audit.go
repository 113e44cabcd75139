// internal/testutil/audit.go
package testutil

import (
	"context"
	"sync"

	"github.com/trueportme/adminconsole/internal/app/store/audit"
)

// AuditRecorder keeps audit events in memory.
type AuditRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

// Log implements auditlog.Writer.
func (a *AuditRecorder) Log(_ context.Context, e audit.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
	return nil
}

// Events returns a copy of the recorded events.
func (a *AuditRecorder) Events() []audit.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]audit.Event(nil), a.events...)
}

// Types returns the event types in the order they were recorded.
func (a *AuditRecorder) Types() []string {
	var out []string
	for _, e := range a.Events() {
		out = append(out, e.EventType)
	}
	return out
}
