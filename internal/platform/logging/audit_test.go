package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogAuditEvent(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	LogAuditEvent(ctx, AuditEvent{
		Action:     "create",
		Actor:      "sarah@example.com",
		Resource:   "mentor",
		ResourceID: "m-1",
		Result:     AuditSuccess,
		Details:    map[string]any{"industry": "Engineering"},
	})

	entries := recorded.All()
	if len(entries) != 1 || entries[0].Message != "Audit event" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	fields := entries[0].ContextMap()
	want := map[string]string{
		"audit.action":        "create",
		"audit.actor":         "sarah@example.com",
		"audit.resource_type": "mentor",
		"audit.resource_id":   "m-1",
		"audit.result":        "success",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("%s = %v, want %s", k, fields[k], v)
		}
	}
	if _, ok := fields["audit.details"]; !ok {
		t.Error("expected audit.details field")
	}
}

func TestLogAuditEventOmitsEmptyDetails(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	LogAuditEvent(ctx, AuditEvent{Action: "delete", Resource: "story", Result: AuditFailure})

	if _, ok := recorded.All()[0].ContextMap()["audit.details"]; ok {
		t.Fatal("unexpected audit.details field")
	}
}
