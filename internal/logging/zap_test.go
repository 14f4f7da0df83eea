package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewZapLogger(zap.New(core)), logs
}

func TestZapLogger_Levels(t *testing.T) {
	log, logs := newObservedLogger()
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	want := []string{"dbg", "inf", "wrn", "err"}
	for i, msg := range want {
		if entries[i].Message != msg {
			t.Fatalf("entry %d: expected message %q, got %q", i, msg, entries[i].Message)
		}
	}
}

func TestZapLogger_With_AddsFields(t *testing.T) {
	log, logs := newObservedLogger()
	ctx := context.Background()

	log.With("req_id", "123").Info(ctx, "hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	found := false
	for _, f := range entries[0].Context {
		if f.Key == "req_id" && f.String == "123" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected req_id field in %v", entries[0].Context)
	}
}
