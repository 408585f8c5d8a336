package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestProviderReturnsNamedLogger(t *testing.T) {
	p, err := NewProvider(Config{Level: "debug", Format: "console", Focus: []string{" landing.editor ", ""}})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	logger := p.GetLogger("landing.editor")
	if logger == nil {
		t.Fatal("expected logger")
	}
	if _, ok := logger.(interfaces.FieldsLogger); !ok {
		t.Fatalf("expected named logger to carry fields, got %T", logger)
	}
	logging.WithFields(logger, map[string]any{"session_id": "s-1"}).Debug("editor.session.opened")
}

func TestLoggerForwardsCallsAndClonesFields(t *testing.T) {
	stub := &stubLogger{}
	adapted := adapt(stub)

	adapted.Trace("t")
	adapted.Debug("d")
	adapted.Info("i")
	adapted.Warn("w")
	adapted.Error("e")
	adapted.Fatal("f")

	fields := map[string]any{"landing_page_id": "a"}
	_ = adapted.(*logger).WithFields(fields)
	fields["landing_page_id"] = "b"

	if len(stub.fields) != 1 || stub.fields[0]["landing_page_id"] != "a" {
		t.Fatalf("expected cloned fields, got %#v", stub.fields)
	}

	ctx := context.WithValue(context.Background(), struct{}{}, "x")
	adapted.WithContext(ctx)
	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context forwarded, got %#v", stub.contexts)
	}

	want := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	if len(stub.calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), stub.calls)
	}
	for i := range want {
		if stub.calls[i] != want[i] {
			t.Fatalf("call %d: want %s got %s", i, want[i], stub.calls[i])
		}
	}
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var (
	_ glog.Logger       = (*stubLogger)(nil)
	_ glog.FieldsLogger = (*stubLogger)(nil)
)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	s.fields = append(s.fields, fields)
	return s
}
