package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stderr",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestLevelDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "disabled", Format: "json"}, "svc", &buf)
	l.Error("hidden", Fields("k", "v"))
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)

	l.WithComponent("engine").WithTask(101).Info("task finished", Fields(FieldStatus, "Completed"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry[FieldComponent] != "engine" {
		t.Errorf("expected component=engine, got %v", entry[FieldComponent])
	}
	if entry[FieldTaskID] != float64(101) {
		t.Errorf("expected task_id=101, got %v", entry[FieldTaskID])
	}
	if entry[FieldStatus] != "Completed" {
		t.Errorf("expected status=Completed, got %v", entry[FieldStatus])
	}
	if entry["message"] != "task finished" {
		t.Errorf("unexpected message %v", entry["message"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: "json"}, "svc", &buf)

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn line should be written")
	}
}

func TestConsoleFormatNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "taskflow", &buf)
	l.Info("hello")

	out := buf.String()
	if !strings.Contains(out, "[TAS][INF]") {
		t.Errorf("expected service and level tag, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("expected no color codes, got %q", out)
	}
}

func TestWithContextBatchAndTrace(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx := ContextWithBatchID(context.Background(), "batch-1")
	ctx, span := tp.Tracer("test").Start(ctx, "op")
	defer span.End()

	l.WithContext(ctx).Info("with context")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry[FieldBatchID] != "batch-1" {
		t.Errorf("expected batch_id, got %v", entry[FieldBatchID])
	}
	if entry[FieldTraceID] != span.SpanContext().TraceID().String() {
		t.Errorf("expected trace_id from span, got %v", entry[FieldTraceID])
	}
}

func TestBatchIDFromContextMissing(t *testing.T) {
	if id := BatchIDFromContext(context.Background()); id != "" {
		t.Errorf("expected empty batch id, got %q", id)
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)
	l.WithFields(map[string]interface{}{"key": "value"}).WithError(fmt.Errorf("boom")).Error("failed")

	out := buf.String()
	if !strings.Contains(out, `"key":"value"`) || !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("expected fields in output, got %q", out)
	}
}

func TestNop(t *testing.T) {
	Nop().Info("nothing")
}

func TestInit(t *testing.T) {
	cfg := Config{
		Level:       "info",
		Format:      "console",
		ServiceName: "init-test",
	}
	Init(&cfg)
	gl := GetGlobalLogger()
	if gl == nil {
		t.Fatal("expected global logger to be set after Init")
	}
	if gl.service != "init-test" {
		t.Errorf("expected service from config, got %q", gl.service)
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	SetGlobalLogger(nil)
	t.Cleanup(func() { SetGlobalLogger(nil) })
	l := GetGlobalLogger()
	if l == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	t.Cleanup(func() { SetGlobalLogger(nil) })
	if got := GetGlobalLogger(); got != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	Init(&Config{Level: "debug", Format: "json"})
	// These should not panic
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
	if WithContext(context.Background()) == nil {
		t.Error("expected logger from WithContext")
	}
	if WithComponent("engine") == nil {
		t.Error("expected logger from WithComponent")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stderr"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stdout"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stderr"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stderr"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterAndGet(t *testing.T) {
	t.Cleanup(Reset)
	l := NewDefault("custom-component")
	Register("my-component", l)

	if got := Get("my-component"); got != l {
		t.Error("expected Get to return the registered logger")
	}
	if Get("unregistered-component") == nil {
		t.Fatal("expected non-nil logger for unregistered component")
	}
}

func TestRegisterDefaults(t *testing.T) {
	t.Cleanup(Reset)
	Init(&Config{Level: "info", Format: "json"})
	before := Get(ComponentEngine)
	RegisterDefaults()

	for _, name := range DefaultComponents {
		if Get(name) == nil {
			t.Errorf("expected non-nil logger for %q", name)
		}
	}
	if Get(ComponentEngine) == before {
		t.Error("expected a registered logger rather than a derived one")
	}
	if Get(ComponentEngine) != Get(ComponentEngine) {
		t.Error("registered logger should be stable across calls")
	}

	Reset()
	if Get(ComponentEngine) == Get(ComponentEngine) {
		t.Error("after Reset each call derives a fresh logger")
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected F
	}{
		{"key-value pairs", []interface{}{"op", "save", "id", 42}, F{"op": "save", "id": 42}},
		{"odd number of args", []interface{}{"op", "save", "trailing"}, F{"op": "save"}},
		{"empty", []interface{}{}, F{}},
		{"non-string key skipped", []interface{}{123, "value", "key", "val"}, F{"key": "val"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Errorf("expected %d fields, got %d", len(tc.expected), len(result))
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestFieldHelpers(t *testing.T) {
	var nilFields F
	f := nilFields.Op("fetch_data").Err(fmt.Errorf("something broke")).Took(150 * time.Millisecond)
	if f[FieldOperation] != "fetch_data" || f[FieldError] != "something broke" {
		t.Errorf("unexpected fields %v", f)
	}
	if f[FieldDuration] != int64(150) {
		t.Errorf("expected duration 150, got %v", f[FieldDuration])
	}

	if _, ok := (F{}).Err(nil)[FieldError]; ok {
		t.Error("nil error should not add a field")
	}
}

func TestFieldsAsMap(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)
	l.Error("failed", F{FieldStep: "fetch_data"}.Err(fmt.Errorf("boom")))

	out := buf.String()
	if !strings.Contains(out, `"step":"fetch_data"`) || !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("expected fields in output, got %q", out)
	}
}
