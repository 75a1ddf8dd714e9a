package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/philipp01105/envlog/core"
)

var testTime = time.Date(2026, 2, 18, 13, 0, 0, 123000000, time.UTC)

func decode(t *testing.T, line []byte) map[string]interface{} {
	t.Helper()
	if !bytes.HasSuffix(line, []byte("\n")) {
		t.Fatalf("Expected trailing newline, got %q", line)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(line, &data); err != nil {
		t.Fatalf("Invalid JSON %q: %v", line, err)
	}
	return data
}

func TestJSONFormatter_FullRecord(t *testing.T) {
	f := NewJSONFormatter(Config{}, Bindings{PID: 4242, Hostname: "web-1"})

	entry := &core.Entry{
		Time:    testTime,
		Level:   core.InfoLevel,
		Name:    "api.users",
		Message: "user created",
		Fields: []core.Field{
			{Key: "id", Type: core.Int64Type, Int64: 7},
			{Key: "admin", Type: core.BoolType, Int64: 1},
		},
	}

	result, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := map[string]interface{}{
		"level":    "INF",
		"time":     "2026-02-18T13:00:00.123Z",
		"name":     "api.users",
		"msg":      "user created",
		"pid":      float64(4242),
		"hostname": "web-1",
		"id":       float64(7),
		"admin":    true,
	}
	if diff := cmp.Diff(want, decode(t, result)); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFormatter_LevelEncoding(t *testing.T) {
	tests := []struct {
		name     string
		encoding LevelEncoding
		level    core.Level
		want     interface{}
	}{
		{"short code", LevelShortCode, core.WarnLevel, "WRN"},
		{"short code critical", LevelShortCode, core.CriticalLevel, "CRT"},
		{"unknown weight", LevelShortCode, core.Level(12), "UNK"},
		{"numeric", LevelNumeric, core.DetailsLevel, float64(25)},
		{"numeric critical", LevelNumeric, core.CriticalLevel, float64(60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewJSONFormatter(Config{Levels: tt.encoding}, Bindings{})
			result, err := f.Format(&core.Entry{Time: testTime, Level: tt.level, Message: "m"})
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got := decode(t, result)["level"]; got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBrowserFormatter_Minimal(t *testing.T) {
	f := NewBrowserFormatter()

	result, err := f.Format(&core.Entry{
		Time:    testTime,
		Level:   core.ErrorLevel,
		Name:    "ui.button",
		Message: "click failed",
		Fields:  []core.Field{{Key: "code", Type: core.StringType, Str: "E42"}},
	})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := map[string]interface{}{
		"level": "ERR",
		"msg":   "click failed",
		"code":  "E42",
	}
	if diff := cmp.Diff(want, decode(t, result)); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

type user struct {
	id   int64
	name string
}

func (u user) LogFields() []core.Field {
	return []core.Field{
		{Key: "id", Type: core.Int64Type, Int64: u.id},
		{Key: "name", Type: core.StringType, Str: u.name},
	}
}

func TestJSONFormatter_FieldTypes(t *testing.T) {
	f := NewJSONFormatter(Config{}, Bindings{})

	entry := &core.Entry{
		Time:    testTime,
		Level:   core.InfoLevel,
		Message: "types",
		Fields: []core.Field{
			{Key: "str", Type: core.StringType, Str: "quote\"d"},
			{Key: "float", Type: core.Float64Type, Float64: 1.5},
			{Key: "when", Type: core.TimeType, Int64: testTime.UnixNano()},
			{Key: "took", Type: core.DurationType, Int64: int64(1500 * time.Millisecond)},
			{Key: "error", Type: core.ErrorType, Str: "boom"},
			{Key: "user", Type: core.ObjectType, Object: user{id: 1, name: "ada"}},
			{Key: "nested", Type: core.AnyType, Any: user{id: 2, name: "bob"}},
			{Key: "cause", Type: core.AnyType, Any: errors.New("eof")},
			{Key: "tags", Type: core.AnyType, Any: []string{"a", "b"}},
		},
	}

	result, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	data := decode(t, result)

	want := map[string]interface{}{
		"str":    "quote\"d",
		"float":  1.5,
		"when":   "2026-02-18T13:00:00.123Z",
		"took":   "1.5s",
		"error":  "boom",
		"user":   map[string]interface{}{"id": float64(1), "name": "ada"},
		"nested": map[string]interface{}{"id": float64(2), "name": "bob"},
		"cause":  "eof",
		"tags":   []interface{}{"a", "b"},
	}
	for key, w := range want {
		if diff := cmp.Diff(w, data[key]); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", key, diff)
		}
	}
}

func TestJSONFormatter_FormatTo(t *testing.T) {
	f := NewJSONFormatter(Config{}, Bindings{PID: 1, Hostname: "h"})
	var buf bytes.Buffer
	entry := &core.Entry{Time: testTime, Level: core.InfoLevel, Name: "x", Message: "hello"}

	if err := f.FormatTo(entry, &buf); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	direct, _ := f.Format(entry)
	if buf.String() != string(direct) {
		t.Errorf("FormatTo() = %q, Format() = %q", buf.String(), direct)
	}
}

func TestTextFormatter_Basic(t *testing.T) {
	f := NewTextFormatter(Config{})

	entry := &core.Entry{
		Time:    testTime,
		Level:   core.InfoLevel,
		Name:    "api",
		Message: "test message",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.Int64Type, Int64: 42},
		},
	}

	result, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "13:00:00.123 INF (api): test message key1=value1 key2=42\n"
	if string(result) != want {
		t.Errorf("Format() = %q, want %q", result, want)
	}
}

func TestTextFormatter_Color(t *testing.T) {
	f := NewTextFormatter(Config{Color: true})

	result, err := f.Format(&core.Entry{Time: testTime, Level: core.ErrorLevel, Name: "db", Message: "down"})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := string(result)
	if !strings.Contains(output, "\x1b[31mERR\x1b[0m") {
		t.Errorf("Expected red ERR in output, got: %q", output)
	}
}

func TestTextFormatter_NoColorForUnknownLevel(t *testing.T) {
	f := NewTextFormatter(Config{Color: true})

	result, _ := f.Format(&core.Entry{Time: testTime, Level: core.Level(3), Message: "odd"})
	if strings.Contains(string(result), "\x1b[") {
		t.Errorf("Expected no colour for unknown level, got: %q", result)
	}
	if !strings.Contains(string(result), "UNK: odd") {
		t.Errorf("Expected UNK code, got: %q", result)
	}
}

func TestProcessBindings(t *testing.T) {
	b := ProcessBindings()
	if b.PID <= 0 {
		t.Errorf("Expected positive pid, got %d", b.PID)
	}
	if b.Hostname == "" {
		t.Error("Expected hostname")
	}
	if ProcessBindings() != b {
		t.Error("Expected ProcessBindings() to be stable")
	}
}

func BenchmarkJSONFormatter(b *testing.B) {
	f := NewJSONFormatter(Config{}, Bindings{PID: 1, Hostname: "bench"})
	entry := &core.Entry{
		Time:    testTime,
		Level:   core.InfoLevel,
		Name:    "bench",
		Message: "benchmark message",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.Int64Type, Int64: 42},
		},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(entry)
	}
}
