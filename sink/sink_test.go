package sink

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipp01105/envlog/config"
	"github.com/philipp01105/envlog/core"
	"github.com/philipp01105/envlog/env"
	"github.com/philipp01105/envlog/formatter"
	"github.com/philipp01105/envlog/pretty"
)

var (
	development = env.Environment{}
	production  = env.Environment{IsProduction: true}
	browser     = env.Environment{IsRealBrowser: true, IsProduction: true}
	fixed       = &formatter.Bindings{PID: 42, Hostname: "box"}
)

func write(t *testing.T, s *Sink, level core.Level, msg string, fields ...core.Field) {
	t.Helper()
	e := core.GetEntry()
	defer core.PutEntry(e)
	e.Level = level
	e.Name = "svc"
	e.Message = msg
	e.Fields = append(e.Fields, fields...)
	if err := s.Handler.Handle(e); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
}

func TestSelect_Development(t *testing.T) {
	var out bytes.Buffer
	s := Select(development, config.Default(), Options{Stdout: &out, Bindings: fixed})
	if s.Variant != VariantPretty {
		t.Fatalf("Variant = %q, want %q", s.Variant, VariantPretty)
	}

	write(t, s, core.InfoLevel, "hello", core.Field{Key: "k", Str: "v"})

	line := out.String()
	if !strings.HasSuffix(line, " INF (svc): hello k=v\n") {
		t.Errorf("Unexpected pretty line %q", line)
	}
	if strings.Contains(line, "{") {
		t.Errorf("Expected rendered text, got JSON %q", line)
	}
}

func TestSelect_DevelopmentPassesNumericLevels(t *testing.T) {
	var raw bytes.Buffer
	capture := func(out io.Writer, opts pretty.Options) (io.Writer, error) {
		return &raw, nil
	}
	s := Select(development, config.Default(), Options{Stdout: io.Discard, NewPretty: capture, Bindings: fixed})

	write(t, s, core.WarnLevel, "numeric")

	var rec map[string]interface{}
	if err := json.Unmarshal(raw.Bytes(), &rec); err != nil {
		t.Fatalf("Invalid JSON %q: %v", raw.String(), err)
	}
	if rec["level"] != float64(40) {
		t.Errorf("level = %v, want 40", rec["level"])
	}
}

func TestSelect_PrettyFailureFallsBackToJSON(t *testing.T) {
	var out bytes.Buffer
	broken := func(io.Writer, pretty.Options) (io.Writer, error) {
		return nil, errors.New("renderer missing")
	}
	s := Select(development, config.Default(), Options{Stdout: &out, NewPretty: broken, Bindings: fixed})

	if s.Variant != VariantJSON {
		t.Errorf("Variant = %q, want %q", s.Variant, VariantJSON)
	}
	if len(s.Notes) != 1 || !strings.Contains(s.Notes[0], "renderer missing") {
		t.Errorf("Unexpected notes %v", s.Notes)
	}

	write(t, s, core.InfoLevel, "still works")
	var rec map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("Invalid JSON %q: %v", out.String(), err)
	}
	if rec["level"] != "INF" {
		t.Errorf("level = %v, want INF", rec["level"])
	}
}

func TestSelect_Production(t *testing.T) {
	var out bytes.Buffer
	s := Select(production, config.Default(), Options{Stdout: &out, Bindings: fixed})
	if s.Variant != VariantJSON {
		t.Fatalf("Variant = %q, want %q", s.Variant, VariantJSON)
	}

	write(t, s, core.ErrorLevel, "boom", core.Field{Key: "code", Type: core.Int64Type, Int64: 7})

	var rec map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("Invalid JSON %q: %v", out.String(), err)
	}
	for key, want := range map[string]interface{}{
		"level":    "ERR",
		"name":     "svc",
		"msg":      "boom",
		"pid":      float64(42),
		"hostname": "box",
		"code":     float64(7),
	} {
		if rec[key] != want {
			t.Errorf("%s = %v, want %v", key, rec[key], want)
		}
	}
	if _, ok := rec["time"]; !ok {
		t.Error("Expected time key")
	}
}

func TestSelect_Browser(t *testing.T) {
	var out bytes.Buffer
	cfg := config.Default()
	cfg.File.Path = filepath.Join(t.TempDir(), "ignored.log")
	s := Select(browser, cfg, Options{Stdout: &out, Bindings: fixed})
	if s.Variant != VariantBrowser {
		t.Fatalf("Variant = %q, want %q", s.Variant, VariantBrowser)
	}

	write(t, s, core.InfoLevel, "hi")

	var rec map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("Invalid JSON %q: %v", out.String(), err)
	}
	if len(rec) != 2 || rec["level"] != "INF" || rec["msg"] != "hi" {
		t.Errorf("Unexpected browser record %v", rec)
	}
	if _, err := os.Stat(cfg.File.Path); !os.IsNotExist(err) {
		t.Errorf("Browser sink must not open files, stat err = %v", err)
	}
}

func TestSelect_FileDestination(t *testing.T) {
	var out bytes.Buffer
	cfg := config.Default()
	cfg.File.Path = filepath.Join(t.TempDir(), "logs", "app.log")
	s := Select(production, cfg, Options{Stdout: &out, Bindings: fixed})
	defer s.Handler.Close()

	write(t, s, core.InfoLevel, "both")

	data, err := os.ReadFile(cfg.File.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, out.Bytes()) {
		t.Errorf("File and console differ:\nfile:    %q\nconsole: %q", data, out.String())
	}
}

func TestSelect_UnopenableFileIsNoted(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.File.Path = filepath.Join(blocker, "app.log")

	var out bytes.Buffer
	s := Select(production, cfg, Options{Stdout: &out, Bindings: fixed})
	if len(s.Notes) != 1 || !strings.Contains(s.Notes[0], "file destination disabled") {
		t.Errorf("Unexpected notes %v", s.Notes)
	}
	write(t, s, core.InfoLevel, "console only")
	if out.Len() == 0 {
		t.Error("Expected console output")
	}
}
