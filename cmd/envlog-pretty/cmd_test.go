package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestCommand_RendersStdin(t *testing.T) {
	in := strings.NewReader(`{"level":30,"time":"2024-05-01T10:20:30.123Z","name":"svc","msg":"hello","k":"v"}` + "\n" +
		"plain text\n" +
		`{"level":50,"msg":"no newline"}`)
	var out bytes.Buffer

	c := newCommand()
	c.SetIn(in)
	c.SetOut(&out)
	c.SetArgs([]string{"--color", "never"})
	if err := c.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "10:20:30.123 LOG (svc): hello k=v\n" +
		"plain text\n" +
		"ERR: no newline\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestCommand_RejectsUnknownColor(t *testing.T) {
	c := newCommand()
	c.SetIn(strings.NewReader(""))
	c.SetOut(&bytes.Buffer{})
	c.SetArgs([]string{"--color", "sometimes"})
	if err := c.Execute(); err == nil {
		t.Error("Expected error for invalid --color")
	}
}
