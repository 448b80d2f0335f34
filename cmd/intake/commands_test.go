package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractCommand_RequiresInput(t *testing.T) {
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"extract", "--rules-only"})
	err := rootCmd.Execute()
	if err == nil {
		t.Error("extract with no input should fail")
	}
	if err != nil && !strings.Contains(err.Error(), "description") {
		t.Errorf("err = %v, want input guidance", err)
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := pidFilePath(dir)

	if err := writePIDFile(path); err != nil {
		t.Fatalf("writePIDFile: %v", err)
	}
	pid, err := readPIDFile(path)
	if err != nil {
		t.Fatalf("readPIDFile: %v", err)
	}
	if pid <= 0 {
		t.Errorf("pid = %d, want positive", pid)
	}

	removePIDFile(path)
	if _, err := readPIDFile(path); err == nil {
		t.Error("readPIDFile after remove should fail")
	}
}

func TestPIDFilePath(t *testing.T) {
	got := pidFilePath("/tmp/data")
	want := filepath.Join("/tmp/data", "intake.pid")
	if got != want {
		t.Errorf("pidFilePath = %q, want %q", got, want)
	}
}

func TestColorize(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	result := colorize(colorGreen, "hello")
	if strings.Contains(result, "\033") {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", result)
	}

	noColor = false
	result = colorize(colorGreen, "hello")
	if !strings.Contains(result, "\033") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", result)
	}
}

func TestNotes(t *testing.T) {
	oldColor, oldWriter := noColor, noteWriter
	defer func() { noColor, noteWriter = oldColor, oldWriter }()
	noColor = true

	var buf bytes.Buffer
	noteWriter = &buf

	printWarning("Ollama not reachable, extracting with %s only", "rules")
	if got := buf.String(); got != "⚠ Ollama not reachable, extracting with rules only\n" {
		t.Errorf("printWarning output = %q", got)
	}

	buf.Reset()
	printStatus("Server", "running on port %d", 8000)
	if got := buf.String(); got != "  Server: running on port 8000\n" {
		t.Errorf("printStatus output = %q", got)
	}

	buf.Reset()
	printSuccess("done")
	printError("failed")
	for _, glyph := range []string{"✓", "✗"} {
		if !strings.Contains(buf.String(), glyph) {
			t.Errorf("notes output %q missing %q", buf.String(), glyph)
		}
	}
}
