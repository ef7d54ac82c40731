package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const collapsedFixture = "root;a;leaf 10\nroot;b 5\n"

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.collapsed")
	if err := os.WriteFile(path, []byte(collapsedFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("proftrace %v: %v\noutput: %s", args, err, buf.String())
	}
	return buf.String()
}

func TestRootCmdHasExpectedSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"load", "stats", "export"} {
		if !names[want] {
			t.Errorf("root command missing %q subcommand", want)
		}
	}
}

func TestLoadCmdPrintsStateSnapshot(t *testing.T) {
	out := runCmd(t, "load", writeFixture(t))
	if !strings.Contains(out, `"generation"`) {
		t.Errorf("load output should contain a state snapshot, got: %s", out)
	}
}

func TestStatsCmdPrintsCounts(t *testing.T) {
	out := runCmd(t, "stats", writeFixture(t))
	if !strings.Contains(out, "threads:") || !strings.Contains(out, "spans:") {
		t.Errorf("stats output missing expected fields, got: %s", out)
	}
}

func TestExportJSONCmdWritesToStdout(t *testing.T) {
	out := runCmd(t, "export", "json", writeFixture(t))
	if !strings.Contains(out, `"version"`) {
		t.Errorf("export json output should contain the schema version, got: %s", out)
	}
}

func TestExportSVGCmdWritesToStdout(t *testing.T) {
	out := runCmd(t, "export", "svg", writeFixture(t), "--width", "400", "--height", "200")
	if !strings.Contains(out, "<svg") {
		t.Errorf("export svg output should be an SVG document, got: %s", out)
	}
}

func TestLoadCmdUnreadableFileReturnsError(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"load", filepath.Join(t.TempDir(), "missing.json")})
	if err := root.Execute(); err == nil {
		t.Fatal("load with a nonexistent file should return an error")
	}
}
