package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const source = `class Main {
  fun main(): Unit = println("hi")
}
`

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	c := &cli{args: append([]string{"samplc"}, args...), stdout: &out, stderr: &errOut}
	code = c.run()
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionAndHelp(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != 0 || !strings.HasPrefix(out, "samplc ") {
		t.Errorf("version: code %d, output %q", code, out)
	}
	code, out, _ = runCLI(t, "help")
	if code != 0 || !strings.Contains(out, "Usage: samplc") {
		t.Errorf("help: code %d, output %q", code, out)
	}
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "frobnicate")
	if code != 2 || !strings.Contains(errOut, "Unknown command: frobnicate") {
		t.Errorf("code %d, stderr %q", code, errOut)
	}
	if code, _, _ := runCLI(t); code != 2 {
		t.Errorf("no arguments: code %d", code)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.sampl", source)
	bad := writeFile(t, dir, "bad.sampl", "class Main {\n  val x = y\n}\n")

	code, out, _ := runCLI(t, "check", good)
	if code != 0 || !strings.Contains(out, "ok") {
		t.Errorf("check good: code %d, output %q", code, out)
	}

	code, _, errOut := runCLI(t, "check", bad)
	if code != 1 {
		t.Errorf("check bad: code %d", code)
	}
	for _, want := range []string{"error[A001]", bad + ":2:", "val x = y", "^"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr does not contain %q:\n%s", want, errOut)
		}
	}
}

func TestCheckRejectsBadArguments(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{"check"},
		{"check", "-x", "a.sampl"},
		{"check", "a.sampl", "b.sampl"},
		{"check", writeFile(t, dir, "notes.txt", source)},
		{"check", filepath.Join(dir, "missing.sampl")},
	}
	for _, args := range tests {
		if code, _, errOut := runCLI(t, args...); code != 1 || errOut == "" {
			t.Errorf("%v: code %d, stderr %q", args, code, errOut)
		}
	}
}

func TestFmt(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.sampl", "class Main { val x = (1 + 2) }")

	code, out, _ := runCLI(t, "fmt", path)
	if code != 0 || out != "class Main {\n  val x = 1 + 2\n}\n" {
		t.Errorf("fmt: code %d, output %q", code, out)
	}

	if code, _, errOut := runCLI(t, "fmt", "-w", path); code != 0 {
		t.Fatalf("fmt -w: code %d, stderr %q", code, errOut)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != out {
		t.Errorf("file after fmt -w:\n%s", data)
	}
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.sampl", source)
	out := filepath.Join(dir, "out", "Main.kt")

	code, stdout, errOut := runCLI(t, "build", "-o", out, path)
	if code != 0 {
		t.Fatalf("build: code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(stdout, "-> "+out) {
		t.Errorf("unexpected output %q", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "fun main(args: Array<String>) {\n    Main.main()\n}") {
		t.Errorf("generated kotlin:\n%s", data)
	}
}

func TestBuildUsesProjectConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sampl.yaml", "indent:\n  host: 2\noutput:\n  dir: gen\n  entry_point: false\ncache:\n  enabled: true\n")
	path := writeFile(t, dir, "main.sampl", source)

	code, first, errOut := runCLI(t, "build", path)
	if code != 0 {
		t.Fatalf("build: code %d, stderr %q", code, errOut)
	}
	if strings.Contains(first, "cached") {
		t.Errorf("first build reported a cache hit: %q", first)
	}
	data, err := os.ReadFile(filepath.Join(dir, "gen", "main.kt"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Array<String>") {
		t.Error("entry point emitted although disabled")
	}
	if !strings.Contains(string(data), "class Main {\n  companion object {\n") {
		t.Errorf("host indentation ignored:\n%s", data)
	}

	code, second, _ := runCLI(t, "build", path)
	if code != 0 || !strings.Contains(second, "cached") {
		t.Errorf("second build: code %d, output %q", code, second)
	}
	if _, err := os.Stat(filepath.Join(dir, ".sampl", "cache.db")); err != nil {
		t.Errorf("cache database not created: %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sampl.yaml", "cache:\n  enabled: true\n")
	path := writeFile(t, dir, "main.sampl", source)
	t.Chdir(dir)

	if code, _, errOut := runCLI(t, "build", path); code != 0 {
		t.Fatalf("build: code %d, stderr %q", code, errOut)
	}

	code, out, _ := runCLI(t, "cache", "ls")
	if code != 0 || strings.Count(out, "\n") != 1 {
		t.Errorf("cache ls: code %d, output %q", code, out)
	}

	code, out, _ = runCLI(t, "cache", "clear")
	if code != 0 || out != "Removed 1 cached builds\n" {
		t.Errorf("cache clear: code %d, output %q", code, out)
	}

	code, out, _ = runCLI(t, "cache", "ls")
	if code != 0 || out != "No cached builds\n" {
		t.Errorf("cache ls after clear: code %d, output %q", code, out)
	}

	if code, _, _ := runCLI(t, "cache", "purge"); code != 1 {
		t.Errorf("cache purge: code %d", code)
	}
}
