package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runArgs(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	code, stdout, stderr := runArgs("1+2-3")
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
	}
	want := ".intel_syntax noprefix\n.global main\nmain:\n mov rax, 1\n add rax, 2\n sub rax, 3\n ret\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
	if stderr != "" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestRunArch(t *testing.T) {
	code, stdout, stderr := runArgs("--arch", "riscv", "10 - 3 + 4")
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
	}
	want := "  .globl main\nmain:\n  li a0, 10\n  addi a0, a0, -3\n  addi a0, a0, 4\n  ret\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"No arguments", []string{}, "addcc: accepts 1 arg(s), received 0\n"},
		{"Two arguments", []string{"1", "2"}, "addcc: accepts 1 arg(s), received 2\n"},
		{"Unknown arch", []string{"--arch", "z80", "1"}, "addcc: unsupported architecture: z80\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runArgs(tt.args...)
			if code != 1 {
				t.Errorf("exit code %d, want 1", code)
			}
			if stdout != "" {
				t.Errorf("assembly produced on usage error:\n%s", stdout)
			}
			if stderr != tt.want {
				t.Errorf("stderr = %q, want %q", stderr, tt.want)
			}
		})
	}
}

func TestRunNilArgs(t *testing.T) {
	if code, _, _ := runArgs(); code != 1 {
		t.Errorf("exit code %d, want 1", code)
	}
}

func TestRunCompileErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1+", "1+\n  ^ expected a number\n"},
		{"1*2", "1*2\n ^ cannot tokenize\n"},
		{"", "\n^ expected a number\n"},
		{"4 4", "4 4\n  ^ expected '-'\n"},
		{"-1", "-1\n^ expected a number\n"},
		{"- 3", "- 3\n^ expected a number\n"},
		{"-1+2", "-1+2\n^ expected a number\n"},
	}

	for _, tt := range tests {
		code, stdout, stderr := runArgs(tt.input)
		if code != 1 {
			t.Errorf("%q: exit code %d, want 1", tt.input, code)
		}
		if stdout != "" {
			t.Errorf("%q: assembly produced on error:\n%s", tt.input, stdout)
		}
		if stderr != tt.want {
			t.Errorf("%q: stderr = %q, want %q", tt.input, stderr, tt.want)
		}
	}
}

func TestProtectExpr(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"1+2"}, []string{"1+2"}},
		{[]string{"-1"}, []string{"--", "-1"}},
		{[]string{"--arch", "x64", "- 3"}, []string{"--arch", "x64", "--", "- 3"}},
		{[]string{"-v", "-1"}, []string{"-v", "--", "-1"}},
		{[]string{"1", "-v"}, []string{"1", "-v"}},
		{[]string{"1", "--arch=x64"}, []string{"1", "--arch=x64"}},
		{[]string{"-o", "-out.s"}, []string{"-o", "-out.s"}},
		{[]string{"--", "-1"}, []string{"--", "-1"}},
		{[]string{"-"}, []string{"-"}},
		{[]string{"--help"}, []string{"--help"}},
	}

	for _, tt := range tests {
		got := protectExpr(newRootCmd(), tt.args)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("protectExpr(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestRunFlagAfterExpr(t *testing.T) {
	code, stdout, stderr := runArgs("-1", "--arch", "x64")
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("assembly produced on error:\n%s", stdout)
	}
	if !strings.HasPrefix(stderr, "addcc: ") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.s")
	code, stdout, stderr := runArgs("-o", path, "7")
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout not empty with -o: %q", stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), " mov rax, 7\n ret\n") {
		t.Errorf("output file =\n%s", data)
	}
}

func TestRunOutputFileNotCreatedOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.s")
	if code, _, _ := runArgs("-o", path, "7+"); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output file exists after a failed compile: %v", err)
	}
}

func TestRunFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.txt")
	if err := os.WriteFile(path, []byte("1 +\n2 - 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runArgs("-f", "--arch", "x64", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
	}
	want := "  .globl main\nmain:\n  mov $1, %rax\n  add $2, %rax\n  sub $3, %rax\n  ret\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}

func TestRunFromFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("1 +\n2 * 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runArgs("-f", path)
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	prefix := path + ":2: "
	want := prefix + "2 * 3\n" + strings.Repeat(" ", len(prefix)+2) + "^ cannot tokenize\n"
	if stderr != want {
		t.Errorf("stderr =\n%q\nwant\n%q", stderr, want)
	}
}

func TestRunMissingFile(t *testing.T) {
	code, _, stderr := runArgs("-f", filepath.Join(t.TempDir(), "missing.txt"))
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.HasPrefix(stderr, "addcc: cannot open ") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunVerbose(t *testing.T) {
	code, _, stderr := runArgs("-v", "1+2")
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr)
	}
	want := "addcc: compiling 3 bytes for intel\naddcc: emitted 3 instructions (1 terms)\n"
	if stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestEvalLine(t *testing.T) {
	var stdout, stderr bytes.Buffer
	evalLine(Intel{}, "10 - 3 + 4", &stdout, &stderr)
	if !strings.HasSuffix(stdout.String(), " ret\n# => 11\n") {
		t.Errorf("stdout =\n%s", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q", stderr.String())
	}

	stdout.Reset()
	evalLine(Intel{}, "1 -", &stdout, &stderr)
	if stdout.Len() != 0 {
		t.Errorf("stdout on error = %q", stdout.String())
	}
	if stderr.String() != "1 -\n   ^ expected a number\n" {
		t.Errorf("stderr = %q", stderr.String())
	}
}
