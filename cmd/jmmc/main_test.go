package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/jmm/internal/config"
)

func TestRunCheckReportsDiagnostics(t *testing.T) {
	src := `class Dog extends Animal {}
class Bad extends Ghost {}
class Dog {}
class Animal {}
`
	filename := writeTempJavaFile(t, "Zoo.java", src)
	code, out, errOut := captureOutput(t, func() int {
		return runCheck(testConfig(t), []string{filename})
	})

	if code != 1 {
		t.Fatalf("runCheck exit=%d, want 1\nstderr:\n%s", code, errOut)
	}
	if out != "" {
		t.Fatalf("unexpected stdout:\n%s", out)
	}
	if !strings.Contains(errOut, "Zoo.java:2:19: error[J0003]: cannot find symbol: class Ghost") {
		t.Fatalf("stderr missing unresolved reference:\n%s", errOut)
	}
	if !strings.Contains(errOut, "Zoo.java:3:7: error[J0002]: duplicate class: Dog") {
		t.Fatalf("stderr missing duplicate class:\n%s", errOut)
	}
	if !strings.Contains(errOut, "Zoo.java:1:7: note: previously defined here") {
		t.Fatalf("stderr missing related note:\n%s", errOut)
	}
	// sorted by position
	if strings.Index(errOut, "Zoo.java:2:19") > strings.Index(errOut, "Zoo.java:3:7") {
		t.Fatalf("diagnostics not sorted:\n%s", errOut)
	}
	if !strings.HasSuffix(errOut, "2 errors\n") {
		t.Fatalf("stderr missing summary line:\n%s", errOut)
	}
}

func TestRunCheckClean(t *testing.T) {
	filename := writeTempJavaFile(t, "A.java", "class A extends B {}\nclass B {}\n")
	code, out, errOut := captureOutput(t, func() int {
		return runCheck(testConfig(t), []string{filename})
	})
	if code != 0 || out != "" || errOut != "" {
		t.Fatalf("exit=%d stdout=%q stderr=%q", code, out, errOut)
	}
}

func TestRunCheckEmitDecls(t *testing.T) {
	filename := writeTempJavaFile(t, "Pet.java", `
class Dog extends Animal implements Pet { int legs; }
class Animal {}
interface Pet {}
`)
	withEmitDecls(t)

	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"class Dog extends Animal implements Pet {", "  int legs", "interface Pet {"}},
		{"json", []string{`"name": "Dog"`, `"super": "Animal"`, `"kind": "interface"`}},
		{"yaml", []string{"- name: Dog", "  super: Animal", "  kind: interface"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Emit = tt.format
			code, out, errOut := captureOutput(t, func() int {
				return runCheck(cfg, []string{filename})
			})
			if code != 0 {
				t.Fatalf("runCheck exit=%d\nstderr:\n%s", code, errOut)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestRunCheckMaxErrors(t *testing.T) {
	filename := writeTempJavaFile(t, "M.java", "class A extends X {}\nclass B extends Y {}\nclass C extends Z {}\n")
	cfg := testConfig(t)
	cfg.MaxErrors = 1
	code, _, errOut := captureOutput(t, func() int {
		return runCheck(cfg, []string{filename})
	})
	if code != 1 {
		t.Fatalf("exit=%d, want 1", code)
	}
	if !strings.HasSuffix(errOut, "1 error\n") {
		t.Fatalf("want exactly one error:\n%s", errOut)
	}
}

func TestRunCheckSyntaxError(t *testing.T) {
	filename := writeTempJavaFile(t, "S.java", "class A extends {\n")
	code, _, errOut := captureOutput(t, func() int {
		return runCheck(testConfig(t), []string{filename})
	})
	if code != 1 {
		t.Fatalf("exit=%d, want 1", code)
	}
	if !strings.Contains(errOut, "error[J0001]") {
		t.Fatalf("stderr missing syntax error:\n%s", errOut)
	}
}

func TestRunCheckMissingFile(t *testing.T) {
	code, _, errOut := captureOutput(t, func() int {
		return runCheck(testConfig(t), []string{filepath.Join(t.TempDir(), "nope.java")})
	})
	if code != 1 || !strings.Contains(errOut, "error:") {
		t.Fatalf("exit=%d stderr=%q", code, errOut)
	}
}

func TestRunEmitAST(t *testing.T) {
	filename := writeTempJavaFile(t, "Dog.java", "class Dog extends Animal { void bark() {} }\n")

	code, out, errOut := captureOutput(t, func() int {
		return runEmitAST(testConfig(t), []string{filename})
	})
	if code != 0 {
		t.Fatalf("runEmitAST exit=%d\nstderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, "ClassDecl") || !strings.Contains(out, "Super: Animal") {
		t.Fatalf("text AST missing class details:\n%s", out)
	}

	cfg := testConfig(t)
	cfg.Emit = "json"
	code, out, _ = captureOutput(t, func() int {
		return runEmitAST(cfg, []string{filename})
	})
	if code != 0 || !strings.Contains(out, `"type": "ClassDecl"`) {
		t.Fatalf("json AST exit=%d:\n%s", code, out)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeTempJavaFile(t, "jmmc.toml", "max_errors = 3\nemit = \"json\"\ncolor = \"never\"\n")
	old := *configPath
	*configPath = path
	t.Cleanup(func() { *configPath = old })

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxErrors != 3 || cfg.Emit != "json" || cfg.Color != "never" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Color = "never"
	return cfg
}

func withEmitDecls(t *testing.T) {
	t.Helper()
	old := *emitDecls
	*emitDecls = true
	t.Cleanup(func() { *emitDecls = old })
}

func writeTempJavaFile(t *testing.T, name, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
