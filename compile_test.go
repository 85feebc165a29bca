package kode_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gosuda/kode"
	"github.com/gosuda/kode/diag"
	"github.com/gosuda/kode/lexer"
	kruntime "github.com/gosuda/kode/runtime"
)

func runCaptured(t *testing.T, src string, modules kruntime.ModuleSource) (string, kruntime.Value, error) {
	t.Helper()
	var out bytes.Buffer
	if modules == nil {
		modules = kruntime.MapSource{}
	}
	v, err := kode.Run("main.kode", src, kruntime.Options{Stdout: &out, Modules: modules})
	return out.String(), v, err
}

func TestRunPrintsArrayElement(t *testing.T) {
	out, _, err := runCaptured(t, "fn main(){ let a = [1,2,3]; print a[1]; }", nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "2\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCompileAndRunBasicFlow(t *testing.T) {
	src := `
import greet;

fn square(n) {
    return n * n;
}

fn main() {
    let total = 0;
    for (let i = 1; i <= 3; i = i + 1) {
        total = total + square(i);
    }
    if (total == 14) {
        print hello("ok");
    } else {
        print "ng";
    }
    let items = [total, 2.5, true];
    items[2] = "done";
    print items;
    return total;
}
`
	modules := kruntime.MapSource{
		"greet.kode": `fn hello(who) { return "hello " + who; }`,
	}
	out, v, err := runCaptured(t, src, modules)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected output count: %d (%q)", len(lines), out)
	}
	if lines[0] != "hello ok" {
		t.Fatalf("unexpected first output: %q", lines[0])
	}
	if lines[1] != "[14, 2.5, done]" {
		t.Fatalf("unexpected second output: %q", lines[1])
	}
	if v.Kind() != kruntime.IntKind || v.Int64() != 14 {
		t.Fatalf("unexpected result: %v", v)
	}
}

func TestClosureCapturesSnapshot(t *testing.T) {
	out, _, err := runCaptured(t, `
fn main() {
    let x = 1;
    let c = fn() { return x; };
    x = 2;
    let fns = [c];
    print fns[0]();
    print x;
}`, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "1\n2\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestTryCatchContinues(t *testing.T) {
	out, _, err := runCaptured(t, `
fn app() {
    try {
        print 10 / 0;
    } catch {
        print "recovered";
    }
    print "end";
}`, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "recovered\nend\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRuntimeErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind diag.Kind
	}{
		{"lex", "fn main() { print 1 & 2; }", diag.KindLex},
		{"parse", "fn main() { print 1 }", diag.KindParse},
		{"import", "import nowhere; fn main() { }", diag.KindImport},
		{"undefined variable", "fn main() { print y; }", diag.KindUndefinedVariable},
		{"undefined function", "fn main() { nope(); }", diag.KindUndefinedFunction},
		{"arity", "fn f(a) { } fn main() { f(1, 2); }", diag.KindArityMismatch},
		{"type", "fn main() { print 1 + true; }", diag.KindTypeMismatch},
		{"division", "fn main() { print 1 % 0; }", diag.KindDivisionByZero},
		{"bounds", "fn main() { print [1, 2, 3][3]; }", diag.KindIndexOutOfBounds},
		{"assign target", "fn main() { let a = [[1]]; [a][0][0] = 1; }", diag.KindInvalidAssignmentTarget},
		{"entry", "fn helper() { }", diag.KindNoEntryPoint},
		{"loop", "fn main() { while (true) { } }", diag.KindInfiniteLoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCaptured(t, tt.src, nil)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := diag.KindOf(err); got != tt.kind {
				t.Fatalf("unexpected kind: got %v want %v (%v)", got, tt.kind, err)
			}
		})
	}
}

func TestRunFileResolvesImportsNextToFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lib.kode"), []byte("fn seven() { return 7; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	mainPath := filepath.Join(dir, "prog.kode")
	if err := os.WriteFile(mainPath, []byte("import lib;\nfn main() { return seven() * 6; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	v, err := kode.RunFile(mainPath, kruntime.Options{Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if v.Int64() != 42 {
		t.Fatalf("unexpected result: %v", v)
	}

	if _, err := kode.RunFile(filepath.Join(dir, "absent.kode"), kruntime.Options{}); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestTokenizeAndParse(t *testing.T) {
	tokens, err := kode.Tokenize("let x = 1;")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	if len(tokens) != 6 || tokens[0].Kind != lexer.Let || tokens[5].Kind != lexer.EOF {
		t.Fatalf("unexpected tokens: %v", tokens)
	}

	stmts, err := kode.Parse("main.kode", "fn main() { } fn app() { }")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("unexpected statement count: %d", len(stmts))
	}
}

func TestCompileDeclaresWithoutRunning(t *testing.T) {
	var out bytes.Buffer
	in, err := kode.Compile("main.kode", `fn main() { print "ran"; }`, kruntime.Options{Stdout: &out})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("compile produced output: %q", out.String())
	}
	if _, err := in.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if out.String() != "ran\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunFilesCollectsOutput(t *testing.T) {
	files := map[string]string{
		"game.kode": "import util;\nfn main() { print twice(4); print \"end\"; return 1; }",
		"util.kode": "fn twice(n) { return n * 2; }",
	}
	outputs, v, err := kode.RunFiles(files, "game", kruntime.Options{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(outputs) != 2 || outputs[0].Text != "8" || outputs[1].Text != "end" {
		t.Fatalf("unexpected outputs: %v", outputs)
	}
	if v.Int64() != 1 {
		t.Fatalf("unexpected result: %v", v)
	}

	if _, _, err := kode.RunFiles(files, "", kruntime.Options{}); err == nil {
		t.Fatalf("expected missing entry error")
	}
}
