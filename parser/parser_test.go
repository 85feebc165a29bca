package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/diag"
	"github.com/gosuda/kode/lexer"
)

func mustParse(t *testing.T, src string) []ast.Statement {
	t.Helper()
	stmts, err := ParseSource("test.kode", src)
	require.NoError(t, err)
	return stmts
}

func diffStmts(t *testing.T, want, got []ast.Statement) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFunctions(t *testing.T) {
	got := mustParse(t, `
fn main() { print 1; }
fn add(a, b) { return a + b; }
`)
	diffStmts(t, []ast.Statement{
		ast.FuncDef{
			Origin:  "test",
			IsEntry: true,
			Body:    []ast.Statement{ast.PrintStmt{Value: ast.IntLit{Value: 1}}},
		},
		ast.FuncDef{
			Origin: "test",
			Name:   "add",
			Params: []string{"a", "b"},
			Body: []ast.Statement{ast.ReturnStmt{Value: ast.BinaryExpr{
				Op:    ast.OpAdd,
				Left:  ast.Ident{Name: "a"},
				Right: ast.Ident{Name: "b"},
			}}},
		},
	}, got)
}

func TestParsePrecedence(t *testing.T) {
	got := mustParse(t, "1 + 2 * 3 < 10 == true || !false && -x % 2 - 1;")
	want := []ast.Statement{ast.ExprStmt{Expr: ast.BinaryExpr{
		Op: ast.OpOr,
		Left: ast.BinaryExpr{
			Op: ast.OpEqual,
			Left: ast.BinaryExpr{
				Op: ast.OpLess,
				Left: ast.BinaryExpr{
					Op:   ast.OpAdd,
					Left: ast.IntLit{Value: 1},
					Right: ast.BinaryExpr{
						Op:    ast.OpMul,
						Left:  ast.IntLit{Value: 2},
						Right: ast.IntLit{Value: 3},
					},
				},
				Right: ast.IntLit{Value: 10},
			},
			Right: ast.BoolLit{Value: true},
		},
		Right: ast.BinaryExpr{
			Op:   ast.OpAnd,
			Left: ast.UnaryExpr{Op: ast.OpNot, Operand: ast.BoolLit{Value: false}},
			Right: ast.BinaryExpr{
				Op: ast.OpSub,
				Left: ast.BinaryExpr{
					Op:    ast.OpMod,
					Left:  ast.UnaryExpr{Op: ast.OpNeg, Operand: ast.Ident{Name: "x"}},
					Right: ast.IntLit{Value: 2},
				},
				Right: ast.IntLit{Value: 1},
			},
		},
	}}}
	diffStmts(t, want, got)
}

func TestParseLeftAssociative(t *testing.T) {
	got := mustParse(t, "10 - 4 - 3;")
	diffStmts(t, []ast.Statement{ast.ExprStmt{Expr: ast.BinaryExpr{
		Op: ast.OpSub,
		Left: ast.BinaryExpr{
			Op:    ast.OpSub,
			Left:  ast.IntLit{Value: 10},
			Right: ast.IntLit{Value: 4},
		},
		Right: ast.IntLit{Value: 3},
	}}}, got)
}

func TestParseAssignments(t *testing.T) {
	got := mustParse(t, "x = 1; a[0][1] = 2; y = z = 3; print (w = 4);")
	diffStmts(t, []ast.Statement{
		ast.AssignStmt{Name: "x", Value: ast.IntLit{Value: 1}},
		ast.ExprStmt{Expr: ast.CallExpr{
			Callee: ast.Ident{Name: ast.ArrayAssignIntrinsic},
			Args: []ast.Expr{
				ast.IndexExpr{Target: ast.Ident{Name: "a"}, Index: ast.IntLit{Value: 0}},
				ast.IntLit{Value: 1},
				ast.IntLit{Value: 2},
			},
		}},
		ast.AssignStmt{Name: "y", Value: ast.AssignExpr{Name: "z", Value: ast.IntLit{Value: 3}}},
		ast.PrintStmt{Value: ast.AssignExpr{Name: "w", Value: ast.IntLit{Value: 4}}},
	}, got)
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, err := ParseSource("", "f() = 1;")
	require.Error(t, err)
	assert.Equal(t, diag.KindParse, diag.KindOf(err))
	assert.Contains(t, err.Error(), "Invalid assignment target")
}

func TestParseControlFlow(t *testing.T) {
	got := mustParse(t, `
if (a) { print 1; } else if (b) { print 2; } else { print 3; }
while (c) { }
for (let i = 0; i < 3; i = i + 1) { print i; }
for (;;) { }
try { return; } catch { print "e"; }
{ let q = [1, 2]; }
`)
	diffStmts(t, []ast.Statement{
		ast.IfStmt{
			Cond: ast.Ident{Name: "a"},
			Then: []ast.Statement{ast.PrintStmt{Value: ast.IntLit{Value: 1}}},
			Else: []ast.Statement{ast.IfStmt{
				Cond: ast.Ident{Name: "b"},
				Then: []ast.Statement{ast.PrintStmt{Value: ast.IntLit{Value: 2}}},
				Else: []ast.Statement{ast.PrintStmt{Value: ast.IntLit{Value: 3}}},
			}},
		},
		ast.WhileStmt{Cond: ast.Ident{Name: "c"}},
		ast.ForStmt{
			Init: ast.LetStmt{Name: "i", Value: ast.IntLit{Value: 0}},
			Cond: ast.BinaryExpr{Op: ast.OpLess, Left: ast.Ident{Name: "i"}, Right: ast.IntLit{Value: 3}},
			Update: ast.ExprStmt{Expr: ast.AssignExpr{
				Name:  "i",
				Value: ast.BinaryExpr{Op: ast.OpAdd, Left: ast.Ident{Name: "i"}, Right: ast.IntLit{Value: 1}},
			}},
			Body: []ast.Statement{ast.PrintStmt{Value: ast.Ident{Name: "i"}}},
		},
		ast.ForStmt{},
		ast.TryStmt{
			Body:  []ast.Statement{ast.ReturnStmt{Value: ast.BoolLit{Value: false}}},
			Catch: []ast.Statement{ast.PrintStmt{Value: ast.StringLit{Value: "e"}}},
		},
		ast.BlockStmt{Body: []ast.Statement{ast.LetStmt{Name: "q", Value: ast.ArrayLit{Elems: []ast.Expr{
			ast.IntLit{Value: 1}, ast.IntLit{Value: 2},
		}}}}},
	}, got)
}

func TestParseClosureAndCalls(t *testing.T) {
	got := mustParse(t, "let f = fn(x) { return x; }; arr[0](1, 2.5);")
	diffStmts(t, []ast.Statement{
		ast.LetStmt{Name: "f", Value: ast.ClosureExpr{
			Params: []string{"x"},
			Body:   []ast.Statement{ast.ReturnStmt{Value: ast.Ident{Name: "x"}}},
		}},
		ast.ExprStmt{Expr: ast.CallExpr{
			Callee: ast.IndexExpr{Target: ast.Ident{Name: "arr"}, Index: ast.IntLit{Value: 0}},
			Args:   []ast.Expr{ast.IntLit{Value: 1}, ast.FloatLit{Value: 2.5}},
		}},
	}, got)
}

func TestParseImport(t *testing.T) {
	got := mustParse(t, "import math;")
	diffStmts(t, []ast.Statement{ast.ImportStmt{Module: "math"}}, got)
}

func TestParseModuleSkipsTopLevelCode(t *testing.T) {
	got, err := ParseModuleSource("lib/math.kode", `
let ignored = 1;
print ignored;
import other;
let c = fn() { return 0; };
fn add(a, b) { return a + b; }
`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ast.ImportStmt{Module: "other"}, got[0])
	def, ok := got[1].(ast.FuncDef)
	require.True(t, ok)
	assert.Equal(t, "add", def.Name)
	assert.Equal(t, "math", def.Origin)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"missing semicolon", "let x = 1\nprint x;", "Expected ';' after variable declaration at line 2, column 1"},
		{"let without value", "let x;", "Expected '=' after variable name in let declaration at line 1, column 6"},
		{"unclosed block at eof", "fn main() {\n  print 1;", "Expected '}' after block at line 2, column 11"},
		{"bad primary", "print ;", "Expected expression, got ; at line 1, column 7"},
		{"missing catch", "try { } print 1;", "Expected 'catch' after try block at line 1, column 9"},
		{"anonymous fn statement", "fn (x) { }", "Expected function name after 'fn' at line 1, column 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource("", tt.src)
			require.Error(t, err)
			assert.Equal(t, tt.msg, err.Error())
			assert.Equal(t, diag.KindParse, diag.KindOf(err))
		})
	}
}

func TestParseArgumentLimit(t *testing.T) {
	args := strings.TrimSuffix(strings.Repeat("1,", 256), ",")
	_, err := ParseSource("", "f("+args+");")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot have more than 255 arguments")

	args = strings.TrimSuffix(strings.Repeat("1,", 255), ",")
	_, err = ParseSource("", "f("+args+");")
	require.NoError(t, err)
}

func TestParseNestingLimit(t *testing.T) {
	src := strings.Repeat("(", 600) + "1" + strings.Repeat(")", 600) + ";"
	_, err := ParseSource("", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expression nesting too deep")

	src = strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100) + ";"
	_, err = ParseSource("", src)
	require.NoError(t, err)
}

func TestParseWithoutPositions(t *testing.T) {
	tokens, err := lexer.Tokenize("let = 1;")
	require.NoError(t, err)
	_, err = New("", tokens).Parse()
	require.Error(t, err)
	assert.Equal(t, "Expected variable name after 'let'", err.Error())
}

func TestFileStem(t *testing.T) {
	assert.Equal(t, "main", fileStem(""))
	assert.Equal(t, "math", fileStem("lib/math.kode"))
	assert.Equal(t, "prog", fileStem("prog"))
	assert.Equal(t, "archive.tar", fileStem("archive.tar.gz"))
}
