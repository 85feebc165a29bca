package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/oarkflow/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/kode/config"
	"github.com/gosuda/kode/diag"
)

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"fn main() {", true},
		{"fn main() {\n  print 1;", true},
		{"let x = 1", true},
		{`print "abc`, true},
		{"/* open", true},
		{"let x = 1;", false},
		{"fn main() { }", false},
		{"let = ;", false},
		{"print 1 & 2;", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, incomplete(tt.src), "src %q", tt.src)
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, lvl)

	lvl, err = parseLevel("")
	require.NoError(t, err)
	assert.Equal(t, log.ErrorLevel, lvl)

	_, err = parseLevel("loud")
	assert.Error(t, err)
}

func TestModuleDir(t *testing.T) {
	cfg := appConfig{file: filepath.Join("progs", "main.kode"), settings: config.Default()}
	assert.Equal(t, "progs", cfg.moduleDir())

	cfg.settings.ModuleDir = "/lib"
	assert.Equal(t, "/lib", cfg.moduleDir())
	assert.Equal(t, 10000, cfg.options().MaxCallDepth)

	assert.Equal(t, ".", appConfig{}.moduleDir())
}

func TestDescribeError(t *testing.T) {
	err := diag.Newf(diag.KindDivisionByZero, "Division by zero")
	assert.Equal(t, "division by zero: Division by zero", describeError(err))
	assert.Equal(t, "plain", describeError(errors.New("plain")))
}

func TestDumps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.kode")
	require.NoError(t, os.WriteFile(path, []byte("let x = 1;"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, dumpTokens(&buf, path))
	assert.Contains(t, buf.String(), "Identifier(x)")
	assert.Contains(t, buf.String(), "Int(1)")

	buf.Reset()
	require.NoError(t, dumpAST(&buf, path))
	assert.Contains(t, buf.String(), "LetStmt")

	require.NoError(t, os.WriteFile(path, []byte("let = ;"), 0o644))
	assert.ErrorContains(t, dumpAST(&buf, path), "parse error")
}
