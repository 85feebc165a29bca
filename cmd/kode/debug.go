package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/gosuda/kode/lexer"
	"github.com/gosuda/kode/parser"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func dumpTokens(w io.Writer, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lx := lexer.New(string(src))
	tokens, err := lx.Tokenize()
	if err != nil {
		return fmt.Errorf("%s: %s", path, describeError(err))
	}
	positions := lx.Positions()
	for i, tok := range tokens {
		fmt.Fprintf(w, "%4d:%-4d %s\n", positions[i].Line, positions[i].Column, tok)
	}
	return nil
}

func dumpAST(w io.Writer, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	stmts, err := parser.ParseSource(path, string(src))
	if err != nil {
		return fmt.Errorf("%s: %s", path, describeError(err))
	}
	for i, st := range stmts {
		fmt.Fprintf(w, "#%d ", i)
		dumpConfig.Fdump(w, st)
	}
	return nil
}
