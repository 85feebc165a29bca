package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/gosuda/kode/diag"
	"github.com/gosuda/kode/lexer"
	"github.com/gosuda/kode/parser"
	kruntime "github.com/gosuda/kode/runtime"
)

const (
	historyFile = ".kode_history"
	promptMain  = "kode> "
	promptCont  = "....> "
	replFile    = "repl"
)

const replHelp = `:help          show this help
:run           call main (or app) as defined so far
:modules       list imported modules in lookup order
:load FILE     evaluate a file into the session
:reset         start a fresh session
:quit          leave
`

func runREPL(cfg appConfig) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	session := newSession(cfg)
	if cfg.file != "" {
		if err := loadInto(session, cfg.file); err != nil {
			fmt.Println(errStyle.Render(describeError(err)))
		}
	}
	fmt.Println(dimStyle.Render("kode interactive session, :help for commands"))

	for {
		code, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			var quit bool
			session, quit = handleCommand(cfg, session, trimmed)
			if quit {
				break
			}
			continue
		}

		v, err := session.Eval(replFile, code)
		if err != nil {
			fmt.Println(errStyle.Render(describeError(err)))
			continue
		}
		if v.Kind() != kruntime.VoidKind {
			fmt.Println(valueStyle.Render(v.String()))
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

func newSession(cfg appConfig) *kruntime.Session {
	opts := cfg.options()
	opts.Stdout = os.Stdout
	return kruntime.NewSession(opts)
}

func loadInto(session *kruntime.Session, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = session.Eval(path, string(src))
	return err
}

func handleCommand(cfg appConfig, session *kruntime.Session, line string) (*kruntime.Session, bool) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":help":
		fmt.Print(replHelp)
	case ":quit", ":exit":
		return session, true
	case ":run":
		v, err := session.Run()
		if err != nil {
			fmt.Println(errStyle.Render(describeError(err)))
			break
		}
		if v.Kind() != kruntime.VoidKind {
			fmt.Println(valueStyle.Render(v.String()))
		}
	case ":modules":
		for _, name := range session.Interpreter().Registry().Modules() {
			fmt.Println(name)
		}
	case ":load":
		if len(fields) < 2 {
			fmt.Println("usage: :load FILE")
			break
		}
		if err := loadInto(session, fields[1]); err != nil {
			fmt.Println(errStyle.Render(describeError(err)))
		}
	case ":reset":
		session = newSession(cfg)
		fmt.Println(dimStyle.Render("session reset"))
	default:
		fmt.Println("unknown command, :help lists them")
	}
	return session, false
}

// readStatement keeps prompting while the buffer only fails because input
// ended early. An empty continuation line submits the buffer as is.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// ctrl+c drops the pending input
			return "", true
		}
		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src fails only because it ends too soon: an
// unterminated string or comment, or a parse error at end of input.
func incomplete(src string) bool {
	lx := lexer.New(src)
	if _, err := lx.Tokenize(); err != nil {
		var de *diag.Error
		return errors.As(err, &de) && strings.HasPrefix(de.Msg, "Unterminated")
	}
	positions := lx.Positions()
	end := positions[len(positions)-1]

	_, err := parser.ParseSource(replFile, src)
	var de *diag.Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Kind == diag.KindParse && de.Pos == end
}
