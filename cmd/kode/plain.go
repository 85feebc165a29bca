package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/gosuda/kode"
	"github.com/gosuda/kode/diag"
)

var (
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func runPlain(cfg appConfig) error {
	opts := cfg.options()
	opts.Stdout = os.Stdout
	if _, err := kode.RunFile(cfg.file, opts); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(describeError(err)))
		return cli.Exit("", 1)
	}
	return nil
}

// describeError prefixes kode errors with their kind. Plain I/O errors are
// returned as is.
func describeError(err error) string {
	kind := diag.KindOf(err)
	if kind == diag.KindUnknown {
		return err.Error()
	}
	return fmt.Sprintf("%s: %v", kind, err)
}
