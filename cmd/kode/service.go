package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gosuda/kode"
	kruntime "github.com/gosuda/kode/runtime"
)

// runVM executes cfg.file and streams its output to events. The channel is
// closed once the program finished.
func runVM(cfg appConfig, events chan<- tea.Msg) {
	defer close(events)
	src, err := os.ReadFile(cfg.file)
	if err != nil {
		events <- vmDoneMsg{err: fmt.Errorf("load program: %w", err)}
		return
	}
	in, err := kode.Compile(cfg.file, string(src), cfg.options())
	if err != nil {
		events <- vmDoneMsg{err: err}
		return
	}
	in.SetOutputHook(func(out kruntime.Output) {
		events <- vmOutputMsg{out: out}
	})

	v, err := in.Execute()
	events <- vmDoneMsg{result: v, err: err}
}
