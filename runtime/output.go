package kruntime

import "io"

// Output is one line produced by a print statement.
type Output struct {
	Text string `json:"text"`
}

// SetOutputHook routes print output to fn instead of Options.Stdout. A nil fn
// restores the default.
func (in *Interpreter) SetOutputHook(fn func(Output)) {
	in.output = fn
}

func (in *Interpreter) emit(text string) {
	if in.output != nil {
		in.output(Output{Text: text})
		return
	}
	_, _ = io.WriteString(in.stdout, text+"\n")
}
