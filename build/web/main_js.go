//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/gosuda/kode"
	kruntime "github.com/gosuda/kode/runtime"
)

type runResult struct {
	Outputs []kruntime.Output `json:"outputs"`
	Result  string            `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// runProgram is exposed as kodeRun(filesJSON, entry?). Each print line is
// also forwarded to kodeOutput when the page defines it.
func runProgram(this js.Value, args []js.Value) any {
	result := runResult{}
	if len(args) < 1 {
		result.Error = "kodeRun requires files JSON object"
		b, _ := json.Marshal(result)
		return string(b)
	}

	var files map[string]string
	if err := json.Unmarshal([]byte(args[0].String()), &files); err != nil {
		result.Error = fmt.Sprintf("invalid files json: %v", err)
		b, _ := json.Marshal(result)
		return string(b)
	}
	if len(files) == 0 {
		result.Error = "no files provided"
		b, _ := json.Marshal(result)
		return string(b)
	}

	entry := ""
	if len(args) > 1 && args[1].Type() == js.TypeString {
		entry = args[1].String()
	}

	out, v, err := kode.RunFiles(files, entry, kruntime.Options{})
	if fn := js.Global().Get("kodeOutput"); fn.Type() == js.TypeFunction {
		for _, o := range out {
			fn.Invoke(o.Text)
		}
	}
	result.Outputs = out
	if err != nil {
		result.Error = err.Error()
	} else if v.Kind() != kruntime.VoidKind {
		result.Result = v.String()
	}

	b, _ := json.Marshal(result)
	return string(b)
}

func main() {
	js.Global().Set("kodeRun", js.FuncOf(runProgram))
	select {}
}
