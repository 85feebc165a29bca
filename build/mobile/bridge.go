package mobile

import (
	"encoding/json"
	"fmt"

	"github.com/gosuda/kode"
	kruntime "github.com/gosuda/kode/runtime"
)

type runResult struct {
	Outputs []kruntime.Output `json:"outputs"`
	Result  string            `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Run executes kode sources provided as a JSON map and returns a JSON result.
// filesJSON format: {"main.kode":"fn main() { ... }","util.kode":"..."}
// entry names the file to start from and defaults to main.kode.
func Run(filesJSON, entry string) string {
	result := runResult{}

	var files map[string]string
	if err := json.Unmarshal([]byte(filesJSON), &files); err != nil {
		result.Error = fmt.Sprintf("invalid files json: %v", err)
		b, _ := json.Marshal(result)
		return string(b)
	}
	if len(files) == 0 {
		result.Error = "no files provided"
		b, _ := json.Marshal(result)
		return string(b)
	}

	out, v, err := kode.RunFiles(files, entry, kruntime.Options{})
	result.Outputs = out
	if err != nil {
		result.Error = err.Error()
	} else if v.Kind() != kruntime.VoidKind {
		result.Result = v.String()
	}

	b, _ := json.Marshal(result)
	return string(b)
}
