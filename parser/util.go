package parser

import (
	"path/filepath"
	"strings"
)

// fileStem returns the base name of file without its extension, or "main"
// when nothing is left.
func fileStem(file string) string {
	base := filepath.Base(strings.TrimSpace(file))
	if base == "." || base == string(filepath.Separator) {
		return defaultFileStem
	}
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		return defaultFileStem
	}
	return base
}
