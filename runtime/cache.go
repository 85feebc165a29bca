package kruntime

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/gosuda/kode/ast"
)

// DefaultModuleCacheSize is the entry count used by NewModuleCache when size
// is not positive.
const DefaultModuleCacheSize = 64

// ModuleCache keeps the function tables of recently imported modules keyed by
// path. An entry is only reused while the module source is unchanged. A nil
// *ModuleCache is valid and caches nothing.
type ModuleCache struct {
	entries *lru.Cache
}

type cachedModule struct {
	src   string
	funcs map[string]ast.FuncDef
}

func NewModuleCache(size int) (*ModuleCache, error) {
	if size <= 0 {
		size = DefaultModuleCacheSize
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &ModuleCache{entries: entries}, nil
}

func (c *ModuleCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

func (c *ModuleCache) Purge() {
	if c != nil {
		c.entries.Purge()
	}
}

// get returns the cached table for path if it was built from src. The
// returned map is shared and must not be modified.
func (c *ModuleCache) get(path, src string) (map[string]ast.FuncDef, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.entries.Get(path)
	if !ok {
		return nil, false
	}
	m := v.(*cachedModule)
	if m.src != src {
		return nil, false
	}
	return m.funcs, true
}

func (c *ModuleCache) put(path, src string, funcs map[string]ast.FuncDef) {
	if c == nil {
		return
	}
	c.entries.Add(path, &cachedModule{src: src, funcs: funcs})
}
