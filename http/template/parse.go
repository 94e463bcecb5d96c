package template

import (
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
	"sync"
)

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any)
	Parse(fps ...string) (*html.Template, error)
}

// Parse implements Parser with a focus on utilizing embedded HTML templates through fs.FS.
type Parse struct {
	fs       fs.FS
	override fs.FS

	mu  sync.RWMutex
	fns html.FuncMap
}

// NewParser constructs a Parse with the provided functional options.
//
// Without WithFS, templates are read from the working directory.
// With WithOverrideDir, templates found on disk shadow those in the WithFS filesystem.
func NewParser(opts ...ParserOptFn) Parser {
	p := &Parse{fns: make(html.FuncMap)}
	for _, opt := range opts {
		opt(p)
	}

	if p.fs == nil {
		p.fs = os.DirFS(".")
	}

	if p.override != nil {
		p.fs = &mergeFS{
			cache:   make(map[string]func(string) (fs.File, error)),
			userDir: p.override,
			pkgDir:  p.fs,
		}
	}

	return p
}

// Parse parses files found in the *Parse.fs with those functions provided previously.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	named := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			named = append(named, fp)
		}
	}

	if len(named) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	p.mu.RLock()
	fns := make(html.FuncMap, len(p.fns))
	for k, v := range p.fns {
		fns[k] = v
	}
	p.mu.RUnlock()

	return html.New(path.Base(named[0])).Funcs(fns).ParseFS(p.fs, named...)
}
