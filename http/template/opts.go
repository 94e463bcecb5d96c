package template

import (
	"io/fs"
	"os"
)

// The ParserOptFn applies functional options to a *Parse when constructing it.
type ParserOptFn func(*Parse)

// WithFn encloses a named function so it can be added to a *Parse's function map.
func WithFn(name string, fn any) ParserOptFn {
	return func(p *Parse) {
		p.AddFn(name, fn)
	}
}

// WithFS sets the filesystem templates are read from, typically an embed.FS.
func WithFS(filesys fs.FS) ParserOptFn {
	return func(p *Parse) {
		p.fs = filesys
	}
}

// WithOverrideDir reads templates from dir first, falling back to the WithFS filesystem.
// An empty dir does nothing.
func WithOverrideDir(dir string) ParserOptFn {
	return func(p *Parse) {
		if dir != "" {
			p.override = os.DirFS(dir)
		}
	}
}
