package template

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// mergeFS implements fs.FS
type mergeFS struct {
	// A cache for minimizing ascertaining which directory holds the template.
	cache map[string]func(string) (fs.File, error)

	// Directory on disk shadowing pkgDir
	userDir fs.FS

	// Embedded filesystem holding the templates the binary ships with
	pkgDir fs.FS

	sync.RWMutex
}

// Open opens the file matching the name using the following strategy:
// - check the cache
// - check the OS filesystem
// - check the embedded filesystem
//
// Whenever a file is found and is not present in the cache, it is added.
// Nothing removes references from the cache.
//
// If a file is removed from the OS during runtime,
// then a reference to it from the cache returns the same error (fs.ErrNotExist)
// as if the cache did not have that reference.
func (mfs *mergeFS) Open(name string) (fs.File, error) {
	mfs.RLock()
	fn, ok := mfs.cache[name]
	mfs.RUnlock()
	if ok {
		return fn(name)
	}

	file, err := mfs.userDir.Open(name)
	if err == nil {
		mfs.remember(name, mfs.userDir.Open)
		return file, nil
	}

	var pe *fs.PathError
	if errors.As(err, &pe) && (errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid)) {
		file, err = mfs.pkgDir.Open(name)
		if err != nil {
			return nil, fmt.Errorf("could not open template %s: %w", name, err)
		}

		mfs.remember(name, mfs.pkgDir.Open)
		return file, nil
	}

	return nil, fmt.Errorf("unable to open template: %w", err)
}

func (mfs *mergeFS) remember(name string, open func(string) (fs.File, error)) {
	mfs.Lock()
	defer mfs.Unlock()
	mfs.cache[name] = open
}
