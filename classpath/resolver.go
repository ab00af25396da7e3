package classpath

import (
	"fmt"
	"os"
	"sync"
)

// Resolver resolves search-root handles by path and caches them for the
// lifetime of the process. Unlike the single-threaded lookup cache it
// replaces, the cache carries its own lock, so a Resolver may be shared by
// concurrent redefinition attempts.
type Resolver struct {
	mu    sync.Mutex
	cache map[string]Entry
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]Entry)}
}

// Resolve returns the search root for the given path, opening it on first
// use: a directory becomes a DirEntry, anything else is opened as a jar.
func (r *Resolver) Resolve(path string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.cache[path]; ok {
		return e, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	var e Entry
	if info.IsDir() {
		e = NewDirEntry(path)
	} else {
		jar, err := NewJarEntry(path)
		if err != nil {
			return nil, err
		}
		e = jar
	}
	r.cache[path] = e
	return e, nil
}

// ResolvePath resolves each of the given paths into a search Path. Jar
// entries that name further jars through their manifest Class-Path
// attribute have those appended after them, in manifest order; references
// that cannot be resolved are skipped, as the platform loader does.
func (r *Resolver) ResolvePath(paths []string) (*Path, error) {
	p := &Path{}
	seen := make(map[string]bool)
	var add func(path string, required bool) error
	add = func(path string, required bool) error {
		if seen[path] {
			return nil
		}
		e, err := r.Resolve(path)
		if err != nil {
			if required {
				return err
			}
			return nil
		}
		seen[path] = true
		p.Append(e)
		if jar, ok := e.(*JarEntry); ok {
			for _, ref := range jar.Referenced() {
				if err := add(ref, false); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, path := range paths {
		if err := add(path, true); err != nil {
			return nil, err
		}
	}
	return p, nil
}
