// Package classpath locates class bytes by internal class name across an
// ordered list of search roots (directories and jar files). It provides the
// two operations the redefinition subsystem needs from its environment:
// load class bytes given a logical name, and resolve-and-cache a search
// root handle by path.
package classpath

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Entry is one search root.
type Entry interface {
	// Path returns the path the entry was resolved from.
	Path() string
	// Open returns the bytes of the named class ("com/example/Foo"), or an
	// error if this root does not contain it.
	Open(name string) ([]byte, error)
}

// DirEntry is a filesystem directory search root.
type DirEntry struct {
	dir string
}

// NewDirEntry returns a search root over the given directory.
func NewDirEntry(dir string) *DirEntry {
	return &DirEntry{dir: dir}
}

// Path implements Entry.
func (e *DirEntry) Path() string { return e.dir }

// Open implements Entry.
func (e *DirEntry) Open(name string) ([]byte, error) {
	p := filepath.Join(e.dir, filepath.FromSlash(name)+".class")
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.dir, err)
	}
	return data, nil
}

// JarEntry is a jar (zip) archive search root.
type JarEntry struct {
	path    string
	archive *zip.ReadCloser
	// referenced holds the jar paths named by the manifest Class-Path
	// attribute, relative to this jar's directory.
	referenced []string
}

// NewJarEntry opens the archive at path and reads its manifest.
func NewJarEntry(path string) (*JarEntry, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open jar %s: %w", path, err)
	}
	e := &JarEntry{path: path, archive: archive}
	manifest, err := readManifest(&archive.Reader)
	if err != nil {
		archive.Close()
		return nil, fmt.Errorf("jar %s: %w", path, err)
	}
	if manifest != "" {
		e.referenced = classPathAttr(manifest)
	}
	return e, nil
}

// Path implements Entry.
func (e *JarEntry) Path() string { return e.path }

// Open implements Entry.
func (e *JarEntry) Open(name string) ([]byte, error) {
	f, err := e.archive.Open(name + ".class")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.path, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Close releases the archive handle.
func (e *JarEntry) Close() error { return e.archive.Close() }

// Referenced returns the jar paths named by the manifest Class-Path
// attribute, resolved relative to this jar's directory.
func (e *JarEntry) Referenced() []string {
	out := make([]string, len(e.referenced))
	base := filepath.Dir(e.path)
	for i, ref := range e.referenced {
		out[i] = filepath.Join(base, filepath.FromSlash(ref))
	}
	return out
}

// readManifest returns the text of META-INF/MANIFEST.MF, normalized per the
// jar specification: CR/LF and lone CR become LF, and newline-plus-space
// continuations are joined. Returns "" when the jar has no manifest.
func readManifest(archive *zip.Reader) (string, error) {
	f, err := archive.Open("META-INF/MANIFEST.MF")
	if err != nil {
		return "", nil
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}
	text := string(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\n ", "")
	return text, nil
}

// classPathAttr extracts the Class-Path attribute from a normalized
// manifest and splits it into jar references. When the attribute appears
// more than once the last occurrence wins, matching the behavior of the
// platform jar tooling.
func classPathAttr(manifest string) []string {
	const tag = "Class-Path: "
	var value string
	for _, line := range strings.Split(manifest, "\n") {
		if strings.HasPrefix(line, tag) {
			value = strings.TrimPrefix(line, tag)
		}
	}
	if value == "" {
		return nil
	}
	return strings.Fields(value)
}

// Path is an ordered list of search roots.
type Path struct {
	entries []Entry
}

// Append adds an entry at the end of the search order.
func (p *Path) Append(e Entry) {
	p.entries = append(p.entries, e)
}

// Entries returns the roots in search order.
func (p *Path) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Open searches the roots in order and returns the first match. When every
// root misses, the per-root errors are aggregated in the returned error.
func (p *Path) Open(name string) ([]byte, error) {
	var errs *multierror.Error
	for _, e := range p.entries {
		data, err := e.Open(name)
		if err == nil {
			return data, nil
		}
		errs = multierror.Append(errs, err)
	}
	if errs == nil {
		return nil, fmt.Errorf("class %s: empty class path", name)
	}
	return nil, fmt.Errorf("class %s not found: %w", name, errs)
}
