package classpath

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeJar(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestDirEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "com", "example"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "com", "example", "Foo.class"), []byte{0xca, 0xfe}, 0o644))

	e := NewDirEntry(dir)
	data, err := e.Open("com/example/Foo")
	require.NoError(t, err)
	require.Equal(t, []byte{0xca, 0xfe}, data)

	_, err = e.Open("com/example/Bar")
	require.Error(t, err)
}

func TestJarEntry(t *testing.T) {
	dir := t.TempDir()
	jarPath := filepath.Join(dir, "app.jar")
	writeJar(t, jarPath, map[string]string{
		"com/example/Foo.class": "\xca\xfe",
	})

	e, err := NewJarEntry(jarPath)
	require.NoError(t, err)
	defer e.Close()

	data, err := e.Open("com/example/Foo")
	require.NoError(t, err)
	require.Equal(t, []byte{0xca, 0xfe}, data)

	_, err = e.Open("com/example/Bar")
	require.Error(t, err)
	require.Empty(t, e.Referenced())
}

func TestJarManifestClassPath(t *testing.T) {
	dir := t.TempDir()
	jarPath := filepath.Join(dir, "app.jar")
	// CR/LF line endings and a continuation line, per the jar spec.
	manifest := "Manifest-Version: 1.0\r\nClass-Path: lib/a.jar li\r\n b/b.jar\r\n"
	writeJar(t, jarPath, map[string]string{
		"META-INF/MANIFEST.MF": manifest,
	})

	e, err := NewJarEntry(jarPath)
	require.NoError(t, err)
	defer e.Close()

	require.Equal(t, []string{
		filepath.Join(dir, "lib", "a.jar"),
		filepath.Join(dir, "lib", "b.jar"),
	}, e.Referenced())
}

func TestClassPathAttrLastWins(t *testing.T) {
	manifest := "Class-Path: one.jar\nClass-Path: two.jar\n"
	require.Equal(t, []string{"two.jar"}, classPathAttr(manifest))
	require.Nil(t, classPathAttr("Manifest-Version: 1.0\n"))
}

func TestPathSearchOrder(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dirA, "Foo.class"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "Foo.class"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "Bar.class"), []byte("b"), 0o644))

	var p Path
	p.Append(NewDirEntry(dirA))
	p.Append(NewDirEntry(dirB))

	data, err := p.Open("Foo")
	require.NoError(t, err)
	require.Equal(t, []byte("a"), data)

	data, err = p.Open("Bar")
	require.NoError(t, err)
	require.Equal(t, []byte("b"), data)

	// A full miss aggregates every root's error.
	_, err = p.Open("Baz")
	require.Error(t, err)
	require.Contains(t, err.Error(), dirA)
	require.Contains(t, err.Error(), dirB)
}

func TestPathEmpty(t *testing.T) {
	var p Path
	_, err := p.Open("Foo")
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty class path")
}

func TestResolverCache(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver()

	e1, err := r.Resolve(dir)
	require.NoError(t, err)
	e2, err := r.Resolve(dir)
	require.NoError(t, err)
	require.Same(t, e1.(*DirEntry), e2.(*DirEntry))

	_, err = r.Resolve(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestResolvePathExpandsManifestRefs(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(libDir, 0o755))

	writeJar(t, filepath.Join(libDir, "dep.jar"), map[string]string{
		"Dep.class": "dep",
	})
	writeJar(t, filepath.Join(dir, "app.jar"), map[string]string{
		"META-INF/MANIFEST.MF": "Class-Path: lib/dep.jar lib/absent.jar\n",
		"App.class":            "app",
	})

	r := NewResolver()
	p, err := r.ResolvePath([]string{filepath.Join(dir, "app.jar")})
	require.NoError(t, err)

	// The referenced jar is appended; the unresolvable one is skipped.
	require.Len(t, p.Entries(), 2)

	data, err := p.Open("Dep")
	require.NoError(t, err)
	require.Equal(t, []byte("dep"), data)
}
