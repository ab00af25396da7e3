package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hotswaplabs/redefine/cpool"
)

func writeMethodFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "method.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMethod(t *testing.T) {
	path := writeMethodFile(t, `{
		"max_stack": 2,
		"max_locals": 1,
		"param_slots": 1,
		"code": "12 01 b6 00 02 b1",
		"pool": [
			{"type": "string", "value": "hello"},
			{"type": "method", "class": "com/example/Widget",
			 "name": "refresh", "descriptor": "()V"}
		]
	}`)

	m, err := loadMethod(path)
	require.NoError(t, err)
	require.Equal(t, 6, m.CodeSize())
	require.Equal(t, 2, m.MaxStack())
	require.Equal(t, 1, m.MaxLocals())
	require.Equal(t, 1, m.ParamSlots())

	pool := m.Pool()
	require.Equal(t, "hello", pool.StringAt(1))
	require.Equal(t, "com/example/Widget", pool.RefClassAt(2))
	require.Equal(t, "refresh", pool.RefNameAt(2))
	require.Equal(t, "()V", pool.RefTypeAt(2))
}

func TestLoadMethodPoolIndexing(t *testing.T) {
	path := writeMethodFile(t, `{
		"max_stack": 2,
		"code": "b1",
		"pool": [
			{"type": "long", "value": 7},
			{"type": "int", "value": -3},
			{"type": "unresolved_class", "name": "com/example/Late"}
		]
	}`)

	m, err := loadMethod(path)
	require.NoError(t, err)
	pool := m.Pool()
	// The long occupies indices 1 and 2.
	require.Equal(t, int64(7), pool.LongAt(1))
	require.Equal(t, int32(-3), pool.IntAt(3))
	require.Equal(t, cpool.TagUnresolvedClass, pool.TagAt(4))
	require.Equal(t, "com/example/Late", pool.ClassNameAt(4))
}

func TestLoadMethodErrors(t *testing.T) {
	_, err := loadMethod(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	badHex := writeMethodFile(t, `{"code": "zz"}`)
	_, err = loadMethod(badHex)
	require.Error(t, err)

	badPool := writeMethodFile(t, `{"code": "b1", "pool": [{"type": "widget"}]}`)
	_, err = loadMethod(badPool)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown pool entry type "widget"`)
}
