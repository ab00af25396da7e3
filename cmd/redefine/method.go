package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hotswaplabs/redefine/bytecode"
	"github.com/hotswaplabs/redefine/cpool"
)

// methodFile is the on-disk description of one method body. The code is a
// hex string (whitespace ignored) and pool entries are assigned constant
// pool indices in order of appearance, starting at 1; long and double
// entries consume two indices, as in a class file.
type methodFile struct {
	MaxStack   int         `json:"max_stack"`
	MaxLocals  int         `json:"max_locals"`
	ParamSlots int         `json:"param_slots"`
	Code       string      `json:"code"`
	Pool       []poolEntry `json:"pool,omitempty"`
}

type poolEntry struct {
	Type       string          `json:"type"`
	Value      json.RawMessage `json:"value,omitempty"`
	Name       string          `json:"name,omitempty"`
	Class      string          `json:"class,omitempty"`
	Descriptor string          `json:"descriptor,omitempty"`
}

func loadMethod(path string) (*bytecode.Method, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f methodFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	code, err := decodeHex(f.Code)
	if err != nil {
		return nil, fmt.Errorf("%s: code: %w", path, err)
	}
	pool, err := buildPool(f.Pool)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bytecode.NewMethod(bytecode.MethodParams{
		Code:       code,
		MaxStack:   f.MaxStack,
		MaxLocals:  f.MaxLocals,
		ParamSlots: f.ParamSlots,
		Pool:       pool,
	}), nil
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.Join(strings.Fields(s), ""))
}

func buildPool(entries []poolEntry) (*cpool.Pool, error) {
	pool := cpool.New()
	for i, e := range entries {
		if err := addPoolEntry(pool, e); err != nil {
			return nil, fmt.Errorf("pool entry %d: %w", i, err)
		}
	}
	return pool, nil
}

func addPoolEntry(pool *cpool.Pool, e poolEntry) error {
	switch e.Type {
	case "int":
		var v int32
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return err
		}
		pool.AddInt(v)
	case "float":
		var v float32
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return err
		}
		pool.AddFloat(v)
	case "long":
		var v int64
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return err
		}
		pool.AddLong(v)
	case "double":
		var v float64
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return err
		}
		pool.AddDouble(v)
	case "string", "unresolved_string":
		var v string
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return err
		}
		if e.Type == "string" {
			pool.AddString(v)
		} else {
			pool.AddUnresolvedString(v)
		}
	case "class":
		pool.AddClass(e.Name)
	case "unresolved_class":
		pool.AddUnresolvedClass(e.Name)
	case "field":
		pool.AddFieldRef(e.Class, e.Name, e.Descriptor)
	case "method":
		pool.AddMethodRef(e.Class, e.Name, e.Descriptor)
	case "interface_method":
		pool.AddInterfaceMethodRef(e.Class, e.Name, e.Descriptor)
	default:
		return fmt.Errorf("unknown pool entry type %q", e.Type)
	}
	return nil
}
