// Package reflector resolves stable type names for messages crossing the
// process boundary. Names are cached since the set of message types in a
// program is small and fixed.
package reflector

import (
	"reflect"
	"sync"
)

// maxCacheSize bounds the name cache. When exceeded the cache is cleared,
// which is harmless and in practice never happens.
const maxCacheSize = 1024

var (
	mu    sync.RWMutex
	cache = make(map[reflect.Type]string)
)

// TypeName returns the fully qualified name ("pkg/path.TypeName") of the
// dynamic type of x. Pointers are unwrapped to their element type so a value
// and a pointer to it report the same name. A nil message reports "<nil>".
func TypeName(x any) string {
	if x == nil {
		return "<nil>"
	}
	return TypeNameOf(reflect.TypeOf(x))
}

// TypeNameFor returns the fully qualified name of type parameter T.
func TypeNameFor[T any]() string {
	return TypeNameOf(reflect.TypeOf((*T)(nil)).Elem())
}

// TypeNameOf returns the fully qualified name of t. Safe for concurrent use.
func TypeNameOf(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	mu.RLock()
	name, ok := cache[t]
	mu.RUnlock()
	if ok {
		return name
	}

	if pkg := t.PkgPath(); pkg != "" {
		name = pkg + "." + t.Name()
	} else if t.Name() != "" {
		name = t.Name()
	} else {
		name = t.String()
	}

	mu.Lock()
	if len(cache) >= maxCacheSize {
		cache = make(map[reflect.Type]string)
	}
	cache[t] = name
	mu.Unlock()

	return name
}
