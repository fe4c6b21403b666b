package container

import (
	"reflect"
	"strconv"
)

// ── RuntimeType ───────────────────────────────────────────────────────────────

// RuntimeType identifies a Go type for the lifetime of the process.
// It is comparable with == and is the zero value for "no type".
type RuntimeType struct {
	t reflect.Type
}

// TypeOf returns the descriptor of T. Interface types are kept as-is, so
// TypeOf[io.Reader]() and TypeOf[*os.File]() are different descriptors.
func TypeOf[T any]() RuntimeType {
	return RuntimeType{t: reflect.TypeFor[T]()}
}

// Reflect returns the underlying reflect.Type (nil for the zero value).
func (rt RuntimeType) Reflect() reflect.Type { return rt.t }

// IsZero reports whether rt describes no type.
func (rt RuntimeType) IsZero() bool { return rt.t == nil }

func (rt RuntimeType) String() string {
	if rt.t == nil {
		return "<nil>"
	}
	return rt.t.String()
}

// ── Key ───────────────────────────────────────────────────────────────────────

// Key addresses one registry slot: a type plus an optional name.
//
//	container.KeyOf[*Config]()            // unnamed slot
//	container.NamedKey[string]("greeting") // named slot of the same kind of type
type Key struct {
	typ   RuntimeType
	name  string
	named bool
}

// KeyOf returns the unnamed key for T.
func KeyOf[T any]() Key {
	return Key{typ: TypeOf[T]()}
}

// NamedKey returns the key for T qualified by name. An empty name is still a
// name: NamedKey[T]("") and KeyOf[T]() are different slots.
func NamedKey[T any](name string) Key {
	return Key{typ: TypeOf[T](), name: name, named: true}
}

// NewKey builds a key from an existing descriptor.
func NewKey(rt RuntimeType, name string, named bool) Key {
	if !named {
		name = ""
	}
	return Key{typ: rt, name: name, named: named}
}

// Type returns the type descriptor of the key.
func (k Key) Type() RuntimeType { return k.typ }

// Name returns the name of the key and whether it has one.
func (k Key) Name() (string, bool) { return k.name, k.named }

// IsNamed reports whether the key carries a name.
func (k Key) IsNamed() bool { return k.named }

// String renders the key as "type" or "type#name".
func (k Key) String() string {
	if !k.named {
		return k.typ.String()
	}
	if k.name == "" {
		return k.typ.String() + "#" + strconv.Quote("")
	}
	return k.typ.String() + "#" + k.name
}
