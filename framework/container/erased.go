package container

// Erased is a value of any registered type together with its descriptor.
// Scoped providers hand out an Erased per call; the caller owns the payload.
type Erased struct {
	typ   RuntimeType
	value any
}

// Erase wraps v. The descriptor recorded is the static type T, not the
// dynamic type of v, so interface registrations round-trip as interfaces.
func Erase[T any](v T) Erased {
	return Erased{typ: TypeOf[T](), value: v}
}

// Type returns the recorded descriptor.
func (e Erased) Type() RuntimeType { return e.typ }

// IsZero reports whether e holds nothing.
func (e Erased) IsZero() bool { return e.typ.IsZero() }

// Unerase recovers the payload as T. It returns false when e was erased
// from another type.
func Unerase[T any](e Erased) (T, bool) {
	var zero T
	if e.typ != TypeOf[T]() {
		return zero, false
	}
	if e.value == nil {
		// nil interface or nil pointer payloads erase to a nil any.
		return zero, true
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Shared is the singleton form of Erased: it holds a *T that every reader
// receives unchanged. Copies of a Shared alias the same value.
type Shared struct {
	typ RuntimeType
	ptr any
}

// Share moves v to the heap once and returns the handle.
func Share[T any](v T) Shared {
	p := new(T)
	*p = v
	return Shared{typ: TypeOf[T](), ptr: p}
}

// SharePtr wraps an existing pointer without copying its target.
func SharePtr[T any](p *T) Shared {
	return Shared{typ: TypeOf[T](), ptr: p}
}

// Type returns the descriptor of the shared value (T, not *T).
func (s Shared) Type() RuntimeType { return s.typ }

// IsZero reports whether s holds nothing.
func (s Shared) IsZero() bool { return s.ptr == nil }

// Unshare returns the shared pointer as *T. The same pointer is returned on
// every call; nothing is copied.
func Unshare[T any](s Shared) (*T, bool) {
	if s.typ != TypeOf[T]() {
		return nil, false
	}
	p, ok := s.ptr.(*T)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
