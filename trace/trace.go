// Package trace holds the named, typed signals a formula is checked
// against: a flat map from variable name to a type-erased signal handle,
// resolved by kind at evaluation time. The type-erasure trick (an internal
// interface plus one small wrapper struct per element kind) keeps lookups
// allocation-free and avoids reflection.
package trace

import (
	"argus/argerrors"
	"argus/signal"
)

// handle is implemented by the four wrapper structs below, one per element
// kind, so a Trace can hold signals of differing element type in one map.
type handle interface {
	Kind() signal.Kind
}

type boolHandle struct{ s *signal.Signal[bool] }
type intHandle struct{ s *signal.Signal[int64] }
type uintHandle struct{ s *signal.Signal[uint64] }
type floatHandle struct{ s *signal.Signal[float64] }

func (h boolHandle) Kind() signal.Kind  { return signal.KindBool }
func (h intHandle) Kind() signal.Kind   { return signal.KindInt }
func (h uintHandle) Kind() signal.Kind  { return signal.KindUInt }
func (h floatHandle) Kind() signal.Kind { return signal.KindFloat }

// Trace is a named collection of signals, built up with the With* helpers
// and consulted by the semantics engine via Resolve*.
type Trace struct {
	vars map[string]handle
}

// New returns an empty Trace. Use the With* methods to register signals.
func New() *Trace {
	return &Trace{vars: make(map[string]handle)}
}

func (t *Trace) WithBool(name string, s *signal.Signal[bool]) *Trace {
	t.vars[name] = boolHandle{s}
	return t
}

func (t *Trace) WithInt(name string, s *signal.Signal[int64]) *Trace {
	t.vars[name] = intHandle{s}
	return t
}

func (t *Trace) WithUInt(name string, s *signal.Signal[uint64]) *Trace {
	t.vars[name] = uintHandle{s}
	return t
}

func (t *Trace) WithFloat(name string, s *signal.Signal[float64]) *Trace {
	t.vars[name] = floatHandle{s}
	return t
}

// Names reports every variable registered in the trace.
func (t *Trace) Names() []string {
	out := make([]string, 0, len(t.vars))
	for name := range t.vars {
		out = append(out, name)
	}
	return out
}

// KindOf reports the element kind actually bound to name, so a caller
// that only knows a variable's numeric-ness at parse time (not its exact
// element kind) can resolve it correctly at evaluation time.
func (t *Trace) KindOf(name string) (signal.Kind, error) {
	h, ok := t.vars[name]
	if !ok {
		return 0, argerrors.New(argerrors.UnknownVariable, "unknown variable %q", name)
	}
	return h.Kind(), nil
}

func (t *Trace) lookup(name string, want signal.Kind) (handle, error) {
	h, ok := t.vars[name]
	if !ok {
		return nil, argerrors.New(argerrors.UnknownVariable, "unknown variable %q", name)
	}
	if h.Kind() != want {
		return nil, argerrors.New(argerrors.TypeMismatch,
			"variable %q has kind %s, expected %s", name, h.Kind(), want)
	}
	return h, nil
}

// ResolveBool fetches the Boolean signal bound to name.
func (t *Trace) ResolveBool(name string) (*signal.Signal[bool], error) {
	h, err := t.lookup(name, signal.KindBool)
	if err != nil {
		return nil, err
	}
	return h.(boolHandle).s, nil
}

// ResolveInt fetches the Int signal bound to name.
func (t *Trace) ResolveInt(name string) (*signal.Signal[int64], error) {
	h, err := t.lookup(name, signal.KindInt)
	if err != nil {
		return nil, err
	}
	return h.(intHandle).s, nil
}

// ResolveUInt fetches the UInt signal bound to name.
func (t *Trace) ResolveUInt(name string) (*signal.Signal[uint64], error) {
	h, err := t.lookup(name, signal.KindUInt)
	if err != nil {
		return nil, err
	}
	return h.(uintHandle).s, nil
}

// ResolveFloat fetches the Float signal bound to name.
func (t *Trace) ResolveFloat(name string) (*signal.Signal[float64], error) {
	h, err := t.lookup(name, signal.KindFloat)
	if err != nil {
		return nil, err
	}
	return h.(floatHandle).s, nil
}

// ResolveNumericAsFloat fetches any numeric signal bound to name, cast to
// float64, for use by the semantics engine once node typing has already
// settled on a common element kind via expr.promote.
func (t *Trace) ResolveNumericAsFloat(name string) (*signal.Signal[float64], error) {
	h, ok := t.vars[name]
	if !ok {
		return nil, argerrors.New(argerrors.UnknownVariable, "unknown variable %q", name)
	}
	switch v := h.(type) {
	case floatHandle:
		return v.s, nil
	case intHandle:
		return signal.Cast[int64, float64](v.s)
	case uintHandle:
		return signal.Cast[uint64, float64](v.s)
	default:
		return nil, argerrors.New(argerrors.TypeMismatch, "variable %q is not numeric", name)
	}
}
