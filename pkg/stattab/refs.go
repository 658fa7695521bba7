package stattab

import (
	"reflect"

	"github.com/arthur-debert/stattab/pkg/errors"
)

// FieldSelector names the field inside a bound target that a reference
// binding reads on each add/update. The variant must match the target's
// shape: ByKey for maps, ByIndex for slices and arrays, ByName for
// struct fields.
type FieldSelector struct {
	kind  selectorKind
	key   string
	index int
	name  string
}

type selectorKind int

const (
	selByKey selectorKind = iota
	selByIndex
	selByName
)

// ByKey selects a map entry
func ByKey(key string) FieldSelector {
	return FieldSelector{kind: selByKey, key: key}
}

// ByIndex selects a slice or array element
func ByIndex(index int) FieldSelector {
	return FieldSelector{kind: selByIndex, index: index}
}

// ByName selects an exported struct field
func ByName(name string) FieldSelector {
	return FieldSelector{kind: selByName, name: name}
}

// binding pairs a live target with the selector to read from it
type binding struct {
	target any
	sel    FieldSelector
}

// checkTarget validates the selector against the target's shape at bind
// time, so per-row resolution failures are limited to value-level issues
// (missing key, index out of range).
func (s FieldSelector) checkTarget(target any) error {
	if target == nil {
		return errors.New(errors.ErrBindTarget, "bind target must not be nil")
	}
	v := reflect.ValueOf(target)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return errors.New(errors.ErrBindTarget, "bind target must not be nil")
		}
		v = v.Elem()
	}
	switch s.kind {
	case selByKey:
		if v.Kind() != reflect.Map {
			return errors.Newf(errors.ErrBindTarget, "ByKey selector needs a map target, got %s", v.Kind())
		}
	case selByIndex:
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return errors.Newf(errors.ErrBindTarget, "ByIndex selector needs a slice or array target, got %s", v.Kind())
		}
	case selByName:
		if v.Kind() != reflect.Struct {
			return errors.Newf(errors.ErrBindTarget, "ByName selector needs a struct target, got %s", v.Kind())
		}
		if _, ok := v.Type().FieldByName(s.name); !ok {
			return errors.Newf(errors.ErrBindTarget, "target %s has no field %q", v.Type(), s.name)
		}
	}
	return nil
}

// resolve reads the current value from the target
func (b binding) resolve() (any, error) {
	v := reflect.ValueOf(b.target)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, errors.New(errors.ErrBindTarget, "bind target is nil")
		}
		v = v.Elem()
	}
	switch b.sel.kind {
	case selByKey:
		mv := v.MapIndex(reflect.ValueOf(b.sel.key))
		if !mv.IsValid() {
			return nil, errors.Newf(errors.ErrBindTarget, "bound map has no key %q", b.sel.key)
		}
		return mv.Interface(), nil
	case selByIndex:
		if b.sel.index < 0 || b.sel.index >= v.Len() {
			return nil, errors.Newf(errors.ErrBindTarget, "bound index %d out of range (len %d)", b.sel.index, v.Len())
		}
		return v.Index(b.sel.index).Interface(), nil
	case selByName:
		fv := v.FieldByName(b.sel.name)
		if !fv.IsValid() {
			return nil, errors.Newf(errors.ErrBindTarget, "bound field %q not found", b.sel.name)
		}
		return fv.Interface(), nil
	}
	return nil, errors.New(errors.ErrInternal, "unknown selector kind")
}

// referenceSet is the per-collector binding table
type referenceSet map[string]binding

// resolveInto copies row and fills every bound header key the caller
// did not supply with the target's current value
func (refs referenceSet) resolveInto(row Row) (Row, error) {
	merged := make(Row, len(row)+len(refs))
	for k, v := range row {
		merged[k] = v
	}
	for key, b := range refs {
		if v, ok := merged[key]; ok && v != nil {
			continue
		}
		value, err := b.resolve()
		if err != nil {
			return nil, err
		}
		merged[key] = value
	}
	return merged, nil
}
