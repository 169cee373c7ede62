// Package attr models optional per-node display attributes.
//
// Callers may give an attribute as a dense sequence aligned to node indices,
// as a sparse mapping from a subset of indices to values, or not at all:
//
//	attr.Dense([]int{0, 0, 1, 1})          // one label per node
//	attr.Sparse(map[int]int{0: 1, 3: 2})   // labels for nodes 0 and 3 only
//	attr.Attribute[int]{}                  // absent
//
// [Attribute.Resolve] turns any of the three into a dense slice once, at the
// start of rendering, so drawing code never branches on the representation.
package attr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/matzehuels/graphsvg/pkg/errors"
)

// Kind tells which representation an [Attribute] holds.
type Kind int

const (
	KindAbsent Kind = iota
	KindDense
	KindSparse
)

func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindSparse:
		return "sparse"
	default:
		return "absent"
	}
}

// Attribute is a tagged union Dense(values) | Sparse(mapping) | Absent.
// The zero value is Absent.
type Attribute[T any] struct {
	kind   Kind
	dense  []T
	sparse map[int]T
}

// Dense returns an attribute holding one value per node.
func Dense[T any](values []T) Attribute[T] {
	return Attribute[T]{kind: KindDense, dense: values}
}

// Sparse returns an attribute holding values for a subset of nodes.
func Sparse[T any](values map[int]T) Attribute[T] {
	return Attribute[T]{kind: KindSparse, sparse: values}
}

// Kind returns the representation held by a.
func (a Attribute[T]) Kind() Kind { return a.kind }

// IsAbsent reports whether no value was given.
func (a Attribute[T]) IsAbsent() bool { return a.kind == KindAbsent }

// Len returns the number of values held.
func (a Attribute[T]) Len() int {
	switch a.kind {
	case KindDense:
		return len(a.dense)
	case KindSparse:
		return len(a.sparse)
	}
	return 0
}

// Values returns the dense values, or nil when a is not dense.
func (a Attribute[T]) Values() []T { return a.dense }

// Mapping returns the sparse mapping, or nil when a is not sparse.
func (a Attribute[T]) Mapping() map[int]T { return a.sparse }

// Each calls fn for every (index, value) pair held, in index order.
func (a Attribute[T]) Each(fn func(i int, v T)) {
	switch a.kind {
	case KindDense:
		for i, v := range a.dense {
			fn(i, v)
		}
	case KindSparse:
		for _, i := range slices.Sorted(maps.Keys(a.sparse)) {
			fn(i, a.sparse[i])
		}
	}
}

// Validate checks a against n nodes without resolving it: a dense attribute
// must have n values (DIMENSION_MISMATCH) and sparse keys must lie in [0, n)
// (INVALID_INDEX).
func (a Attribute[T]) Validate(name string, n int) error {
	switch a.kind {
	case KindDense:
		return errors.ValidateLength(name, len(a.dense), n)
	case KindSparse:
		for _, i := range slices.Sorted(maps.Keys(a.sparse)) {
			if err := errors.ValidateIndex(name, i, n); err != nil {
				return err
			}
		}
	}
	return nil
}

// Resolve returns a dense slice of n values, filling indices without a value
// with def, together with a mask of the indices that were given.
func (a Attribute[T]) Resolve(name string, n int, def T) ([]T, []bool, error) {
	if err := a.Validate(name, n); err != nil {
		return nil, nil, err
	}
	values := make([]T, n)
	set := make([]bool, n)
	for i := range values {
		values[i] = def
	}
	a.Each(func(i int, v T) {
		values[i] = v
		set[i] = true
	})
	return values, set, nil
}

// MarshalJSON encodes a dense attribute as an array, a sparse one as an
// object keyed by decimal index and an absent one as null.
func (a Attribute[T]) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case KindDense:
		return json.Marshal(a.dense)
	case KindSparse:
		m := make(map[string]T, len(a.sparse))
		for i, v := range a.sparse {
			m[strconv.Itoa(i)] = v
		}
		return json.Marshal(m)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts an array (dense), an object keyed by index (sparse)
// or null (absent).
func (a *Attribute[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*a = Attribute[T]{}
	case data[0] == '[':
		var values []T
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		*a = Dense(values)
	case data[0] == '{':
		var raw map[string]T
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		m := make(map[int]T, len(raw))
		for k, v := range raw {
			i, err := strconv.Atoi(k)
			if err != nil {
				return fmt.Errorf("attribute key %q is not a node index", k)
			}
			m[i] = v
		}
		*a = Sparse(m)
	default:
		return fmt.Errorf("attribute must be an array or an object, got %s", data)
	}
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler by routing the decoded value
// through the JSON representation, which has the same shape.
func (a *Attribute[T]) UnmarshalTOML(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return a.UnmarshalJSON(data)
}
