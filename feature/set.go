package feature

import (
	"fmt"
	"iter"
)

// Set is an ordered mapping from field name to Feature. Iteration order is
// insertion order. Field names are unique.
//
// The zero value is an empty set ready to use. A Set is not safe for
// concurrent mutation.
type Set struct {
	names    []string
	features []Feature
	index    map[string]int
}

// NewSet returns an empty set with room for n fields.
func NewSet(n int) *Set {
	return &Set{
		names:    make([]string, 0, n),
		features: make([]Feature, 0, n),
		index:    make(map[string]int, n),
	}
}

// Set stores f under name. An existing field keeps its position.
func (s *Set) Set(name string, f Feature) {
	if s.index == nil {
		s.index = make(map[string]int)
	}

	if i, ok := s.index[name]; ok {
		s.features[i] = f
		return
	}

	s.index[name] = len(s.names)
	s.names = append(s.names, name)
	s.features = append(s.features, f)
}

// add appends a field and reports false if the name already exists.
func (s *Set) add(name string, f Feature) bool {
	if _, ok := s.index[name]; ok {
		return false
	}
	s.Set(name, f)
	return true
}

// Get returns the feature stored under name.
func (s *Set) Get(name string) (Feature, bool) {
	if s == nil {
		return Feature{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Feature{}, false
	}
	return s.features[i], true
}

// Has reports whether name is present.
func (s *Set) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Len returns the number of fields.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the field names in order. The caller must not modify the result.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	return s.names
}

// All iterates over the fields in order.
func (s *Set) All() iter.Seq2[string, Feature] {
	return func(yield func(string, Feature) bool) {
		if s == nil {
			return
		}
		for i, name := range s.names {
			if !yield(name, s.features[i]) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold the same fields, in the same order,
// with equal features.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if s.names[i] != other.names[i] || !s.features[i].Equal(other.features[i]) {
			return false
		}
	}
	return true
}

// Int64s returns the int64 list stored under name.
func (s *Set) Int64s(name string) ([]int64, error) {
	f, err := s.lookup(name, KindInt64)
	if err != nil {
		return nil, err
	}
	return f.ints, nil
}

// Floats returns the float list stored under name.
func (s *Set) Floats(name string) ([]float32, error) {
	f, err := s.lookup(name, KindFloat)
	if err != nil {
		return nil, err
	}
	return f.floats, nil
}

// Bytes returns the bytes list stored under name.
func (s *Set) Bytes(name string) ([][]byte, error) {
	f, err := s.lookup(name, KindBytes)
	if err != nil {
		return nil, err
	}
	return f.bytes, nil
}

func (s *Set) lookup(name string, kind Kind) (Feature, error) {
	f, ok := s.Get(name)
	if !ok {
		return Feature{}, fmt.Errorf("%w: %q", ErrMissingField, name)
	}
	if f.kind != kind {
		return Feature{}, fmt.Errorf("%w: field %q is %s, want %s", ErrKindMismatch, name, f.kind, kind)
	}
	return f, nil
}
