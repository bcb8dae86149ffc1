package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_OrderAndReplace(t *testing.T) {
	var s Set
	s.Set("b", Int64List(1))
	s.Set("a", FloatList(2))
	s.Set("c", StringList("3"))
	s.Set("a", Int64List(4))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"b", "a", "c"}, s.Names())

	f, ok := s.Get("a")
	require.True(t, ok)
	assert.True(t, f.Equal(Int64List(4)))

	assert.True(t, s.Has("c"))
	assert.False(t, s.Has("d"))
}

func TestSet_All(t *testing.T) {
	s := NewSet(2)
	s.Set("x", Int64List(1))
	s.Set("y", Int64List(2))

	var names []string
	for name := range s.All() {
		names = append(names, name)
		break
	}
	assert.Equal(t, []string{"x"}, names)
}

func TestSet_Nil(t *testing.T) {
	var s *Set
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Names())
	assert.False(t, s.Has("x"))
	for range s.All() {
		t.Fatal("nil set must not yield")
	}
}

func TestSet_TypedAccessors(t *testing.T) {
	var s Set
	s.Set("ints", Int64List(1, 2))
	s.Set("floats", FloatList(0.5))
	s.Set("bytes", StringList("x"))

	ints, err := s.Int64s("ints")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ints)

	floats, err := s.Floats("floats")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, floats)

	b, err := s.Bytes("bytes")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("x")}, b)

	_, err = s.Int64s("missing")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = s.Floats("ints")
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestSet_Equal(t *testing.T) {
	a := NewSet(2)
	a.Set("x", Int64List(1))
	a.Set("y", FloatList(2))

	b := NewSet(2)
	b.Set("x", Int64List(1))
	b.Set("y", FloatList(2))
	assert.True(t, a.Equal(b))

	// Same fields, different order.
	c := NewSet(2)
	c.Set("y", FloatList(2))
	c.Set("x", Int64List(1))
	assert.False(t, a.Equal(c))

	b.Set("y", FloatList(3))
	assert.False(t, a.Equal(b))

	assert.True(t, (*Set)(nil).Equal(&Set{}))
}
