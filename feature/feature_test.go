package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeature_Kinds(t *testing.T) {
	ints := Int64List(1, 2, 3)
	assert.Equal(t, KindInt64, ints.Kind())
	assert.Equal(t, 3, ints.Len())
	v, ok := ints.Int64s()
	assert.True(t, ok)
	assert.Equal(t, []int64{1, 2, 3}, v)
	_, ok = ints.Floats()
	assert.False(t, ok)
	_, ok = ints.Bytes()
	assert.False(t, ok)

	floats := FloatList(0.5)
	assert.Equal(t, KindFloat, floats.Kind())
	fv, ok := floats.Floats()
	assert.True(t, ok)
	assert.Equal(t, []float32{0.5}, fv)

	strs := StringList("a", "bc")
	assert.Equal(t, KindBytes, strs.Kind())
	bv, ok := strs.Bytes()
	assert.True(t, ok)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("bc")}, bv)
}

func TestFeature_ZeroValue(t *testing.T) {
	var f Feature
	assert.Equal(t, KindInt64, f.Kind())
	assert.Equal(t, 0, f.Len())
	assert.True(t, f.Equal(Int64List()))
}

func TestFeature_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Feature
		want bool
	}{
		{"same ints", Int64List(1, 2), Int64List(1, 2), true},
		{"different ints", Int64List(1, 2), Int64List(2, 1), false},
		{"empty kinds differ", Int64List(), FloatList(), false},
		{"same floats", FloatList(0.1, 0.2), FloatList(0.1, 0.2), true},
		{"signed zero", FloatList(0), FloatList(float32(math.Copysign(0, -1))), false},
		{"nan bits", FloatList(float32(math.NaN())), FloatList(float32(math.NaN())), true},
		{"same bytes", BytesList([]byte("x")), StringList("x"), true},
		{"different bytes", StringList("x"), StringList("y"), false},
		{"nil and empty bytes", BytesList(nil), BytesList([]byte{}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "int64", KindInt64.String())
	assert.Equal(t, "float", KindFloat.String())
	assert.Equal(t, "bytes", KindBytes.String())
	assert.Equal(t, "unknown", Kind(9).String())
	assert.False(t, Kind(3).Valid())
}
