package series

import (
	"testing"

	"github.com/arloliu/gwf/dtype"
	"github.com/arloliu/gwf/errs"
	"github.com/stretchr/testify/require"
)

func TestDict_Order(t *testing.T) {
	d := NewDict()
	d.Set("b", mustNew(t, "b", sec(0), 1, []int8{1}))
	d.Set("a", mustNew(t, "a", sec(0), 1, []int8{2}))
	d.Set("b", mustNew(t, "b", sec(0), 1, []int8{3}))

	require.Equal(t, 2, d.Len())
	require.Equal(t, []string{"b", "a"}, d.Keys())

	s, ok := d.Get("b")
	require.True(t, ok)
	got, _ := Values[int8](s)
	require.Equal(t, []int8{3}, got)

	_, ok = d.Get("c")
	require.False(t, ok)

	var names []string
	for name := range d.All() {
		names = append(names, name)
		break
	}
	require.Equal(t, []string{"b"}, names)
}

func TestDict_Append(t *testing.T) {
	d := NewDict()
	d.Set("x", mustNew(t, "x", sec(0), 1, []int32{1, 2}))

	other := NewDict()
	other.Set("x", mustNew(t, "x", sec(2), 1, []int32{3}))
	other.Set("y", mustNew(t, "y", sec(2), 1, []int32{4}))

	require.NoError(t, d.Append(other))
	require.Equal(t, []string{"x", "y"}, d.Keys())

	x, _ := d.Get("x")
	got, _ := Values[int32](x)
	require.Equal(t, []int32{1, 2, 3}, got)

	bad := NewDict()
	bad.Set("x", mustNew(t, "x", sec(10), 1, []int32{5}))
	require.ErrorIs(t, d.Append(bad), errs.ErrDiscontiguous)
}

func TestDict_Own(t *testing.T) {
	backing := dtype.Alloc(dtype.Float64, 4)
	copy(dtype.View[float64](backing), []float64{1, 2, 3, 4})
	view, err := FromBytes("x", dtype.Float64, backing, sec(0), 1)
	require.NoError(t, err)

	d := NewDict()
	d.Set("x", view.Slice(0, 2))

	owned := d.Own()
	next := NewDict()
	next.Set("x", mustNew(t, "x", sec(2), 1, []float64{30, 40}))
	require.NoError(t, owned.Append(next))

	// The original dict and the backing buffer are untouched.
	orig, _ := d.Get("x")
	require.Equal(t, 2, orig.Len())
	require.Equal(t, []float64{1, 2, 3, 4}, dtype.View[float64](backing))

	x, _ := owned.Get("x")
	got, _ := Values[float64](x)
	require.Equal(t, []float64{1, 2, 30, 40}, got)
}
