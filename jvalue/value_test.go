package jvalue_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopathic/jsonpath/jvalue"
)

func TestEqual(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		a, b  jvalue.Value
		equal bool
	}{
		{"null==null", jvalue.Null, jvalue.Null, true},
		{"int==float same value", jvalue.NewNumber(jvalue.Int(3)), jvalue.NewNumber(jvalue.Float(3)), true},
		{"int!=int", jvalue.NewNumber(jvalue.Int(3)), jvalue.NewNumber(jvalue.Int(4)), false},
		{"string==string", jvalue.NewString("a"), jvalue.NewString("a"), true},
		{"bool!=null", jvalue.NewBool(false), jvalue.Null, false},
		{
			"object order doesn't matter",
			jvalue.NewObject(jvalue.Member{Key: "a", Value: jvalue.NewBool(true)}, jvalue.Member{Key: "b", Value: jvalue.Null}),
			jvalue.NewObject(jvalue.Member{Key: "b", Value: jvalue.Null}, jvalue.Member{Key: "a", Value: jvalue.NewBool(true)}),
			true,
		},
		{
			"array order matters",
			jvalue.NewArray(jvalue.NewNumber(jvalue.Int(1)), jvalue.NewNumber(jvalue.Int(2))),
			jvalue.NewArray(jvalue.NewNumber(jvalue.Int(2)), jvalue.NewNumber(jvalue.Int(1))),
			false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.equal, tc.a.Equal(tc.b))
		})
	}
}

func TestFromAnyToAnyRoundTrip(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"b": []any{1.0, "x", nil, true},
		"a": map[string]any{"nested": 2.0},
	}

	v, err := jvalue.FromAny(in)
	require.NoError(t, err)

	// Keys are sorted deterministically since a decoded map carries no
	// insertion order.
	obj := v.Object()
	require.Len(t, obj, 2)
	assert.Equal(t, "a", obj[0].Key)
	assert.Equal(t, "b", obj[1].Key)

	out := jvalue.ToAny(v)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLen(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, jvalue.Null.Len())
	assert.Equal(t, 3, jvalue.NewString("abc").Len())
	assert.Equal(t, 2, jvalue.NewArray(jvalue.Null, jvalue.Null).Len())
	assert.Equal(t, 1, jvalue.NewObject(jvalue.Member{Key: "x", Value: jvalue.Null}).Len())
}

func TestFind(t *testing.T) {
	t.Parallel()

	v := jvalue.NewObject(jvalue.Member{Key: "msg", Value: jvalue.NewString("hi")})
	got, ok := v.Find("msg")
	require.True(t, ok)
	assert.Equal(t, "hi", got.Str())

	_, ok = v.Find("missing")
	assert.False(t, ok)

	_, ok = jvalue.NewString("not an object").Find("x")
	assert.False(t, ok)
}
