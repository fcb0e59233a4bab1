package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopathic/jsonpath/eval"
	"github.com/gopathic/jsonpath/jvalue"
	"github.com/gopathic/jsonpath/parser"
)

func mustDoc(t *testing.T, v any) jvalue.Value {
	t.Helper()
	doc, err := jvalue.FromAny(v)
	require.NoError(t, err)
	return doc
}

func run(t *testing.T, doc jvalue.Value, path string) jvalue.Value {
	t.Helper()
	compiled, err := parser.Parse(path)
	require.NoError(t, err)
	got, err := eval.Evaluate(doc, compiled)
	require.NoError(t, err)
	return got
}

// TestEndToEndScenarios exercises the ten worked scenarios from spec.md §8.
func TestEndToEndScenarios(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		doc  any
		path string
		want any
	}{
		{"1 dotted property", map[string]any{"data": map[string]any{"msg": "hello"}}, "$.data.msg", "hello"},
		{"2 bracket-quoted property", map[string]any{"data": map[string]any{"msg": "hello"}}, `$["data"].msg`, "hello"},
		{
			"3 multi-property non-leaf branch",
			map[string]any{"data": map[string]any{"msg": "hello"}, "value": map[string]any{"msg": "jp"}},
			`$['data','value'].msg`,
			[]any{"hello", "jp"},
		},
		{
			"4 multi-property leaf merge",
			map[string]any{"data": map[string]any{"m1": "a", "m2": "b", "m3": "c"}},
			`$.data['m1','m2']`,
			map[string]any{"m1": "a", "m2": "b"},
		},
		{
			"5 recursive descent collects in traversal order",
			map[string]any{"data": map[string]any{
				"items": []any{map[string]any{"msg": "a"}, map[string]any{"msg": "b"}},
				"msg":   "root",
			}},
			"$.data..msg",
			[]any{"root", "a", "b"},
		},
		{"6 negative index", map[string]any{"data": []any{"x", "y", "z"}}, "$.data[-1]", "z"},
		{"7 negative slice bound", map[string]any{"data": []any{"x", "y", "z"}}, "$.data[0:-1]", []any{"x", "y"}},
		{
			"8 filter under wildcard projecting a property",
			map[string]any{"data": []any{
				map[string]any{"m": "a", "id": float64(10)},
				map[string]any{"m": "b", "id": float64(11)},
				map[string]any{"m": nil, "id": float64(10)},
			}},
			"$.data[*][?(@.m && @.id == 10)].m",
			[]any{"a"},
		},
		{
			"9 subsetof filter",
			map[string]any{"data": []any{
				map[string]any{"s": []any{"M", "L"}, "id": float64(10)},
				map[string]any{"s": []any{"M", "XXL"}, "id": float64(11)},
				map[string]any{"s": []any{"M"}, "id": float64(12)},
			}},
			"$.data[*][?(@.s subsetof ['M','L'])].id",
			[]any{float64(10), float64(12)},
		},
		{"10 recursive descent filter on a flat array", []any{float64(1), float64(2), float64(3)}, "$..[?(@>=1)]", []any{float64(1), float64(2), float64(3)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			doc := mustDoc(t, tc.doc)
			got := run(t, doc, tc.path)
			want := mustDoc(t, tc.want)
			assert.True(t, want.Equal(got), "path %s: got %v, want %v", tc.path, jvalue.ToAny(got), tc.want)
		})
	}
}

func TestArrayIndexOutOfRangeIsNullInScalarMode(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, map[string]any{"data": []any{"x"}})
	got := run(t, doc, "$.data[5]")
	assert.True(t, jvalue.Null.Equal(got))
}

func TestArrayIndexOnNonArrayErrors(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, map[string]any{"data": "not-an-array"})
	compiled, err := parser.Parse("$.data[0]")
	require.NoError(t, err)
	_, err = eval.Evaluate(doc, compiled)
	assert.ErrorIs(t, err, eval.ErrEvaluation)
}

func TestRecursiveDescentCollectsEveryDescendant(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, map[string]any{
		"a": map[string]any{"b": float64(1)},
		"c": []any{float64(2), float64(3)},
	})
	compiled, err := parser.Parse("$..b")
	require.NoError(t, err)
	got, err := eval.Evaluate(doc, compiled)
	require.NoError(t, err)
	want := mustDoc(t, []any{float64(1)})
	assert.True(t, want.Equal(got))
}

func TestMultiPropertyLeafMergePreservesRequestOrder(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, map[string]any{"b": float64(2), "a": float64(1)})
	compiled, err := parser.Parse(`$['b','a','missing']`)
	require.NoError(t, err)
	got, err := eval.Evaluate(doc, compiled)
	require.NoError(t, err)
	require.Equal(t, jvalue.KindObject, got.Kind())
	members := got.Object()
	require.Len(t, members, 3)
	assert.Equal(t, "b", members[0].Key)
	assert.Equal(t, "a", members[1].Key)
	assert.Equal(t, "missing", members[2].Key)
	assert.True(t, members[2].Value.IsNull())
}

func TestFunctionCallIsEvaluationError(t *testing.T) {
	t.Parallel()

	compiled, err := parser.Parse("$.length()")
	require.NoError(t, err)
	_, err = eval.Evaluate(jvalue.Null, compiled)
	assert.ErrorIs(t, err, eval.ErrEvaluation)
}

// TestComparatorOperandMismatchIsFalseNotError covers spec.md §7/§8: a
// collection comparator applied to an operand of the wrong shape (here, a
// missing property evaluating to Null) excludes the node instead of
// aborting the whole query.
func TestComparatorOperandMismatchIsFalseNotError(t *testing.T) {
	t.Parallel()

	doc := mustDoc(t, map[string]any{"data": []any{
		map[string]any{"s": []any{"M"}},
		map[string]any{"x": float64(1)},
	}})
	got := run(t, doc, "$.data[*][?(@.s subsetof ['M','L'])]")
	want := mustDoc(t, []any{map[string]any{"s": []any{"M"}}})
	assert.True(t, want.Equal(got), "got %v, want %v", jvalue.ToAny(got), jvalue.ToAny(want))
}
