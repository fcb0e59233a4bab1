package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopathic/jsonpath/ast"
	"github.com/gopathic/jsonpath/jvalue"
	"github.com/gopathic/jsonpath/parser"
)

func TestParseSimplePaths(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		path string
		want ast.Path
	}{
		{"$", ast.Path{ast.Root{Sigil: '$'}}},
		{"$.data", ast.Path{ast.Root{Sigil: '$'}, ast.Property{Names: []string{"data"}}}},
		{
			"$.data[0]",
			ast.Path{
				ast.Root{Sigil: '$'},
				ast.Property{Names: []string{"data"}},
				ast.ArrayIndex{Indices: []int{0}},
			},
		},
		{
			"$.data[-1]",
			ast.Path{
				ast.Root{Sigil: '$'},
				ast.Property{Names: []string{"data"}},
				ast.ArrayIndex{Indices: []int{-1}},
			},
		},
		{
			"$.data[0:-1]",
			ast.Path{
				ast.Root{Sigil: '$'},
				ast.Property{Names: []string{"data"}},
				ast.ArraySlice{Kind: ast.SliceBetween, From: 0, To: -1},
			},
		},
		{
			"$['a','b']",
			ast.Path{
				ast.Root{Sigil: '$'},
				ast.Property{Names: []string{"a", "b"}},
			},
		},
		{
			"$.data[*]",
			ast.Path{
				ast.Root{Sigil: '$'},
				ast.Property{Names: []string{"data"}},
				ast.Wildcard{},
			},
		},
		{
			"$..m",
			ast.Path{
				ast.Root{Sigil: '$'},
				ast.Scan{},
				ast.Property{Names: []string{"m"}},
			},
		},
	} {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			got, err := parser.Parse(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseInvalidPaths(t *testing.T) {
	t.Parallel()

	for _, path := range []string{
		"",
		"foo",
		"$.data[",
		"$.data[1:2:3]",
		"$.data[:]",
		"$['a'",
		"$.data extra",
	} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			_, err := parser.Parse(path)
			assert.ErrorIs(t, err, parser.ErrParse)
		})
	}
}

func TestParseFilterPredicate(t *testing.T) {
	t.Parallel()

	got, err := parser.Parse("$.data[?(@.id == 10)]")
	require.NoError(t, err)

	want := ast.Path{
		ast.Root{Sigil: '$'},
		ast.Property{Names: []string{"data"}},
		ast.Predicate{
			Expr: ast.Compare{
				Op:   ast.OpEq,
				Left: ast.JSONQuery{Steps: ast.Path{ast.Root{Sigil: '@'}, ast.Property{Names: []string{"id"}}}},
				Right: ast.Literal{
					Value: jvalue.NewNumber(jvalue.Int(10)),
				},
			},
		},
	}
	assert.Equal(t, want, got)
}

func TestParseFilterOperatorPrecedence(t *testing.T) {
	t.Parallel()

	// @.m && @.id == 10  must parse as  @.m && (@.id == 10),
	// since == binds tighter (10) than && (3).
	got, err := parser.Parse("$[?(@.m && @.id == 10)]")
	require.NoError(t, err)

	pred := got[len(got)-1].(ast.Predicate)
	cmp, ok := pred.Expr.(ast.Compare)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, cmp.Op)

	_, ok = cmp.Right.(ast.Compare)
	require.True(t, ok, "right-hand side of && should itself be the == comparison")
}

func TestParseNotVersusNotEqual(t *testing.T) {
	t.Parallel()

	// spec.md §9: "!" must not be mistaken for a prefix of "!=".
	got, err := parser.Parse("$[?(@.id != 10)]")
	require.NoError(t, err)
	pred := got[len(got)-1].(ast.Predicate)
	cmp, ok := pred.Expr.(ast.Compare)
	require.True(t, ok)
	assert.Equal(t, ast.OpNe, cmp.Op)

	got2, err := parser.Parse("$[?(!@.id)]")
	require.NoError(t, err)
	pred2 := got2[len(got2)-1].(ast.Predicate)
	_, ok = pred2.Expr.(ast.Not)
	require.True(t, ok)
}

func TestParseSubsetOf(t *testing.T) {
	t.Parallel()

	got, err := parser.Parse("$[?(@.s subsetof ['M','L'])]")
	require.NoError(t, err)
	pred := got[len(got)-1].(ast.Predicate)
	cmp, ok := pred.Expr.(ast.Compare)
	require.True(t, ok)
	assert.Equal(t, ast.OpSubsetOf, cmp.Op)

	arr, ok := cmp.Right.(ast.Array)
	require.True(t, ok)
	require.Len(t, arr.Items, 2)
}

func TestParseFunctionCall(t *testing.T) {
	t.Parallel()

	got, err := parser.Parse("$.foo()")
	require.NoError(t, err)
	assert.Equal(t, ast.Path{
		ast.Root{Sigil: '$'},
		ast.Function{Name: "foo"},
	}, got)
}

func TestParseRecursiveDescentFilter(t *testing.T) {
	t.Parallel()

	// End-to-end scenario 10 (spec.md §8): "$..[?(@>=1)]".
	got, err := parser.Parse("$..[?(@>=1)]")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, ast.Scan{}, got[1])
	pred, ok := got[2].(ast.Predicate)
	require.True(t, ok)
	cmp, ok := pred.Expr.(ast.Compare)
	require.True(t, ok)
	assert.Equal(t, ast.OpGe, cmp.Op)
}
