package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparisonHelpers(t *testing.T) {
	age := Col("t_student", "age")

	tests := []struct {
		expr *BinaryExpr
		op   string
	}{
		{age.Eq(1), OpEqual},
		{age.Ne(1), OpNotEqual},
		{age.Lt(1), OpLessThan},
		{age.Gt(1), OpGreaterThan},
		{age.Le(1), OpLessThanOrEqual},
		{age.Ge(1), OpGreaterThanOrEqual},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.op, tt.expr.Operator)
		assert.Same(t, age, tt.expr.Left)
		assert.Equal(t, &Value{Val: 1}, tt.expr.Right)
	}
}

func TestRightOperandNode(t *testing.T) {
	l, r := Col("a", "x"), Col("b", "y")
	expr := l.Eq(r)
	assert.Same(t, r, expr.Right)
}

func TestCompare(t *testing.T) {
	expr, err := Compare("<=", Col("t", "a"), 5)
	require.NoError(t, err)
	assert.Equal(t, OpLessThanOrEqual, expr.Operator)

	_, err = Compare("LIKE", Col("t", "a"), "x%")
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestAndFlattens(t *testing.T) {
	a, b, c := Col("t", "a").Eq(1), Col("t", "b").Eq(2), Col("t", "c").Eq(3)

	ab := And(a, b)
	abc := And(ab, c)

	conj, ok := abc.(*Conjunction)
	require.True(t, ok)
	assert.Equal(t, []Node{a, b, c}, conj.Terms)

	// operands are not modified
	assert.Len(t, ab.(*Conjunction).Terms, 2)
}

func TestAndSingleAndEmpty(t *testing.T) {
	a := Col("t", "a").Eq(1)
	assert.Same(t, a, And(nil, a))
	assert.Nil(t, And())
}

func TestColumnAsCopies(t *testing.T) {
	c := Col("t", "a")
	aliased := c.As("t__a")

	assert.Empty(t, c.Alias)
	assert.Equal(t, "t__a", aliased.Alias)
	assert.Equal(t, "t.a", c.Qualified())
	assert.Equal(t, "a", Col("", "a").Qualified())
}

func TestFunctionHelpers(t *testing.T) {
	count := Count(nil)
	assert.Equal(t, "COUNT", count.Name)
	assert.IsType(t, &Star{}, count.Args[0])

	fn := Fn("max", Col("t", "age"))
	assert.Equal(t, "MAX", fn.Name)
	assert.Equal(t, "m", fn.As("m").Alias)
	assert.Empty(t, fn.Alias)
}

func TestOrderHelpers(t *testing.T) {
	c := Col("t", "a")
	assert.False(t, Asc(c).Desc)
	assert.True(t, Desc(c).Desc)
}
