package ast

type OrderByClause struct {
	Expr Node
	Desc bool
}

func (o *OrderByClause) Type() NodeType         { return NodeOrderBy }
func (o *OrderByClause) Accept(v Visitor) error { return v.VisitOrderByClause(o) }

func Asc(expr Node) *OrderByClause  { return &OrderByClause{Expr: expr} }
func Desc(expr Node) *OrderByClause { return &OrderByClause{Expr: expr, Desc: true} }
