package ast

// SubqueryExpr renders a parenthesized statement, optionally aliased when used
// as a derived table.
type SubqueryExpr struct {
	Stmt  Node
	Alias string
}

func NewSubqueryExpr(stmt Node, alias string) *SubqueryExpr {
	return &SubqueryExpr{Stmt: stmt, Alias: alias}
}

func (s *SubqueryExpr) Type() NodeType {
	return NodeSubqueryExpr
}

func (s *SubqueryExpr) Accept(v Visitor) error {
	return v.VisitSubqueryExpr(s)
}
