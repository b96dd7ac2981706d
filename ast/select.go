package ast

type SelectStmt struct {
	Columns []Node
	From    Node // *Table or *SubqueryExpr
	Joins   []*JoinClause
	Where   *WhereClause
	GroupBy *GroupByClause
	OrderBy []*OrderByClause
	Limit   *LimitClause
}

func (s *SelectStmt) Type() NodeType         { return NodeSelect }
func (s *SelectStmt) Accept(v Visitor) error { return v.VisitSelect(s) }
