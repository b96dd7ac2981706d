package ast

type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinCross
)

type JoinClause struct {
	JoinType JoinType
	Table    *Table
	On       Node
}

func NewJoinClause(joinType JoinType, table *Table, on Node) *JoinClause {
	return &JoinClause{JoinType: joinType, Table: table, On: on}
}

func (j *JoinClause) Type() NodeType         { return NodeJoin }
func (j *JoinClause) Accept(v Visitor) error { return v.VisitJoinClause(j) }

func InnerJoin(table string, on Node) *JoinClause {
	return NewJoinClause(JoinInner, NewTable("", table, ""), on)
}

func LeftJoin(table string, on Node) *JoinClause {
	return NewJoinClause(JoinLeft, NewTable("", table, ""), on)
}

// JoinOn builds the equality leftTable.leftColumn = rightTable.rightColumn.
func JoinOn(leftTable, leftColumn, rightTable, rightColumn string) Node {
	return newBinary(Col(leftTable, leftColumn), OpEqual, Col(rightTable, rightColumn))
}
