package ast

// LimitClause holds optional LIMIT and OFFSET counts. An offset without a
// count renders the dialect's unbounded limit.
type LimitClause struct {
	Count  *int
	Offset *int
}

func NewLimitClause(count, offset *int) *LimitClause {
	return &LimitClause{Count: count, Offset: offset}
}

func (l *LimitClause) Type() NodeType         { return NodeLimit }
func (l *LimitClause) Accept(v Visitor) error { return v.VisitLimitClause(l) }
