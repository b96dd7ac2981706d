package ast

// Value is a literal bound as a positional parameter. Only visitor.Inline
// writes it in place.
type Value struct {
	Val any
}

func NewValue(val any) *Value {
	return &Value{Val: val}
}

func (v *Value) Type() NodeType           { return NodeValue }
func (v *Value) Accept(vis Visitor) error { return vis.VisitValue(v) }

// Star renders "*", as in COUNT(*).
type Star struct{}

func (s *Star) Type() NodeType         { return NodeStar }
func (s *Star) Accept(v Visitor) error { return v.VisitStar(s) }
