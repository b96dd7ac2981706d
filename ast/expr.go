package ast

// BinaryExpr compares Left with Right using Operator.
type BinaryExpr struct {
	Left     Node
	Operator string
	Right    Node
}

func (b *BinaryExpr) Type() NodeType         { return NodeBinaryExpr }
func (b *BinaryExpr) Accept(v Visitor) error { return v.VisitBinaryExpr(b) }

// Compare builds "left op right". Right operands that are not nodes are bound
// as parameters.
func Compare(op string, left Node, right any) (*BinaryExpr, error) {
	if err := checkOperator(op); err != nil {
		return nil, err
	}
	return newBinary(left, op, right), nil
}

func newBinary(left Node, op string, right any) *BinaryExpr {
	return &BinaryExpr{Left: left, Operator: op, Right: Operand(right)}
}

// Operand returns v itself when it is a Node, otherwise a bound Value.
func Operand(v any) Node {
	if n, ok := v.(Node); ok && n != nil {
		return n
	}
	return NewValue(v)
}

// Conjunction is the AND of its terms.
type Conjunction struct {
	Terms []Node
}

func (c *Conjunction) Type() NodeType         { return NodeConjunction }
func (c *Conjunction) Accept(v Visitor) error { return v.VisitConjunction(c) }

// And combines expressions into one conjunction. Conjunction operands are
// flattened and nil operands dropped; a single remaining term is returned as is.
func And(exprs ...Node) Node {
	terms := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		switch x := e.(type) {
		case nil:
		case *Conjunction:
			if x == nil {
				continue
			}
			terms = append(terms, x.Terms...)
		default:
			terms = append(terms, e)
		}
	}
	switch len(terms) {
	case 0:
		return nil
	case 1:
		return terms[0]
	}
	return &Conjunction{Terms: terms}
}
