package ast

import "strings"

type Function struct {
	Name  string
	Args  []Node
	Alias string
}

func (f *Function) Type() NodeType         { return NodeFunction }
func (f *Function) Accept(v Visitor) error { return v.VisitFunction(f) }

// Fn builds a function call. Arguments that are not nodes are bound as parameters.
func Fn(name string, args ...any) *Function {
	nodes := make([]Node, len(args))
	for i, a := range args {
		nodes[i] = Operand(a)
	}
	return &Function{Name: strings.ToUpper(name), Args: nodes}
}

// Count builds COUNT(expr); a nil expr counts rows.
func Count(expr Node) *Function {
	if expr == nil {
		expr = &Star{}
	}
	return &Function{Name: "COUNT", Args: []Node{expr}}
}

// As returns a copy of f carrying alias.
func (f *Function) As(alias string) *Function {
	cp := *f
	cp.Alias = alias
	return &cp
}
