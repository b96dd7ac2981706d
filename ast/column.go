package ast

// Column references a table column. Alias is only rendered in select lists.
type Column struct {
	Table string
	Name  string
	Alias string
}

// Col returns a reference to table.name. An empty table renders the bare name.
func Col(table, name string) *Column {
	return &Column{Table: table, Name: name}
}

func (c *Column) Type() NodeType { return NodeColumn }

func (c *Column) Accept(v Visitor) error { return v.VisitColumn(c) }

// As returns a copy of c carrying alias.
func (c *Column) As(alias string) *Column {
	cp := *c
	cp.Alias = alias
	return &cp
}

// Qualified returns "table.name", or the bare name for unqualified columns.
func (c *Column) Qualified() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

func (c *Column) Eq(right any) *BinaryExpr { return newBinary(c, OpEqual, right) }
func (c *Column) Ne(right any) *BinaryExpr { return newBinary(c, OpNotEqual, right) }
func (c *Column) Lt(right any) *BinaryExpr { return newBinary(c, OpLessThan, right) }
func (c *Column) Gt(right any) *BinaryExpr { return newBinary(c, OpGreaterThan, right) }
func (c *Column) Le(right any) *BinaryExpr { return newBinary(c, OpLessThanOrEqual, right) }
func (c *Column) Ge(right any) *BinaryExpr { return newBinary(c, OpGreaterThanOrEqual, right) }
