package ast

type ColumnDef struct {
	Name    string
	SQLType string // rendered column type, e.g. "INT NOT NULL PRIMARY KEY"
	Comment string // kept for introspection, not rendered
}

type CreateTableStmt struct {
	Table        *Table
	Columns      []*ColumnDef
	DropIfExists bool
}

func (c *CreateTableStmt) Type() NodeType         { return NodeCreateTable }
func (c *CreateTableStmt) Accept(v Visitor) error { return v.VisitCreateTable(c) }
