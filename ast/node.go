// Package ast holds the immutable SQL syntax tree rendered by the visitor
// package. Expressions are never mutated after construction and may be shared
// between views.
package ast

type NodeType int

const (
	NodeSelect NodeType = iota
	NodeInsert
	NodeCreateTable
	NodeColumn
	NodeTable
	NodeValue
	NodeStar
	NodeFunction
	NodeGroupedExpr
	NodeBinaryExpr
	NodeConjunction
	NodeSubqueryExpr
	NodeWhere
	NodeJoin
	NodeGroupBy
	NodeOrderBy
	NodeLimit
)

type Node interface {
	Type() NodeType
	Accept(v Visitor) error
}
