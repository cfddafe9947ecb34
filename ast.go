// ast (Abstract Syntax Tree) defines a data structure representing a SQL
// program. This data structure is generated from the parser and can also be
// assembled by hand through the same constructors, for example by a query
// builder. It is consumed by the renderer, the tree inspector, and external
// callers walking the tree.
package sqlparse

import (
	"errors"
	"fmt"
)

// NodeKind tags a SqlNode. The set is closed; consumers switch exhaustively
// over it.
type NodeKind int

const (
	// NodeStatementList is the root of every parse. Its children are the top
	// level statements in source order, with set operation markers between
	// chained selects.
	NodeStatementList NodeKind = iota + 1

	// Leaf kinds. A leaf carries a payload string and never has children.

	// NodeIdentifier is a plain identifier such as a table or column name.
	NodeIdentifier
	// NodeQuotedIdentifier is a "..." identifier. The payload is the
	// unescaped text between the quotes, case preserved.
	NodeQuotedIdentifier
	// NodeStringLit is a '...' literal with doubled quotes unescaped.
	NodeStringLit
	// NodeBitStringLit holds only the digits of a B'...' literal.
	NodeBitStringLit
	// NodeHexStringLit holds only the digits of a X'...' literal.
	NodeHexStringLit
	// NodeIntegerLit is an integer literal kept as its source text.
	NodeIntegerLit
	// NodeNumericLit is a literal with a decimal point or exponent, kept as
	// its source text.
	NodeNumericLit

	// Expression kinds.

	NodeDot      // qualification, a.b
	NodeIndex    // indexing, a[1]
	NodeNegate   // unary minus
	NodeMultiply //
	NodeDivide   //
	NodeModulo   //
	NodeAdd      //
	NodeSubtract //
	NodeEq       //
	NodeNotEq    // <> and != both normalize here
	NodeLt       //
	NodeGt       //
	NodeLe       //
	NodeGe       //
	NodeIsNull   // x IS NULL
	NodeIsNotNull
	NodeLike
	NodeIn       // children: operand, NodeExprList
	NodeBetween  // children: operand, low, high
	NodeAnd      //
	NodeOr       //
	NodeCall     // children: name leaf, then arguments
	NodeExprList // parenthesized expression list, e.g. the right side of IN
	NodeNull     // the NULL literal keyword
	NodeAllColumns

	// Clause kinds.

	NodeColumnList
	NodeFrom
	NodeInnerJoin   // children: left, right, optional NodeOn or NodeUsing
	NodeLeftJoin    //
	NodeRightJoin   //
	NodeFullJoin    //
	NodeCrossJoin   // no condition child
	NodeNaturalJoin // no condition child
	NodeOn
	NodeUsing
	NodeWhere
	NodeGroupBy
	NodeHaving
	NodeOrderBy
	NodeDescending // wraps one order item; ascending is the unmarked default
	NodeLimit
	NodeOffset

	// Statement kinds.

	NodeSelect
	NodeDistinct
	NodeUnion     // set operation markers are empty siblings in the
	NodeIntersect // statement list between two select statements
	NodeExcept
	NodeInsert
	NodeValues // one parenthesized value tuple
	NodeDefaultValues
	NodeUpdate
	NodeAssign // children: column, expression
	NodeDelete

	// DDL kinds.

	NodeCreateTable
	NodeCreateIndex
	NodeCreateType
	NodeIfNotExists
	NodeColumnDef // children: name, type, then constraints
	NodeEnum      // children: the enum labels of a created type
	NodePrimaryKey
	NodeForeignKey // table level, children: column, NodeReferences
	NodeReferences // children: table, column
	NodeNotNull
	NodeNullable
	NodeUnique
	NodeDefault
	NodeCheck
	NodeConstraint // children: name, NodeCheck
	NodeIdentity
)

var nodeKindNames = map[NodeKind]string{
	NodeStatementList:    "StatementList",
	NodeIdentifier:       "Identifier",
	NodeQuotedIdentifier: "QuotedIdentifier",
	NodeStringLit:        "StringLit",
	NodeBitStringLit:     "BitStringLit",
	NodeHexStringLit:     "HexStringLit",
	NodeIntegerLit:       "IntegerLit",
	NodeNumericLit:       "NumericLit",
	NodeDot:              "Dot",
	NodeIndex:            "Index",
	NodeNegate:           "Negate",
	NodeMultiply:         "Multiply",
	NodeDivide:           "Divide",
	NodeModulo:           "Modulo",
	NodeAdd:              "Add",
	NodeSubtract:         "Subtract",
	NodeEq:               "Eq",
	NodeNotEq:            "NotEq",
	NodeLt:               "Lt",
	NodeGt:               "Gt",
	NodeLe:               "Le",
	NodeGe:               "Ge",
	NodeIsNull:           "IsNull",
	NodeIsNotNull:        "IsNotNull",
	NodeLike:             "Like",
	NodeIn:               "In",
	NodeBetween:          "Between",
	NodeAnd:              "And",
	NodeOr:               "Or",
	NodeCall:             "Call",
	NodeExprList:         "ExprList",
	NodeNull:             "Null",
	NodeAllColumns:       "AllColumns",
	NodeColumnList:       "ColumnList",
	NodeFrom:             "From",
	NodeInnerJoin:        "InnerJoin",
	NodeLeftJoin:         "LeftJoin",
	NodeRightJoin:        "RightJoin",
	NodeFullJoin:         "FullJoin",
	NodeCrossJoin:        "CrossJoin",
	NodeNaturalJoin:      "NaturalJoin",
	NodeOn:               "On",
	NodeUsing:            "Using",
	NodeWhere:            "Where",
	NodeGroupBy:          "GroupBy",
	NodeHaving:           "Having",
	NodeOrderBy:          "OrderBy",
	NodeDescending:       "Descending",
	NodeLimit:            "Limit",
	NodeOffset:           "Offset",
	NodeSelect:           "Select",
	NodeDistinct:         "Distinct",
	NodeUnion:            "Union",
	NodeIntersect:        "Intersect",
	NodeExcept:           "Except",
	NodeInsert:           "Insert",
	NodeValues:           "Values",
	NodeDefaultValues:    "DefaultValues",
	NodeUpdate:           "Update",
	NodeAssign:           "Assign",
	NodeDelete:           "Delete",
	NodeCreateTable:      "CreateTable",
	NodeCreateIndex:      "CreateIndex",
	NodeCreateType:       "CreateType",
	NodeIfNotExists:      "IfNotExists",
	NodeColumnDef:        "ColumnDef",
	NodeEnum:             "Enum",
	NodePrimaryKey:       "PrimaryKey",
	NodeForeignKey:       "ForeignKey",
	NodeReferences:       "References",
	NodeNotNull:          "NotNull",
	NodeNullable:         "Nullable",
	NodeUnique:           "Unique",
	NodeDefault:          "Default",
	NodeCheck:            "Check",
	NodeConstraint:       "Constraint",
	NodeIdentity:         "Identity",
}

func (k NodeKind) String() string {
	if n, ok := nodeKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// leafKinds are the kinds constructed with NewLeaf. Every other kind is a
// branch.
var leafKinds = map[NodeKind]struct{}{
	NodeIdentifier:       {},
	NodeQuotedIdentifier: {},
	NodeStringLit:        {},
	NodeBitStringLit:     {},
	NodeHexStringLit:     {},
	NodeIntegerLit:       {},
	NodeNumericLit:       {},
}

// ErrLeafChildren is returned when Append is called on a leaf node.
var ErrLeafChildren = errors.New("sqlparse: leaf node cannot have children")

// ErrChildIndex is returned by Child for an out of range index.
var ErrChildIndex = errors.New("sqlparse: child index out of range")

// SqlNode is one node of the syntax tree. A node is either a leaf carrying a
// payload string and no children, or a branch carrying an ordered child list
// and no payload. Every node, parsed or hand built, goes through NewLeaf or
// NewBranch so the invariant holds tree wide. Parents own their children
// exclusively; the tree has no sharing, no cycles, and no parent pointers.
type SqlNode struct {
	// Kind tags the node.
	Kind NodeKind
	// Value is the payload of a leaf. It is empty on branches.
	Value string

	children []*SqlNode
}

// NewLeaf builds a leaf node. Leaf kinds are identifiers and literals.
func NewLeaf(kind NodeKind, value string) *SqlNode {
	return &SqlNode{Kind: kind, Value: value}
}

// NewBranch builds a branch node owning the given children. A branch may be
// empty; markers like DISTINCT or IF NOT EXISTS are empty branches.
func NewBranch(kind NodeKind, children ...*SqlNode) *SqlNode {
	n := &SqlNode{Kind: kind}
	n.children = append(n.children, children...)
	return n
}

// IsLeaf reports whether the node kind is a payload carrying leaf.
func (n *SqlNode) IsLeaf() bool {
	_, ok := leafKinds[n.Kind]
	return ok
}

// Len is the number of children. It is always 0 for a leaf.
func (n *SqlNode) Len() int {
	return len(n.children)
}

// Child returns the ith child.
func (n *SqlNode) Child(i int) (*SqlNode, error) {
	if i < 0 || i >= len(n.children) {
		return nil, fmt.Errorf("%w: %d of %d", ErrChildIndex, i, len(n.children))
	}
	return n.children[i], nil
}

// Append adds a child to a branch. Appending to a leaf violates the
// payload-or-children invariant and is rejected.
func (n *SqlNode) Append(child *SqlNode) error {
	if n.IsLeaf() {
		return fmt.Errorf("%w: %s", ErrLeafChildren, n.Kind)
	}
	n.children = append(n.children, child)
	return nil
}

// Equal reports structural equality: same kinds, same child structure, same
// leaf payloads.
func Equal(a, b *SqlNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Value != b.Value || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
