// render walks the AST and emits canonical SQL text. Rendering is total on
// any tree the constructors can produce and never fails; re-parsing the
// output yields a structurally equivalent tree, though the original
// formatting is not preserved. Keywords are lower case unless the caller
// asks for upper case.
package sqlparse

import (
	"strings"
)

// Render serializes the tree rooted at n back to SQL text.
func Render(n *SqlNode, upperKeywords bool) string {
	r := renderer{upper: upperKeywords}
	var sb strings.Builder
	r.node(&sb, n)
	return sb.String()
}

type renderer struct {
	upper bool
}

func (r renderer) kw(s string) string {
	if r.upper {
		return s
	}
	return strings.ToLower(s)
}

// child returns the ith child, or nil when the branch has fewer children.
// Hand assembled trees may be missing operands; rendering degrades on them
// rather than failing.
func child(n *SqlNode, i int) *SqlNode {
	if i < len(n.children) {
		return n.children[i]
	}
	return nil
}

// tail returns the children from index i on, or nil when there are none.
func tail(n *SqlNode, i int) []*SqlNode {
	if i < len(n.children) {
		return n.children[i:]
	}
	return nil
}

func (r renderer) node(sb *strings.Builder, n *SqlNode) {
	if n == nil {
		return
	}
	switch n.Kind {
	case NodeStatementList:
		r.statementList(sb, n)
	case NodeSelect:
		r.selectStmt(sb, n)
	case NodeDistinct:
		sb.WriteString(r.kw("DISTINCT"))
	case NodeUnion:
		sb.WriteString(r.kw("UNION"))
	case NodeIntersect:
		sb.WriteString(r.kw("INTERSECT"))
	case NodeExcept:
		sb.WriteString(r.kw("EXCEPT"))
	case NodeEnum:
		sb.WriteString("(")
		r.commaJoin(sb, n.children)
		sb.WriteString(")")
	case NodeColumnList:
		r.commaJoin(sb, n.children)
	case NodeFrom:
		sb.WriteString(r.kw("FROM") + " ")
		r.node(sb, child(n, 0))
	case NodeInnerJoin, NodeLeftJoin, NodeRightJoin, NodeFullJoin,
		NodeCrossJoin, NodeNaturalJoin:
		r.join(sb, n)
	case NodeOn:
		sb.WriteString(r.kw("ON") + " ")
		r.expr(sb, child(n, 0), precOr)
	case NodeUsing:
		sb.WriteString(r.kw("USING") + " (")
		r.commaJoin(sb, n.children)
		sb.WriteString(")")
	case NodeWhere:
		sb.WriteString(r.kw("WHERE") + " ")
		r.expr(sb, child(n, 0), precOr)
	case NodeGroupBy:
		sb.WriteString(r.kw("GROUP BY") + " ")
		r.commaJoin(sb, n.children)
	case NodeHaving:
		sb.WriteString(r.kw("HAVING") + " ")
		r.expr(sb, child(n, 0), precOr)
	case NodeOrderBy:
		sb.WriteString(r.kw("ORDER BY") + " ")
		r.commaJoin(sb, n.children)
	case NodeDescending:
		r.expr(sb, child(n, 0), precOr)
		sb.WriteString(" " + r.kw("DESC"))
	case NodeLimit:
		sb.WriteString(r.kw("LIMIT") + " ")
		r.expr(sb, child(n, 0), precOr)
	case NodeOffset:
		sb.WriteString(r.kw("OFFSET") + " ")
		r.expr(sb, child(n, 0), precOr)
	case NodeInsert:
		r.insert(sb, n)
	case NodeValues:
		sb.WriteString("(")
		r.commaJoin(sb, n.children)
		sb.WriteString(")")
	case NodeDefaultValues:
		sb.WriteString(r.kw("DEFAULT VALUES"))
	case NodeUpdate:
		r.update(sb, n)
	case NodeAssign:
		r.expr(sb, child(n, 0), precOr)
		sb.WriteString(" = ")
		r.expr(sb, child(n, 1), precOr)
	case NodeDelete:
		sb.WriteString(r.kw("DELETE FROM") + " ")
		r.node(sb, child(n, 0))
		if n.Len() > 1 {
			sb.WriteString(" ")
			r.node(sb, child(n, 1))
		}
	case NodeCreateTable:
		r.createTable(sb, n)
	case NodeCreateIndex:
		r.createIndex(sb, n)
	case NodeCreateType:
		r.createType(sb, n)
	case NodeIfNotExists:
		sb.WriteString(r.kw("IF NOT EXISTS"))
	case NodeColumnDef:
		r.columnDef(sb, n)
	case NodePrimaryKey:
		sb.WriteString(r.kw("PRIMARY KEY"))
		if n.Len() > 0 {
			sb.WriteString(" (")
			r.commaJoin(sb, n.children)
			sb.WriteString(")")
		}
	case NodeUnique:
		sb.WriteString(r.kw("UNIQUE"))
		if n.Len() > 0 {
			sb.WriteString(" (")
			r.commaJoin(sb, n.children)
			sb.WriteString(")")
		}
	case NodeNotNull:
		sb.WriteString(r.kw("NOT NULL"))
	case NodeNullable:
		sb.WriteString(r.kw("NULL"))
	case NodeIdentity:
		sb.WriteString(r.kw("IDENTITY"))
	case NodeDefault:
		sb.WriteString(r.kw("DEFAULT") + " ")
		r.expr(sb, child(n, 0), precOr)
	case NodeCheck:
		sb.WriteString(r.kw("CHECK") + " (")
		r.expr(sb, child(n, 0), precOr)
		sb.WriteString(")")
	case NodeConstraint:
		sb.WriteString(r.kw("CONSTRAINT") + " ")
		r.node(sb, child(n, 0))
		sb.WriteString(" ")
		r.node(sb, child(n, 1))
	case NodeReferences:
		sb.WriteString(r.kw("REFERENCES") + " ")
		r.node(sb, child(n, 0))
		sb.WriteString(" (")
		r.node(sb, child(n, 1))
		sb.WriteString(")")
	case NodeForeignKey:
		sb.WriteString(r.kw("FOREIGN KEY") + " (")
		r.node(sb, child(n, 0))
		sb.WriteString(") ")
		r.node(sb, child(n, 1))
	default:
		r.expr(sb, n, precOr)
	}
}

// statementList joins statements with ";\n". A set operation marker joins
// its neighbors with the operation keyword instead.
func (r renderer) statementList(sb *strings.Builder, n *SqlNode) {
	afterMarker := false
	for i, c := range n.children {
		switch c.Kind {
		case NodeUnion:
			sb.WriteString(" " + r.kw("UNION") + " ")
			afterMarker = true
		case NodeIntersect:
			sb.WriteString(" " + r.kw("INTERSECT") + " ")
			afterMarker = true
		case NodeExcept:
			sb.WriteString(" " + r.kw("EXCEPT") + " ")
			afterMarker = true
		default:
			if i > 0 && !afterMarker {
				sb.WriteString(";\n")
			}
			r.node(sb, c)
			afterMarker = false
		}
	}
}

func (r renderer) selectStmt(sb *strings.Builder, n *SqlNode) {
	sb.WriteString(r.kw("SELECT"))
	for _, c := range n.children {
		sb.WriteString(" ")
		r.node(sb, c)
	}
}

var joinKeywords = map[NodeKind]string{
	NodeInnerJoin:   "JOIN",
	NodeLeftJoin:    "LEFT JOIN",
	NodeRightJoin:   "RIGHT JOIN",
	NodeFullJoin:    "FULL JOIN",
	NodeCrossJoin:   "CROSS JOIN",
	NodeNaturalJoin: "NATURAL JOIN",
}

func (r renderer) join(sb *strings.Builder, n *SqlNode) {
	r.node(sb, child(n, 0))
	sb.WriteString(" " + r.kw(joinKeywords[n.Kind]) + " ")
	r.node(sb, child(n, 1))
	if n.Len() > 2 {
		sb.WriteString(" ")
		r.node(sb, child(n, 2))
	}
}

func (r renderer) insert(sb *strings.Builder, n *SqlNode) {
	sb.WriteString(r.kw("INSERT INTO") + " ")
	r.node(sb, child(n, 0))
	sawValues := false
	for _, c := range tail(n, 1) {
		switch c.Kind {
		case NodeColumnList:
			sb.WriteString(" (")
			r.commaJoin(sb, c.children)
			sb.WriteString(")")
		case NodeDefaultValues:
			sb.WriteString(" " + r.kw("DEFAULT VALUES"))
		case NodeValues:
			if !sawValues {
				sb.WriteString(" " + r.kw("VALUES") + " ")
				sawValues = true
			} else {
				sb.WriteString(", ")
			}
			r.node(sb, c)
		}
	}
}

func (r renderer) update(sb *strings.Builder, n *SqlNode) {
	sb.WriteString(r.kw("UPDATE") + " ")
	r.node(sb, child(n, 0))
	sb.WriteString(" " + r.kw("SET") + " ")
	first := true
	for _, c := range tail(n, 1) {
		if c.Kind == NodeWhere {
			sb.WriteString(" ")
			r.node(sb, c)
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		r.node(sb, c)
	}
}

func (r renderer) createTable(sb *strings.Builder, n *SqlNode) {
	sb.WriteString(r.kw("CREATE TABLE") + " ")
	rest := n.children
	if len(rest) > 0 && rest[0].Kind == NodeIfNotExists {
		sb.WriteString(r.kw("IF NOT EXISTS") + " ")
		rest = rest[1:]
	}
	if len(rest) > 0 {
		r.node(sb, rest[0])
		rest = rest[1:]
	}
	sb.WriteString(" (")
	r.commaJoin(sb, rest)
	sb.WriteString(")")
}

func (r renderer) createIndex(sb *strings.Builder, n *SqlNode) {
	sb.WriteString(r.kw("CREATE") + " ")
	rest := n.children
	if len(rest) > 0 && rest[0].Kind == NodeUnique {
		sb.WriteString(r.kw("UNIQUE") + " ")
		rest = rest[1:]
	}
	sb.WriteString(r.kw("INDEX") + " ")
	if len(rest) > 0 && rest[0].Kind == NodeIfNotExists {
		sb.WriteString(r.kw("IF NOT EXISTS") + " ")
		rest = rest[1:]
	}
	if len(rest) > 0 {
		r.node(sb, rest[0])
		rest = rest[1:]
	}
	if len(rest) > 0 {
		sb.WriteString(" " + r.kw("ON") + " ")
		r.node(sb, rest[0])
		rest = rest[1:]
	}
	if len(rest) > 0 {
		sb.WriteString(" (")
		r.commaJoin(sb, rest[0].children)
		sb.WriteString(")")
	}
}

func (r renderer) createType(sb *strings.Builder, n *SqlNode) {
	sb.WriteString(r.kw("CREATE TYPE") + " ")
	rest := n.children
	if len(rest) > 0 && rest[0].Kind == NodeIfNotExists {
		sb.WriteString(r.kw("IF NOT EXISTS") + " ")
		rest = rest[1:]
	}
	if len(rest) > 0 {
		r.node(sb, rest[0])
		rest = rest[1:]
	}
	sb.WriteString(" " + r.kw("AS ENUM") + " (")
	if len(rest) > 0 {
		r.commaJoin(sb, rest[0].children)
	}
	sb.WriteString(")")
}

func (r renderer) columnDef(sb *strings.Builder, n *SqlNode) {
	r.node(sb, child(n, 0))
	sb.WriteString(" ")
	typ := child(n, 1)
	if typ != nil && typ.Kind == NodeCall {
		r.expr(sb, typ, precOr)
	} else {
		r.node(sb, typ)
	}
	for _, c := range tail(n, 2) {
		sb.WriteString(" ")
		r.node(sb, c)
	}
}

func (r renderer) commaJoin(sb *strings.Builder, children []*SqlNode) {
	for i, c := range children {
		if i > 0 {
			sb.WriteString(", ")
		}
		r.node(sb, c)
	}
}

// exprPrec is the binding power a kind carries when rendered, mirroring the
// parser's table so parentheses are re-inserted exactly where the structure
// requires them.
func exprPrec(k NodeKind) int {
	switch k {
	case NodeOr:
		return precOr
	case NodeAnd:
		return precAnd
	case NodeBetween:
		return precBetween
	case NodeIsNull, NodeIsNotNull, NodeLike, NodeIn:
		return precPredicate
	case NodeEq, NodeNotEq, NodeLt, NodeGt, NodeLe, NodeGe:
		return precComparison
	case NodeAdd, NodeSubtract:
		return precAddSub
	case NodeMultiply, NodeDivide, NodeModulo:
		return precMulDiv
	case NodeNegate:
		return precUnary
	case NodeDot, NodeIndex:
		return precPostfix
	}
	return precAtom
}

var infixText = map[NodeKind]string{
	NodeEq:       "=",
	NodeNotEq:    "<>",
	NodeLt:       "<",
	NodeGt:       ">",
	NodeLe:       "<=",
	NodeGe:       ">=",
	NodeAdd:      "+",
	NodeSubtract: "-",
	NodeMultiply: "*",
	NodeDivide:   "/",
	NodeModulo:   "%",
}

// sub renders an operand, parenthesizing it when it binds looser than its
// context requires.
func (r renderer) sub(sb *strings.Builder, n *SqlNode, min int) {
	if n == nil {
		return
	}
	if exprPrec(n.Kind) < min {
		sb.WriteString("(")
		r.expr(sb, n, precOr)
		sb.WriteString(")")
		return
	}
	r.expr(sb, n, min)
}

func (r renderer) expr(sb *strings.Builder, n *SqlNode, min int) {
	if n == nil {
		return
	}
	switch n.Kind {
	case NodeIdentifier:
		sb.WriteString(n.Value)
	case NodeQuotedIdentifier:
		sb.WriteString(`"` + strings.ReplaceAll(n.Value, `"`, `""`) + `"`)
	case NodeStringLit:
		sb.WriteString("'" + strings.ReplaceAll(n.Value, "'", "''") + "'")
	case NodeBitStringLit:
		sb.WriteString(r.kw("B") + "'" + n.Value + "'")
	case NodeHexStringLit:
		sb.WriteString(r.kw("X") + "'" + n.Value + "'")
	case NodeIntegerLit, NodeNumericLit:
		sb.WriteString(n.Value)
	case NodeNull:
		sb.WriteString(r.kw("NULL"))
	case NodeAllColumns:
		sb.WriteString("*")
	case NodeExprList:
		sb.WriteString("(")
		r.commaJoin(sb, n.children)
		sb.WriteString(")")
	case NodeOr:
		r.sub(sb, child(n, 0), precOr)
		sb.WriteString(" " + r.kw("OR") + " ")
		r.sub(sb, child(n, 1), precOr+1)
	case NodeAnd:
		r.sub(sb, child(n, 0), precAnd)
		sb.WriteString(" " + r.kw("AND") + " ")
		r.sub(sb, child(n, 1), precAnd+1)
	case NodeBetween:
		r.sub(sb, child(n, 0), precBetween)
		sb.WriteString(" " + r.kw("BETWEEN") + " ")
		r.sub(sb, child(n, 1), precBetween+1)
		sb.WriteString(" " + r.kw("AND") + " ")
		r.sub(sb, child(n, 2), precBetween+1)
	case NodeIsNull:
		r.sub(sb, child(n, 0), precPredicate)
		sb.WriteString(" " + r.kw("IS NULL"))
	case NodeIsNotNull:
		r.sub(sb, child(n, 0), precPredicate)
		sb.WriteString(" " + r.kw("IS NOT NULL"))
	case NodeLike:
		r.sub(sb, child(n, 0), precPredicate)
		sb.WriteString(" " + r.kw("LIKE") + " ")
		r.sub(sb, child(n, 1), precPredicate+1)
	case NodeIn:
		r.sub(sb, child(n, 0), precPredicate)
		sb.WriteString(" " + r.kw("IN") + " ")
		r.expr(sb, child(n, 1), precOr)
	case NodeEq, NodeNotEq, NodeLt, NodeGt, NodeLe, NodeGe,
		NodeAdd, NodeSubtract, NodeMultiply, NodeDivide, NodeModulo:
		prec := exprPrec(n.Kind)
		r.sub(sb, child(n, 0), prec)
		sb.WriteString(" " + infixText[n.Kind] + " ")
		r.sub(sb, child(n, 1), prec+1)
	case NodeNegate:
		sb.WriteString("-")
		// prec+1 keeps a nested negation parenthesized; "--" would open a
		// line comment
		r.sub(sb, child(n, 0), precUnary+1)
	case NodeDot:
		r.sub(sb, child(n, 0), precPostfix)
		sb.WriteString(".")
		r.expr(sb, child(n, 1), precAtom)
	case NodeIndex:
		r.sub(sb, child(n, 0), precPostfix)
		sb.WriteString("[")
		r.expr(sb, child(n, 1), precOr)
		sb.WriteString("]")
	case NodeCall:
		r.expr(sb, child(n, 0), precAtom)
		sb.WriteString("(")
		r.commaJoin(sb, tail(n, 1))
		sb.WriteString(")")
	default:
		// unreachable for parser built trees; keeps rendering total on any
		// hand assembled shape
		for i, c := range n.children {
			if i > 0 {
				sb.WriteString(" ")
			}
			r.expr(sb, c, precOr)
		}
	}
}
