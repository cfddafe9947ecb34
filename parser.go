// parser takes tokens from the lexer and produces an AST (Abstract Syntax
// Tree) rooted at a statement list node. Parsing is recursive descent with a
// single token of lookahead; expressions are handled in expr.go with
// precedence climbing. The first failure aborts the whole parse with a
// ParseError carrying the position of the offending token. There is no
// recovery and no partial tree.
package sqlparse

import "fmt"

type parser struct {
	lx         *lexer
	label      string
	typeParams bool
	tok        Token
}

func newParser(src, label string, considerTypeParams bool) *parser {
	return &parser{lx: newLexer(src), label: label, typeParams: considerTypeParams}
}

func (p *parser) advance() {
	p.tok = p.lx.next()
}

// errorf builds a ParseError at the given token. For an illegal token the
// lexer diagnostic wins over the caller's expectation message so the user
// sees "unterminated string literal" rather than "expression expected".
func (p *parser) errorf(t Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if t.Kind == TokenIllegal {
		msg = t.Value
	}
	return &ParseError{Label: p.label, Line: t.Line, Col: t.Col, Msg: msg}
}

func (p *parser) isKw(kw string) bool {
	return p.tok.Kind == TokenKeyword && p.tok.Value == kw
}

func (p *parser) eatKw(kw string) bool {
	if p.isKw(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectKw(kw string) error {
	if !p.eatKw(kw) {
		return p.errorf(p.tok, "%s expected", kw)
	}
	return nil
}

func (p *parser) isOp(op string) bool {
	return p.tok.Kind == TokenOperator && p.tok.Value == op
}

func (p *parser) eatOp(op string) bool {
	if p.isOp(op) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectOp(op string) error {
	if !p.eatOp(op) {
		return p.errorf(p.tok, "'%s' expected", op)
	}
	return nil
}

var setOpKinds = map[string]NodeKind{
	"UNION":     NodeUnion,
	"INTERSECT": NodeIntersect,
	"EXCEPT":    NodeExcept,
}

// parse is the top level loop: one statement, then a ';' or end of input.
// Chained selects put a set operation marker node between the two select
// siblings, keeping the statement list flat.
func (p *parser) parse() (*SqlNode, error) {
	root := NewBranch(NodeStatementList)
	p.advance()
	for p.tok.Kind != TokenEOF {
		if p.eatOp(";") {
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		root.Append(stmt)
		for stmt.Kind == NodeSelect && p.tok.Kind == TokenKeyword {
			kind, ok := setOpKinds[p.tok.Value]
			if !ok {
				break
			}
			p.advance()
			if !p.isKw("SELECT") {
				return nil, p.errorf(p.tok, "SELECT expected")
			}
			next, err := p.parseSelect()
			if err != nil {
				return nil, err
			}
			root.Append(NewBranch(kind))
			root.Append(next)
			stmt = next
		}
		if p.tok.Kind == TokenEOF {
			break
		}
		if err := p.expectOp(";"); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// parseStatement dispatches on the leading keyword.
func (p *parser) parseStatement() (*SqlNode, error) {
	switch {
	case p.isKw("SELECT"):
		return p.parseSelect()
	case p.isKw("INSERT"):
		return p.parseInsert()
	case p.isKw("UPDATE"):
		return p.parseUpdate()
	case p.isKw("DELETE"):
		return p.parseDelete()
	case p.isKw("CREATE"):
		return p.parseCreate()
	}
	return nil, p.errorf(p.tok, "statement expected")
}

// parseSelect parses the fixed clause chain. Only the column list is
// required; every following clause is optional.
func (p *parser) parseSelect() (*SqlNode, error) {
	p.advance() // SELECT
	sel := NewBranch(NodeSelect)
	if p.eatKw("DISTINCT") {
		sel.Append(NewBranch(NodeDistinct))
	}
	cols := NewBranch(NodeColumnList)
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		cols.Append(item)
		if !p.eatOp(",") {
			break
		}
	}
	sel.Append(cols)
	if p.eatKw("FROM") {
		from, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		sel.Append(from)
	}
	if p.eatKw("WHERE") {
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		sel.Append(NewBranch(NodeWhere, e))
	}
	if p.isKw("GROUP") {
		p.advance()
		if err := p.expectKw("BY"); err != nil {
			return nil, err
		}
		gb := NewBranch(NodeGroupBy)
		for {
			e, err := p.parseExpr(precOr)
			if err != nil {
				return nil, err
			}
			gb.Append(e)
			if !p.eatOp(",") {
				break
			}
		}
		sel.Append(gb)
	}
	if p.eatKw("HAVING") {
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		sel.Append(NewBranch(NodeHaving, e))
	}
	if p.isKw("ORDER") {
		p.advance()
		if err := p.expectKw("BY"); err != nil {
			return nil, err
		}
		ob := NewBranch(NodeOrderBy)
		for {
			e, err := p.parseExpr(precOr)
			if err != nil {
				return nil, err
			}
			if p.eatKw("DESC") {
				e = NewBranch(NodeDescending, e)
			} else {
				// ascending is the unmarked default and gets no node
				p.eatKw("ASC")
			}
			ob.Append(e)
			if !p.eatOp(",") {
				break
			}
		}
		sel.Append(ob)
	}
	if p.eatKw("LIMIT") {
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		sel.Append(NewBranch(NodeLimit, e))
	}
	if p.eatKw("OFFSET") {
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		sel.Append(NewBranch(NodeOffset, e))
	}
	return sel, nil
}

func (p *parser) parseSelectItem() (*SqlNode, error) {
	if p.eatOp("*") {
		return NewBranch(NodeAllColumns), nil
	}
	return p.parseExpr(precOr)
}

// parseFromClause parses the first table reference and any number of joins.
// Joins nest left associatively so "a JOIN b JOIN c" is (a JOIN b) JOIN c.
func (p *parser) parseFromClause() (*SqlNode, error) {
	left, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	for {
		kind, ok, err := p.parseJoinType()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		right, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		join := NewBranch(kind, left, right)
		if kind != NodeCrossJoin && kind != NodeNaturalJoin {
			cond, err := p.parseJoinCondition()
			if err != nil {
				return nil, err
			}
			join.Append(cond)
		}
		left = join
	}
	return NewBranch(NodeFrom, left), nil
}

// parseJoinType consumes the join introducer if one is present. A bare JOIN
// is an inner join.
func (p *parser) parseJoinType() (NodeKind, bool, error) {
	switch {
	case p.eatKw("JOIN"):
		return NodeInnerJoin, true, nil
	case p.eatKw("INNER"):
		return NodeInnerJoin, true, p.expectKw("JOIN")
	case p.eatKw("LEFT"):
		p.eatKw("OUTER")
		return NodeLeftJoin, true, p.expectKw("JOIN")
	case p.eatKw("RIGHT"):
		p.eatKw("OUTER")
		return NodeRightJoin, true, p.expectKw("JOIN")
	case p.eatKw("FULL"):
		p.eatKw("OUTER")
		return NodeFullJoin, true, p.expectKw("JOIN")
	case p.eatKw("CROSS"):
		return NodeCrossJoin, true, p.expectKw("JOIN")
	case p.eatKw("NATURAL"):
		return NodeNaturalJoin, true, p.expectKw("JOIN")
	}
	return 0, false, nil
}

func (p *parser) parseJoinCondition() (*SqlNode, error) {
	if p.eatKw("ON") {
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		return NewBranch(NodeOn, e), nil
	}
	if p.eatKw("USING") {
		if err := p.expectOp("("); err != nil {
			return nil, err
		}
		using := NewBranch(NodeUsing)
		for {
			id, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			using.Append(id)
			if !p.eatOp(",") {
				break
			}
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return using, nil
	}
	return nil, p.errorf(p.tok, "ON or USING expected")
}

// parseTableRef parses a possibly qualified table name.
func (p *parser) parseTableRef() (*SqlNode, error) {
	n, err := p.parseIdentifier()
	if err != nil {
		return nil, p.errorf(p.tok, "table name expected")
	}
	for p.eatOp(".") {
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		n = NewBranch(NodeDot, n, id)
	}
	return n, nil
}

// parseIdentifier accepts a plain or quoted identifier leaf.
func (p *parser) parseIdentifier() (*SqlNode, error) {
	t := p.tok
	switch t.Kind {
	case TokenIdentifier:
		p.advance()
		return NewLeaf(NodeIdentifier, t.Value), nil
	case TokenQuotedIdentifier:
		p.advance()
		return NewLeaf(NodeQuotedIdentifier, t.Value), nil
	}
	return nil, p.errorf(t, "identifier expected")
}

// parseInsert parses INSERT INTO with an optional explicit column list and
// either one or more VALUES tuples or DEFAULT VALUES.
func (p *parser) parseInsert() (*SqlNode, error) {
	p.advance() // INSERT
	if err := p.expectKw("INTO"); err != nil {
		return nil, err
	}
	table, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	ins := NewBranch(NodeInsert, table)
	if p.eatOp("(") {
		cols := NewBranch(NodeColumnList)
		for {
			id, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			cols.Append(id)
			if !p.eatOp(",") {
				break
			}
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		ins.Append(cols)
	}
	if p.eatKw("DEFAULT") {
		if err := p.expectKw("VALUES"); err != nil {
			return nil, err
		}
		ins.Append(NewBranch(NodeDefaultValues))
		return ins, nil
	}
	if err := p.expectKw("VALUES"); err != nil {
		return nil, err
	}
	for {
		tuple, err := p.parseValueTuple()
		if err != nil {
			return nil, err
		}
		ins.Append(tuple)
		if !p.eatOp(",") {
			break
		}
	}
	return ins, nil
}

func (p *parser) parseValueTuple() (*SqlNode, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	tuple := NewBranch(NodeValues)
	for {
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		tuple.Append(e)
		if !p.eatOp(",") {
			break
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return tuple, nil
}

func (p *parser) parseUpdate() (*SqlNode, error) {
	p.advance() // UPDATE
	table, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	upd := NewBranch(NodeUpdate, table)
	if err := p.expectKw("SET"); err != nil {
		return nil, err
	}
	for {
		col, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp("="); err != nil {
			return nil, err
		}
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		upd.Append(NewBranch(NodeAssign, col, e))
		if !p.eatOp(",") {
			break
		}
	}
	if p.eatKw("WHERE") {
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		upd.Append(NewBranch(NodeWhere, e))
	}
	return upd, nil
}

func (p *parser) parseDelete() (*SqlNode, error) {
	p.advance() // DELETE
	if err := p.expectKw("FROM"); err != nil {
		return nil, err
	}
	table, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	del := NewBranch(NodeDelete, table)
	if p.eatKw("WHERE") {
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, err
		}
		del.Append(NewBranch(NodeWhere, e))
	}
	return del, nil
}

func (p *parser) parseCreate() (*SqlNode, error) {
	p.advance() // CREATE
	switch {
	case p.eatKw("TABLE"):
		return p.parseCreateTable()
	case p.eatKw("INDEX"):
		return p.parseCreateIndex(false)
	case p.eatKw("UNIQUE"):
		if err := p.expectKw("INDEX"); err != nil {
			return nil, err
		}
		return p.parseCreateIndex(true)
	case p.eatKw("TYPE"):
		return p.parseCreateType()
	}
	return nil, p.errorf(p.tok, "TABLE, INDEX, or TYPE expected")
}

// parseIfNotExists consumes an optional IF NOT EXISTS.
func (p *parser) parseIfNotExists() (bool, error) {
	if !p.eatKw("IF") {
		return false, nil
	}
	if err := p.expectKw("NOT"); err != nil {
		return false, err
	}
	if err := p.expectKw("EXISTS"); err != nil {
		return false, err
	}
	return true, nil
}

func (p *parser) parseCreateTable() (*SqlNode, error) {
	ct := NewBranch(NodeCreateTable)
	ine, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	if ine {
		ct.Append(NewBranch(NodeIfNotExists))
	}
	name, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	ct.Append(name)
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	for {
		entry, err := p.parseTableEntry()
		if err != nil {
			return nil, err
		}
		ct.Append(entry)
		if !p.eatOp(",") {
			break
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return ct, nil
}

// tableConstraintKws lead a table level constraint rather than a column
// definition.
var tableConstraintKws = map[string]struct{}{
	"PRIMARY":    {},
	"FOREIGN":    {},
	"UNIQUE":     {},
	"CHECK":      {},
	"CONSTRAINT": {},
}

func (p *parser) parseTableEntry() (*SqlNode, error) {
	if p.tok.Kind == TokenKeyword {
		if _, ok := tableConstraintKws[p.tok.Value]; ok {
			return p.parseTableConstraint()
		}
	}
	return p.parseColumnDef()
}

// parseColumnDef parses {name, type, constraints...}. A parenthesized type
// parameter list like VARCHAR(255) is captured as a call shaped node when
// type parameters are considered, otherwise it is consumed and discarded so
// the cursor stays positioned correctly.
func (p *parser) parseColumnDef() (*SqlNode, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	typ, err := p.parseIdentifier()
	if err != nil {
		return nil, p.errorf(p.tok, "column type expected")
	}
	if p.eatOp("(") {
		params := []*SqlNode{}
		for {
			e, err := p.parseExpr(precOr)
			if err != nil {
				return nil, err
			}
			params = append(params, e)
			if !p.eatOp(",") {
				break
			}
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		if p.typeParams {
			typ = NewBranch(NodeCall, append([]*SqlNode{typ}, params...)...)
		}
	}
	def := NewBranch(NodeColumnDef, name, typ)
	for {
		c, ok, err := p.parseColumnConstraint()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		def.Append(c)
	}
	return def, nil
}

// parseColumnConstraint consumes one column constraint if the current token
// starts one.
func (p *parser) parseColumnConstraint() (*SqlNode, bool, error) {
	switch {
	case p.eatKw("PRIMARY"):
		if err := p.expectKw("KEY"); err != nil {
			return nil, false, err
		}
		return NewBranch(NodePrimaryKey), true, nil
	case p.eatKw("NOT"):
		if err := p.expectKw("NULL"); err != nil {
			return nil, false, err
		}
		return NewBranch(NodeNotNull), true, nil
	case p.eatKw("NULL"):
		return NewBranch(NodeNullable), true, nil
	case p.eatKw("UNIQUE"):
		return NewBranch(NodeUnique), true, nil
	case p.eatKw("IDENTITY"):
		return NewBranch(NodeIdentity), true, nil
	case p.eatKw("DEFAULT"):
		e, err := p.parseExpr(precOr)
		if err != nil {
			return nil, false, err
		}
		return NewBranch(NodeDefault, e), true, nil
	case p.eatKw("CHECK"):
		c, err := p.parseCheckBody()
		return c, true, err
	case p.eatKw("CONSTRAINT"):
		c, err := p.parseNamedConstraint()
		return c, true, err
	case p.eatKw("FOREIGN"):
		if err := p.expectKw("KEY"); err != nil {
			return nil, false, err
		}
		if err := p.expectKw("REFERENCES"); err != nil {
			return nil, false, err
		}
		ref, err := p.parseReferencesTail()
		return ref, true, err
	case p.eatKw("REFERENCES"):
		ref, err := p.parseReferencesTail()
		return ref, true, err
	}
	return nil, false, nil
}

func (p *parser) parseCheckBody() (*SqlNode, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	e, err := p.parseExpr(precOr)
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return NewBranch(NodeCheck, e), nil
}

func (p *parser) parseNamedConstraint() (*SqlNode, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectKw("CHECK"); err != nil {
		return nil, err
	}
	check, err := p.parseCheckBody()
	if err != nil {
		return nil, err
	}
	return NewBranch(NodeConstraint, name, check), nil
}

// parseReferencesTail parses "table (column)" after REFERENCES.
func (p *parser) parseReferencesTail() (*SqlNode, error) {
	table, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	col, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return NewBranch(NodeReferences, table, col), nil
}

func (p *parser) parseTableConstraint() (*SqlNode, error) {
	switch {
	case p.eatKw("PRIMARY"):
		if err := p.expectKw("KEY"); err != nil {
			return nil, err
		}
		ids, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		return NewBranch(NodePrimaryKey, ids...), nil
	case p.eatKw("UNIQUE"):
		ids, err := p.parseParenIdentList()
		if err != nil {
			return nil, err
		}
		return NewBranch(NodeUnique, ids...), nil
	case p.eatKw("CHECK"):
		return p.parseCheckBody()
	case p.eatKw("CONSTRAINT"):
		return p.parseNamedConstraint()
	case p.eatKw("FOREIGN"):
		if err := p.expectKw("KEY"); err != nil {
			return nil, err
		}
		if err := p.expectOp("("); err != nil {
			return nil, err
		}
		col, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		if err := p.expectKw("REFERENCES"); err != nil {
			return nil, err
		}
		ref, err := p.parseReferencesTail()
		if err != nil {
			return nil, err
		}
		return NewBranch(NodeForeignKey, col, ref), nil
	}
	return nil, p.errorf(p.tok, "table constraint expected")
}

func (p *parser) parseParenIdentList() ([]*SqlNode, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	ids := []*SqlNode{}
	for {
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		if !p.eatOp(",") {
			break
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return ids, nil
}

func (p *parser) parseCreateIndex(unique bool) (*SqlNode, error) {
	ci := NewBranch(NodeCreateIndex)
	if unique {
		ci.Append(NewBranch(NodeUnique))
	}
	ine, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	if ine {
		ci.Append(NewBranch(NodeIfNotExists))
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	ci.Append(name)
	if err := p.expectKw("ON"); err != nil {
		return nil, err
	}
	table, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	ci.Append(table)
	ids, err := p.parseParenIdentList()
	if err != nil {
		return nil, err
	}
	ci.Append(NewBranch(NodeColumnList, ids...))
	return ci, nil
}

// parseCreateType parses the enumerated type form, CREATE TYPE name AS ENUM
// ('a', 'b').
func (p *parser) parseCreateType() (*SqlNode, error) {
	ct := NewBranch(NodeCreateType)
	ine, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	if ine {
		ct.Append(NewBranch(NodeIfNotExists))
	}
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	ct.Append(name)
	if err := p.expectKw("AS"); err != nil {
		return nil, err
	}
	if err := p.expectKw("ENUM"); err != nil {
		return nil, err
	}
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	enum := NewBranch(NodeEnum)
	for {
		if p.tok.Kind != TokenString {
			return nil, p.errorf(p.tok, "string literal expected")
		}
		enum.Append(NewLeaf(NodeStringLit, p.tok.Value))
		p.advance()
		if !p.eatOp(",") {
			break
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	ct.Append(enum)
	return ct, nil
}
